// Package config loads fundplan settings from a TOML file with environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/mmynk/fundplan/internal/calculator"
	"github.com/mmynk/fundplan/internal/models"
)

// Config holds all fundplan configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Planner PlannerConfig `toml:"planner"`
	Log     LogConfig     `toml:"log"`
}

// ServerConfig holds settings for cmd/server.
type ServerConfig struct {
	Port         int    `toml:"port"`
	DBPath       string `toml:"db_path"`
	CacheEnabled bool   `toml:"cache_enabled"`

	// DatabaseURL selects a PostgreSQL plan cache instead of SQLite.
	DatabaseURL string `toml:"database_url,omitempty"`

	// CacheTTLHours is how long memoized plans are kept. Zero keeps them forever.
	CacheTTLHours int `toml:"cache_ttl_hours"`
}

// PlannerConfig holds planning defaults shared by the server and the CLI.
type PlannerConfig struct {
	DefaultStyle  string                 `toml:"default_style"`
	DefaultBudget float64                `toml:"default_budget,omitempty"`
	Risk          calculator.RiskProfile `toml:"risk"`
}

// LogConfig holds logging preferences.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:          8080,
			DBPath:        "./data/plans.db",
			CacheEnabled:  true,
			CacheTTLHours: 24 * 7,
		},
		Planner: PlannerConfig{
			DefaultStyle: string(models.StyleHybrid),
			Risk:         calculator.DefaultRiskProfile,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fundplan")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "fundplan")
}

// Path returns the full path to the config file. FUNDPLAN_CONFIG overrides it.
func Path() string {
	if p := os.Getenv("FUNDPLAN_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
// Environment overrides are applied last.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(Path()), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// Validate checks values that would otherwise fail deep inside the planner.
func (c Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if _, err := models.ParseFundingStyle(c.Planner.DefaultStyle); err != nil {
		return fmt.Errorf("planner.default_style: %w", err)
	}
	if c.Planner.DefaultBudget < 0 {
		return fmt.Errorf("planner.default_budget cannot be negative")
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := getEnv("FUNDPLAN_PORT", ""); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FUNDPLAN_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	cfg.Server.DBPath = getEnv("DB_PATH", cfg.Server.DBPath)
	cfg.Server.DatabaseURL = getEnv("DATABASE_URL", cfg.Server.DatabaseURL)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("LOG_FORMAT", cfg.Log.Format)
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
