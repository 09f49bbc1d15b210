package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mmynk/fundplan/internal/calculator"
)

// isolate points the config lookup at an empty temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, key := range []string{"FUNDPLAN_CONFIG", "FUNDPLAN_PORT", "DB_PATH", "DATABASE_URL", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	if Exists() {
		t.Fatal("expected no config file")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Planner.DefaultStyle != "hybrid" {
		t.Errorf("DefaultStyle = %q, want hybrid", cfg.Planner.DefaultStyle)
	}
	if cfg.Planner.Risk != calculator.DefaultRiskProfile {
		t.Errorf("Risk = %+v, want defaults", cfg.Planner.Risk)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := isolate(t)

	cfg := DefaultConfig()
	cfg.Server.Port = 9090
	cfg.Planner.DefaultStyle = "waterfall"
	cfg.Planner.DefaultBudget = 1500
	cfg.Planner.Risk.Growth = 0.07

	if err := Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "fundplan", "config.toml")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got != cfg {
		t.Errorf("Load() = %+v, want %+v", got, cfg)
	}
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("FUNDPLAN_PORT", "7000")
	t.Setenv("DB_PATH", "/tmp/other.db")
	t.Setenv("DATABASE_URL", "postgres://localhost/fundplan")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("Port = %d, want 7000", cfg.Server.Port)
	}
	if cfg.Server.DBPath != "/tmp/other.db" {
		t.Errorf("DBPath = %q", cfg.Server.DBPath)
	}
	if cfg.Server.DatabaseURL != "postgres://localhost/fundplan" {
		t.Errorf("DatabaseURL = %q", cfg.Server.DatabaseURL)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		file string
		port string
	}{
		{name: "bad toml", file: "[server\nport = 1"},
		{name: "unknown style", file: "[planner]\ndefault_style = \"avalanche\"\n"},
		{name: "negative budget", file: "[planner]\ndefault_budget = -10\n"},
		{name: "bad port env", port: "eighty"},
		{name: "port out of range", port: "70000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			if tt.file != "" {
				path := filepath.Join(dir, "custom.toml")
				if err := os.WriteFile(path, []byte(tt.file), 0o600); err != nil {
					t.Fatal(err)
				}
				t.Setenv("FUNDPLAN_CONFIG", path)
			}
			if tt.port != "" {
				t.Setenv("FUNDPLAN_PORT", tt.port)
			}

			if _, err := Load(); err == nil {
				t.Error("expected error")
			}
		})
	}
}
