// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/fundplan/internal/models"
	"github.com/mmynk/fundplan/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SavePlan upserts a memoized plan.
func (s *SQLiteStore) SavePlan(ctx context.Context, rec *models.PlanRecord) error {
	if rec.Key == "" {
		return fmt.Errorf("plan key is required")
	}
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt == 0 {
		rec.CreatedAt = time.Now().Unix()
	}

	allocation, err := json.Marshal(rec.Allocation)
	if err != nil {
		return fmt.Errorf("failed to encode allocation: %w", err)
	}
	var savings sql.NullString
	if rec.Savings != nil {
		data, err := json.Marshal(rec.Savings)
		if err != nil {
			return fmt.Errorf("failed to encode savings: %w", err)
		}
		savings = sql.NullString{String: string(data), Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO plan_cache (key, id, style, budget, savings, allocation, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET
			id = excluded.id,
			style = excluded.style,
			budget = excluded.budget,
			savings = excluded.savings,
			allocation = excluded.allocation,
			created_at = excluded.created_at`,
		rec.Key, rec.ID, string(rec.Style), rec.Budget, savings, string(allocation), rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}
	return nil
}

// GetPlan retrieves a memoized plan by key.
func (s *SQLiteStore) GetPlan(ctx context.Context, key string) (*models.PlanRecord, error) {
	var (
		rec        models.PlanRecord
		style      string
		savings    sql.NullString
		allocation string
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT key, id, style, budget, savings, allocation, created_at FROM plan_cache WHERE key = ?",
		key,
	).Scan(&rec.Key, &rec.ID, &style, &rec.Budget, &savings, &allocation, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	rec.Style = models.FundingStyle(style)
	if err := json.Unmarshal([]byte(allocation), &rec.Allocation); err != nil {
		return nil, fmt.Errorf("failed to decode allocation: %w", err)
	}
	if savings.Valid {
		rec.Savings = &models.SavingsResult{}
		if err := json.Unmarshal([]byte(savings.String), rec.Savings); err != nil {
			return nil, fmt.Errorf("failed to decode savings: %w", err)
		}
	}

	return &rec, nil
}

// PrunePlans removes plans created before the given Unix timestamp.
func (s *SQLiteStore) PrunePlans(ctx context.Context, before int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM plan_cache WHERE created_at < ?", before)
	if err != nil {
		return 0, fmt.Errorf("failed to prune plans: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned plans: %w", err)
	}
	return n, nil
}
