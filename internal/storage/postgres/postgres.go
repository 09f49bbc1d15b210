// Package postgres provides a PostgreSQL-backed implementation of the
// storage.Store interface, for deployments that share one plan cache
// between several server instances.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/mmynk/fundplan/internal/models"
	"github.com/mmynk/fundplan/internal/storage"
)

var _ storage.Store = (*PostgresStore)(nil)

// schema mirrors the SQLite plan cache. Payloads are JSONB.
const schema = `
CREATE TABLE IF NOT EXISTS plan_cache (
    key TEXT PRIMARY KEY,
    id TEXT NOT NULL,
    style TEXT NOT NULL,
    budget DOUBLE PRECISION NOT NULL,
    savings JSONB,
    allocation JSONB NOT NULL,
    created_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_plan_cache_created_at ON plan_cache(created_at);
`

// PostgresStore implements storage.Store using PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// New connects to connString, checks the connection and creates the schema.
func New(ctx context.Context, connString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// Close closes the database connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// SavePlan upserts a memoized plan.
func (s *PostgresStore) SavePlan(ctx context.Context, rec *models.PlanRecord) error {
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
	// lib/pq sends []byte as bytea, so payloads go over the wire as text.
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
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (key) DO UPDATE SET
			id = EXCLUDED.id,
			style = EXCLUDED.style,
			budget = EXCLUDED.budget,
			savings = EXCLUDED.savings,
			allocation = EXCLUDED.allocation,
			created_at = EXCLUDED.created_at`,
		rec.Key, rec.ID, string(rec.Style), rec.Budget, savings, string(allocation), rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}
	return nil
}

// GetPlan retrieves a memoized plan by key.
func (s *PostgresStore) GetPlan(ctx context.Context, key string) (*models.PlanRecord, error) {
	var (
		rec        models.PlanRecord
		style      string
		savings    []byte
		allocation []byte
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT key, id, style, budget, savings, allocation, created_at FROM plan_cache WHERE key = $1",
		key,
	).Scan(&rec.Key, &rec.ID, &style, &rec.Budget, &savings, &allocation, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	rec.Style = models.FundingStyle(style)
	if err := json.Unmarshal(allocation, &rec.Allocation); err != nil {
		return nil, fmt.Errorf("failed to decode allocation: %w", err)
	}
	if savings != nil {
		rec.Savings = &models.SavingsResult{}
		if err := json.Unmarshal(savings, rec.Savings); err != nil {
			return nil, fmt.Errorf("failed to decode savings: %w", err)
		}
	}

	return &rec, nil
}

// PrunePlans removes plans created before the given Unix timestamp.
func (s *PostgresStore) PrunePlans(ctx context.Context, before int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM plan_cache WHERE created_at < $1", before)
	if err != nil {
		return 0, fmt.Errorf("failed to prune plans: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned plans: %w", err)
	}
	return n, nil
}
