// Package storage provides abstractions for memoizing planner results.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/fundplan/internal/models"
)

// ErrNotFound is returned when no record exists for a key.
var ErrNotFound = errors.New("plan not found")

// Store memoizes engine runs keyed by a fingerprint of their inputs.
// The engine itself never caches; callers decide when to consult the store.
type Store interface {
	// GetPlan returns the record stored under key, or ErrNotFound.
	GetPlan(ctx context.Context, key string) (*models.PlanRecord, error)

	// SavePlan stores or replaces the record for rec.Key.
	// The rec.ID and rec.CreatedAt fields are populated when empty.
	SavePlan(ctx context.Context, rec *models.PlanRecord) error

	// PrunePlans deletes records created before the given Unix timestamp
	// and returns how many were removed.
	PrunePlans(ctx context.Context, before int64) (int64, error)

	// Close releases any resources held by the store.
	Close() error
}
