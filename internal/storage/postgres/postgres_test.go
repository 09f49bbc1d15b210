package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/fundplan/internal/models"
	"github.com/mmynk/fundplan/internal/storage"
)

// newTestStore connects to FUNDPLAN_TEST_DATABASE_URL, skipping when unset.
func newTestStore(t *testing.T) *PostgresStore {
	t.Helper()
	url := os.Getenv("FUNDPLAN_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("FUNDPLAN_TEST_DATABASE_URL not set")
	}

	store, err := New(context.Background(), url)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPostgresStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	key := "test-" + uuid.New().String()
	leftover := models.SavingsResult{Leftover: 12.5, TotalAllocated: 500}
	rec := &models.PlanRecord{
		Key:     key,
		Style:   models.StyleWaterfall,
		Budget:  800,
		Savings: &leftover,
		Allocation: models.Allocation{
			HorizonMonths: 1,
			TotalDemand:   900,
			Results: []models.GoalResult{{
				Goal:        models.Goal{ID: "g1", Name: "Bike", Amount: 800},
				Allocations: []float64{800},
				Balances:    []float64{800},
			}},
		},
	}

	if err := store.SavePlan(ctx, rec); err != nil {
		t.Fatalf("SavePlan failed: %v", err)
	}
	if rec.ID == "" || rec.CreatedAt == 0 {
		t.Errorf("expected ID and CreatedAt to be set, got %q/%d", rec.ID, rec.CreatedAt)
	}

	got, err := store.GetPlan(ctx, key)
	if err != nil {
		t.Fatalf("GetPlan failed: %v", err)
	}
	if got.Style != models.StyleWaterfall || got.Budget != 800 {
		t.Errorf("got style %q budget %v", got.Style, got.Budget)
	}
	if got.Savings == nil || got.Savings.Leftover != 12.5 {
		t.Errorf("Savings = %+v", got.Savings)
	}
	if got.Allocation.Results[0].Goal.Name != "Bike" {
		t.Errorf("Goal = %+v", got.Allocation.Results[0].Goal)
	}

	_, err = store.GetPlan(ctx, key+"-missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	n, err := store.PrunePlans(ctx, time.Now().Add(time.Hour).Unix())
	if err != nil {
		t.Fatalf("PrunePlans failed: %v", err)
	}
	if n < 1 {
		t.Errorf("pruned %d plans, want at least 1", n)
	}
}
