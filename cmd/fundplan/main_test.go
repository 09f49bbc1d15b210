package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mmynk/fundplan/internal/calculator"
	"github.com/mmynk/fundplan/internal/models"
)

func TestFirstPositive(t *testing.T) {
	tests := []struct {
		vals []float64
		want float64
	}{
		{[]float64{0, 1500, 900}, 1500},
		{[]float64{200, 1500}, 200},
		{[]float64{-1, 0}, 0},
		{nil, 0},
	}
	for _, tt := range tests {
		if got := firstPositive(tt.vals...); got != tt.want {
			t.Errorf("firstPositive(%v) = %v, want %v", tt.vals, got, tt.want)
		}
	}

	if got := firstNonEmpty("", "waterfall", "hybrid"); got != "waterfall" {
		t.Errorf("firstNonEmpty = %q, want waterfall", got)
	}
}

func TestRenderPhases(t *testing.T) {
	out := renderPhases(calculator.PhasesForHorizon(180, calculator.DefaultRiskProfile))
	for _, want := range []string{"Phase 1", "1-60", "8.0%", "Phase 3", "121-180", "4.0%"} {
		if !strings.Contains(out, want) {
			t.Errorf("phases table missing %q:\n%s", want, out)
		}
	}
}

func TestRenderMonths(t *testing.T) {
	now := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	alloc := models.Allocation{
		HorizonMonths: 2,
		Results: []models.GoalResult{
			{Goal: models.Goal{Name: "Trip"}, Allocations: []float64{100, 100}},
			{Goal: models.Goal{Name: "Car"}, Allocations: []float64{50, 25}},
		},
	}

	out := renderMonths(alloc, now, 12)
	for _, want := range []string{"First 2 months", "Jan 2026", "Feb 2026", "Trip", "Car", "$150.00", "$125.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("months table missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Mar 2026") {
		t.Error("rendered past the simulation horizon")
	}
}

func TestPlanCommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("FUNDPLAN_CONFIG", "")

	path := filepath.Join(dir, "plan.yaml")
	plan := `
budget: 500
style: parallel
goals:
  - name: Trip
    amount: 1200
    target_date: 2027-01-01
`
	if err := os.WriteFile(path, []byte(plan), 0o600); err != nil {
		t.Fatal(err)
	}

	rootCmd.SetArgs([]string{"plan", "-f", path, "--now", "2026-01-15", "--months", "3"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("plan command failed: %v", err)
	}

	rootCmd.SetArgs([]string{"plan", "-f", path, "--now", "15/01/2026"})
	if err := rootCmd.Execute(); err == nil {
		t.Error("expected error for malformed --now")
	}
}
