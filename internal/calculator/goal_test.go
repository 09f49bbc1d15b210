package calculator

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/mmynk/fundplan/internal/models"
)

func TestBuildGoal(t *testing.T) {
	now := time.Date(2026, time.October, 19, 10, 0, 0, 0, time.UTC)

	goal, err := BuildGoal(GoalInput{
		Name:       "  House deposit ",
		Category:   "housing",
		Amount:     40000,
		TargetDate: time.Date(2031, time.October, 1, 0, 0, 0, 0, time.UTC),
	}, now, DefaultRiskProfile)
	if err != nil {
		t.Fatalf("BuildGoal() error = %v", err)
	}

	if len(goal.ID) != 36 {
		t.Errorf("ID = %q, want a generated UUID", goal.ID)
	}
	if goal.Name != "House deposit" {
		t.Errorf("Name = %q, want trimmed name", goal.Name)
	}
	if goal.HorizonMonths != 60 {
		t.Errorf("HorizonMonths = %d, want 60", goal.HorizonMonths)
	}
	if len(goal.ReturnPhases) != 2 {
		t.Errorf("got %d phases, want 2 for a medium horizon", len(goal.ReturnPhases))
	}
	if err := ValidateGoal(goal); err != nil {
		t.Errorf("ValidateGoal() error = %v", err)
	}

	want, _ := RequiredPayment(40000, goal.ReturnPhases, 60, "", 0)
	if math.Abs(goal.RequiredPayment-want) > 0.005 {
		t.Errorf("RequiredPayment = %v, want %v", goal.RequiredPayment, want)
	}
}

func TestBuildGoal_KeepsID(t *testing.T) {
	now := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)
	goal, err := BuildGoal(GoalInput{
		ID:         models.EmergencyFundID,
		Name:       "Emergency fund",
		Amount:     9000,
		TargetDate: now.AddDate(1, 0, 0),
	}, now, DefaultRiskProfile)
	if err != nil {
		t.Fatalf("BuildGoal() error = %v", err)
	}
	if goal.ID != models.EmergencyFundID {
		t.Errorf("ID = %q, want %q", goal.ID, models.EmergencyFundID)
	}
}

func TestBuildGoal_Errors(t *testing.T) {
	now := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   GoalInput
		wantErr error
	}{
		{
			name:    "missing name",
			input:   GoalInput{Amount: 100, TargetDate: now.AddDate(1, 0, 0)},
			wantErr: ErrMissingName,
		},
		{
			name:    "zero amount",
			input:   GoalInput{Name: "x", TargetDate: now.AddDate(1, 0, 0)},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "target in the past",
			input:   GoalInput{Name: "x", Amount: 100, TargetDate: now.AddDate(0, -2, 0)},
			wantErr: ErrInvalidHorizon,
		},
		{
			name:    "target later this month",
			input:   GoalInput{Name: "x", Amount: 100, TargetDate: now.AddDate(0, 0, 5)},
			wantErr: ErrInvalidHorizon,
		},
		{
			name:    "unknown frequency",
			input:   GoalInput{Name: "x", Amount: 100, TargetDate: now.AddDate(1, 0, 0), PaymentFrequency: "weekly"},
			wantErr: ErrInvalidFrequency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildGoal(tt.input, now, DefaultRiskProfile)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("BuildGoal() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateGoal_PhaseMismatch(t *testing.T) {
	goal := models.Goal{
		ID:            "g",
		Amount:        1000,
		HorizonMonths: 24,
		ReturnPhases:  []models.ReturnPhase{{Months: 12, AnnualRate: 0.04}},
	}
	if err := ValidateGoal(goal); !errors.Is(err, ErrPhaseMismatch) {
		t.Errorf("ValidateGoal() error = %v, want %v", err, ErrPhaseMismatch)
	}
}
