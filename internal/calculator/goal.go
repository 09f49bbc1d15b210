package calculator

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/fundplan/internal/models"
)

// GoalInput is what a user edits; BuildGoal derives everything else.
type GoalInput struct {
	ID               string                  `json:"id,omitempty" yaml:"id"`
	Name             string                  `json:"name" yaml:"name"`
	Category         string                  `json:"category,omitempty" yaml:"category"`
	Amount           float64                 `json:"amount" yaml:"amount"`
	TargetDate       time.Time               `json:"target_date" yaml:"target_date"`
	PaymentFrequency models.PaymentFrequency `json:"payment_frequency,omitempty" yaml:"payment_frequency"`
	PaymentPeriod    int                     `json:"payment_period,omitempty" yaml:"payment_period"`
}

// BuildGoal validates a goal edit and computes its horizon, return phases and
// initial required payment. A missing ID is filled with a new UUID.
// Every edit goes through here, so a changed target date always produces a
// fresh phase schedule.
func BuildGoal(in GoalInput, now time.Time, profile RiskProfile) (models.Goal, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Goal{}, ErrMissingName
	}
	if in.Amount <= 0 {
		return models.Goal{}, fmt.Errorf("goal %q: %w", name, ErrInvalidAmount)
	}
	if !in.PaymentFrequency.Valid() {
		return models.Goal{}, fmt.Errorf("goal %q: %w: %q", name, ErrInvalidFrequency, in.PaymentFrequency)
	}

	horizon := MonthsBetween(now, in.TargetDate)
	if !in.TargetDate.After(now) || horizon < 1 {
		return models.Goal{}, fmt.Errorf("goal %q: %w", name, ErrInvalidHorizon)
	}

	phases := PhasesForHorizon(horizon, profile)
	pmt, err := RequiredPayment(in.Amount, phases, horizon, in.PaymentFrequency, in.PaymentPeriod)
	if err != nil {
		return models.Goal{}, fmt.Errorf("goal %q: %w", name, err)
	}

	id := in.ID
	if id == "" {
		id = uuid.New().String()
	}

	return models.Goal{
		ID:               id,
		Name:             name,
		Category:         in.Category,
		Amount:           in.Amount,
		TargetDate:       in.TargetDate,
		HorizonMonths:    horizon,
		ReturnPhases:     phases,
		PaymentFrequency: in.PaymentFrequency,
		PaymentPeriod:    in.PaymentPeriod,
		RequiredPayment:  roundMoney(pmt),
	}, nil
}

// ValidateGoal checks a goal record before it is handed to the engine.
func ValidateGoal(g models.Goal) error {
	if g.Amount < 0 {
		return fmt.Errorf("goal %q: %w", g.ID, ErrInvalidAmount)
	}
	if !g.PaymentFrequency.Valid() {
		return fmt.Errorf("goal %q: %w: %q", g.ID, ErrInvalidFrequency, g.PaymentFrequency)
	}
	if got := PhaseMonths(g.ReturnPhases); got != g.HorizonMonths {
		return fmt.Errorf("goal %q: %w: phases cover %d of %d months", g.ID, ErrPhaseMismatch, got, g.HorizonMonths)
	}
	return nil
}
