package service

import (
	"time"

	"github.com/mmynk/fundplan/internal/calculator"
	"github.com/mmynk/fundplan/internal/models"
)

// BuildGoalRequest carries one goal edit from the goal-editing surface.
type BuildGoalRequest struct {
	Goal calculator.GoalInput `json:"goal"`

	// Risk overrides the server's configured risk profile.
	Risk *calculator.RiskProfile `json:"risk,omitempty"`

	// Now anchors the horizon; zero means the server clock.
	Now time.Time `json:"now,omitempty"`
}

type BuildGoalResponse struct {
	Goal models.Goal `json:"goal"`
}

type RequiredPaymentRequest struct {
	Amount           float64                 `json:"amount"`
	ReturnPhases     []models.ReturnPhase    `json:"return_phases"`
	HorizonMonths    int                     `json:"horizon_months"`
	PaymentFrequency models.PaymentFrequency `json:"payment_frequency,omitempty"`
	PaymentPeriod    int                     `json:"payment_period,omitempty"`
}

type RequiredPaymentResponse struct {
	Payment float64 `json:"payment"`
}

type ApplySavingsRequest struct {
	Goals   []models.Goal `json:"goals"`
	LumpSum float64       `json:"lump_sum"`
}

type ApplySavingsResponse struct {
	Result models.SavingsResult `json:"result"`
}

// AllocateRequest describes one plan: goals, monthly budget and funding style.
// When LumpSum is positive it is applied with ApplySavings before simulating,
// and any leftover seeds the opening balances.
type AllocateRequest struct {
	Goals   []models.Goal `json:"goals"`
	Budget  float64       `json:"budget"`
	Style   string        `json:"style,omitempty"`
	LumpSum float64       `json:"lump_sum,omitempty"`
	Now     time.Time     `json:"now,omitempty"`
}

type AllocateResponse struct {
	Allocation models.Allocation     `json:"allocation"`
	Savings    *models.SavingsResult `json:"savings,omitempty"`
	Style      models.FundingStyle   `json:"style"`

	// Cached is set when the result came from the plan cache.
	Cached bool `json:"cached"`
}
