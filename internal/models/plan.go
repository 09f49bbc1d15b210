package models

import (
	"errors"
	"fmt"
)

// ErrInvalidStyle is returned for a funding style name that is not recognized.
var ErrInvalidStyle = errors.New("unknown funding style")

// FundingStyle selects which goals receive budget in a given month.
type FundingStyle string

const (
	// StyleWaterfall funds only the goal with the nearest target date.
	StyleWaterfall FundingStyle = "waterfall"

	// StyleParallel funds every unfinished goal at once.
	StyleParallel FundingStyle = "parallel"

	// StyleHybrid funds goals bucket by bucket: emergency fund, then
	// short-term (1-60 months), then long-term goals.
	StyleHybrid FundingStyle = "hybrid"
)

// ParseFundingStyle converts a string into a FundingStyle.
// An empty string selects the hybrid style.
func ParseFundingStyle(s string) (FundingStyle, error) {
	switch FundingStyle(s) {
	case StyleWaterfall, StyleParallel, StyleHybrid:
		return FundingStyle(s), nil
	case "":
		return StyleHybrid, nil
	default:
		return "", fmt.Errorf("%w %q", ErrInvalidStyle, s)
	}
}

// GoalResult is one goal's simulated funding outcome.
// It is derived data: recomputed whenever a goal, the budget or the style changes.
type GoalResult struct {
	Goal Goal `json:"goal"`

	// RequiredPMT is the mean of the goal's non-zero monthly allocations.
	RequiredPMT float64 `json:"required_pmt"`

	// FinalBalance is the simulated balance at the goal's target date: the
	// balance after its last funded month, grown for one more month.
	FinalBalance float64 `json:"final_balance"`

	// RemainingGap is what is still missing at the target month (never negative).
	RemainingGap float64 `json:"remaining_gap"`

	// Allocations holds the monthly contribution, one entry per simulated month.
	Allocations []float64 `json:"allocations"`

	// InitialPMT is the theoretical payment used to weight and cap the first pass.
	InitialPMT float64 `json:"initial_pmt"`

	// Balances holds the running balance, one entry per simulated month.
	Balances []float64 `json:"balances"`
}

// Allocation is the full output of one engine run.
type Allocation struct {
	Results []GoalResult `json:"results"`

	// HorizonMonths is the number of simulated months.
	HorizonMonths int `json:"horizon_months"`

	// TotalDemand is the sum of all goals' initial PMTs.
	TotalDemand float64 `json:"total_demand"`

	// BudgetExceeded is set when TotalDemand is above the budget.
	// The simulation still runs and reports partial funding.
	BudgetExceeded bool    `json:"budget_exceeded"`
	Shortfall      float64 `json:"shortfall,omitempty"`
}

// SavingsResult is the outcome of spreading a lump sum across goals.
type SavingsResult struct {
	// Goals are copies of the input goals, in input order, with
	// InitialAmount and RemainingAmount populated.
	Goals          []Goal  `json:"goals"`
	Leftover       float64 `json:"leftover"`
	TotalAllocated float64 `json:"total_allocated"`
}

// PlanRecord is a memoized engine run, keyed by a fingerprint of its request.
// It is disposable: dropping every record only costs recomputation.
type PlanRecord struct {
	// Key is the request fingerprint (hex SHA-256).
	Key string

	// ID is the unique identifier for the record (UUID format).
	ID string

	Style  FundingStyle
	Budget float64

	// Savings is set when a lump sum was applied before the simulation.
	Savings    *SavingsResult
	Allocation Allocation

	// CreatedAt is the Unix timestamp when the record was stored.
	CreatedAt int64
}
