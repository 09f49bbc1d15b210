package models

import "time"

// EmergencyFundID is the reserved ID of the emergency-fund goal.
// It is funded ahead of every other goal by the savings allocator and
// forms its own bucket under the hybrid funding style.
const EmergencyFundID = "emergency-fund"

// PaymentFrequency describes how a goal's cost is paid out after its target date.
type PaymentFrequency string

const (
	// FrequencyOnce means the goal is a lump sum due at the target date.
	FrequencyOnce      PaymentFrequency = "once"
	FrequencyMonthly   PaymentFrequency = "monthly"
	FrequencyQuarterly PaymentFrequency = "quarterly"
	FrequencyBiannual  PaymentFrequency = "biannual"
	FrequencyAnnual    PaymentFrequency = "annual"
)

// PaymentsPerYear returns how many payouts a frequency makes per year.
// Returns 0 for "once" and unknown frequencies.
func (f PaymentFrequency) PaymentsPerYear() int {
	switch f {
	case FrequencyMonthly:
		return 12
	case FrequencyQuarterly:
		return 4
	case FrequencyBiannual:
		return 2
	case FrequencyAnnual:
		return 1
	default:
		return 0
	}
}

// Valid reports whether f is empty or a known frequency.
func (f PaymentFrequency) Valid() bool {
	return f == "" || f == FrequencyOnce || f.PaymentsPerYear() > 0
}

// IsLumpSum reports whether the goal is funded as a single amount at the target date.
func (f PaymentFrequency) IsLumpSum() bool {
	return f == "" || f == FrequencyOnce
}

// ReturnPhase is a contiguous span of months during which a goal's balance
// compounds at one fixed annual rate.
type ReturnPhase struct {
	// Months is the length of the phase.
	Months int `json:"months" yaml:"months"`

	// AnnualRate is the expected annual return, e.g. 0.06 for 6%.
	AnnualRate float64 `json:"annual_rate" yaml:"annual_rate"`
}

// Goal represents a financial goal to be funded from a recurring budget.
type Goal struct {
	// ID is the unique identifier for the goal (UUID format, or EmergencyFundID).
	ID string `json:"id"`

	// Name is the display name (e.g., "House deposit").
	Name string `json:"name"`

	// Category is a free-form grouping such as "housing" or "education".
	Category string `json:"category,omitempty"`

	// Amount is the target amount to have saved by TargetDate.
	Amount float64 `json:"amount"`

	// TargetDate is when the money is needed.
	TargetDate time.Time `json:"target_date"`

	// HorizonMonths is the number of months from creation to TargetDate.
	// The phase lengths in ReturnPhases always sum to this value.
	HorizonMonths int `json:"horizon_months"`

	// ReturnPhases is the ordered schedule of expected returns.
	ReturnPhases []ReturnPhase `json:"return_phases"`

	// PaymentFrequency and PaymentPeriod (years) describe goals whose cost is
	// paid out over time after the target date, e.g. tuition.
	PaymentFrequency PaymentFrequency `json:"payment_frequency,omitempty"`
	PaymentPeriod    int              `json:"payment_period,omitempty"`

	// InitialAmount and RemainingAmount are set by the savings allocator.
	// When RemainingAmount is set the engine funds it instead of Amount.
	InitialAmount   *float64 `json:"initial_amount,omitempty"`
	RemainingAmount *float64 `json:"remaining_amount,omitempty"`

	// RequiredPayment is the theoretical monthly payment computed at creation.
	RequiredPayment float64 `json:"required_payment"`
}

// FundingTarget returns the amount the engine still has to fund.
func (g Goal) FundingTarget() float64 {
	if g.RemainingAmount != nil {
		return *g.RemainingAmount
	}
	return g.Amount
}

// SavingsApplied reports whether the savings allocator has processed this goal.
func (g Goal) SavingsApplied() bool {
	return g.RemainingAmount != nil
}
