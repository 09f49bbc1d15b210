package calculator

import (
	"fmt"
	"math"

	"github.com/mmynk/fundplan/internal/models"
)

// PhaseRateAt returns the annual rate of the return phase covering the given
// month (0-based). Months past the end of the schedule use the last phase's
// rate, so balances keep compounding after the target date.
func PhaseRateAt(phases []models.ReturnPhase, month int) float64 {
	if len(phases) == 0 {
		return 0
	}
	end := 0
	for _, p := range phases {
		end += p.Months
		if month < end {
			return p.AnnualRate
		}
	}
	return phases[len(phases)-1].AnnualRate
}

// SumF is the future value at the target date of contributing 1 every month.
// Each month's unit compounds to the target at the rate of the phase it was paid in:
//
//	sumF = Σ_{t=0}^{h-1} (1 + rate(t)/12)^(h-t)
func SumF(phases []models.ReturnPhase, horizon int) float64 {
	sum := 0.0
	for t := 0; t < horizon; t++ {
		sum += math.Pow(1+PhaseRateAt(phases, t)/12, float64(horizon-t))
	}
	return sum
}

// RequiredPayment computes the monthly payment needed to reach a goal.
//
// Lump-sum goals (frequency empty or "once") divide the target by SumF.
// Goals paid out over time after the target date (frequency plus a period in
// years) are treated as a present-value annuity at the first phase's rate.
func RequiredPayment(target float64, phases []models.ReturnPhase, horizon int, freq models.PaymentFrequency, periodYears int) (float64, error) {
	if horizon <= 0 {
		return 0, fmt.Errorf("%w: got %d months", ErrInvalidHorizon, horizon)
	}
	if !freq.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFrequency, freq)
	}

	if freq.IsLumpSum() || periodYears <= 0 {
		return target / SumF(phases, horizon), nil
	}

	perYear := float64(freq.PaymentsPerYear())
	totalPayments := float64(periodYears) * perYear
	perPayment := target / totalPayments

	firstRate := 0.0
	if len(phases) > 0 {
		firstRate = phases[0].AnnualRate
	}
	ratePerPeriod := firstRate / perYear
	if ratePerPeriod == 0 {
		// Linear fallback, avoids dividing by a zero pv factor.
		return perPayment / totalPayments, nil
	}

	pvFactor := (1 - math.Pow(1+ratePerPeriod, -totalPayments)) / ratePerPeriod
	return perPayment / pvFactor, nil
}
