package calculator

import (
	"errors"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidHorizon   = errors.New("target date must be at least one month in the future")
	ErrInvalidAmount    = errors.New("amount must be greater than zero")
	ErrInvalidFrequency = errors.New("unknown payment frequency")
	ErrPhaseMismatch    = errors.New("return phases do not cover the goal horizon")
	ErrMissingName      = errors.New("goal name is required")
)

// cent is the smallest amount the engine moves between goals.
const cent = 0.01

// roundMoney rounds to two decimal places (half away from zero).
func roundMoney(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// MonthsBetween returns the number of calendar months from one date to another,
// computed on (year, month) pairs only. The day of month is ignored, so
// Jan 31 -> Feb 1 is one month and Jan 1 -> Jan 31 is zero.
func MonthsBetween(from, to time.Time) int {
	fy, fm, _ := from.Date()
	ty, tm, _ := to.Date()
	return (ty-fy)*12 + int(tm) - int(fm)
}

// MonthStart returns the first day of the month that is n months after t.
func MonthStart(t time.Time, n int) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
}
