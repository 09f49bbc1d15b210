// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatMoney formats an amount with two decimals and comma separators.
// e.g., 1234567.891 -> "$1,234,567.89", -12.5 -> "-$12.50"
func FormatMoney(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	fixed := d.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	return sign + "$" + groupThousands(whole) + "." + frac
}

// FormatRate formats an annual rate such as 0.06 as "6.0%".
func FormatRate(r float64) string {
	return fmt.Sprintf("%.1f%%", r*100)
}

// FormatMonths formats a month count as years and months.
// e.g., 30 -> "2y 6m", 12 -> "1y", 5 -> "5m"
func FormatMonths(n int) string {
	if n <= 0 {
		return "0m"
	}
	years, months := n/12, n%12
	switch {
	case years == 0:
		return fmt.Sprintf("%dm", months)
	case months == 0:
		return fmt.Sprintf("%dy", years)
	default:
		return fmt.Sprintf("%dy %dm", years, months)
	}
}

// FormatMonth formats a date as "Jan 2026".
func FormatMonth(t time.Time) string {
	return t.Format("Jan 2006")
}

// groupThousands adds comma separators to a string of digits.
func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}
