package calculator

import (
	"math"
	"sort"

	"github.com/mmynk/fundplan/internal/models"
)

// ApplySavings spreads a one-time lump sum across goals by fixed priority.
//
// The emergency fund is served first, then the remaining goals by ascending
// target date. Each goal takes as much of the pool as it needs until the pool
// runs dry. The returned goals are copies in input order; the input is not modified.
func ApplySavings(goals []models.Goal, lumpSum float64) models.SavingsResult {
	out := make([]models.Goal, len(goals))
	copy(out, goals)

	order := make([]int, len(goals))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ga, gb := goals[order[a]], goals[order[b]]
		aEF, bEF := ga.ID == models.EmergencyFundID, gb.ID == models.EmergencyFundID
		if aEF != bEF {
			return aEF
		}
		return ga.TargetDate.Before(gb.TargetDate)
	})

	pool := roundMoney(math.Max(lumpSum, 0))
	total := 0.0
	for _, i := range order {
		amount := math.Max(out[i].Amount, 0)
		initial := roundMoney(math.Min(pool, amount))
		remaining := roundMoney(amount - initial)

		out[i].InitialAmount = &initial
		out[i].RemainingAmount = &remaining

		pool = roundMoney(pool - initial)
		total = roundMoney(total + initial)
	}

	return models.SavingsResult{
		Goals:          out,
		Leftover:       pool,
		TotalAllocated: total,
	}
}
