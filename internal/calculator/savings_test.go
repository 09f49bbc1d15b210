package calculator

import (
	"math"
	"testing"
	"time"

	"github.com/mmynk/fundplan/internal/models"
)

var testNow = time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)

func monthsOut(n int) time.Time {
	return testNow.AddDate(0, n, 0)
}

func TestApplySavings_EmergencyFundFirst(t *testing.T) {
	goals := []models.Goal{
		{ID: models.EmergencyFundID, Amount: 10000, TargetDate: monthsOut(6)},
		{ID: "g2", Amount: 5000, TargetDate: monthsOut(3)},
	}

	res := ApplySavings(goals, 12000)

	if got := *res.Goals[0].InitialAmount; got != 10000 {
		t.Errorf("emergency-fund initial = %v, want 10000", got)
	}
	if got := *res.Goals[1].InitialAmount; got != 2000 {
		t.Errorf("g2 initial = %v, want 2000", got)
	}
	if got := *res.Goals[1].RemainingAmount; got != 3000 {
		t.Errorf("g2 remaining = %v, want 3000", got)
	}
	if res.Leftover != 0 {
		t.Errorf("leftover = %v, want 0", res.Leftover)
	}
	if res.TotalAllocated != 12000 {
		t.Errorf("total allocated = %v, want 12000", res.TotalAllocated)
	}
}

func TestApplySavings_OrdersByTargetDate(t *testing.T) {
	goals := []models.Goal{
		{ID: "late", Amount: 4000, TargetDate: monthsOut(24)},
		{ID: "soon", Amount: 3000, TargetDate: monthsOut(4)},
		{ID: "middle", Amount: 2000, TargetDate: monthsOut(10)},
	}

	res := ApplySavings(goals, 4000)

	want := map[string]float64{"soon": 3000, "middle": 1000, "late": 0}
	for i, g := range res.Goals {
		if g.ID != goals[i].ID {
			t.Fatalf("goal %d = %s, want input order %s", i, g.ID, goals[i].ID)
		}
		if got := *g.InitialAmount; got != want[g.ID] {
			t.Errorf("%s initial = %v, want %v", g.ID, got, want[g.ID])
		}
		if got := *g.InitialAmount + *g.RemainingAmount; got != g.Amount {
			t.Errorf("%s initial + remaining = %v, want %v", g.ID, got, g.Amount)
		}
	}
	if goals[0].InitialAmount != nil {
		t.Error("input goals must not be modified")
	}
}

func TestApplySavings_Conservation(t *testing.T) {
	goals := []models.Goal{
		{ID: "a", Amount: 1500.50, TargetDate: monthsOut(5)},
		{ID: models.EmergencyFundID, Amount: 6000, TargetDate: monthsOut(12)},
		{ID: "b", Amount: 250.25, TargetDate: monthsOut(2)},
	}
	totalAmount := 1500.50 + 6000 + 250.25

	for _, lump := range []float64{0, 100, 6000, 7000.75, totalAmount, 20000} {
		res := ApplySavings(goals, lump)

		if len(res.Goals) != len(goals) {
			t.Fatalf("lump %v: got %d goals, want %d", lump, len(res.Goals), len(goals))
		}
		sum := 0.0
		for _, g := range res.Goals {
			sum += *g.InitialAmount
		}
		if want := math.Min(lump, totalAmount); math.Abs(sum-want) > 0.005 {
			t.Errorf("lump %v: Σ initial = %v, want %v", lump, sum, want)
		}
		if math.Abs(res.Leftover-(lump-res.TotalAllocated)) > 0.005 {
			t.Errorf("lump %v: leftover = %v, want %v", lump, res.Leftover, lump-res.TotalAllocated)
		}
		if res.Leftover < 0 {
			t.Errorf("lump %v: leftover = %v, want >= 0", lump, res.Leftover)
		}
	}
}

func TestApplySavings_EmptyGoals(t *testing.T) {
	res := ApplySavings(nil, 500)
	if len(res.Goals) != 0 {
		t.Errorf("got %d goals, want 0", len(res.Goals))
	}
	if res.Leftover != 500 {
		t.Errorf("leftover = %v, want 500", res.Leftover)
	}
}
