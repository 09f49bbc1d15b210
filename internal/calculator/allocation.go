package calculator

import (
	"math"
	"time"

	"github.com/mmynk/fundplan/internal/models"
)

// Hybrid buckets, in funding priority order.
const (
	bucketNone = iota - 1
	bucketEmergency
	bucketShortTerm
	bucketLongTerm
)

// shortTermMonths is the last month count that still belongs to the short-term bucket.
const shortTermMonths = 60

// AllocationRequest is the input of one engine run.
type AllocationRequest struct {
	Goals  []models.Goal
	Budget float64
	Style  models.FundingStyle

	// LeftoverSavings seeds the opening balances before month 0.
	// It never counts against the monthly budget.
	LeftoverSavings float64

	// Now anchors month 0. Zero means time.Now().
	Now time.Time
}

// goalState is the per-goal working state of a simulation.
type goalState struct {
	goal       models.Goal
	target     float64
	horizon    int
	initialPMT float64
	bucket     int

	opening float64
	balance float64
	done    bool

	allocations []float64
	balances    []float64
}

func (s *goalState) gap() float64 {
	if s.done {
		return 0
	}
	return math.Max(s.target-s.balance, 0)
}

// settle marks the goal complete once its balance covers the target.
func (s *goalState) settle() {
	if s.balance >= s.target-cent/2 {
		s.done = true
	}
}

// Allocate simulates, month by month, how a fixed budget is split across goals.
//
// Each month it selects the active goals for the funding style, runs a capped
// pass weighted by each goal's initial PMT, compounds every balance, refunds
// what completed goals did not need, and hands the remaining pool to unfinished
// goals in proportion to their gaps. Allocations are rounded to cents as they
// are assigned.
//
// Allocate is pure: it does not modify req.Goals and keeps no state between calls.
func Allocate(req AllocationRequest) models.Allocation {
	if len(req.Goals) == 0 || req.Budget <= 0 {
		return models.Allocation{}
	}
	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}

	states := make([]*goalState, len(req.Goals))
	horizon := 0
	demand := 0.0
	for i, g := range req.Goals {
		st := newGoalState(g, now)
		states[i] = st
		if st.horizon > horizon {
			horizon = st.horizon
		}
		demand += st.initialPMT
	}
	demand = roundMoney(demand)

	if req.LeftoverSavings > 0 {
		seedLeftover(states, req.LeftoverSavings)
	}

	for _, st := range states {
		st.opening = st.balance
		st.allocations = make([]float64, horizon)
		st.balances = make([]float64, horizon)
	}

	style := req.Style
	if style == "" {
		style = models.StyleHybrid
	}
	sim := &simulation{
		states: states,
		budget: roundMoney(req.Budget),
		style:  style,
	}
	for t := 0; t < horizon; t++ {
		sim.step(t)
	}

	out := models.Allocation{
		Results:       make([]models.GoalResult, len(states)),
		HorizonMonths: horizon,
		TotalDemand:   demand,
	}
	if demand > req.Budget {
		out.BudgetExceeded = true
		out.Shortfall = roundMoney(demand - req.Budget)
	}
	for i, st := range states {
		out.Results[i] = st.result()
	}
	return out
}

func newGoalState(g models.Goal, now time.Time) *goalState {
	st := &goalState{
		goal:    g,
		target:  math.Max(g.FundingTarget(), 0),
		horizon: MonthsBetween(now, g.TargetDate),
	}
	st.initialPMT = initialPayment(g, st.target, st.horizon)

	switch {
	case g.ID == models.EmergencyFundID:
		st.bucket = bucketEmergency
	case st.horizon >= 1 && st.horizon <= shortTermMonths:
		st.bucket = bucketShortTerm
	case st.horizon > shortTermMonths:
		st.bucket = bucketLongTerm
	default:
		st.bucket = bucketNone
	}

	if st.target <= 0 {
		st.done = true
	}
	return st
}

// initialPayment returns the theoretical monthly payment used as the
// first-pass weight and cap. The goal's own RequiredPayment is trusted unless
// savings changed its funding target.
func initialPayment(g models.Goal, target float64, horizon int) float64 {
	if target <= 0 {
		return 0
	}
	if horizon <= 0 {
		return roundMoney(target)
	}
	if g.RequiredPayment > 0 && !g.SavingsApplied() {
		return g.RequiredPayment
	}
	pmt, err := RequiredPayment(target, g.ReturnPhases, horizon, g.PaymentFrequency, g.PaymentPeriod)
	if err != nil {
		return roundMoney(target / float64(horizon))
	}
	return roundMoney(pmt)
}

func seedLeftover(states []*goalState, leftover float64) {
	gaps := make([]float64, len(states))
	for i, st := range states {
		gaps[i] = st.gap()
	}
	shares, _ := RedistributeLeftover(gaps, leftover)
	for i, st := range states {
		st.balance += shares[i]
		st.settle()
	}
}

type simulation struct {
	states []*goalState
	budget float64
	style  models.FundingStyle
}

// step runs one simulated month.
func (s *simulation) step(t int) {
	pool := s.budget
	month := make([]float64, len(s.states))

	// First pass: PMT-weighted shares, capped at each goal's initial PMT.
	active := s.active(t)
	weight := 0.0
	for _, i := range active {
		weight += s.states[i].initialPMT
	}
	if weight > 0 {
		for _, i := range active {
			st := s.states[i]
			amt := roundMoney(math.Min(s.budget*st.initialPMT/weight, st.initialPMT))
			amt = math.Max(math.Min(amt, pool), 0)
			month[i] = amt
			pool = roundMoney(pool - amt)
		}
	}

	// Compound every balance, then book this month's contribution.
	for i, st := range s.states {
		grown := st.balance * (1 + PhaseRateAt(st.goal.ReturnPhases, t)/12)
		amt := month[i]
		if amt > 0 {
			if st.done || grown >= st.target {
				pool = roundMoney(pool + amt)
				amt = 0
			} else if need := roundMoney(st.target - grown); amt > need {
				pool = roundMoney(pool + amt - need)
				amt = need
			}
		}
		st.balance = grown + amt
		month[i] = amt
		st.settle()
	}

	// Second pass: surplus goes to unfinished goals in proportion to their gaps.
	if pool >= cent {
		s.redistribute(month, pool)
	}

	for i, st := range s.states {
		st.allocations[t] = month[i]
		st.balances[t] = roundMoney(st.balance)
	}
}

func (s *simulation) redistribute(month []float64, pool float64) {
	totalGap := 0.0
	for _, st := range s.states {
		totalGap += st.gap()
	}
	if totalGap <= 0 {
		return
	}
	surplus := pool
	for i, st := range s.states {
		gap := st.gap()
		if gap <= 0 {
			continue
		}
		extra := math.Min(roundMoney(surplus*gap/totalGap), pool)
		if extra <= 0 {
			continue
		}
		pool = roundMoney(pool - extra)
		month[i] = roundMoney(month[i] + extra)
		st.balance += extra
	}
	for _, st := range s.states {
		st.settle()
	}
}

// active returns the indexes of the goals funded in month t.
func (s *simulation) active(t int) []int {
	switch s.style {
	case models.StyleWaterfall:
		next := -1
		for i, st := range s.states {
			if st.done || st.horizon-t <= 0 {
				continue
			}
			if next < 0 || st.goal.TargetDate.Before(s.states[next].goal.TargetDate) {
				next = i
			}
		}
		if next < 0 {
			return nil
		}
		return []int{next}

	case models.StyleHybrid:
		for bucket := bucketEmergency; bucket <= bucketLongTerm; bucket++ {
			var members []int
			for i, st := range s.states {
				if st.bucket == bucket && !st.done {
					members = append(members, i)
				}
			}
			if len(members) > 0 {
				return members
			}
		}
		return nil

	default: // parallel
		var members []int
		for i, st := range s.states {
			if !st.done && st.horizon-t >= 0 {
				members = append(members, i)
			}
		}
		return members
	}
}

func (s *goalState) result() models.GoalResult {
	// Contributions are booked at the end of each month, so the target date
	// is one compounding period after the last booked month.
	final := s.opening
	if s.horizon > 0 {
		final = s.balances[s.horizon-1] * (1 + PhaseRateAt(s.goal.ReturnPhases, s.horizon)/12)
	}
	final = roundMoney(final)

	paid, count := 0.0, 0
	for _, a := range s.allocations {
		if a > 0 {
			paid += a
			count++
		}
	}
	required := 0.0
	if count > 0 {
		required = roundMoney(paid / float64(count))
	}

	return models.GoalResult{
		Goal:         s.goal,
		RequiredPMT:  required,
		FinalBalance: final,
		RemainingGap: roundMoney(math.Max(s.target-final, 0)),
		Allocations:  s.allocations,
		InitialPMT:   s.initialPMT,
		Balances:     s.balances,
	}
}
