package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/fundplan/internal/calculator"
	"github.com/mmynk/fundplan/internal/metrics"
	"github.com/mmynk/fundplan/internal/middleware"
	"github.com/mmynk/fundplan/internal/models"
	"github.com/mmynk/fundplan/internal/storage"
)

// PlannerService implements the Connect PlannerService
type PlannerService struct {
	store   storage.Store
	metrics *metrics.Metrics
	risk    calculator.RiskProfile
	now     func() time.Time
}

// Option configures a PlannerService.
type Option func(*PlannerService)

// WithStore enables plan memoization in the given store.
func WithStore(store storage.Store) Option {
	return func(s *PlannerService) { s.store = store }
}

// WithMetrics records engine runs in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *PlannerService) { s.metrics = m }
}

// WithRiskProfile sets the default risk profile for BuildGoal.
func WithRiskProfile(p calculator.RiskProfile) Option {
	return func(s *PlannerService) { s.risk = p }
}

// WithClock overrides the clock used when a request carries no "now".
func WithClock(now func() time.Time) Option {
	return func(s *PlannerService) { s.now = now }
}

// NewPlannerService creates a new PlannerService. Without WithStore every
// Allocate call recomputes.
func NewPlannerService(opts ...Option) *PlannerService {
	s := &PlannerService{
		risk: calculator.DefaultRiskProfile,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *PlannerService) clock(now time.Time) time.Time {
	if now.IsZero() {
		return s.now()
	}
	return now
}

// BuildGoal validates a goal edit and returns the engine-ready goal.
func (s *PlannerService) BuildGoal(ctx context.Context, req *connect.Request[BuildGoalRequest]) (*connect.Response[BuildGoalResponse], error) {
	slog.Info("BuildGoal request received",
		"name", req.Msg.Goal.Name,
		"amount", req.Msg.Goal.Amount,
		"target_date", req.Msg.Goal.TargetDate,
		"request_id", middleware.GetRequestID(ctx),
	)

	risk := s.risk
	if req.Msg.Risk != nil {
		risk = *req.Msg.Risk
	}

	goal, err := calculator.BuildGoal(req.Msg.Goal, s.clock(req.Msg.Now), risk)
	if err != nil {
		slog.Error("BuildGoal failed", "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	slog.Debug("Goal built",
		"goal_id", goal.ID,
		"horizon_months", goal.HorizonMonths,
		"phases", len(goal.ReturnPhases),
		"required_payment", goal.RequiredPayment,
	)

	return connect.NewResponse(&BuildGoalResponse{Goal: goal}), nil
}

// RequiredPayment computes the monthly payment for a target and phase schedule.
func (s *PlannerService) RequiredPayment(ctx context.Context, req *connect.Request[RequiredPaymentRequest]) (*connect.Response[RequiredPaymentResponse], error) {
	pmt, err := calculator.RequiredPayment(
		req.Msg.Amount,
		req.Msg.ReturnPhases,
		req.Msg.HorizonMonths,
		req.Msg.PaymentFrequency,
		req.Msg.PaymentPeriod,
	)
	if err != nil {
		slog.Error("RequiredPayment failed", "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	return connect.NewResponse(&RequiredPaymentResponse{Payment: pmt}), nil
}

// ApplySavings spreads a lump sum across goals by priority.
func (s *PlannerService) ApplySavings(ctx context.Context, req *connect.Request[ApplySavingsRequest]) (*connect.Response[ApplySavingsResponse], error) {
	if req.Msg.LumpSum < 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("lump sum cannot be negative"))
	}

	res := calculator.ApplySavings(req.Msg.Goals, req.Msg.LumpSum)
	slog.Info("Savings applied",
		"goals", len(res.Goals),
		"total_allocated", res.TotalAllocated,
		"leftover", res.Leftover,
	)

	return connect.NewResponse(&ApplySavingsResponse{Result: res}), nil
}

// Allocate runs the sequential allocation engine, memoizing results when a
// store is configured.
func (s *PlannerService) Allocate(ctx context.Context, req *connect.Request[AllocateRequest]) (*connect.Response[AllocateResponse], error) {
	style, err := models.ParseFundingStyle(req.Msg.Style)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	if req.Msg.Budget < 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("budget cannot be negative"))
	}
	if req.Msg.LumpSum < 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("lump sum cannot be negative"))
	}
	for _, g := range req.Msg.Goals {
		if err := calculator.ValidateGoal(g); err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
	}

	now := s.clock(req.Msg.Now)
	slog.Info("Allocate request received",
		"goals", len(req.Msg.Goals),
		"budget", req.Msg.Budget,
		"style", style,
		"lump_sum", req.Msg.LumpSum,
		"request_id", middleware.GetRequestID(ctx),
	)

	key, err := planKey(req.Msg, style, now)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if rec := s.lookup(ctx, key); rec != nil {
		warnBudgetExceeded(req.Msg.Budget, rec.Allocation)
		return connect.NewResponse(&AllocateResponse{
			Allocation: rec.Allocation,
			Savings:    rec.Savings,
			Style:      style,
			Cached:     true,
		}), nil
	}

	goals := req.Msg.Goals
	var savings *models.SavingsResult
	leftover := 0.0
	if req.Msg.LumpSum > 0 {
		res := calculator.ApplySavings(goals, req.Msg.LumpSum)
		savings = &res
		goals = res.Goals
		leftover = res.Leftover
	}

	allocation := calculator.Allocate(calculator.AllocationRequest{
		Goals:           goals,
		Budget:          req.Msg.Budget,
		Style:           style,
		LeftoverSavings: leftover,
		Now:             now,
	})
	s.metrics.ObserveAllocation(style, allocation)

	warnBudgetExceeded(req.Msg.Budget, allocation)
	for _, r := range allocation.Results {
		slog.Debug("Goal result",
			"goal_id", r.Goal.ID,
			"required_pmt", r.RequiredPMT,
			"initial_pmt", r.InitialPMT,
			"final_balance", r.FinalBalance,
			"remaining_gap", r.RemainingGap,
		)
	}

	s.remember(ctx, &models.PlanRecord{
		Key:        key,
		Style:      style,
		Budget:     req.Msg.Budget,
		Savings:    savings,
		Allocation: allocation,
	})

	return connect.NewResponse(&AllocateResponse{
		Allocation: allocation,
		Savings:    savings,
		Style:      style,
	}), nil
}

// warnBudgetExceeded logs the non-fatal shortfall diagnostic of a plan.
func warnBudgetExceeded(budget float64, a models.Allocation) {
	if !a.BudgetExceeded {
		return
	}
	slog.Warn("Budget below total goal demand",
		"budget", budget,
		"demand", a.TotalDemand,
		"shortfall", a.Shortfall,
	)
}

// lookup returns a memoized plan, or nil on a miss or store failure.
func (s *PlannerService) lookup(ctx context.Context, key string) *models.PlanRecord {
	if s.store == nil {
		return nil
	}
	rec, err := s.store.GetPlan(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.Warn("Plan cache lookup failed", "key", key, "error", err)
		}
		s.metrics.ObserveCacheLookup(false)
		return nil
	}
	s.metrics.ObserveCacheLookup(true)
	slog.Debug("Plan cache hit", "key", key, "plan_id", rec.ID)
	return rec
}

// remember stores a plan. Failures only cost a recomputation later.
func (s *PlannerService) remember(ctx context.Context, rec *models.PlanRecord) {
	if s.store == nil {
		return
	}
	if err := s.store.SavePlan(ctx, rec); err != nil {
		slog.Warn("Plan cache save failed", "key", rec.Key, "error", err)
	}
}

// planKey fingerprints everything that can change an engine run. The engine
// only reads the calendar year and month of now, in now's own location, so
// that is all the key keeps of the clock.
func planKey(req *AllocateRequest, style models.FundingStyle, now time.Time) (string, error) {
	year, month, _ := now.Date()
	data, err := json.Marshal(struct {
		Goals   []models.Goal       `json:"goals"`
		Budget  float64             `json:"budget"`
		Style   models.FundingStyle `json:"style"`
		LumpSum float64             `json:"lump_sum"`
		Month   string              `json:"month"`
	}{
		Goals:   req.Goals,
		Budget:  req.Budget,
		Style:   style,
		LumpSum: req.LumpSum,
		Month:   fmt.Sprintf("%04d-%02d", year, int(month)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to fingerprint plan: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
