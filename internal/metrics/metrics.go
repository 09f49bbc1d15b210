// Package metrics exposes Prometheus collectors for the planner.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/fundplan/internal/models"
)

const namespace = "fundplan"

// Metrics holds the planner's collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	allocations     *prometheus.CounterVec
	budgetExceeded  prometheus.Counter
	simulatedMonths prometheus.Histogram
	cacheLookups    *prometheus.CounterVec
	rpcs            *prometheus.CounterVec
	rpcDuration     *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		allocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "allocations_total",
			Help:      "Engine runs by funding style.",
		}, []string{"style"}),
		budgetExceeded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "budget_exceeded_total",
			Help:      "Engine runs where total goal demand was above the budget.",
		}),
		simulatedMonths: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "simulated_months",
			Help:      "Simulation horizon of engine runs, in months.",
			Buckets:   []float64{6, 12, 24, 60, 120, 240, 480},
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plan_cache_lookups_total",
			Help:      "Plan cache lookups by result.",
		}, []string{"result"}),
		rpcs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC requests by procedure and status code.",
		}, []string{"procedure", "code"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
	}

	reg.MustRegister(
		m.allocations,
		m.budgetExceeded,
		m.simulatedMonths,
		m.cacheLookups,
		m.rpcs,
		m.rpcDuration,
	)
	return m
}

// ObserveAllocation records one engine run.
func (m *Metrics) ObserveAllocation(style models.FundingStyle, a models.Allocation) {
	if m == nil {
		return
	}
	m.allocations.WithLabelValues(string(style)).Inc()
	m.simulatedMonths.Observe(float64(a.HorizonMonths))
	if a.BudgetExceeded {
		m.budgetExceeded.Inc()
	}
}

// ObserveCacheLookup records a plan cache hit or miss.
func (m *Metrics) ObserveCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// ObserveRPC records one finished RPC.
func (m *Metrics) ObserveRPC(procedure, code string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.rpcs.WithLabelValues(procedure, code).Inc()
	m.rpcDuration.WithLabelValues(procedure).Observe(elapsed.Seconds())
}
