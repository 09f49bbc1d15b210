// Package models defines the core domain models for fundplan.
//
// # Models
//
//   - Goal: a financial goal (target amount, target date, return phases)
//   - ReturnPhase: a span of months compounding at one annual rate
//   - GoalResult: one goal's simulated funding outcome
//   - Allocation: the full engine output, including non-fatal diagnostics
//   - SavingsResult: the outcome of applying a lump sum across goals
//
// # Design Principles
//
// 1. **Read-only inputs**: the engine never mutates a Goal it is given
// 2. **Ephemeral outputs**: results are derived and recomputed on any input change
// 3. **No circular references**: results embed a copy of their goal, not a pointer
// 4. **Money as float64**: rounding to cents happens at assignment time in the calculator
package models
