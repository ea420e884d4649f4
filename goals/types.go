/*
Package goals implements the savings goal ledger.

PURPOSE:
  A Goal tracks monotonic, bounded accumulation toward a fixed target:
  contributions only increase the current amount, the current amount
  never exceeds the target, and progress/completion are derived state
  recomputed on every mutation.

KEY CONCEPTS IN THIS FILE (types.go):
  - Goal: the sole entity, with decimal money fields and a version
    counter used for optimistic concurrency
  - GoalID / OwnerID: type-safe identifiers

DESIGN PRINCIPLES:
  1. Precision: decimal.Decimal everywhere, no floating point
  2. Derived state is never stored inconsistently: Recalculate() is the
     single place progress and completion are computed
  3. Versioned writes: every successful update bumps Version by one,
     and the store rejects writes against a stale version

SEE ALSO:
  - progress.go: Percent calculation
  - service.go: Operations and invariants
  - store.go: Persistence interface
*/
package goals

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type GoalID string
type OwnerID string

// =============================================================================
// GOAL - Named savings target owned by a single user
// =============================================================================

// Goal invariants (hold after every operation):
//  1. 0 <= CurrentAmount <= TargetAmount
//  2. ProgressPercent == CalculateProgress(CurrentAmount, TargetAmount)
//  3. IsComplete == (CurrentAmount == TargetAmount)
//  4. TargetAmount > 0 for the lifetime of the goal
type Goal struct {
	ID              GoalID          `json:"id" db:"id"`
	OwnerID         OwnerID         `json:"owner_id" db:"owner_id"`
	Name            string          `json:"name" db:"name"`
	TargetAmount    decimal.Decimal `json:"target_amount" db:"target_amount"`
	CurrentAmount   decimal.Decimal `json:"current_amount" db:"current_amount"`
	ProgressPercent decimal.Decimal `json:"progress_percent" db:"progress_percent"`
	IsComplete      bool            `json:"is_complete" db:"is_complete"`
	Version         int64           `json:"-" db:"version"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// Recalculate refreshes the derived fields from the amount fields.
// Call after any change to CurrentAmount.
func (g *Goal) Recalculate() {
	g.ProgressPercent = CalculateProgress(g.CurrentAmount, g.TargetAmount)
	g.IsComplete = g.CurrentAmount.Equal(g.TargetAmount)
}

// Remaining returns the amount still needed to reach the target.
func (g *Goal) Remaining() decimal.Decimal {
	return g.TargetAmount.Sub(g.CurrentAmount)
}
