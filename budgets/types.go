/*
Package budgets implements envelope-style spending budgets.

Sibling of the goals package: same shared validation rules and error
taxonomy (finance), same versioned-write store contract, different
semantics. A budget tracks spending against a limit; overspending is
allowed and flagged, not rejected, because spending already happened
by the time it is recorded.

SEE ALSO:
  - goals: The bounded-accumulation sibling
  - finance: Shared rules both services consume
*/
package budgets

import (
	"time"

	"github.com/shopspring/decimal"
)

type BudgetID string
type OwnerID string

// Budget tracks accumulated spending against a fixed limit for one
// category. SpentAmount is monotonically non-decreasing; unlike a
// goal's current amount, it may exceed the limit.
type Budget struct {
	ID          BudgetID        `json:"id" db:"id"`
	OwnerID     OwnerID         `json:"owner_id" db:"owner_id"`
	Category    string          `json:"category" db:"category"`
	LimitAmount decimal.Decimal `json:"limit_amount" db:"limit_amount"`
	SpentAmount decimal.Decimal `json:"spent_amount" db:"spent_amount"`
	Version     int64           `json:"-" db:"version"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// Remaining returns limit minus spent. Negative when overspent.
func (b *Budget) Remaining() decimal.Decimal {
	return b.LimitAmount.Sub(b.SpentAmount)
}

// IsExceeded reports whether spending has passed the limit.
func (b *Budget) IsExceeded() bool {
	return b.SpentAmount.GreaterThan(b.LimitAmount)
}
