package goals

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// CalculateProgress maps (current, target) to a percentage in [0,100],
// rounded to 2 decimal places using decimal.Round (half away from zero).
//
// A zero target returns 0. Creation-time validation prevents zero
// targets in practice; this is a defensive case only.
//
// The calculator does not clamp: it trusts the caller to uphold
// current <= target.
func CalculateProgress(current, target decimal.Decimal) decimal.Decimal {
	if target.IsZero() {
		return decimal.Zero
	}
	return current.Div(target).Mul(hundred).Round(2)
}
