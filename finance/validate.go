/*
validate.go - Shared validation rules for the finance services

PURPOSE:
  Pure, stateless predicates used by every entity service before any
  store access. Goals and budgets need the same three checks, so they
  live here once, parameterized by a display field name that becomes
  part of the user-facing message ("Target amount must be greater
  than 0", "Owner ID is required", ...).

PRECISION:
  Money is decimal.Decimal end to end. The 2-decimal-place rule is a
  round-trip check (value == value.Round(2)) on the decimal value, not
  a string heuristic: "1.100" passes, "1.005" fails, and no
  binary-floating-point artifact can trip it.

SEE ALSO:
  - errors.go: ValidationError produced here
  - goals/service.go, budgets/service.go: Callers
*/
package finance

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// identifierPattern is the canonical identifier shape: UUIDs, slugs,
// and external principal IDs all fit.
var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateIdentifier checks that value is a non-empty, well-formed
// identifier. Missing and malformed values produce distinct messages
// but the same error kind.
func ValidateIdentifier(field, value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return &ValidationError{Field: field, Message: field + " is required"}
	}
	if !identifierPattern.MatchString(trimmed) {
		return &ValidationError{Field: field, Message: field + " is not a valid identifier"}
	}
	return nil
}

// ValidateName checks that value has at least 2 characters after
// trimming surrounding whitespace.
func ValidateName(field, value string) error {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) < 2 {
		return &ValidationError{Field: field, Message: field + " must be at least 2 characters"}
	}
	return nil
}

// ValidateAmount checks a money amount: strictly positive (or
// non-negative when allowZero) with at most 2 fractional digits.
func ValidateAmount(field string, value decimal.Decimal, allowZero bool) error {
	if allowZero {
		if value.IsNegative() {
			return &ValidationError{Field: field, Message: field + " cannot be negative"}
		}
	} else if !value.IsPositive() {
		return &ValidationError{Field: field, Message: field + " must be greater than 0"}
	}
	if !value.Equal(value.Round(2)) {
		return &ValidationError{Field: field, Message: field + " cannot have more than 2 decimal places"}
	}
	return nil
}
