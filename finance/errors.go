/*
errors.go - Shared error taxonomy for the finance services

PURPOSE:
  One flat taxonomy consumed by every entity service (goals, budgets).
  Three domain kinds plus one persistence-level conflict sentinel:

  1. Validation    - caller-supplied data violates a shape/range/precision
                     rule, or a business rule (e.g. contribution exceeds
                     target). Recoverable by correcting input.
  2. NotFound      - referenced record does not exist.
  3. Authorization - record exists but belongs to another owner.
  4. ConcurrentModification - optimistic locking detected a conflict on
                     a versioned update. Retryable.

PROPAGATION:
  All errors return synchronously to the caller. The services never log,
  swallow, or auto-retry domain errors; only ConcurrentModification is
  retried (by the service's bounded update loop). The HTTP boundary maps
  kinds to status codes: 400 / 404 / 403 / 409.

USAGE:
  Structured errors carry the user-facing message and unwrap to their
  sentinel, so callers can match either way:

    if finance.IsNotFound(err) { ... }
    if errors.Is(err, finance.ErrValidation) { ... }

SEE ALSO:
  - validate.go: Rules that produce ValidationError
  - goals/service.go, budgets/service.go: Producers
  - api/handlers.go: Status-code mapping
*/
package finance

import "errors"

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrValidation is the root of all input and business-rule violations.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when a referenced record doesn't exist.
	ErrNotFound = errors.New("record not found")

	// ErrAuthorization is returned when a record exists but the caller
	// is not its owner. A policy violation, never transient.
	ErrAuthorization = errors.New("authorization failed")

	// ErrConcurrentModification is returned when a version-conditional
	// update detects a conflicting write. Safe to retry.
	ErrConcurrentModification = errors.New("concurrent modification detected")
)

// =============================================================================
// STRUCTURED ERRORS - Carry the user-facing message
// =============================================================================

// ValidationError reports a violated field or business rule.
// Message is user-facing and returned verbatim by the API.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NotFoundError reports a missing record.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// AuthorizationError reports an ownership violation.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string { return e.Message }

func (e *AuthorizationError) Unwrap() error { return ErrAuthorization }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsValidation returns true if the error is a validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAuthorization returns true if the error is an ownership violation.
func IsAuthorization(err error) bool {
	return errors.Is(err, ErrAuthorization)
}

// IsRetryable returns true if the error might succeed on retry.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConcurrentModification)
}
