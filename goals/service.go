/*
service.go - Goal ledger service

PURPOSE:
  Orchestrates create/list/contribute/ownership operations atop the
  Store, the shared validation rules, and the progress calculator.
  Owns the goal invariants (see types.go).

OPERATION SHAPE:
  validate inputs (fail fast, no store access)
    -> read (at most one)
    -> business checks (existence, ownership, bounds)
    -> recompute derived state
    -> versioned write (at most one)

CHECK ORDER:
  Existence is checked before ownership, so a caller referencing a
  missing goal gets NotFound and a caller referencing someone else's
  goal gets an explicit Authorization failure. Deliberate: the API is
  same-principal and ids are opaque UUIDs.

CONTRIBUTION RACES:
  AddContribution re-reads and retries a bounded number of times when
  the versioned write reports a conflict. Two racing contributions that
  jointly exceed the target can therefore never both commit: the loser
  re-reads the post-commit state and fails the bound check.

STATE MACHINE:
  Active (current < target) -> Complete (current == target), one way.
  There is no withdrawal or reset; once complete, any further positive
  contribution fails the exceed-target rule.

SEE ALSO:
  - finance/validate.go: Input rules
  - progress.go: Percent calculation
  - store.go: Versioned update contract
*/
package goals

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warp/savings-ledger/finance"
)

// maxUpdateRetries bounds the re-read-and-retry loop on version
// conflicts. Conflicts are rare (two writers on one goal), so a small
// bound suffices; exhaustion surfaces ErrConcurrentModification.
const maxUpdateRetries = 3

// =============================================================================
// SERVICE
// =============================================================================

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// =============================================================================
// OPERATIONS
// =============================================================================

// CreateGoal validates inputs and persists a fresh goal: zero current
// amount, zero progress, incomplete, version 1.
func (s *Service) CreateGoal(ctx context.Context, ownerID, name string, target decimal.Decimal) (*Goal, error) {
	if err := finance.ValidateIdentifier("Owner ID", ownerID); err != nil {
		return nil, err
	}
	if err := finance.ValidateName("Name", name); err != nil {
		return nil, err
	}
	if err := finance.ValidateAmount("Target amount", target, false); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	goal := Goal{
		ID:              GoalID(uuid.New().String()),
		OwnerID:         OwnerID(strings.TrimSpace(ownerID)),
		Name:            strings.TrimSpace(name),
		TargetAmount:    target,
		CurrentAmount:   decimal.Zero,
		ProgressPercent: decimal.Zero,
		IsComplete:      false,
		Version:         1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.store.Create(ctx, goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

// GoalsByOwner returns all goals belonging to ownerID, empty list if none.
func (s *Service) GoalsByOwner(ctx context.Context, ownerID string) ([]Goal, error) {
	if err := finance.ValidateIdentifier("Owner ID", ownerID); err != nil {
		return nil, err
	}
	list, err := s.store.FindByOwner(ctx, OwnerID(strings.TrimSpace(ownerID)))
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []Goal{}
	}
	return list, nil
}

// Goal returns a single goal after the existence and ownership checks.
func (s *Service) Goal(ctx context.Context, ownerID, goalID string) (*Goal, error) {
	goal, err := s.authorize(ctx, ownerID, goalID)
	if err != nil {
		return nil, err
	}
	return goal, nil
}

// AddContribution applies a strictly positive amount to the goal's
// current amount, recomputes progress and completion, and persists the
// updated record. Equality with the target is allowed (reaches exactly
// 100%); exceeding it is rejected.
func (s *Service) AddContribution(ctx context.Context, ownerID, goalID string, amount decimal.Decimal) (*Goal, error) {
	if err := finance.ValidateIdentifier("Owner ID", ownerID); err != nil {
		return nil, err
	}
	if err := finance.ValidateIdentifier("Goal ID", goalID); err != nil {
		return nil, err
	}
	if err := finance.ValidateAmount("Contribution amount", amount, false); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt <= maxUpdateRetries; attempt++ {
		goal, err := s.authorize(ctx, ownerID, goalID)
		if err != nil {
			return nil, err
		}

		newCurrent := goal.CurrentAmount.Add(amount)
		if newCurrent.GreaterThan(goal.TargetAmount) {
			return nil, &finance.ValidationError{
				Field:   "Contribution amount",
				Message: "Contribution would exceed target amount",
			}
		}

		updated := *goal
		updated.CurrentAmount = newCurrent
		updated.Recalculate()
		updated.UpdatedAt = s.now().UTC()
		updated.Version = goal.Version + 1

		err = s.store.Update(ctx, updated, goal.Version)
		if err == nil {
			return &updated, nil
		}
		if errors.Is(err, finance.ErrConcurrentModification) {
			// Lost the race; re-read and re-check the bound.
			lastErr = err
			continue
		}
		if errors.Is(err, finance.ErrNotFound) {
			return nil, errGoalNotFound()
		}
		return nil, err
	}
	return nil, lastErr
}

// ValidateOwnership runs the existence and ownership checks without
// mutating anything. Guard primitive for callers that need a
// pass/throw contract rather than a full fetch.
func (s *Service) ValidateOwnership(ctx context.Context, ownerID, goalID string) error {
	_, err := s.authorize(ctx, ownerID, goalID)
	return err
}

// DeleteGoal removes a goal after the ownership check.
func (s *Service) DeleteGoal(ctx context.Context, ownerID, goalID string) error {
	goal, err := s.authorize(ctx, ownerID, goalID)
	if err != nil {
		return err
	}
	deleted, err := s.store.Delete(ctx, goal.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return errGoalNotFound()
	}
	return nil
}

// =============================================================================
// INTERNAL
// =============================================================================

// authorize validates both ids, loads the goal, and enforces
// existence before ownership.
func (s *Service) authorize(ctx context.Context, ownerID, goalID string) (*Goal, error) {
	if err := finance.ValidateIdentifier("Owner ID", ownerID); err != nil {
		return nil, err
	}
	if err := finance.ValidateIdentifier("Goal ID", goalID); err != nil {
		return nil, err
	}

	goal, err := s.store.FindOne(ctx, GoalID(strings.TrimSpace(goalID)))
	if err != nil {
		return nil, err
	}
	if goal == nil {
		return nil, errGoalNotFound()
	}
	if goal.OwnerID != OwnerID(strings.TrimSpace(ownerID)) {
		return nil, errGoalForbidden()
	}
	return goal, nil
}

func errGoalNotFound() *finance.NotFoundError {
	return &finance.NotFoundError{Message: "Goal not found"}
}

func errGoalForbidden() *finance.AuthorizationError {
	return &finance.AuthorizationError{Message: "You do not have permission to access this goal"}
}
