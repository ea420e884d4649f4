/*
service.go - Budget service

Same operation shape as goals: validate -> read -> business checks ->
versioned write with bounded retry. RecordSpend differs from a goal
contribution in one way: there is no upper-bound rejection, because
the money is already spent; the record just flags the overrun.
*/
package budgets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warp/savings-ledger/finance"
)

const maxUpdateRetries = 3

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// CreateBudget validates inputs and persists a fresh budget with zero
// spending.
func (s *Service) CreateBudget(ctx context.Context, ownerID, category string, limit decimal.Decimal) (*Budget, error) {
	if err := finance.ValidateIdentifier("Owner ID", ownerID); err != nil {
		return nil, err
	}
	if err := finance.ValidateName("Category", category); err != nil {
		return nil, err
	}
	if err := finance.ValidateAmount("Limit amount", limit, false); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	budget := Budget{
		ID:          BudgetID(uuid.New().String()),
		OwnerID:     OwnerID(strings.TrimSpace(ownerID)),
		Category:    strings.TrimSpace(category),
		LimitAmount: limit,
		SpentAmount: decimal.Zero,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.Create(ctx, budget); err != nil {
		return nil, err
	}
	return &budget, nil
}

// BudgetsByOwner returns all budgets belonging to ownerID.
func (s *Service) BudgetsByOwner(ctx context.Context, ownerID string) ([]Budget, error) {
	if err := finance.ValidateIdentifier("Owner ID", ownerID); err != nil {
		return nil, err
	}
	list, err := s.store.FindByOwner(ctx, OwnerID(strings.TrimSpace(ownerID)))
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []Budget{}
	}
	return list, nil
}

// Budget returns a single budget after the existence and ownership checks.
func (s *Service) Budget(ctx context.Context, ownerID, budgetID string) (*Budget, error) {
	return s.authorize(ctx, ownerID, budgetID)
}

// RecordSpend adds a strictly positive amount to the budget's spent
// total. Spending past the limit is recorded, not rejected.
func (s *Service) RecordSpend(ctx context.Context, ownerID, budgetID string, amount decimal.Decimal) (*Budget, error) {
	if err := finance.ValidateIdentifier("Owner ID", ownerID); err != nil {
		return nil, err
	}
	if err := finance.ValidateIdentifier("Budget ID", budgetID); err != nil {
		return nil, err
	}
	if err := finance.ValidateAmount("Spend amount", amount, false); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt <= maxUpdateRetries; attempt++ {
		budget, err := s.authorize(ctx, ownerID, budgetID)
		if err != nil {
			return nil, err
		}

		updated := *budget
		updated.SpentAmount = budget.SpentAmount.Add(amount)
		updated.UpdatedAt = s.now().UTC()
		updated.Version = budget.Version + 1

		err = s.store.Update(ctx, updated, budget.Version)
		if err == nil {
			return &updated, nil
		}
		if errors.Is(err, finance.ErrConcurrentModification) {
			lastErr = err
			continue
		}
		if errors.Is(err, finance.ErrNotFound) {
			return nil, errBudgetNotFound()
		}
		return nil, err
	}
	return nil, lastErr
}

// DeleteBudget removes a budget after the ownership check.
func (s *Service) DeleteBudget(ctx context.Context, ownerID, budgetID string) error {
	budget, err := s.authorize(ctx, ownerID, budgetID)
	if err != nil {
		return err
	}
	deleted, err := s.store.Delete(ctx, budget.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return errBudgetNotFound()
	}
	return nil
}

func (s *Service) authorize(ctx context.Context, ownerID, budgetID string) (*Budget, error) {
	if err := finance.ValidateIdentifier("Owner ID", ownerID); err != nil {
		return nil, err
	}
	if err := finance.ValidateIdentifier("Budget ID", budgetID); err != nil {
		return nil, err
	}

	budget, err := s.store.FindOne(ctx, BudgetID(strings.TrimSpace(budgetID)))
	if err != nil {
		return nil, err
	}
	if budget == nil {
		return nil, errBudgetNotFound()
	}
	if budget.OwnerID != OwnerID(strings.TrimSpace(ownerID)) {
		return nil, errBudgetForbidden()
	}
	return budget, nil
}

func errBudgetNotFound() *finance.NotFoundError {
	return &finance.NotFoundError{Message: "Budget not found"}
}

func errBudgetForbidden() *finance.AuthorizationError {
	return &finance.AuthorizationError{Message: "You do not have permission to access this budget"}
}
