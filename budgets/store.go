package budgets

import "context"

// Store handles persistence of budget records. Same versioned-update
// contract as goals.Store: implementations return
// finance.ErrConcurrentModification on a version mismatch and
// finance.ErrNotFound if the record is gone, atomically.
type Store interface {
	Find(ctx context.Context) ([]Budget, error)
	FindOne(ctx context.Context, id BudgetID) (*Budget, error)
	FindByOwner(ctx context.Context, ownerID OwnerID) ([]Budget, error)
	Create(ctx context.Context, b Budget) error
	Update(ctx context.Context, b Budget, expectedVersion int64) error
	Delete(ctx context.Context, id BudgetID) (bool, error)
}
