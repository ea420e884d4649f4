/*
Package memory provides in-memory Store implementations (for testing/dev).

Both stores guard their maps with a mutex and perform the
version-check-and-write of Update inside a single locked section, so
the optimistic-concurrency contract holds under concurrent callers.
Returned records are copies; callers never alias store state.
*/
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/savings-ledger/budgets"
	"github.com/warp/savings-ledger/finance"
	"github.com/warp/savings-ledger/goals"
)

// =============================================================================
// GOAL STORE
// =============================================================================

type GoalStore struct {
	mu    sync.RWMutex
	goals map[goals.GoalID]goals.Goal
}

func NewGoalStore() *GoalStore {
	return &GoalStore{goals: make(map[goals.GoalID]goals.Goal)}
}

func (m *GoalStore) Find(_ context.Context) ([]goals.Goal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]goals.Goal, 0, len(m.goals))
	for _, g := range m.goals {
		result = append(result, g)
	}
	sortGoals(result)
	return result, nil
}

func (m *GoalStore) FindOne(_ context.Context, id goals.GoalID) (*goals.Goal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	g, ok := m.goals[id]
	if !ok {
		return nil, nil
	}
	return &g, nil
}

func (m *GoalStore) FindByOwner(_ context.Context, ownerID goals.OwnerID) ([]goals.Goal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := []goals.Goal{}
	for _, g := range m.goals {
		if g.OwnerID == ownerID {
			result = append(result, g)
		}
	}
	sortGoals(result)
	return result, nil
}

func (m *GoalStore) Create(_ context.Context, g goals.Goal) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.goals[g.ID] = g
	return nil
}

// Update replaces the record iff the stored version matches.
// Check and write happen under one lock; this is the serialization
// point that makes concurrent contributions safe.
func (m *GoalStore) Update(_ context.Context, g goals.Goal, expectedVersion int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.goals[g.ID]
	if !ok {
		return finance.ErrNotFound
	}
	if current.Version != expectedVersion {
		return finance.ErrConcurrentModification
	}
	m.goals[g.ID] = g
	return nil
}

func (m *GoalStore) Delete(_ context.Context, id goals.GoalID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.goals[id]; !ok {
		return false, nil
	}
	delete(m.goals, id)
	return true, nil
}

// sortGoals orders by creation time, id as tiebreak, for a stable
// store-defined order.
func sortGoals(list []goals.Goal) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
}

// =============================================================================
// BUDGET STORE
// =============================================================================

type BudgetStore struct {
	mu      sync.RWMutex
	budgets map[budgets.BudgetID]budgets.Budget
}

func NewBudgetStore() *BudgetStore {
	return &BudgetStore{budgets: make(map[budgets.BudgetID]budgets.Budget)}
}

func (m *BudgetStore) Find(_ context.Context) ([]budgets.Budget, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]budgets.Budget, 0, len(m.budgets))
	for _, b := range m.budgets {
		result = append(result, b)
	}
	sortBudgets(result)
	return result, nil
}

func (m *BudgetStore) FindOne(_ context.Context, id budgets.BudgetID) (*budgets.Budget, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.budgets[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (m *BudgetStore) FindByOwner(_ context.Context, ownerID budgets.OwnerID) ([]budgets.Budget, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := []budgets.Budget{}
	for _, b := range m.budgets {
		if b.OwnerID == ownerID {
			result = append(result, b)
		}
	}
	sortBudgets(result)
	return result, nil
}

func (m *BudgetStore) Create(_ context.Context, b budgets.Budget) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.budgets[b.ID] = b
	return nil
}

func (m *BudgetStore) Update(_ context.Context, b budgets.Budget, expectedVersion int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.budgets[b.ID]
	if !ok {
		return finance.ErrNotFound
	}
	if current.Version != expectedVersion {
		return finance.ErrConcurrentModification
	}
	m.budgets[b.ID] = b
	return nil
}

func (m *BudgetStore) Delete(_ context.Context, id budgets.BudgetID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.budgets[id]; !ok {
		return false, nil
	}
	delete(m.budgets, id)
	return true, nil
}

func sortBudgets(list []budgets.Budget) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
}
