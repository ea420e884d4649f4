package budgets_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/savings-ledger/budgets"
	"github.com/warp/savings-ledger/finance"
	"github.com/warp/savings-ledger/store/memory"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestService(t *testing.T) *budgets.Service {
	t.Helper()
	return budgets.NewService(memory.NewBudgetStore())
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func mustCreate(t *testing.T, svc *budgets.Service, owner, category, limit string) *budgets.Budget {
	t.Helper()
	budget, err := svc.CreateBudget(context.Background(), owner, category, dec(limit))
	require.NoError(t, err)
	return budget
}

// =============================================================================
// CREATION
// =============================================================================

func TestCreateBudget_InitialState(t *testing.T) {
	svc := newTestService(t)

	budget := mustCreate(t, svc, "owner-1", "Groceries", "500.00")

	assert.NotEmpty(t, budget.ID)
	assert.Equal(t, budgets.OwnerID("owner-1"), budget.OwnerID)
	assert.Equal(t, "Groceries", budget.Category)
	assert.True(t, budget.LimitAmount.Equal(dec("500")))
	assert.True(t, budget.SpentAmount.IsZero())
	assert.True(t, budget.Remaining().Equal(dec("500")))
	assert.False(t, budget.IsExceeded())
}

func TestCreateBudget_Rejections(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		owner    string
		category string
		limit    string
		wantErr  string
	}{
		{"zero limit", "owner-1", "Groceries", "0", "Limit amount must be greater than 0"},
		{"negative limit", "owner-1", "Groceries", "-1", "Limit amount must be greater than 0"},
		{"too precise limit", "owner-1", "Groceries", "9.999", "Limit amount cannot have more than 2 decimal places"},
		{"short category", "owner-1", "G", "100", "Category must be at least 2 characters"},
		{"missing owner", "", "Groceries", "100", "Owner ID is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateBudget(ctx, tt.owner, tt.category, dec(tt.limit))
			require.Error(t, err)
			assert.EqualError(t, err, tt.wantErr)
			assert.True(t, finance.IsValidation(err))
		})
	}
}

// =============================================================================
// SPENDING
// =============================================================================

func TestRecordSpend_Accumulates(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	budget := mustCreate(t, svc, "owner-1", "Groceries", "500.00")

	updated, err := svc.RecordSpend(ctx, "owner-1", string(budget.ID), dec("120.50"))
	require.NoError(t, err)
	assert.True(t, updated.SpentAmount.Equal(dec("120.50")))
	assert.True(t, updated.Remaining().Equal(dec("379.50")))
	assert.False(t, updated.IsExceeded())

	updated, err = svc.RecordSpend(ctx, "owner-1", string(budget.ID), dec("79.50"))
	require.NoError(t, err)
	assert.True(t, updated.SpentAmount.Equal(dec("200")))
}

func TestRecordSpend_OverspendFlaggedNotRejected(t *testing.T) {
	// Spending already happened by the time it is recorded, so the
	// service records past-limit spending and flags it.

	svc := newTestService(t)
	ctx := context.Background()
	budget := mustCreate(t, svc, "owner-1", "Groceries", "100.00")

	updated, err := svc.RecordSpend(ctx, "owner-1", string(budget.ID), dec("150.00"))
	require.NoError(t, err)
	assert.True(t, updated.SpentAmount.Equal(dec("150")))
	assert.True(t, updated.Remaining().Equal(dec("-50")))
	assert.True(t, updated.IsExceeded())
}

func TestRecordSpend_InvalidAmount(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	budget := mustCreate(t, svc, "owner-1", "Groceries", "100.00")

	_, err := svc.RecordSpend(ctx, "owner-1", string(budget.ID), dec("0"))
	require.Error(t, err)
	assert.EqualError(t, err, "Spend amount must be greater than 0")
}

func TestRecordSpend_NotFoundAndForbidden(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	budget := mustCreate(t, svc, "alice", "Groceries", "100.00")

	_, err := svc.RecordSpend(ctx, "alice", "missing-budget", dec("10"))
	require.Error(t, err)
	assert.EqualError(t, err, "Budget not found")
	assert.True(t, finance.IsNotFound(err))

	_, err = svc.RecordSpend(ctx, "bob", string(budget.ID), dec("10"))
	require.Error(t, err)
	assert.EqualError(t, err, "You do not have permission to access this budget")
	assert.True(t, finance.IsAuthorization(err))
}

// =============================================================================
// LISTING AND DELETE
// =============================================================================

func TestBudgetsByOwner_Isolation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	mustCreate(t, svc, "alice", "Groceries", "100")
	mustCreate(t, svc, "alice", "Transport", "50")
	mustCreate(t, svc, "bob", "Rent", "900")

	aliceBudgets, err := svc.BudgetsByOwner(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, aliceBudgets, 2)

	bobBudgets, err := svc.BudgetsByOwner(ctx, "bob")
	require.NoError(t, err)
	assert.Len(t, bobBudgets, 1)

	empty, err := svc.BudgetsByOwner(ctx, "carol")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestDeleteBudget(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	budget := mustCreate(t, svc, "alice", "Groceries", "100")

	err := svc.DeleteBudget(ctx, "bob", string(budget.ID))
	assert.True(t, finance.IsAuthorization(err))

	require.NoError(t, svc.DeleteBudget(ctx, "alice", string(budget.ID)))

	_, err = svc.Budget(ctx, "alice", string(budget.ID))
	assert.True(t, finance.IsNotFound(err))
}
