package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/savings-ledger/budgets"
	"github.com/warp/savings-ledger/finance"
	"github.com/warp/savings-ledger/goals"
	"github.com/warp/savings-ledger/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testGoal(id, owner string) goals.Goal {
	now := time.Now().UTC().Truncate(time.Microsecond)
	g := goals.Goal{
		ID:            goals.GoalID(id),
		OwnerID:       goals.OwnerID(owner),
		Name:          "Test goal",
		TargetAmount:  dec("1000.00"),
		CurrentAmount: dec("250.50"),
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	g.Recalculate()
	return g
}

// =============================================================================
// GOAL ROUND-TRIP
// =============================================================================

func TestGoalStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	gs := store.Goals()
	ctx := context.Background()

	g := testGoal("goal-1", "alice")
	require.NoError(t, gs.Create(ctx, g))

	loaded, err := gs.FindOne(ctx, g.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, g.ID, loaded.ID)
	assert.Equal(t, g.OwnerID, loaded.OwnerID)
	assert.Equal(t, g.Name, loaded.Name)
	assert.True(t, loaded.TargetAmount.Equal(dec("1000.00")))
	assert.True(t, loaded.CurrentAmount.Equal(dec("250.50")))
	assert.True(t, loaded.ProgressPercent.Equal(dec("25.05")))
	assert.False(t, loaded.IsComplete)
	assert.Equal(t, int64(1), loaded.Version)
	assert.True(t, loaded.CreatedAt.Equal(g.CreatedAt))
	assert.True(t, loaded.UpdatedAt.Equal(g.UpdatedAt))
}

func TestGoalStore_FindOne_Missing(t *testing.T) {
	store := newTestStore(t)

	loaded, err := store.Goals().FindOne(context.Background(), "no-such-goal")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestGoalStore_FindByOwner_Isolation(t *testing.T) {
	store := newTestStore(t)
	gs := store.Goals()
	ctx := context.Background()

	require.NoError(t, gs.Create(ctx, testGoal("goal-1", "alice")))
	require.NoError(t, gs.Create(ctx, testGoal("goal-2", "alice")))
	require.NoError(t, gs.Create(ctx, testGoal("goal-3", "bob")))

	aliceGoals, err := gs.FindByOwner(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, aliceGoals, 2)

	bobGoals, err := gs.FindByOwner(ctx, "bob")
	require.NoError(t, err)
	assert.Len(t, bobGoals, 1)

	none, err := gs.FindByOwner(ctx, "carol")
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := gs.Find(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

// =============================================================================
// VERSIONED UPDATE
// =============================================================================

func TestGoalStore_Update_VersionGate(t *testing.T) {
	// GIVEN: a stored goal at version 1
	// WHEN: updating with the right and then a stale expected version
	// THEN: the first write lands, the stale one reports a conflict

	store := newTestStore(t)
	gs := store.Goals()
	ctx := context.Background()

	g := testGoal("goal-1", "alice")
	require.NoError(t, gs.Create(ctx, g))

	updated := g
	updated.CurrentAmount = dec("500.00")
	updated.Recalculate()
	updated.Version = 2
	require.NoError(t, gs.Update(ctx, updated, 1))

	// Stale writer still holds version 1
	stale := g
	stale.CurrentAmount = dec("600.00")
	stale.Version = 2
	err := gs.Update(ctx, stale, 1)
	assert.ErrorIs(t, err, finance.ErrConcurrentModification)

	loaded, err := gs.FindOne(ctx, g.ID)
	require.NoError(t, err)
	assert.True(t, loaded.CurrentAmount.Equal(dec("500.00")))
	assert.Equal(t, int64(2), loaded.Version)
}

func TestGoalStore_Update_Missing(t *testing.T) {
	store := newTestStore(t)

	g := testGoal("no-such-goal", "alice")
	err := store.Goals().Update(context.Background(), g, 1)
	assert.ErrorIs(t, err, finance.ErrNotFound)
}

func TestGoalStore_Delete(t *testing.T) {
	store := newTestStore(t)
	gs := store.Goals()
	ctx := context.Background()

	g := testGoal("goal-1", "alice")
	require.NoError(t, gs.Create(ctx, g))

	deleted, err := gs.Delete(ctx, g.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = gs.Delete(ctx, g.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

// =============================================================================
// SERVICE OVER SQLITE
// =============================================================================

func TestGoalService_OverSQLite(t *testing.T) {
	// The full contribution flow against the real store, including the
	// exceed rejection.

	store := newTestStore(t)
	svc := goals.NewService(store.Goals())
	ctx := context.Background()

	goal, err := svc.CreateGoal(ctx, "alice", "House deposit", dec("1000.00"))
	require.NoError(t, err)

	_, err = svc.AddContribution(ctx, "alice", string(goal.ID), dec("800.00"))
	require.NoError(t, err)

	final, err := svc.AddContribution(ctx, "alice", string(goal.ID), dec("200.00"))
	require.NoError(t, err)
	assert.True(t, final.IsComplete)
	assert.True(t, final.ProgressPercent.Equal(dec("100")))

	_, err = svc.AddContribution(ctx, "alice", string(goal.ID), dec("0.01"))
	assert.EqualError(t, err, "Contribution would exceed target amount")
}

// =============================================================================
// BUDGET STORE
// =============================================================================

func TestBudgetStore_RoundTripAndVersionGate(t *testing.T) {
	store := newTestStore(t)
	bs := store.Budgets()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	b := budgets.Budget{
		ID:          "budget-1",
		OwnerID:     "alice",
		Category:    "Groceries",
		LimitAmount: dec("500.00"),
		SpentAmount: dec("120.50"),
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, bs.Create(ctx, b))

	loaded, err := bs.FindOne(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.True(t, loaded.LimitAmount.Equal(dec("500")))
	assert.True(t, loaded.SpentAmount.Equal(dec("120.50")))
	assert.True(t, loaded.Remaining().Equal(dec("379.50")))

	updated := b
	updated.SpentAmount = dec("200.00")
	updated.Version = 2
	require.NoError(t, bs.Update(ctx, updated, 1))

	err = bs.Update(ctx, updated, 1)
	assert.ErrorIs(t, err, finance.ErrConcurrentModification)
}

func TestStore_Reset(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Goals().Create(ctx, testGoal("goal-1", "alice")))
	require.NoError(t, store.Reset(ctx))

	all, err := store.Goals().Find(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
