/*
Package sqlite provides SQLite-backed implementations of the storage
interfaces.

PURPOSE:
  Implements goals.Store and budgets.Store using SQLite. In production,
  the same patterns apply to PostgreSQL - only minor SQL dialect
  differences.

OPTIMISTIC CONCURRENCY:
  Every record carries a version column. Update runs
  UPDATE ... WHERE id=? AND version=? and inspects RowsAffected: zero
  rows means either the record is gone (finance.ErrNotFound) or another
  writer got there first (finance.ErrConcurrentModification). The
  conditional UPDATE itself is atomic; the follow-up existence query
  only disambiguates the two failure causes.

STORAGE CONVENTIONS:
  Money amounts are stored as TEXT in decimal string form (exact,
  no float drift); timestamps as RFC3339Nano TEXT; booleans as INTEGER.

WAL MODE:
  Opened with WAL for better concurrency: readers don't block, single
  writer at a time, better crash recovery.

USAGE:
  store, err := sqlite.New("./data/goals.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  svc := goals.NewService(store.Goals())

SEE ALSO:
  - goals/store.go, budgets/store.go: Interface definitions
  - store/memory: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/savings-ledger/budgets"
	"github.com/warp/savings-ledger/finance"
	"github.com/warp/savings-ledger/goals"
)

const timeFormat = time.RFC3339Nano

// Store owns the database handle and hands out per-entity stores.
type Store struct {
	db *sql.DB
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection: keeps ":memory:" databases coherent (each
	// connection would otherwise get its own empty database) and
	// serializes writes, which SQLite does anyway.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Goals returns the goals.Store view of this database.
func (s *Store) Goals() *GoalStore {
	return &GoalStore{db: s.db}
}

// Budgets returns the budgets.Store view of this database.
func (s *Store) Budgets() *BudgetStore {
	return &BudgetStore{db: s.db}
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS goals (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		name TEXT NOT NULL,
		target_amount TEXT NOT NULL,
		current_amount TEXT NOT NULL,
		progress_percent TEXT NOT NULL,
		is_complete INTEGER NOT NULL DEFAULT 0,
		version INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_goals_owner ON goals(owner_id);

	CREATE TABLE IF NOT EXISTS budgets (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		category TEXT NOT NULL,
		limit_amount TEXT NOT NULL,
		spent_amount TEXT NOT NULL,
		version INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_budgets_owner ON budgets(owner_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Reset wipes all data. Dev/test helper only.
func (s *Store) Reset(ctx context.Context) error {
	for _, table := range []string{"goals", "budgets"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// GOAL STORE
// =============================================================================

type GoalStore struct {
	db *sql.DB
}

const goalColumns = `id, owner_id, name, target_amount, current_amount,
	progress_percent, is_complete, version, created_at, updated_at`

func (gs *GoalStore) Find(ctx context.Context) ([]goals.Goal, error) {
	return gs.query(ctx,
		`SELECT `+goalColumns+` FROM goals ORDER BY created_at, id`)
}

func (gs *GoalStore) FindOne(ctx context.Context, id goals.GoalID) (*goals.Goal, error) {
	list, err := gs.query(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE id = ?`, string(id))
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}

func (gs *GoalStore) FindByOwner(ctx context.Context, ownerID goals.OwnerID) ([]goals.Goal, error) {
	return gs.query(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE owner_id = ? ORDER BY created_at, id`,
		string(ownerID))
}

func (gs *GoalStore) Create(ctx context.Context, g goals.Goal) error {
	_, err := gs.db.ExecContext(ctx, `
		INSERT INTO goals (id, owner_id, name, target_amount, current_amount,
			progress_percent, is_complete, version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(g.ID), string(g.OwnerID), g.Name,
		g.TargetAmount.String(), g.CurrentAmount.String(), g.ProgressPercent.String(),
		boolToInt(g.IsComplete), g.Version,
		g.CreatedAt.UTC().Format(timeFormat), g.UpdatedAt.UTC().Format(timeFormat))
	if err != nil {
		return fmt.Errorf("failed to insert goal: %w", err)
	}
	return nil
}

func (gs *GoalStore) Update(ctx context.Context, g goals.Goal, expectedVersion int64) error {
	res, err := gs.db.ExecContext(ctx, `
		UPDATE goals
		SET owner_id = ?, name = ?, target_amount = ?, current_amount = ?,
			progress_percent = ?, is_complete = ?, version = ?, updated_at = ?
		WHERE id = ? AND version = ?`,
		string(g.OwnerID), g.Name,
		g.TargetAmount.String(), g.CurrentAmount.String(), g.ProgressPercent.String(),
		boolToInt(g.IsComplete), g.Version,
		g.UpdatedAt.UTC().Format(timeFormat),
		string(g.ID), expectedVersion)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	var count int
	if err := gs.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM goals WHERE id = ?`, string(g.ID)).Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		return finance.ErrNotFound
	}
	return finance.ErrConcurrentModification
}

func (gs *GoalStore) Delete(ctx context.Context, id goals.GoalID) (bool, error) {
	res, err := gs.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, string(id))
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (gs *GoalStore) query(ctx context.Context, query string, args ...any) ([]goals.Goal, error) {
	rows, err := gs.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer rows.Close()

	var result []goals.Goal
	for rows.Next() {
		var (
			g                         goals.Goal
			target, current, progress string
			isComplete                int
			createdAt, updatedAt      string
		)
		if err := rows.Scan(&g.ID, &g.OwnerID, &g.Name, &target, &current,
			&progress, &isComplete, &g.Version, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		if g.TargetAmount, err = decimal.NewFromString(target); err != nil {
			return nil, fmt.Errorf("corrupt target_amount %q: %w", target, err)
		}
		if g.CurrentAmount, err = decimal.NewFromString(current); err != nil {
			return nil, fmt.Errorf("corrupt current_amount %q: %w", current, err)
		}
		if g.ProgressPercent, err = decimal.NewFromString(progress); err != nil {
			return nil, fmt.Errorf("corrupt progress_percent %q: %w", progress, err)
		}
		g.IsComplete = isComplete != 0
		if g.CreatedAt, err = time.Parse(timeFormat, createdAt); err != nil {
			return nil, err
		}
		if g.UpdatedAt, err = time.Parse(timeFormat, updatedAt); err != nil {
			return nil, err
		}
		result = append(result, g)
	}
	return result, rows.Err()
}

// =============================================================================
// BUDGET STORE
// =============================================================================

type BudgetStore struct {
	db *sql.DB
}

const budgetColumns = `id, owner_id, category, limit_amount, spent_amount,
	version, created_at, updated_at`

func (bs *BudgetStore) Find(ctx context.Context) ([]budgets.Budget, error) {
	return bs.query(ctx,
		`SELECT `+budgetColumns+` FROM budgets ORDER BY created_at, id`)
}

func (bs *BudgetStore) FindOne(ctx context.Context, id budgets.BudgetID) (*budgets.Budget, error) {
	list, err := bs.query(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE id = ?`, string(id))
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return &list[0], nil
}

func (bs *BudgetStore) FindByOwner(ctx context.Context, ownerID budgets.OwnerID) ([]budgets.Budget, error) {
	return bs.query(ctx,
		`SELECT `+budgetColumns+` FROM budgets WHERE owner_id = ? ORDER BY created_at, id`,
		string(ownerID))
}

func (bs *BudgetStore) Create(ctx context.Context, b budgets.Budget) error {
	_, err := bs.db.ExecContext(ctx, `
		INSERT INTO budgets (id, owner_id, category, limit_amount, spent_amount,
			version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		string(b.ID), string(b.OwnerID), b.Category,
		b.LimitAmount.String(), b.SpentAmount.String(), b.Version,
		b.CreatedAt.UTC().Format(timeFormat), b.UpdatedAt.UTC().Format(timeFormat))
	if err != nil {
		return fmt.Errorf("failed to insert budget: %w", err)
	}
	return nil
}

func (bs *BudgetStore) Update(ctx context.Context, b budgets.Budget, expectedVersion int64) error {
	res, err := bs.db.ExecContext(ctx, `
		UPDATE budgets
		SET owner_id = ?, category = ?, limit_amount = ?, spent_amount = ?,
			version = ?, updated_at = ?
		WHERE id = ? AND version = ?`,
		string(b.OwnerID), b.Category,
		b.LimitAmount.String(), b.SpentAmount.String(), b.Version,
		b.UpdatedAt.UTC().Format(timeFormat),
		string(b.ID), expectedVersion)
	if err != nil {
		return fmt.Errorf("failed to update budget: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	var count int
	if err := bs.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM budgets WHERE id = ?`, string(b.ID)).Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		return finance.ErrNotFound
	}
	return finance.ErrConcurrentModification
}

func (bs *BudgetStore) Delete(ctx context.Context, id budgets.BudgetID) (bool, error) {
	res, err := bs.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = ?`, string(id))
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (bs *BudgetStore) query(ctx context.Context, query string, args ...any) ([]budgets.Budget, error) {
	rows, err := bs.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	var result []budgets.Budget
	for rows.Next() {
		var (
			b                    budgets.Budget
			limit, spent         string
			createdAt, updatedAt string
		)
		if err := rows.Scan(&b.ID, &b.OwnerID, &b.Category, &limit, &spent,
			&b.Version, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		if b.LimitAmount, err = decimal.NewFromString(limit); err != nil {
			return nil, fmt.Errorf("corrupt limit_amount %q: %w", limit, err)
		}
		if b.SpentAmount, err = decimal.NewFromString(spent); err != nil {
			return nil, fmt.Errorf("corrupt spent_amount %q: %w", spent, err)
		}
		if b.CreatedAt, err = time.Parse(timeFormat, createdAt); err != nil {
			return nil, err
		}
		if b.UpdatedAt, err = time.Parse(timeFormat, updatedAt); err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	return result, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
