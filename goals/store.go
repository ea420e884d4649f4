/*
store.go - Persistence interface for goal records

PURPOSE:
  Defines the contract between the goal service and the database.
  The store is a keyed record repository with one non-obvious
  requirement: Update is version-conditional.

OPTIMISTIC CONCURRENCY:
  Two concurrent contributions against the same goal must not both
  commit off the same pre-contribution state (they could jointly exceed
  the target, or one could be silently lost). Update therefore takes
  the version the caller read and fails with
  finance.ErrConcurrentModification when the stored version differs.
  The service re-reads and retries; see service.go.

IMPLEMENTATIONS:
  - store/sqlite: production store (UPDATE ... WHERE id=? AND version=?)
  - store/memory: in-memory store for tests/dev

SEE ALSO:
  - service.go: Retry loop on version conflicts
  - finance/errors.go: ErrConcurrentModification, ErrNotFound
*/
package goals

import "context"

// Store handles persistence of goal records.
//
// Update contract: the write succeeds only if the stored record still
// carries expectedVersion; implementations return
// finance.ErrConcurrentModification on a version mismatch and
// finance.ErrNotFound if the record is gone. The check and the write
// must be atomic.
type Store interface {
	// Find returns all goals, in store-defined order.
	Find(ctx context.Context) ([]Goal, error)

	// FindOne returns the goal with the given id, or nil if absent.
	FindOne(ctx context.Context, id GoalID) (*Goal, error)

	// FindByOwner returns all goals belonging to ownerID.
	// Empty slice if none; never leaks other owners' goals.
	FindByOwner(ctx context.Context, ownerID OwnerID) ([]Goal, error)

	// Create persists a new goal. The caller assigns the id.
	Create(ctx context.Context, g Goal) error

	// Update replaces the full record iff the stored version equals
	// expectedVersion. g carries the new (already bumped) version.
	Update(ctx context.Context, g Goal, expectedVersion int64) error

	// Delete removes the goal. Returns false if it didn't exist.
	Delete(ctx context.Context, id GoalID) (bool, error)
}
