// Package storage defines the registry store: four logical maps (creature
// catalog, owner index, dna index, total counter) mutated only through
// transactions. Backends guarantee that an Update either applies every
// mutation or none, which the transition engine relies on for atomicity.
package storage

import (
	"context"

	"github.com/thornvale/menagerie/internal/creature"
	apperrors "github.com/thornvale/menagerie/internal/errors"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")
	// ErrAlreadyExists indicates a creature with the same id is present.
	ErrAlreadyExists = apperrors.New(apperrors.CodeAlreadyExists, "creature already exists")
	// ErrCounterOverflow indicates the total counter cannot be incremented.
	ErrCounterOverflow = apperrors.New(apperrors.CodeCounterOverflow, "creature counter overflow")
	// ErrOwnerCapacity indicates an owner's index is at capacity.
	ErrOwnerCapacity = apperrors.New(apperrors.CodeOwnerCapacity, "owner index at capacity")
)

// DefaultMaxOwned bounds the per-owner index when no capacity is configured.
const DefaultMaxOwned = 100

// Caps bounds the owner index.
type Caps struct {
	MaxOwned int
}

// Normalize fills in unset capacities.
func (c Caps) Normalize() Caps {
	if c.MaxOwned <= 0 {
		c.MaxOwned = DefaultMaxOwned
	}
	return c
}

// Store provides transactional access to the registry state.
type Store interface {
	// View runs fn against a consistent read-only snapshot.
	View(ctx context.Context, fn func(ReadTx) error) error
	// Update runs fn in a transaction. If fn returns an error, every
	// mutation it performed is discarded.
	Update(ctx context.Context, fn func(Tx) error) error
}

// ReadTx reads registry state from a single consistent snapshot.
type ReadTx interface {
	// Get fetches a creature by id. Returns ErrNotFound when absent.
	Get(id creature.ID) (creature.Creature, error)
	// OwnedBy lists the ids held by an owner. Membership order is not
	// significant; removal reorders.
	OwnedBy(owner string) ([]creature.ID, error)
	// IDByDNA resolves the dna index entry for the given dna, if any.
	IDByDNA(dna creature.DNA) (creature.ID, bool, error)
	// Count returns the number of creatures ever minted.
	Count() (uint64, error)
}

// Tx mutates registry state within a transaction.
type Tx interface {
	ReadTx
	// Put stores a creature record under id, replacing any prior record.
	Put(id creature.ID, c creature.Creature) error
	// AppendOwned adds id to an owner's index. Returns ErrOwnerCapacity
	// when the index is full.
	AppendOwned(owner string, id creature.ID) error
	// RemoveOwned removes id from an owner's index with a swap-remove.
	// Returns ErrNotFound when the id is not present.
	RemoveOwned(owner string, id creature.ID) error
	// MapDNA sets the dna index entry, overwriting any prior mapping.
	MapDNA(dna creature.DNA, id creature.ID) error
	// IncrementCount advances the total counter. Returns
	// ErrCounterOverflow when the counter is at its maximum.
	IncrementCount() (uint64, error)
}

// SwapRemove removes id from ids by swapping with the last element and
// truncating. O(1), does not preserve order. The second return reports
// whether the id was present.
func SwapRemove(ids []creature.ID, id creature.ID) ([]creature.ID, bool) {
	for i := range ids {
		if ids[i] == id {
			last := len(ids) - 1
			ids[i] = ids[last]
			return ids[:last], true
		}
	}
	return ids, false
}
