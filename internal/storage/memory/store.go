// Package memory provides an in-memory registry store. Updates run against
// a staged deep copy of the state which replaces the canonical state only
// when the transaction function succeeds, so a failed transaction leaves no
// trace.
package memory

import (
	"context"
	"math"
	"sync"

	"github.com/thornvale/menagerie/internal/creature"
	"github.com/thornvale/menagerie/internal/storage"
)

// Store is an in-memory registry store.
type Store struct {
	mu    sync.RWMutex
	state state
	caps  storage.Caps
}

type state struct {
	creatures map[creature.ID]creature.Creature
	owned     map[string][]creature.ID
	dna       map[creature.DNA]creature.ID
	count     uint64
}

// New creates an empty in-memory store with the given caps.
func New(caps storage.Caps) *Store {
	return &Store{
		state: state{
			creatures: make(map[creature.ID]creature.Creature),
			owned:     make(map[string][]creature.ID),
			dna:       make(map[creature.DNA]creature.ID),
		},
		caps: caps.Normalize(),
	}
}

// View runs fn against the current state snapshot.
func (s *Store) View(ctx context.Context, fn func(storage.ReadTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	// fn only sees the ReadTx surface, so the live state cannot be mutated.
	return fn(&tx{state: &s.state, caps: s.caps})
}

// Update runs fn against a staged copy and swaps it in on success.
func (s *Store) Update(ctx context.Context, fn func(storage.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	staged := s.state.clone()
	if err := fn(&tx{state: &staged, caps: s.caps}); err != nil {
		return err
	}

	s.state = staged
	return nil
}

func (st state) clone() state {
	out := state{
		creatures: make(map[creature.ID]creature.Creature, len(st.creatures)),
		owned:     make(map[string][]creature.ID, len(st.owned)),
		dna:       make(map[creature.DNA]creature.ID, len(st.dna)),
		count:     st.count,
	}
	for id, c := range st.creatures {
		out.creatures[id] = cloneCreature(c)
	}
	for owner, ids := range st.owned {
		out.owned[owner] = append([]creature.ID(nil), ids...)
	}
	for dna, id := range st.dna {
		out.dna[dna] = id
	}
	return out
}

func cloneCreature(c creature.Creature) creature.Creature {
	if c.Price != nil {
		price := *c.Price
		c.Price = &price
	}
	if c.Name != nil {
		c.Name = append([]byte(nil), c.Name...)
	}
	return c
}

// tx implements storage.Tx over a state value.
type tx struct {
	state *state
	caps  storage.Caps
}

func (t *tx) Get(id creature.ID) (creature.Creature, error) {
	c, ok := t.state.creatures[id]
	if !ok {
		return creature.Creature{}, storage.ErrNotFound
	}
	return cloneCreature(c), nil
}

func (t *tx) OwnedBy(owner string) ([]creature.ID, error) {
	return append([]creature.ID(nil), t.state.owned[owner]...), nil
}

func (t *tx) IDByDNA(dna creature.DNA) (creature.ID, bool, error) {
	id, ok := t.state.dna[dna]
	return id, ok, nil
}

func (t *tx) Count() (uint64, error) {
	return t.state.count, nil
}

func (t *tx) Put(id creature.ID, c creature.Creature) error {
	t.state.creatures[id] = cloneCreature(c)
	return nil
}

func (t *tx) AppendOwned(owner string, id creature.ID) error {
	ids := t.state.owned[owner]
	if len(ids) >= t.caps.MaxOwned {
		return storage.ErrOwnerCapacity
	}
	t.state.owned[owner] = append(ids, id)
	return nil
}

func (t *tx) RemoveOwned(owner string, id creature.ID) error {
	ids, removed := storage.SwapRemove(t.state.owned[owner], id)
	if !removed {
		return storage.ErrNotFound
	}
	if len(ids) == 0 {
		delete(t.state.owned, owner)
		return nil
	}
	t.state.owned[owner] = ids
	return nil
}

func (t *tx) MapDNA(dna creature.DNA, id creature.ID) error {
	t.state.dna[dna] = id
	return nil
}

func (t *tx) IncrementCount() (uint64, error) {
	if t.state.count == math.MaxUint64 {
		return 0, storage.ErrCounterOverflow
	}
	t.state.count++
	return t.state.count, nil
}
