// Package registry implements the transition engine for the creature
// registry: mint, price setting, direct transfer, marketplace buy,
// breeding, and naming, each executed as one atomic transaction over the
// registry store.
//
// Calls arrive already ordered and authenticated; the engine validates
// arguments against a single consistent snapshot and either applies every
// mutation of an operation or none of them.
package registry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/thornvale/menagerie/internal/creature"
	apperrors "github.com/thornvale/menagerie/internal/errors"
	"github.com/thornvale/menagerie/internal/event"
	"github.com/thornvale/menagerie/internal/ledger"
	"github.com/thornvale/menagerie/internal/random"
	"github.com/thornvale/menagerie/internal/storage"
)

var (
	// ErrNotOwner indicates the caller does not hold the creature.
	ErrNotOwner = apperrors.New(apperrors.CodeNotOwner, "caller does not own the creature")
	// ErrTransferToSelf indicates a transfer back to the current owner.
	ErrTransferToSelf = apperrors.New(apperrors.CodeTransferToSelf, "cannot transfer a creature to its owner")
	// ErrBuyerIsOwner indicates the buyer already owns the creature.
	ErrBuyerIsOwner = apperrors.New(apperrors.CodeBuyerIsOwner, "buyer already owns the creature")
	// ErrNotForSale indicates the creature has no ask price.
	ErrNotForSale = apperrors.New(apperrors.CodeNotForSale, "creature is not for sale")
	// ErrBidTooLow indicates the bid is below the ask price.
	ErrBidTooLow = apperrors.New(apperrors.CodeBidTooLow, "bid price is below the ask price")
	// ErrSameSex indicates both breeding parents share a gender.
	ErrSameSex = apperrors.New(apperrors.CodeSameSex, "parents must be of different sex")
)

// Domain tags separating independent random draws.
var (
	dnaDomainTag    = []byte("dna")
	genderDomainTag = []byte("gender")
	breedDomainTag  = []byte("breed")
)

const (
	// DefaultMinNameLength is the default lower bound for creature names.
	DefaultMinNameLength = 3
	// DefaultMaxNameLength is the default bounded capacity for names.
	DefaultMaxNameLength = 32
)

// Caps bounds creature names.
type Caps struct {
	MinNameLength int
	MaxNameLength int
}

func (c Caps) normalize() Caps {
	if c.MinNameLength <= 0 {
		c.MinNameLength = DefaultMinNameLength
	}
	if c.MaxNameLength <= 0 {
		c.MaxNameLength = DefaultMaxNameLength
	}
	return c
}

// Config wires the engine's collaborators.
type Config struct {
	Store      storage.Store
	Ledger     ledger.Ledger
	Randomness random.Source
	Sequencer  random.Sequencer
	Events     *event.Emitter
	Caps       Caps
}

// Service is the transition engine.
type Service struct {
	store  storage.Store
	ledger ledger.Ledger
	rng    random.Source
	seq    random.Sequencer
	events *event.Emitter
	caps   Caps
	tracer trace.Tracer
}

// New creates a transition engine from the given configuration.
func New(cfg Config) (*Service, error) {
	if cfg.Store == nil {
		return nil, apperrors.New(apperrors.CodeUnknown, "registry store is required")
	}
	if cfg.Ledger == nil {
		return nil, apperrors.New(apperrors.CodeUnknown, "balance ledger is required")
	}
	if cfg.Randomness == nil {
		return nil, apperrors.New(apperrors.CodeUnknown, "randomness source is required")
	}
	if cfg.Sequencer == nil {
		return nil, apperrors.New(apperrors.CodeUnknown, "sequencer is required")
	}

	events := cfg.Events
	if events == nil {
		events = event.NewEmitter(nil)
	}

	return &Service{
		store:  cfg.Store,
		ledger: cfg.Ledger,
		rng:    cfg.Randomness,
		seq:    cfg.Sequencer,
		events: events,
		caps:   cfg.Caps.normalize(),
		tracer: otel.Tracer("github.com/thornvale/menagerie/internal/registry"),
	}, nil
}

// Creature fetches a creature by id.
func (s *Service) Creature(ctx context.Context, id creature.ID) (creature.Creature, error) {
	var c creature.Creature
	err := s.store.View(ctx, func(tx storage.ReadTx) error {
		var err error
		c, err = tx.Get(id)
		return err
	})
	return c, err
}

// OwnedBy lists the creature ids held by an owner. Membership order is not
// significant.
func (s *Service) OwnedBy(ctx context.Context, owner string) ([]creature.ID, error) {
	var ids []creature.ID
	err := s.store.View(ctx, func(tx storage.ReadTx) error {
		var err error
		ids, err = tx.OwnedBy(owner)
		return err
	})
	return ids, err
}

// IDByDNA resolves the dna index entry for the given dna, if any. The dna
// index is not unique: a newer mint with colliding dna overwrites the
// mapping.
func (s *Service) IDByDNA(ctx context.Context, dna creature.DNA) (creature.ID, bool, error) {
	var (
		id creature.ID
		ok bool
	)
	err := s.store.View(ctx, func(tx storage.ReadTx) error {
		var err error
		id, ok, err = tx.IDByDNA(dna)
		return err
	})
	return id, ok, err
}

// Count returns the number of creatures ever minted.
func (s *Service) Count(ctx context.Context) (uint64, error) {
	var count uint64
	err := s.store.View(ctx, func(tx storage.ReadTx) error {
		var err error
		count, err = tx.Count()
		return err
	})
	return count, err
}

// isOwner reports whether acct holds the creature. Returns ErrNotFound
// when the creature does not exist.
func isOwner(tx storage.ReadTx, id creature.ID, acct string) (bool, error) {
	c, err := tx.Get(id)
	if err != nil {
		return false, err
	}
	return c.Owner == acct, nil
}
