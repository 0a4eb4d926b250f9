package registry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/thornvale/menagerie/internal/creature"
	apperrors "github.com/thornvale/menagerie/internal/errors"
	"github.com/thornvale/menagerie/internal/storage"
)

// Mint creates a creature with freshly derived dna and gender and assigns
// it to owner. The dna and gender draws use separate domain tags so the
// two never correlate, and both are reproducible from the call position.
func (s *Service) Mint(ctx context.Context, owner string) (creature.ID, error) {
	ctx, span := s.tracer.Start(ctx, "registry.Mint")
	defer span.End()
	span.SetAttributes(attribute.String("registry.owner", owner))

	dna, err := s.drawDNA()
	if err != nil {
		return creature.ID{}, err
	}
	gender, err := s.drawGender()
	if err != nil {
		return creature.ID{}, err
	}

	return s.mint(ctx, owner, dna, gender)
}

// MintWith creates a creature assigned to owner with the parts supplied:
// a nil dna or an unspecified gender is derived the same way Mint derives
// it. Used for replaying recorded mints, such as genesis state.
func (s *Service) MintWith(ctx context.Context, owner string, dna *creature.DNA, gender creature.Gender) (creature.ID, error) {
	ctx, span := s.tracer.Start(ctx, "registry.MintWith")
	defer span.End()

	var d creature.DNA
	if dna != nil {
		d = *dna
	} else {
		var err error
		d, err = s.drawDNA()
		if err != nil {
			return creature.ID{}, err
		}
	}

	if gender == creature.GenderUnspecified {
		var err error
		gender, err = s.drawGender()
		if err != nil {
			return creature.ID{}, err
		}
	}
	if !gender.Valid() {
		return creature.ID{}, apperrors.New(apperrors.CodeUnknown, "gender must be male or female")
	}

	return s.mint(ctx, owner, d, gender)
}

func (s *Service) drawDNA() (creature.DNA, error) {
	draw, err := s.rng.Random(dnaDomainTag)
	if err != nil {
		return creature.DNA{}, apperrors.Wrap(apperrors.CodeUnknown, "draw dna randomness", err)
	}
	dna, err := creature.DeriveDNA(draw, s.seq.OpIndex(), s.seq.Block())
	if err != nil {
		return creature.DNA{}, apperrors.Wrap(apperrors.CodeUnknown, "derive dna", err)
	}
	return dna, nil
}

func (s *Service) drawGender() (creature.Gender, error) {
	draw, err := s.rng.Random(genderDomainTag)
	if err != nil {
		return creature.GenderUnspecified, apperrors.Wrap(apperrors.CodeUnknown, "draw gender randomness", err)
	}
	return creature.GenderFromDraw(draw[0]), nil
}

func (s *Service) mint(ctx context.Context, owner string, dna creature.DNA, gender creature.Gender) (creature.ID, error) {
	c := creature.Creature{
		DNA:    dna,
		Gender: gender,
		Owner:  owner,
	}
	id, err := creature.DeriveID(c)
	if err != nil {
		return creature.ID{}, apperrors.Wrap(apperrors.CodeUnknown, "derive creature id", err)
	}

	err = s.store.Update(ctx, func(tx storage.Tx) error {
		return insert(tx, id, c)
	})
	if err != nil {
		return creature.ID{}, err
	}

	if err := s.events.EmitCreated(ctx, owner, id); err != nil {
		return id, apperrors.Wrap(apperrors.CodeUnknown, "emit created", err)
	}
	return id, nil
}

// insert adds a fully formed creature to the registry inside tx. Check
// order is fixed: counter headroom, then duplicate id, then owner
// capacity. The dna index entry is written last-wins; colliding dna from
// an earlier mint is silently remapped to the new id.
func insert(tx storage.Tx, id creature.ID, c creature.Creature) error {
	if _, err := tx.IncrementCount(); err != nil {
		return err
	}

	if _, err := tx.Get(id); err == nil {
		return storage.ErrAlreadyExists
	} else if !apperrors.IsCode(err, apperrors.CodeNotFound) {
		return err
	}
	if err := tx.AppendOwned(c.Owner, id); err != nil {
		return err
	}
	if err := tx.MapDNA(c.DNA, id); err != nil {
		return err
	}
	return tx.Put(id, c)
}
