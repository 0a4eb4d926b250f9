package registry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/thornvale/menagerie/internal/creature"
	apperrors "github.com/thornvale/menagerie/internal/errors"
	"github.com/thornvale/menagerie/internal/storage"
)

// Breed creates a child from two parents the caller owns. Parents must be
// of different sex. Each bit of the child's dna is inherited from one of
// the parents under a random mask drawn from its own domain tag; the
// child's gender is drawn independently, like any other mint. Parents are
// read-only throughout.
func (s *Service) Breed(ctx context.Context, caller string, parent1, parent2 creature.ID) (creature.ID, error) {
	ctx, span := s.tracer.Start(ctx, "registry.Breed")
	defer span.End()
	span.SetAttributes(
		attribute.String("registry.parent1_id", parent1.String()),
		attribute.String("registry.parent2_id", parent2.String()),
	)

	maskDraw, err := s.rng.Random(breedDomainTag)
	if err != nil {
		return creature.ID{}, apperrors.Wrap(apperrors.CodeUnknown, "draw breed randomness", err)
	}
	var mask creature.DNA
	copy(mask[:], maskDraw[:creature.DNALength])

	gender, err := s.drawGender()
	if err != nil {
		return creature.ID{}, err
	}

	var childID creature.ID
	err = s.store.Update(ctx, func(tx storage.Tx) error {
		p1, err := tx.Get(parent1)
		if err != nil {
			return err
		}
		p2, err := tx.Get(parent2)
		if err != nil {
			return err
		}
		if p1.Owner != caller || p2.Owner != caller {
			return ErrNotOwner
		}
		if p1.Gender == p2.Gender {
			return ErrSameSex
		}

		child := creature.Creature{
			DNA:    creature.Crossover(mask, p1.DNA, p2.DNA),
			Gender: gender,
			Owner:  caller,
		}
		childID, err = creature.DeriveID(child)
		if err != nil {
			return apperrors.Wrap(apperrors.CodeUnknown, "derive creature id", err)
		}
		return insert(tx, childID, child)
	})
	if err != nil {
		return creature.ID{}, err
	}

	if err := s.events.EmitCreated(ctx, caller, childID); err != nil {
		return childID, apperrors.Wrap(apperrors.CodeUnknown, "emit created", err)
	}
	return childID, nil
}
