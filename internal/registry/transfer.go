package registry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/thornvale/menagerie/internal/creature"
	apperrors "github.com/thornvale/menagerie/internal/errors"
	"github.com/thornvale/menagerie/internal/storage"
)

// Transfer moves a creature from caller to another account. The caller
// must own the creature and may not transfer to itself. Any ask price is
// cleared so the new owner never inherits an open sale.
func (s *Service) Transfer(ctx context.Context, caller, to string, id creature.ID) error {
	ctx, span := s.tracer.Start(ctx, "registry.Transfer")
	defer span.End()
	span.SetAttributes(attribute.String("registry.creature_id", id.String()))

	err := s.store.Update(ctx, func(tx storage.Tx) error {
		c, err := tx.Get(id)
		if err != nil {
			return err
		}
		if c.Owner != caller {
			return ErrNotOwner
		}
		if to == caller {
			return ErrTransferToSelf
		}
		return transferTo(tx, id, c, to)
	})
	if err != nil {
		return err
	}

	if err := s.events.EmitTransferred(ctx, caller, to, id); err != nil {
		return apperrors.Wrap(apperrors.CodeUnknown, "emit transferred", err)
	}
	return nil
}

// transferTo reassigns a creature to a new owner inside tx: remove from
// the old owner's index, append to the new owner's (which may fail at
// capacity), clear the ask price, and rewrite the record.
func transferTo(tx storage.Tx, id creature.ID, c creature.Creature, to string) error {
	if err := tx.RemoveOwned(c.Owner, id); err != nil {
		return err
	}
	if err := tx.AppendOwned(to, id); err != nil {
		return err
	}

	c.Owner = to
	c.Price = nil
	return tx.Put(id, c)
}
