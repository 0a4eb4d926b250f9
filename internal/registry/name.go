package registry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/thornvale/menagerie/internal/creature"
	"github.com/thornvale/menagerie/internal/storage"
)

// SetName names a creature the caller owns. Renaming is allowed; the new
// name replaces the old one. Name length is validated in bytes against the
// configured bounds, capacity first.
func (s *Service) SetName(ctx context.Context, caller string, id creature.ID, name []byte) error {
	ctx, span := s.tracer.Start(ctx, "registry.SetName")
	defer span.End()
	span.SetAttributes(attribute.String("registry.creature_id", id.String()))

	return s.store.Update(ctx, func(tx storage.Tx) error {
		c, err := tx.Get(id)
		if err != nil {
			return err
		}
		if c.Owner != caller {
			return ErrNotOwner
		}
		if err := creature.ValidateName(name, s.caps.MinNameLength, s.caps.MaxNameLength); err != nil {
			return err
		}

		c.Name = append([]byte(nil), name...)
		return tx.Put(id, c)
	})
}
