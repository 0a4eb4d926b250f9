package registry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/thornvale/menagerie/internal/creature"
	apperrors "github.com/thornvale/menagerie/internal/errors"
	"github.com/thornvale/menagerie/internal/ledger"
	"github.com/thornvale/menagerie/internal/storage"
)

// SetPrice sets or clears the ask price on a creature the caller owns.
// A nil price delists the creature.
func (s *Service) SetPrice(ctx context.Context, caller string, id creature.ID, price *creature.Amount) error {
	ctx, span := s.tracer.Start(ctx, "registry.SetPrice")
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

		c.Price = price
		return tx.Put(id, c)
	})
	if err != nil {
		return err
	}

	if err := s.events.EmitPriceSet(ctx, caller, id, price); err != nil {
		return apperrors.Wrap(apperrors.CodeUnknown, "emit price set", err)
	}
	return nil
}

// Buy purchases a listed creature. The bid must meet the ask, and the
// bid is what moves: the buyer is debited and the seller credited for the
// full bid even when it exceeds the ask. Ownership reassignment is staged
// in the registry transaction and the ledger transfer runs as its final
// step, so a failure on either side leaves both the registry and the
// ledger untouched.
func (s *Service) Buy(ctx context.Context, buyer string, id creature.ID, bid creature.Amount) error {
	ctx, span := s.tracer.Start(ctx, "registry.Buy")
	defer span.End()
	span.SetAttributes(attribute.String("registry.creature_id", id.String()))

	var (
		seller string
		paid   creature.Amount
	)
	err := s.store.Update(ctx, func(tx storage.Tx) error {
		c, err := tx.Get(id)
		if err != nil {
			return err
		}
		if c.Owner == buyer {
			return ErrBuyerIsOwner
		}
		if !c.ForSale() {
			return ErrNotForSale
		}
		if bid < *c.Price {
			return ErrBidTooLow
		}

		balance, err := s.ledger.BalanceOf(ctx, buyer)
		if err != nil {
			return err
		}
		if balance < bid {
			return ledger.ErrInsufficientBalance
		}

		seller = c.Owner
		paid = bid
		if err := transferTo(tx, id, c, buyer); err != nil {
			return err
		}

		// Last mutation before commit: a ledger failure here aborts the
		// staged registry changes above.
		return s.ledger.Transfer(ctx, buyer, seller, bid, ledger.KeepAlive)
	})
	if err != nil {
		return err
	}

	if err := s.events.EmitBought(ctx, buyer, seller, id, paid); err != nil {
		return apperrors.Wrap(apperrors.CodeUnknown, "emit bought", err)
	}
	return nil
}
