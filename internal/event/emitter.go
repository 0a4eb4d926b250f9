package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/thornvale/menagerie/internal/creature"
	"github.com/thornvale/menagerie/internal/id"
)

// Sink receives notification records. Delivery transport is out of scope;
// a sink may journal in memory, append to storage, or forward elsewhere.
type Sink interface {
	Append(ctx context.Context, rec Record) error
}

// Emitter builds and delivers notification records for state transitions.
type Emitter struct {
	sink  Sink
	clock func() time.Time
	newID func() (string, error)
}

// NewEmitter creates a new notification emitter.
func NewEmitter(sink Sink) *Emitter {
	return &Emitter{
		sink:  sink,
		clock: time.Now,
		newID: id.NewID,
	}
}

// emit appends a notification record. It is a no-op when the emitter or
// its sink is nil.
func (e *Emitter) emit(ctx context.Context, typ Type, payload any) error {
	if e == nil || e.sink == nil {
		return nil
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", typ, err)
	}

	recordID, err := e.newID()
	if err != nil {
		return fmt.Errorf("generate record id: %w", err)
	}

	return e.sink.Append(ctx, Record{
		ID:          recordID,
		Timestamp:   e.clock().UTC(),
		Type:        typ,
		PayloadJSON: payloadJSON,
	})
}

// EmitCreated emits a creature.created notification.
func (e *Emitter) EmitCreated(ctx context.Context, owner string, creatureID creature.ID) error {
	return e.emit(ctx, TypeCreated, CreatedPayload{
		Owner:      owner,
		CreatureID: creatureID,
	})
}

// EmitPriceSet emits a creature.price_set notification.
func (e *Emitter) EmitPriceSet(ctx context.Context, owner string, creatureID creature.ID, newPrice *creature.Amount) error {
	return e.emit(ctx, TypePriceSet, PriceSetPayload{
		Owner:      owner,
		CreatureID: creatureID,
		NewPrice:   newPrice,
	})
}

// EmitTransferred emits a creature.transferred notification.
func (e *Emitter) EmitTransferred(ctx context.Context, from, to string, creatureID creature.ID) error {
	return e.emit(ctx, TypeTransferred, TransferredPayload{
		From:       from,
		To:         to,
		CreatureID: creatureID,
	})
}

// EmitBought emits a creature.bought notification.
func (e *Emitter) EmitBought(ctx context.Context, buyer, seller string, creatureID creature.ID, price creature.Amount) error {
	return e.emit(ctx, TypeBought, BoughtPayload{
		Buyer:      buyer,
		Seller:     seller,
		CreatureID: creatureID,
		Price:      price,
	})
}
