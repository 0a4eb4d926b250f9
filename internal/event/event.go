// Package event records the notifications emitted by successful registry
// transitions.
package event

import (
	"encoding/json"
	"time"

	"github.com/thornvale/menagerie/internal/creature"
)

// Type identifies a notification kind.
type Type string

const (
	// TypeCreated is emitted when a new creature is minted.
	TypeCreated Type = "creature.created"
	// TypePriceSet is emitted when an owner sets or clears an ask price.
	TypePriceSet Type = "creature.price_set"
	// TypeTransferred is emitted when ownership moves directly.
	TypeTransferred Type = "creature.transferred"
	// TypeBought is emitted when a marketplace buy completes.
	TypeBought Type = "creature.bought"
)

// Record is a single notification in the journal.
type Record struct {
	ID          string          `json:"id"`
	Timestamp   time.Time       `json:"timestamp"`
	Type        Type            `json:"type"`
	PayloadJSON json.RawMessage `json:"payload"`
}

// CreatedPayload captures a Created notification.
type CreatedPayload struct {
	Owner      string      `json:"owner"`
	CreatureID creature.ID `json:"creature_id"`
}

// PriceSetPayload captures a PriceSet notification.
type PriceSetPayload struct {
	Owner      string           `json:"owner"`
	CreatureID creature.ID      `json:"creature_id"`
	NewPrice   *creature.Amount `json:"new_price,omitempty"`
}

// TransferredPayload captures a Transferred notification.
type TransferredPayload struct {
	From       string      `json:"from"`
	To         string      `json:"to"`
	CreatureID creature.ID `json:"creature_id"`
}

// BoughtPayload captures a Bought notification with the price actually
// paid.
type BoughtPayload struct {
	Buyer      string          `json:"buyer"`
	Seller     string          `json:"seller"`
	CreatureID creature.ID     `json:"creature_id"`
	Price      creature.Amount `json:"price"`
}
