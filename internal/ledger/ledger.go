// Package ledger defines the fungible-balance port consumed by the
// transition engine. The engine never sees ledger internals: it queries
// balances and requests atomic transfers, and treats any failure as a
// reason to abort the surrounding state transition.
package ledger

import (
	"context"

	"github.com/thornvale/menagerie/internal/creature"
	apperrors "github.com/thornvale/menagerie/internal/errors"
)

// ErrInsufficientBalance indicates the sender cannot cover the transfer
// under the requested existence policy.
var ErrInsufficientBalance = apperrors.New(apperrors.CodeInsufficientBalance, "insufficient balance")

// ExistencePolicy constrains what a transfer may do to the sender's
// account.
type ExistencePolicy int

const (
	// KeepAlive requires the sender to retain its minimum required
	// balance after the transfer.
	KeepAlive ExistencePolicy = iota
	// AllowDeath permits the sender's balance to drop below the minimum.
	AllowDeath
)

// Ledger is the balance port.
type Ledger interface {
	// BalanceOf returns the free balance of an account. Unknown accounts
	// have a zero balance.
	BalanceOf(ctx context.Context, account string) (creature.Amount, error)
	// Transfer atomically moves amount from one account to another.
	// Fails with ErrInsufficientBalance when the sender cannot cover the
	// amount, or would violate the existence policy.
	Transfer(ctx context.Context, from, to string, amount creature.Amount, policy ExistencePolicy) error
}
