package ledger

import (
	"context"
	"sync"

	"github.com/thornvale/menagerie/internal/creature"
)

// Memory is an in-memory ledger with a configurable minimum required
// balance for the keep-alive policy.
type Memory struct {
	mu         sync.RWMutex
	balances   map[string]creature.Amount
	minBalance creature.Amount
}

// NewMemory creates an empty in-memory ledger. minBalance is the balance a
// sender must retain under the KeepAlive policy.
func NewMemory(minBalance creature.Amount) *Memory {
	return &Memory{
		balances:   make(map[string]creature.Amount),
		minBalance: minBalance,
	}
}

// SetBalance sets an account's balance directly. Intended for genesis
// funding and tests.
func (m *Memory) SetBalance(account string, amount creature.Amount) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[account] = amount
}

// BalanceOf returns the free balance of an account.
func (m *Memory) BalanceOf(ctx context.Context, account string) (creature.Amount, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.balances[account], nil
}

// Transfer atomically moves amount between accounts.
func (m *Memory) Transfer(ctx context.Context, from, to string, amount creature.Amount, policy ExistencePolicy) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	balance := m.balances[from]
	if balance < amount {
		return ErrInsufficientBalance
	}
	remaining := balance - amount
	if policy == KeepAlive && remaining < m.minBalance {
		return ErrInsufficientBalance
	}

	m.balances[from] = remaining
	m.balances[to] += amount
	return nil
}
