// Package balance maintains the value balances for all principals known to
// the ledger. It is the collaborator that moves value in and out of riddle
// records.
package balance

import (
	"errors"
	"sync"

	"github.com/openriddle/riddleledger/foundation/ledger/genesis"
	"github.com/openriddle/riddleledger/foundation/ledger/record"
)

// ErrInsufficientFunds is returned from a debit when the principal's
// balance can't cover the requested amount.
var ErrInsufficientFunds = errors.New("insufficient funds")

// Ledger manages the balances for principals who transact against the
// riddle ledger.
type Ledger struct {
	mu       sync.RWMutex
	genesis  genesis.Genesis
	balances map[record.PrincipalID]uint64
}

// New constructs a balance ledger seeded with the genesis balances.
func New(genesis genesis.Genesis) (*Ledger, error) {
	ldgr := Ledger{
		genesis:  genesis,
		balances: make(map[record.PrincipalID]uint64),
	}

	for principalStr, balance := range genesis.Balances {
		principalID, err := record.ToPrincipalID(principalStr)
		if err != nil {
			return nil, err
		}
		ldgr.balances[principalID] = balance
	}

	return &ldgr, nil
}

// Reset re-initializes the balances back to the genesis information.
func (ldgr *Ledger) Reset() error {
	ldgr.mu.Lock()
	defer ldgr.mu.Unlock()

	ldgr.balances = make(map[record.PrincipalID]uint64)
	for principalStr, balance := range ldgr.genesis.Balances {
		principalID, err := record.ToPrincipalID(principalStr)
		if err != nil {
			return err
		}
		ldgr.balances[principalID] = balance
	}

	return nil
}

// Debit removes the specified amount from the principal's balance. The
// whole amount is removed or the balance is left untouched.
func (ldgr *Ledger) Debit(principalID record.PrincipalID, amount uint64) error {
	ldgr.mu.Lock()
	defer ldgr.mu.Unlock()

	balance := ldgr.balances[principalID]
	if balance < amount {
		return ErrInsufficientFunds
	}

	ldgr.balances[principalID] = balance - amount

	return nil
}

// Credit adds the specified amount to the principal's balance. A credit
// never fails, balances are created on first use.
func (ldgr *Ledger) Credit(principalID record.PrincipalID, amount uint64) {
	ldgr.mu.Lock()
	defer ldgr.mu.Unlock()

	ldgr.balances[principalID] += amount
}

// Balance returns the current balance for the specified principal.
func (ldgr *Ledger) Balance(principalID record.PrincipalID) uint64 {
	ldgr.mu.RLock()
	defer ldgr.mu.RUnlock()

	return ldgr.balances[principalID]
}

// Copy makes a copy of the current balances for all principals.
func (ldgr *Ledger) Copy() map[record.PrincipalID]uint64 {
	ldgr.mu.RLock()
	defer ldgr.mu.RUnlock()

	balances := make(map[record.PrincipalID]uint64)
	for principalID, balance := range ldgr.balances {
		balances[principalID] = balance
	}

	return balances
}
