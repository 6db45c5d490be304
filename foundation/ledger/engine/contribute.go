package engine

import (
	"fmt"

	"github.com/openriddle/riddleledger/foundation/ledger/record"
)

// Contribute moves the specified amount from the contributor's balance
// into the record's pool and returns the new pooled value. Once pooled,
// value is fungible and not attributed back to contributors. The debit and
// the record update apply together, a failed save compensates the debit.
func (e *Engine) Contribute(id record.ID, contributor record.PrincipalID, amount int64) (uint64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	mu := e.recordLock(id)
	mu.Lock()
	defer mu.Unlock()

	rec, err := e.store.Load(id)
	if err != nil {
		return 0, storeError(err)
	}

	if rec.Resolved {
		return 0, ErrAlreadyResolved
	}

	if err := e.balances.Debit(contributor, uint64(amount)); err != nil {
		return 0, fmt.Errorf("%w: debit of %d from %s", ErrInsufficientFunds, amount, contributor)
	}

	rec.PooledValue += uint64(amount)

	if err := e.store.Save(rec); err != nil {
		e.balances.Credit(contributor, uint64(amount))
		return 0, storeError(err)
	}

	e.ev("engine: contribute: riddle[%s] contributor[%s] amount[%d] pool[%d]", id, contributor, amount, rec.PooledValue)

	return rec.PooledValue, nil
}
