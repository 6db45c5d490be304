package engine

import (
	"errors"
	"fmt"

	"github.com/openriddle/riddleledger/foundation/ledger/limiter"
	"github.com/openriddle/riddleledger/foundation/ledger/record"
)

// Resolve attempts to settle the riddle with the proposed answer. At most
// one resolution ever succeeds per record: the record lock is held across
// the check, the state flip, and the payout credit, so callers racing with
// the correct answer observe exactly one winner and the losers fail with
// ErrAlreadyResolved. A wrong answer leaves the record untouched.
func (e *Engine) Resolve(id record.ID, solver record.PrincipalID, proposedAnswer string) (uint64, error) {
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

	if e.limiter != nil {
		if err := e.limiter.Check(id, solver); err != nil {
			if errors.Is(err, limiter.ErrAttemptsExhausted) {
				return 0, fmt.Errorf("%w: solver[%s] riddle[%s]", err, solver, id)
			}
			return 0, err
		}
	}

	if !rec.Commitment.Match(proposedAnswer) {
		if e.limiter != nil {
			e.limiter.RecordFailure(id, solver)
		}
		return 0, ErrWrongAnswer
	}

	// Capture the payout before zeroing the pool. The save carries the
	// resolved flag, the resolver, and the emptied pool as one snapshot,
	// and the credit only happens once that snapshot is stored.
	payout := rec.PooledValue
	rec.Resolved = true
	rec.Resolver = solver
	rec.PooledValue = 0

	if err := e.store.Save(rec); err != nil {
		return 0, storeError(err)
	}

	e.balances.Credit(solver, payout)

	e.ev("engine: resolve: riddle[%s] solver[%s] payout[%d]", id, solver, payout)

	return payout, nil
}
