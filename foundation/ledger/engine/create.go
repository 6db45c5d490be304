package engine

import (
	"fmt"

	"github.com/openriddle/riddleledger/foundation/ledger/commitment"
	"github.com/openriddle/riddleledger/foundation/ledger/record"
)

// Create allocates a new riddle record and appends it to the registry. If
// an initial value is specified, that value is moved from the creator's
// balance into the record's pool. If the record can't be stored, the
// debit is compensated and no record exists.
func (e *Engine) Create(creator record.PrincipalID, prompt string, solution string, initialValue int64) (record.ID, error) {
	switch {
	case prompt == "":
		return "", fmt.Errorf("%w: prompt is required", ErrInvalidInput)
	case solution == "":
		return "", fmt.Errorf("%w: solution is required", ErrInvalidInput)
	case initialValue < 0:
		return "", fmt.Errorf("%w: initial value can't be negative", ErrInvalidInput)
	}

	com, err := commitment.New(solution)
	if err != nil {
		return "", fmt.Errorf("deriving commitment: %w", err)
	}

	if initialValue > 0 {
		if err := e.balances.Debit(creator, uint64(initialValue)); err != nil {
			return "", fmt.Errorf("%w: debit of %d from %s", ErrInsufficientFunds, initialValue, creator)
		}
	}

	id := e.store.AllocateID()
	rec := record.New(id, prompt, com, uint64(initialValue), creator)

	if err := e.store.Save(rec); err != nil {
		if initialValue > 0 {
			e.balances.Credit(creator, uint64(initialValue))
		}
		return "", storeError(err)
	}

	e.ev("engine: create: riddle[%s] creator[%s] pool[%d]", id, creator, initialValue)

	return id, nil
}
