package engine

import (
	"github.com/openriddle/riddleledger/foundation/ledger/record"
)

// Query returns a copy of the record stored under the specified id.
func (e *Engine) Query(id record.ID) (record.RiddleRecord, error) {
	rec, err := e.store.Load(id)
	if err != nil {
		return record.RiddleRecord{}, storeError(err)
	}

	return rec, nil
}

// List returns all records in insertion order.
func (e *Engine) List() ([]record.RiddleRecord, error) {
	var recs []record.RiddleRecord

	iter := e.store.ForEach()
	for rec, err := iter.Next(); !iter.Done(); rec, err = iter.Next() {
		if err != nil {
			return nil, storeError(err)
		}
		recs = append(recs, rec)
	}

	return recs, nil
}

// Count returns the number of records ever created.
func (e *Engine) Count() (int, error) {
	ids, err := e.store.ListIDs()
	if err != nil {
		return 0, storeError(err)
	}

	return len(ids), nil
}

// Balance returns the current balance for the specified principal.
func (e *Engine) Balance(principalID record.PrincipalID) uint64 {
	return e.balances.Balance(principalID)
}

// Balances returns a copy of the current balances for all principals.
func (e *Engine) Balances() map[record.PrincipalID]uint64 {
	return e.balances.Copy()
}
