// Package store defines the behavior required of any entry store that
// persists riddle records for the ledger engine.
package store

import (
	"errors"

	"github.com/openriddle/riddleledger/foundation/ledger/record"
)

// ErrNotExist is returned from a load when the specified id has never
// been saved to the store.
var ErrNotExist = errors.New("record does not exist")

// ErrConflict is returned when a save lost a write conflict inside the
// store. The operation committed nothing and is safe to retry whole.
var ErrConflict = errors.New("write conflict")

// Store interface represents the behavior required to be implemented by
// any package providing support for persisting and reading riddle records.
// Save and Load are atomic, either the full record is applied or nothing
// changes. Ids remain resolvable for the lifetime of the store.
type Store interface {
	AllocateID() record.ID
	Save(rec record.RiddleRecord) error
	Load(id record.ID) (record.RiddleRecord, error)
	ListIDs() ([]record.ID, error)
	ForEach() Iterator
	Close() error
}

// Iterator interface represents the behavior required to be implemented by
// any package providing support to walk the records in insertion order.
type Iterator interface {
	Next() (record.RiddleRecord, error)
	Done() bool
}
