// Package memory implements the ability to read and write riddle records
// in memory. This store is used by tests and by nodes that don't need the
// ledger to survive a restart.
package memory

import (
	"sync"

	"github.com/google/uuid"
	"github.com/openriddle/riddleledger/foundation/ledger/record"
	"github.com/openriddle/riddleledger/foundation/ledger/store"
)

// Memory represents the entry store implementation for maintaining riddle
// records in memory. This implements the store.Store interface.
type Memory struct {
	mu      sync.RWMutex
	records map[record.ID]record.RiddleRecord
	order   []record.ID
}

// New constructs a Memory store for use.
func New() (*Memory, error) {
	m := Memory{
		records: make(map[record.ID]record.RiddleRecord),
	}

	return &m, nil
}

// Close in this implementation has nothing to do since everything
// is in memory.
func (m *Memory) Close() error {
	return nil
}

// AllocateID produces a fresh unique identifier for a new record.
func (m *Memory) AllocateID() record.ID {
	return record.ID(uuid.NewString())
}

// Save stores the record, keeping the insertion order of first save.
func (m *Memory) Save(rec record.RiddleRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.records[rec.ID]; !exists {
		m.order = append(m.order, rec.ID)
	}
	m.records[rec.ID] = rec

	return nil
}

// Load returns the record stored under the specified id.
func (m *Memory) Load(id record.ID) (record.RiddleRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, exists := m.records[id]
	if !exists {
		return record.RiddleRecord{}, store.ErrNotExist
	}

	return rec, nil
}

// ListIDs returns the ids of all records in insertion order.
func (m *Memory) ListIDs() ([]record.ID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]record.ID, len(m.order))
	copy(ids, m.order)

	return ids, nil
}

// ForEach returns an iterator to walk through all the records in
// insertion order.
func (m *Memory) ForEach() store.Iterator {
	return &memoryIterator{storage: m}
}

// =============================================================================

// memoryIterator represents the iteration implementation for walking
// through the records in memory. This implements the store Iterator
// interface.
type memoryIterator struct {
	storage *Memory // Access to the memory storage API.
	current int     // Position of the record being iterated over.
	eor     bool    // Represents the iterator is at the end of the records.
}

// Next retrieves the next record in insertion order.
func (mi *memoryIterator) Next() (record.RiddleRecord, error) {
	mi.storage.mu.RLock()
	defer mi.storage.mu.RUnlock()

	if mi.current >= len(mi.storage.order) {
		mi.eor = true
		return record.RiddleRecord{}, store.ErrNotExist
	}

	rec := mi.storage.records[mi.storage.order[mi.current]]
	mi.current++

	return rec, nil
}

// Done returns the end of records value.
func (mi *memoryIterator) Done() bool {
	return mi.eor
}
