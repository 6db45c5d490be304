// Package disk implements the ability to read and write riddle records to
// an append-only file on disk. Every save appends a full snapshot of the
// record, so the file doubles as a history of the ledger and the latest
// snapshot per id is the current state.
package disk

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/openriddle/riddleledger/foundation/ledger/record"
	"github.com/openriddle/riddleledger/foundation/ledger/store"
)

// Disk represents the entry store implementation for reading and storing
// riddle records in an append-only file on disk. This implements the
// store.Store interface.
type Disk struct {
	mu      sync.RWMutex
	dbFile  *os.File
	records map[record.ID]record.RiddleRecord
	order   []record.ID
}

// New constructs a Disk store, reading any existing records into memory
// for lookup support.
func New(dbPath string) (*Disk, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, err
	}

	dbFile, err := os.OpenFile(dbPath, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, err
	}

	d := Disk{
		dbFile:  dbFile,
		records: make(map[record.ID]record.RiddleRecord),
	}

	// Replay the snapshots from disk. The last snapshot for an id wins,
	// the order of first appearance is the insertion order.
	scanner := bufio.NewScanner(dbFile)
	for scanner.Scan() {
		var rec record.RiddleRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			dbFile.Close()
			return nil, fmt.Errorf("corrupt record snapshot: %w", err)
		}

		if _, exists := d.records[rec.ID]; !exists {
			d.order = append(d.order, rec.ID)
		}
		d.records[rec.ID] = rec
	}
	if err := scanner.Err(); err != nil {
		dbFile.Close()
		return nil, err
	}

	return &d, nil
}

// Close closes the underlying records file.
func (d *Disk) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.dbFile.Close()
}

// AllocateID produces a fresh unique identifier for a new record.
func (d *Disk) AllocateID() record.ID {
	return record.ID(uuid.NewString())
}

// Save appends a snapshot of the record to disk. The in-memory state is
// only updated once the snapshot is written.
func (d *Disk) Save(rec record.RiddleRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, err := d.dbFile.Write(append(data, '\n')); err != nil {
		return err
	}

	if _, exists := d.records[rec.ID]; !exists {
		d.order = append(d.order, rec.ID)
	}
	d.records[rec.ID] = rec

	return nil
}

// Load returns the latest snapshot stored under the specified id.
func (d *Disk) Load(id record.ID) (record.RiddleRecord, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	rec, exists := d.records[id]
	if !exists {
		return record.RiddleRecord{}, store.ErrNotExist
	}

	return rec, nil
}

// ListIDs returns the ids of all records in insertion order.
func (d *Disk) ListIDs() ([]record.ID, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ids := make([]record.ID, len(d.order))
	copy(ids, d.order)

	return ids, nil
}

// ForEach returns an iterator to walk through all the records in
// insertion order.
func (d *Disk) ForEach() store.Iterator {
	return &diskIterator{disk: d}
}

// =============================================================================

// diskIterator represents the iteration implementation for walking through
// the replayed records. This implements the store Iterator interface.
type diskIterator struct {
	disk    *Disk // Access to the disk storage API.
	current int   // Position of the record being iterated over.
	eor     bool  // Represents the iterator is at the end of the records.
}

// Next retrieves the next record in insertion order.
func (di *diskIterator) Next() (record.RiddleRecord, error) {
	di.disk.mu.RLock()
	defer di.disk.mu.RUnlock()

	if di.current >= len(di.disk.order) {
		di.eor = true
		return record.RiddleRecord{}, store.ErrNotExist
	}

	rec := di.disk.records[di.disk.order[di.current]]
	di.current++

	return rec, nil
}

// Done returns the end of records value.
func (di *diskIterator) Done() bool {
	return di.eor
}
