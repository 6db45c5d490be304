// Package sqlite implements the ability to read and write riddle records
// to a SQLite database. The rowid sequence preserves the insertion order
// required for listing.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"github.com/openriddle/riddleledger/foundation/ledger/commitment"
	"github.com/openriddle/riddleledger/foundation/ledger/record"
	"github.com/openriddle/riddleledger/foundation/ledger/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS records (
	seq          INTEGER PRIMARY KEY AUTOINCREMENT,
	id           TEXT NOT NULL UNIQUE,
	prompt       TEXT NOT NULL,
	salt         TEXT NOT NULL,
	digest       TEXT NOT NULL,
	pooled_value INTEGER NOT NULL,
	resolved     INTEGER NOT NULL,
	resolver     TEXT NOT NULL,
	creator      TEXT NOT NULL,
	created_at   TEXT NOT NULL
);`

// SQLite represents the entry store implementation for maintaining riddle
// records in a SQLite database. This implements the store.Store interface.
type SQLite struct {
	db *sql.DB
}

// New opens or creates a SQLite database at the specified path. WAL mode
// keeps reads concurrent with the single writer and the busy timeout
// bounds lock contention.
func New(dbPath string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	// SQLite supports one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("executing %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// AllocateID produces a fresh unique identifier for a new record.
func (s *SQLite) AllocateID() record.ID {
	return record.ID(uuid.NewString())
}

// Save stores the record, inserting it on first save and replacing the
// stored row on later saves. The row's seq keeps the insertion order.
func (s *SQLite) Save(rec record.RiddleRecord) error {
	const q = `
	INSERT INTO records (id, prompt, salt, digest, pooled_value, resolved, resolver, creator, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		pooled_value = excluded.pooled_value,
		resolved     = excluded.resolved,
		resolver     = excluded.resolver;`

	_, err := s.db.Exec(q,
		string(rec.ID),
		rec.Prompt,
		rec.Commitment.Salt,
		rec.Commitment.Digest,
		int64(rec.PooledValue),
		rec.Resolved,
		string(rec.Resolver),
		string(rec.Creator),
		rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return mapError(err)
	}

	return nil
}

// Load returns the record stored under the specified id.
func (s *SQLite) Load(id record.ID) (record.RiddleRecord, error) {
	const q = `
	SELECT id, prompt, salt, digest, pooled_value, resolved, resolver, creator, created_at
	FROM records WHERE id = ?;`

	rec, err := scanRecord(s.db.QueryRow(q, string(id)))
	if err != nil {
		return record.RiddleRecord{}, err
	}

	return rec, nil
}

// ListIDs returns the ids of all records in insertion order.
func (s *SQLite) ListIDs() ([]record.ID, error) {
	rows, err := s.db.Query(`SELECT id FROM records ORDER BY seq;`)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var ids []record.ID
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, record.ID(id))
	}

	return ids, rows.Err()
}

// ForEach returns an iterator to walk through all the records in
// insertion order.
func (s *SQLite) ForEach() store.Iterator {
	ids, err := s.ListIDs()

	return &sqliteIterator{storage: s, ids: ids, err: err}
}

// =============================================================================

// sqliteIterator represents the iteration implementation for walking
// through the records in the database. This implements the store Iterator
// interface.
type sqliteIterator struct {
	storage *SQLite
	ids     []record.ID
	err     error
	current int
	eor     bool
}

// Next retrieves the next record in insertion order.
func (si *sqliteIterator) Next() (record.RiddleRecord, error) {
	if si.err != nil {
		return record.RiddleRecord{}, si.err
	}

	if si.current >= len(si.ids) {
		si.eor = true
		return record.RiddleRecord{}, store.ErrNotExist
	}

	rec, err := si.storage.Load(si.ids[si.current])
	si.current++

	return rec, err
}

// Done returns the end of records value.
func (si *sqliteIterator) Done() bool {
	return si.eor
}

// =============================================================================

// scanRecord builds a riddle record from a database row.
func scanRecord(row *sql.Row) (record.RiddleRecord, error) {
	var (
		rec       record.RiddleRecord
		id        string
		salt      string
		digest    string
		pooled    int64
		resolver  string
		creator   string
		createdAt string
	)

	err := row.Scan(&id, &rec.Prompt, &salt, &digest, &pooled, &rec.Resolved, &resolver, &creator, &createdAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return record.RiddleRecord{}, store.ErrNotExist
	case err != nil:
		return record.RiddleRecord{}, mapError(err)
	}

	rec.ID = record.ID(id)
	rec.Commitment = commitment.Commitment{Salt: salt, Digest: digest}
	rec.PooledValue = uint64(pooled)
	rec.Resolver = record.PrincipalID(resolver)
	rec.Creator = record.PrincipalID(creator)

	if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return record.RiddleRecord{}, fmt.Errorf("parsing created_at: %w", err)
	}

	return rec, nil
}

// mapError converts driver level lock contention into the store's conflict
// error so callers know the operation is safe to retry.
func mapError(err error) error {
	var sqlErr sqlite3.Error
	if errors.As(err, &sqlErr) {
		if sqlErr.Code == sqlite3.ErrBusy || sqlErr.Code == sqlite3.ErrLocked {
			return fmt.Errorf("%w: %s", store.ErrConflict, err)
		}
	}

	return err
}
