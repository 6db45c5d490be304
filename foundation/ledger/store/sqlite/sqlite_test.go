package sqlite_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openriddle/riddleledger/foundation/ledger/commitment"
	"github.com/openriddle/riddleledger/foundation/ledger/record"
	"github.com/openriddle/riddleledger/foundation/ledger/store"
	"github.com/openriddle/riddleledger/foundation/ledger/store/sqlite"
)

const creator = "0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4"

func newStore(t *testing.T) (*sqlite.SQLite, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "records.db")
	s, err := sqlite.New(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s, dbPath
}

func newRecord(s *sqlite.SQLite, pool uint64) record.RiddleRecord {
	id := s.AllocateID()
	return record.New(id, "prompt", commitment.Commitment{Salt: "0x01", Digest: "0x02"}, pool, creator)
}

func TestSQLite_SaveLoad(t *testing.T) {
	s, _ := newStore(t)

	rec := newRecord(s, 10)
	require.NoError(t, s.Save(rec))

	got, err := s.Load(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.Prompt, got.Prompt)
	assert.Equal(t, rec.Commitment, got.Commitment)
	assert.Equal(t, rec.PooledValue, got.PooledValue)
	assert.Equal(t, rec.Creator, got.Creator)
	assert.False(t, got.Resolved)
	assert.True(t, rec.CreatedAt.Equal(got.CreatedAt), "created_at should round trip")
}

func TestSQLite_LoadMissing(t *testing.T) {
	s, _ := newStore(t)

	_, err := s.Load("missing")
	assert.True(t, errors.Is(err, store.ErrNotExist), "expected ErrNotExist, got %v", err)
}

func TestSQLite_SaveUpdates(t *testing.T) {
	s, _ := newStore(t)

	rec := newRecord(s, 10)
	require.NoError(t, s.Save(rec))

	rec.PooledValue = 0
	rec.Resolved = true
	rec.Resolver = record.PrincipalID(creator)
	require.NoError(t, s.Save(rec))

	got, err := s.Load(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), got.PooledValue)
	assert.True(t, got.Resolved)
	assert.Equal(t, rec.Resolver, got.Resolver)

	ids, err := s.ListIDs()
	require.NoError(t, err)
	assert.Len(t, ids, 1, "updating must not create a second row")
}

func TestSQLite_InsertionOrder(t *testing.T) {
	s, _ := newStore(t)

	var ids []record.ID
	for i := 0; i < 5; i++ {
		rec := newRecord(s, uint64(i))
		require.NoError(t, s.Save(rec))
		ids = append(ids, rec.ID)
	}

	listed, err := s.ListIDs()
	require.NoError(t, err)
	assert.Equal(t, ids, listed)

	var walked []record.ID
	iter := s.ForEach()
	for rec, err := iter.Next(); !iter.Done(); rec, err = iter.Next() {
		require.NoError(t, err)
		walked = append(walked, rec.ID)
	}
	assert.Equal(t, ids, walked)
}

func TestSQLite_Reopen(t *testing.T) {
	s, dbPath := newStore(t)

	rec := newRecord(s, 42)
	rec.CreatedAt = rec.CreatedAt.Truncate(time.Millisecond)
	require.NoError(t, s.Save(rec))
	require.NoError(t, s.Close())

	s2, err := sqlite.New(dbPath)
	require.NoError(t, err)
	defer s2.Close()

	got, err := s2.Load(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), got.PooledValue)
}
