package memory_test

import (
	"errors"
	"testing"

	"github.com/openriddle/riddleledger/foundation/ledger/commitment"
	"github.com/openriddle/riddleledger/foundation/ledger/record"
	"github.com/openriddle/riddleledger/foundation/ledger/store"
	"github.com/openriddle/riddleledger/foundation/ledger/store/memory"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

const creator = "0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4"

func Test_SaveLoad(t *testing.T) {
	t.Log("Given the need to save and load records in memory.")
	{
		m, err := memory.New()
		if err != nil {
			t.Fatalf("\t%s\tShould be able to create the store: %v", failed, err)
		}
		defer m.Close()

		id := m.AllocateID()
		rec := record.New(id, "prompt", commitment.Commitment{Salt: "0x01", Digest: "0x02"}, 10, creator)

		if err := m.Save(rec); err != nil {
			t.Fatalf("\t%s\tShould be able to save the record: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to save the record.", success)

		got, err := m.Load(id)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to load the record: %v", failed, err)
		}
		if got != rec {
			t.Fatalf("\t%s\tShould load the record as saved.\ngot: %+v\nexp: %+v", failed, got, rec)
		}
		t.Logf("\t%s\tShould load the record as saved.", success)

		rec.PooledValue = 25
		if err := m.Save(rec); err != nil {
			t.Fatalf("\t%s\tShould be able to overwrite the record: %v", failed, err)
		}
		got, err = m.Load(id)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to load the record: %v", failed, err)
		}
		if got.PooledValue != 25 {
			t.Fatalf("\t%s\tShould load the latest state, got pool %d.", failed, got.PooledValue)
		}
		t.Logf("\t%s\tShould load the latest state.", success)

		if _, err := m.Load("missing"); !errors.Is(err, store.ErrNotExist) {
			t.Fatalf("\t%s\tShould get ErrNotExist for an unknown id, got %v.", failed, err)
		}
		t.Logf("\t%s\tShould get ErrNotExist for an unknown id.", success)
	}
}

func Test_Iteration(t *testing.T) {
	t.Log("Given the need to iterate records in insertion order.")
	{
		m, err := memory.New()
		if err != nil {
			t.Fatalf("\t%s\tShould be able to create the store: %v", failed, err)
		}
		defer m.Close()

		var ids []record.ID
		for i := 0; i < 3; i++ {
			id := m.AllocateID()
			rec := record.New(id, "prompt", commitment.Commitment{Salt: "0x01", Digest: "0x02"}, uint64(i), creator)
			if err := m.Save(rec); err != nil {
				t.Fatalf("\t%s\tShould be able to save record %d: %v", failed, i, err)
			}
			ids = append(ids, id)
		}

		listed, err := m.ListIDs()
		if err != nil {
			t.Fatalf("\t%s\tShould be able to list ids: %v", failed, err)
		}
		if len(listed) != len(ids) {
			t.Fatalf("\t%s\tShould list %d ids, got %d.", failed, len(ids), len(listed))
		}
		for i := range ids {
			if listed[i] != ids[i] {
				t.Fatalf("\t%s\tShould list id %d in insertion order.", failed, i)
			}
		}
		t.Logf("\t%s\tShould list ids in insertion order.", success)

		var walked []record.ID
		iter := m.ForEach()
		for rec, err := iter.Next(); !iter.Done(); rec, err = iter.Next() {
			if err != nil {
				t.Fatalf("\t%s\tShould be able to iterate: %v", failed, err)
			}
			walked = append(walked, rec.ID)
		}
		if len(walked) != len(ids) {
			t.Fatalf("\t%s\tShould walk %d records, got %d.", failed, len(ids), len(walked))
		}
		for i := range ids {
			if walked[i] != ids[i] {
				t.Fatalf("\t%s\tShould walk record %d in insertion order.", failed, i)
			}
		}
		t.Logf("\t%s\tShould walk records in insertion order.", success)
	}
}
