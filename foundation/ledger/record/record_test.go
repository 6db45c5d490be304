package record_test

import (
	"testing"

	"github.com/openriddle/riddleledger/foundation/ledger/record"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_ToPrincipalID(t *testing.T) {
	tests := []struct {
		name  string
		hex   string
		valid bool
	}{
		{"checksummed", "0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4", true},
		{"lowercase", "0xdd6b972ffcc631a62cae1bb9d80b7ff429c8eba4", true},
		{"no prefix", "dd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4", true},
		{"too short", "0xdd6B972f", false},
		{"not hex", "0xzz6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4", false},
		{"empty", "", false},
	}

	t.Log("Given the need to validate principal identifiers.")
	{
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := record.ToPrincipalID(tt.hex)
				if tt.valid && err != nil {
					t.Fatalf("\t%s\tShould accept %q: %v", failed, tt.hex, err)
				}
				if !tt.valid && err == nil {
					t.Fatalf("\t%s\tShould reject %q.", failed, tt.hex)
				}
				t.Logf("\t%s\tShould handle %q.", success, tt.hex)
			})
		}
	}
}
