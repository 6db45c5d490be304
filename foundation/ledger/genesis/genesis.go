// Package genesis maintains access to the genesis file that seeds the
// balance ledger with the starting value for each principal.
package genesis

import (
	"encoding/json"
	"os"
	"time"
)

// Genesis represents the genesis file.
type Genesis struct {
	Date     time.Time         `json:"date"`
	LedgerID string            `json:"ledger_id"` // Unique id for this running instance.
	Balances map[string]uint64 `json:"balances"`  // Starting balance for each principal.
}

// Load opens and consumes the genesis file at the specified path.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	var genesis Genesis
	if err := json.Unmarshal(content, &genesis); err != nil {
		return Genesis{}, err
	}

	return genesis, nil
}
