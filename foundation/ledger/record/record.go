// Package record defines the riddle record model that is maintained by the
// ledger engine and persisted through an entry store.
package record

import (
	"crypto/ecdsa"
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/openriddle/riddleledger/foundation/ledger/commitment"
)

// RiddleRecord represents one riddle held by the ledger. A record is created
// once, mutated only by contributions while unresolved and by exactly one
// successful resolution, and never deleted.
type RiddleRecord struct {
	ID          ID                    `json:"id"`
	Prompt      string                `json:"prompt"`
	Commitment  commitment.Commitment `json:"commitment"`
	PooledValue uint64                `json:"pooled_value"`
	Resolved    bool                  `json:"resolved"`
	Resolver    PrincipalID           `json:"resolver,omitempty"`
	Creator     PrincipalID           `json:"creator"`
	CreatedAt   time.Time             `json:"created_at"`
}

// New constructs a riddle record in its initial unresolved state.
func New(id ID, prompt string, com commitment.Commitment, pooledValue uint64, creator PrincipalID) RiddleRecord {
	return RiddleRecord{
		ID:          id,
		Prompt:      prompt,
		Commitment:  com,
		PooledValue: pooledValue,
		Creator:     creator,
		CreatedAt:   time.Now().UTC(),
	}
}

// =============================================================================

// ID represents the opaque unique identifier assigned to a riddle record
// when it is created.
type ID string

// ToID validates the specified string can be used as a record id.
func ToID(s string) (ID, error) {
	if s == "" {
		return "", errors.New("id is empty")
	}

	return ID(s), nil
}

// =============================================================================

// PrincipalID represents the authenticated identity of a caller. The value
// is a hex-encoded address derived from the principal's public key.
type PrincipalID string

// ToPrincipalID converts a hex-encoded string to a principal and validates
// the hex-encoded string is formatted correctly.
func ToPrincipalID(hex string) (PrincipalID, error) {
	p := PrincipalID(hex)
	if !p.IsPrincipalID() {
		return "", errors.New("invalid principal format")
	}

	return p, nil
}

// PublicKeyToPrincipalID converts the public key to a principal value.
func PublicKeyToPrincipalID(pk ecdsa.PublicKey) PrincipalID {
	return PrincipalID(crypto.PubkeyToAddress(pk).String())
}

// IsPrincipalID verifies whether the underlying data represents a valid
// hex-encoded address.
func (p PrincipalID) IsPrincipalID() bool {
	const addressLength = 20

	if has0xPrefix(p) {
		p = p[2:]
	}

	return len(p) == 2*addressLength && isHex(p)
}

// =============================================================================

// has0xPrefix validates the principal starts with a 0x.
func has0xPrefix(p PrincipalID) bool {
	return len(p) >= 2 && p[0] == '0' && (p[1] == 'x' || p[1] == 'X')
}

// isHex validates whether each byte is valid hexadecimal string.
func isHex(p PrincipalID) bool {
	if len(p)%2 != 0 {
		return false
	}

	for _, c := range []byte(p) {
		if !isHexCharacter(c) {
			return false
		}
	}

	return true
}

// isHexCharacter returns bool of c being a valid hexadecimal.
func isHexCharacter(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
