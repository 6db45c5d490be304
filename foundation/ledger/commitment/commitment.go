// Package commitment provides the salted digest used to verify a proposed
// answer without persisting the solution in the clear.
package commitment

import (
	"crypto/rand"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// saltLength is the number of random bytes mixed into each digest. A fresh
// salt per riddle keeps identical solutions from producing identical digests.
const saltLength = 32

// Commitment represents the verifiable form of a riddle solution. The digest
// is the Keccak-256 hash of salt||solution over the exact solution bytes.
type Commitment struct {
	Salt   string `json:"salt"`
	Digest string `json:"digest"`
}

// New derives a commitment for the specified solution using a fresh salt.
func New(solution string) (Commitment, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return Commitment{}, fmt.Errorf("generating salt: %w", err)
	}

	com := Commitment{
		Salt:   hexutil.Encode(salt),
		Digest: hexutil.Encode(crypto.Keccak256(salt, []byte(solution))),
	}

	return com, nil
}

// Match reports whether the proposed answer produces the committed digest.
// The answer is hashed over its exact bytes with no trimming or case
// folding, so the comparison is byte-for-byte strict.
func (c Commitment) Match(answer string) bool {
	salt, err := hexutil.Decode(c.Salt)
	if err != nil {
		return false
	}

	return hexutil.Encode(crypto.Keccak256(salt, []byte(answer))) == c.Digest
}
