// Package limiter bounds the number of failed resolution attempts a
// principal may make against a single riddle. It replaces client-side
// attempt tracking, which provides no real guarantee.
package limiter

import (
	"errors"
	"sync"

	"github.com/openriddle/riddleledger/foundation/ledger/record"
)

// ErrAttemptsExhausted is returned when a principal has used all of their
// failed attempts against a riddle.
var ErrAttemptsExhausted = errors.New("attempts exhausted")

// attemptKey identifies the attempt counter for one principal against
// one riddle.
type attemptKey struct {
	ID        record.ID
	Principal record.PrincipalID
}

// Limiter maintains failed attempt counts keyed by riddle and principal.
type Limiter struct {
	mu          sync.Mutex
	maxAttempts int
	failures    map[attemptKey]int
}

// New constructs a limiter allowing the specified number of failed
// attempts per riddle and principal.
func New(maxAttempts int) *Limiter {
	return &Limiter{
		maxAttempts: maxAttempts,
		failures:    make(map[attemptKey]int),
	}
}

// Check reports whether the principal may attempt the specified riddle.
func (l *Limiter) Check(id record.ID, principal record.PrincipalID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.failures[attemptKey{ID: id, Principal: principal}] >= l.maxAttempts {
		return ErrAttemptsExhausted
	}

	return nil
}

// RecordFailure counts a failed attempt by the principal against the
// specified riddle.
func (l *Limiter) RecordFailure(id record.ID, principal record.PrincipalID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.failures[attemptKey{ID: id, Principal: principal}]++
}
