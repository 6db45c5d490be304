// Package engine is the core API for the riddle ledger and implements all
// the business rules and processing. It owns the collection of riddle
// records and guarantees each record is resolved at most once.
package engine

import (
	"errors"
	"fmt"
	"sync"

	"github.com/openriddle/riddleledger/foundation/ledger/balance"
	"github.com/openriddle/riddleledger/foundation/ledger/limiter"
	"github.com/openriddle/riddleledger/foundation/ledger/record"
	"github.com/openriddle/riddleledger/foundation/ledger/store"
)

// EventHandler defines a function that is called when events occur in the
// processing of ledger operations.
type EventHandler func(v string, args ...any)

// Config represents the configuration required to start the ledger engine.
type Config struct {
	Store     store.Store
	Balances  *balance.Ledger
	Limiter   *limiter.Limiter
	EvHandler EventHandler
}

// Engine manages the riddle ledger. All value movement composes with the
// record mutation inside each operation, either the full effect of an
// operation is visible or none of it is.
type Engine struct {
	store    store.Store
	balances *balance.Ledger
	limiter  *limiter.Limiter
	ev       EventHandler

	mu    sync.Mutex
	locks map[record.ID]*sync.Mutex
}

// New constructs a new ledger engine for record management.
func New(cfg Config) (*Engine, error) {
	if cfg.Store == nil {
		return nil, errors.New("store is required")
	}
	if cfg.Balances == nil {
		return nil, errors.New("balance ledger is required")
	}

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	engine := Engine{
		store:    cfg.Store,
		balances: cfg.Balances,
		limiter:  cfg.Limiter,
		ev:       ev,
		locks:    make(map[record.ID]*sync.Mutex),
	}

	return &engine, nil
}

// Shutdown cleanly brings the engine down.
func (e *Engine) Shutdown() error {
	return e.store.Close()
}

// recordLock returns the mutex serializing mutations of the specified
// record. Resolutions racing on the same record take this lock across the
// whole check-then-set-then-credit sequence.
func (e *Engine) recordLock(id record.ID) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	mu, exists := e.locks[id]
	if !exists {
		mu = &sync.Mutex{}
		e.locks[id] = mu
	}

	return mu
}

// storeError maps entry store failures onto the engine's error set.
func storeError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotExist):
		return ErrNotFound
	case errors.Is(err, store.ErrConflict):
		return fmt.Errorf("%w: %s", ErrTransactionConflict, err)
	default:
		return fmt.Errorf("%w: %s", ErrStoreUnavailable, err)
	}
}
