package engine

import "errors"

// Set of error variables for the ledger operations. Callers can use these
// to distinguish the failure and decide whether a retry is safe.
var (
	// ErrInvalidInput indicates malformed arguments. The caller must fix
	// the request, a retry with the same arguments will fail again.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates the specified riddle id was never issued.
	ErrNotFound = errors.New("riddle not found")

	// ErrAlreadyResolved indicates the riddle was resolved before this
	// call took effect. Terminal for the record, never retried.
	ErrAlreadyResolved = errors.New("riddle already resolved")

	// ErrWrongAnswer indicates the proposed answer did not match. The
	// record is unchanged and a different answer may be attempted.
	ErrWrongAnswer = errors.New("wrong answer")

	// ErrInsufficientFunds indicates the principal's balance can't cover
	// the requested amount.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrStoreUnavailable indicates the entry store failed before any
	// state was committed. The whole operation is safe to retry.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrTransactionConflict indicates the entry store lost a write
	// conflict and committed nothing. The whole operation is safe
	// to retry.
	ErrTransactionConflict = errors.New("transaction conflict")
)
