package riddlegrp

import (
	"time"

	"github.com/openriddle/riddleledger/business/sys/validate"
	"github.com/openriddle/riddleledger/foundation/ledger/record"
)

type newRiddle struct {
	Creator      string `json:"creator" validate:"required"`
	Prompt       string `json:"prompt" validate:"required"`
	Solution     string `json:"solution" validate:"required"`
	InitialValue int64  `json:"initial_value" validate:"gte=0"`
}

// Validate checks the data in the model is considered clean.
func (nr newRiddle) Validate() error {
	return validate.Check(nr)
}

type newContribution struct {
	Contributor string `json:"contributor" validate:"required"`
	Amount      int64  `json:"amount" validate:"required,gt=0"`
}

// Validate checks the data in the model is considered clean.
func (nc newContribution) Validate() error {
	return validate.Check(nc)
}

type newSolution struct {
	Solver string `json:"solver" validate:"required"`
	Answer string `json:"answer" validate:"required"`
}

// Validate checks the data in the model is considered clean.
func (ns newSolution) Validate() error {
	return validate.Check(ns)
}

// =============================================================================

type riddle struct {
	ID          string    `json:"id"`
	Prompt      string    `json:"prompt"`
	Digest      string    `json:"digest"`
	PooledValue uint64    `json:"pooled_value"`
	Resolved    bool      `json:"resolved"`
	Resolver    string    `json:"resolver,omitempty"`
	Creator     string    `json:"creator"`
	CreatedAt   time.Time `json:"created_at"`
}

// toAppRiddle maps a ledger record to the presentation form. The salt is
// never exposed, the digest alone gives nothing away.
func toAppRiddle(rec record.RiddleRecord) riddle {
	return riddle{
		ID:          string(rec.ID),
		Prompt:      rec.Prompt,
		Digest:      rec.Commitment.Digest,
		PooledValue: rec.PooledValue,
		Resolved:    rec.Resolved,
		Resolver:    string(rec.Resolver),
		Creator:     string(rec.Creator),
		CreatedAt:   rec.CreatedAt,
	}
}

type balance struct {
	Principal string `json:"principal"`
	Balance   uint64 `json:"balance"`
}
