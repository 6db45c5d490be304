// Package riddlegrp maintains the group of handlers for riddle ledger access.
package riddlegrp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	v1 "github.com/openriddle/riddleledger/business/web/v1"
	"github.com/openriddle/riddleledger/foundation/events"
	"github.com/openriddle/riddleledger/foundation/ledger/engine"
	"github.com/openriddle/riddleledger/foundation/ledger/limiter"
	"github.com/openriddle/riddleledger/foundation/ledger/record"
	"github.com/openriddle/riddleledger/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of riddle ledger endpoints.
type Handlers struct {
	Log    *zap.SugaredLogger
	Engine *engine.Engine
	WS     websocket.Upgrader
	Evts   *events.Events
}

// Create adds a new riddle record to the ledger.
func (h Handlers) Create(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var nr newRiddle
	if err := web.Decode(r, &nr); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	creator, err := record.ToPrincipalID(nr.Creator)
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	h.Log.Infow("create riddle", "traceid", v.TraceID, "creator", nr.Creator, "initial_value", nr.InitialValue)

	id, err := h.Engine.Create(creator, nr.Prompt, nr.Solution, nr.InitialValue)
	if err != nil {
		return errorResponse(err)
	}

	resp := struct {
		ID string `json:"id"`
	}{
		ID: string(id),
	}

	return web.Respond(ctx, w, resp, http.StatusCreated)
}

// Contribute adds value to a riddle's pool.
func (h Handlers) Contribute(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var nc newContribution
	if err := web.Decode(r, &nc); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	contributor, err := record.ToPrincipalID(nc.Contributor)
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	id := record.ID(web.Param(r, "id"))

	h.Log.Infow("contribute", "traceid", v.TraceID, "riddle", id, "contributor", nc.Contributor, "amount", nc.Amount)

	pooledValue, err := h.Engine.Contribute(id, contributor, nc.Amount)
	if err != nil {
		return errorResponse(err)
	}

	resp := struct {
		PooledValue uint64 `json:"pooled_value"`
	}{
		PooledValue: pooledValue,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Solve attempts to resolve a riddle with a proposed answer.
func (h Handlers) Solve(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var ns newSolution
	if err := web.Decode(r, &ns); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	solver, err := record.ToPrincipalID(ns.Solver)
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	id := record.ID(web.Param(r, "id"))

	h.Log.Infow("solve attempt", "traceid", v.TraceID, "riddle", id, "solver", ns.Solver)

	payout, err := h.Engine.Resolve(id, solver, ns.Answer)
	if err != nil {
		return errorResponse(err)
	}

	resp := struct {
		Payout uint64 `json:"payout"`
	}{
		Payout: payout,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Query returns the riddle record stored under the specified id.
func (h Handlers) Query(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	id := record.ID(web.Param(r, "id"))

	rec, err := h.Engine.Query(id)
	if err != nil {
		return errorResponse(err)
	}

	return web.Respond(ctx, w, toAppRiddle(rec), http.StatusOK)
}

// List returns all riddle records in insertion order.
func (h Handlers) List(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	recs, err := h.Engine.List()
	if err != nil {
		return errorResponse(err)
	}

	riddles := make([]riddle, len(recs))
	for i, rec := range recs {
		riddles[i] = toAppRiddle(rec)
	}

	return web.Respond(ctx, w, riddles, http.StatusOK)
}

// Balance returns the current balance for the specified principal.
func (h Handlers) Balance(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	principalID, err := record.ToPrincipalID(web.Param(r, "principal"))
	if err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	resp := balance{
		Principal: string(principalID),
		Balance:   h.Engine.Balance(principalID),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Events handles a web socket to provide ledger events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case event, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteJSON(event); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// =============================================================================

// errorResponse maps ledger errors to their HTTP status so clients can
// tell the failure kinds apart.
func errorResponse(err error) error {
	switch {
	case errors.Is(err, engine.ErrInvalidInput):
		return v1.NewRequestError(err, http.StatusBadRequest)

	case errors.Is(err, engine.ErrNotFound):
		return v1.NewRequestError(err, http.StatusNotFound)

	case errors.Is(err, engine.ErrAlreadyResolved):
		return v1.NewRequestError(err, http.StatusConflict)

	case errors.Is(err, engine.ErrWrongAnswer):
		return v1.NewRequestError(err, http.StatusUnprocessableEntity)

	case errors.Is(err, engine.ErrInsufficientFunds):
		return v1.NewRequestError(err, http.StatusPaymentRequired)

	case errors.Is(err, limiter.ErrAttemptsExhausted):
		return v1.NewRequestError(err, http.StatusTooManyRequests)

	case errors.Is(err, engine.ErrStoreUnavailable), errors.Is(err, engine.ErrTransactionConflict):
		return v1.NewRequestError(err, http.StatusServiceUnavailable)
	}

	return err
}
