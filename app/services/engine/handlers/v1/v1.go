// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/openriddle/riddleledger/app/services/engine/handlers/v1/riddlegrp"
	"github.com/openriddle/riddleledger/foundation/events"
	"github.com/openriddle/riddleledger/foundation/ledger/engine"
	"github.com/openriddle/riddleledger/foundation/web"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log    *zap.SugaredLogger
	Engine *engine.Engine
	Evts   *events.Events
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	rg := riddlegrp.Handlers{
		Log:    cfg.Log,
		Engine: cfg.Engine,
		Evts:   cfg.Evts,
	}

	app.Handle(http.MethodGet, version, "/events", rg.Events)
	app.Handle(http.MethodGet, version, "/riddle/list", rg.List)
	app.Handle(http.MethodGet, version, "/riddle/:id", rg.Query)
	app.Handle(http.MethodPost, version, "/riddle", rg.Create)
	app.Handle(http.MethodPost, version, "/riddle/:id/contribute", rg.Contribute)
	app.Handle(http.MethodPost, version, "/riddle/:id/solve", rg.Solve)
	app.Handle(http.MethodGet, version, "/balance/:principal", rg.Balance)
}
