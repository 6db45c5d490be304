package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/openriddle/riddleledger/app/services/engine/handlers"
	"github.com/openriddle/riddleledger/foundation/events"
	"github.com/openriddle/riddleledger/foundation/ledger/balance"
	"github.com/openriddle/riddleledger/foundation/ledger/engine"
	"github.com/openriddle/riddleledger/foundation/ledger/genesis"
	"github.com/openriddle/riddleledger/foundation/ledger/limiter"
	"github.com/openriddle/riddleledger/foundation/ledger/store"
	"github.com/openriddle/riddleledger/foundation/ledger/store/disk"
	"github.com/openriddle/riddleledger/foundation/ledger/store/memory"
	"github.com/openriddle/riddleledger/foundation/ledger/store/sqlite"
	"github.com/openriddle/riddleledger/foundation/logger"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("ENGINE")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {

	// =========================================================================
	// Configuration

	cfg := struct {
		conf.Version
		Web struct {
			ReadTimeout     time.Duration `conf:"default:5s"`
			WriteTimeout    time.Duration `conf:"default:10s"`
			IdleTimeout     time.Duration `conf:"default:120s"`
			ShutdownTimeout time.Duration `conf:"default:20s"`
			DebugHost       string        `conf:"default:0.0.0.0:7080"`
			PublicHost      string        `conf:"default:0.0.0.0:8080"`
		}
		Ledger struct {
			GenesisFile string `conf:"default:zledger/genesis.json"`
			Store       string `conf:"default:disk,help:memory disk or sqlite"`
			DBPath      string `conf:"default:zledger/records.db"`
			MaxAttempts int    `conf:"default:1,help:failed solve attempts per principal per riddle 0 disables"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "copyright information here",
		},
	}

	// Parse will set the defaults and then look for any overriding values
	// in environment variables and command line flags.
	const prefix = "ENGINE"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// =========================================================================
	// App Starting

	log.Infow("starting service", "version", build)
	defer log.Infow("shutdown complete")

	// Display the current configuration to the logs.
	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Infow("startup", "config", out)

	// =========================================================================
	// Ledger Support

	// Load the genesis file to get the starting balances for principals
	// known to the ledger.
	gen, err := genesis.Load(cfg.Ledger.GenesisFile)
	if err != nil {
		return fmt.Errorf("unable to load genesis file: %w", err)
	}

	balances, err := balance.New(gen)
	if err != nil {
		return fmt.Errorf("unable to create balance ledger: %w", err)
	}

	// Construct the entry store configured for this node.
	var entryStore store.Store
	switch cfg.Ledger.Store {
	case "memory":
		entryStore, err = memory.New()
	case "disk":
		entryStore, err = disk.New(cfg.Ledger.DBPath)
	case "sqlite":
		entryStore, err = sqlite.New(cfg.Ledger.DBPath)
	default:
		return fmt.Errorf("unknown store kind %q", cfg.Ledger.Store)
	}
	if err != nil {
		return fmt.Errorf("unable to open %s store: %w", cfg.Ledger.Store, err)
	}

	// The engine accepts a function of this signature to allow the
	// application to log. These messages are also sent to any websocket
	// client that is connected into the system through the events package.
	evts := events.New()
	ev := func(v string, args ...any) {
		s := fmt.Sprintf(v, args...)
		log.Infow(s, "traceid", "00000000-0000-0000-0000-000000000000")
		evts.Send(s)
	}

	// A limiter bounds failed solve attempts per principal per riddle.
	var lim *limiter.Limiter
	if cfg.Ledger.MaxAttempts > 0 {
		lim = limiter.New(cfg.Ledger.MaxAttempts)
	}

	// The engine value manages the riddle ledger and provides an API for
	// application support.
	eng, err := engine.New(engine.Config{
		Store:     entryStore,
		Balances:  balances,
		Limiter:   lim,
		EvHandler: ev,
	})
	if err != nil {
		return err
	}
	defer eng.Shutdown()

	// =========================================================================
	// Start Debug Service

	log.Infow("startup", "status", "debug router started", "host", cfg.Web.DebugHost)

	// The Debug function returns a mux to listen and serve on for all the debug
	// related endpoints. This includes the standard library endpoints.
	debugMux := handlers.DebugMux(build, log)

	// Start the service listening for debug requests.
	// Not concerned with shutting this down with load shedding.
	go func() {
		if err := http.ListenAndServe(cfg.Web.DebugHost, debugMux); err != nil {
			log.Errorw("shutdown", "status", "debug router closed", "host", cfg.Web.DebugHost, "ERROR", err)
		}
	}()

	// =========================================================================
	// Service Start/Stop Support

	// Make a channel to listen for an interrupt or terminate signal from the OS.
	// Use a buffered channel because the signal package requires it.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	// Make a channel to listen for errors coming from the listener. Use a
	// buffered channel so the goroutine can exit if we don't collect this error.
	serverErrors := make(chan error, 1)

	// =========================================================================
	// Start Public Service

	log.Infow("startup", "status", "initializing V1 public API support")

	// Construct the mux for the public API calls.
	publicMux := handlers.PublicMux(handlers.MuxConfig{
		Shutdown: shutdown,
		Log:      log,
		Engine:   eng,
		Evts:     evts,
	})

	// Construct a server to service the requests against the mux.
	public := http.Server{
		Addr:         cfg.Web.PublicHost,
		Handler:      publicMux,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     zap.NewStdLog(log.Desugar()),
	}

	// Start the service listening for api requests.
	go func() {
		log.Infow("startup", "status", "public api router started", "host", public.Addr)
		serverErrors <- public.ListenAndServe()
	}()

	// =========================================================================
	// Shutdown

	// Blocking main and waiting for shutdown.
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Infow("shutdown", "status", "shutdown started", "signal", sig)
		defer log.Infow("shutdown", "status", "shutdown complete", "signal", sig)

		// Release any web sockets that are currently active.
		log.Infow("shutdown", "status", "shutdown web socket channels")
		evts.Shutdown()

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		// Asking listener to shut down and shed load.
		log.Infow("shutdown", "status", "shutdown public API started")
		if err := public.Shutdown(ctx); err != nil {
			public.Close()
			return fmt.Errorf("could not stop public service gracefully: %w", err)
		}
	}

	return nil
}
