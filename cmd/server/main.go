package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/zeusync/volley/internal/config"
	"github.com/zeusync/volley/internal/core/observability/log"
	"github.com/zeusync/volley/internal/injector"
)

func main() {
	path := flag.String("config", "", "path to a YAML configuration file")
	flag.Parse()

	if err := run(*path); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// run returns only after its deferred flushes have completed, so main can
// exit with a status without losing buffered logs or sentry events.
func run(path string) error {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.LoadFile(path); err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
	}

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
		}); err != nil {
			return fmt.Errorf("initializing sentry: %w", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	app, err := injector.InitializeApp(cfg)
	if err != nil {
		return fmt.Errorf("building server: %w", err)
	}
	defer func() { _ = app.Logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = app.Server.Run(ctx); err != nil {
		app.Logger.Error("Server stopped", log.Error(err))
		return err
	}
	app.Logger.Info("Server stopped")
	return nil
}
