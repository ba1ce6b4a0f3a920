// Package main implements the entry point for the roster API server,
// a directory service exposing user records over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/rburris/roster-api/internal/platform/metrics"
	"github.com/rburris/roster-api/internal/platform/postgres"
)

func main() {
	migrate := flag.Bool("migrate", false, "run pending database migrations before serving")
	flag.Parse()

	if err := run(context.Background(), *migrate); err != nil {
		fmt.Fprintf(os.Stderr, "roster-api: %v\n", err)
		os.Exit(1)
	}
}

// run wires configuration, logging, the database pool, and the application,
// then serves until shutdown. Every failure on the way up aborts startup.
func run(ctx context.Context, migrate bool) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := setupAppLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	db, err := setupAppDatabase(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	if migrate {
		if err := postgres.RunMigrations(db, log); err != nil {
			closeQuietly(db, log)
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	metrics.Init()

	app, err := newApplication(cfg, log, db)
	if err != nil {
		closeQuietly(db, log)
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
