package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/rburris/roster-api/internal/auth"
	"github.com/rburris/roster-api/internal/config"
	"github.com/rburris/roster-api/internal/platform/postgres"
	"github.com/rburris/roster-api/internal/store"
	"github.com/rburris/roster-api/internal/validation"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore store.UserStore
	gate      *validation.Gate

	identityProvider auth.ContextProvider
}

// newApplication creates an application instance with all dependencies
// initialized. It accepts the core dependencies that must be established
// before application wiring: configuration, logger, and database pool.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.gate = validation.NewGate(validation.NewDefaultPasswordPolicy())

	provider, err := setupIdentityProvider(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize identity provider: %w", err)
	}
	app.identityProvider = provider
	logger.Info("identity provider initialized", "mode", cfg.Auth.Mode)

	logger.Info("application initialized")
	return app, nil
}

// setupIdentityProvider selects the identity source configured by auth.mode.
func setupIdentityProvider(cfg config.AuthConfig) (auth.ContextProvider, error) {
	switch cfg.Mode {
	case "jwt":
		return auth.NewJWTProvider(cfg.JWTSecret)
	default:
		return auth.NewStaticProvider(), nil
	}
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
