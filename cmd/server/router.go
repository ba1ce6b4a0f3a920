package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rburris/roster-api/internal/api"
	apiMiddleware "github.com/rburris/roster-api/internal/api/middleware"
	"github.com/rburris/roster-api/internal/platform/metrics"
)

// setupRouter creates and configures the application router with all routes
// and middleware. It uses the application dependencies to create handlers.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware) // Add trace IDs for improved error handling
	r.Use(metrics.Instrument)

	userHandler := api.NewUserHandler(app.userStore, app.gate, app.logger)
	identity := apiMiddleware.NewIdentityMiddleware(app.identityProvider)

	// Register routes
	r.Route("/v1", func(r chi.Router) {
		r.Use(identity.Attach)

		r.Get("/users", userHandler.ListUsers)
		r.Post("/users", userHandler.CreateUser)
		r.Get("/users/{id}", userHandler.GetUser)
		r.Patch("/users/{id}", userHandler.UpdateUser)
		r.Delete("/users/{id}", userHandler.DeleteUser)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	// Prometheus exposition
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}
