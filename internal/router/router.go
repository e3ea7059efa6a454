// Package router sets up all HTTP routes and middleware chains for the
// deckd API server.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"deckd/internal/handlers"
	"deckd/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(api *handlers.API) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// Health check.
	r.Get("/health", healthHandler)

	// The REST API consumed by the presentation SPA and its creator mode.
	// No authentication: the creator-mode gate is a client-side affordance
	// only, an explicit property of the current design.
	r.Route("/api", func(r chi.Router) {
		r.Route("/charts", func(r chi.Router) {
			r.Get("/", api.ChartsList)
			r.Get("/{type}", api.ChartsByType)
			r.Post("/", api.ChartCreate)
			r.Put("/{id}", api.ChartUpdate)
			r.Delete("/{id}", api.ChartDelete)
		})

		r.Route("/versions", func(r chi.Router) {
			r.Get("/", api.VersionsList)
			r.Get("/active", api.VersionActive)
			r.Post("/", api.VersionCreate)
			r.Put("/{id}", api.VersionUpdate)
			r.Put("/{id}/activate", api.VersionActivate)
			r.Delete("/{id}", api.VersionDelete)
		})

		r.Route("/content", func(r chi.Router) {
			r.Get("/", api.ContentGetAll)
			r.Get("/{sectionKey}", api.ContentGet)
			r.Put("/{sectionKey}", api.ContentPut)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
