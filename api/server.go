/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, corsOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Owner-ID"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Route("/goals", func(r chi.Router) {
			r.Get("/", h.ListGoals)
			r.Post("/", h.CreateGoal)
			r.Get("/{id}", h.GetGoal)
			r.Patch("/{id}/contribution", h.AddContribution)
			r.Delete("/{id}", h.DeleteGoal)
		})

		r.Route("/budgets", func(r chi.Router) {
			r.Get("/", h.ListBudgets)
			r.Post("/", h.CreateBudget)
			r.Get("/{id}", h.GetBudget)
			r.Patch("/{id}/spend", h.RecordSpend)
			r.Delete("/{id}", h.DeleteBudget)
		})
	})

	return r
}
