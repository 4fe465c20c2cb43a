/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route
  definitions. This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for a frontend

ROUTE GROUPS:
  /api/login        Token issuance (public)
  /api/users/*      Accounts, balances, vacation creation (authenticated)
  /api/vacations/*  Request lookup and approval workflow (authenticated;
                    confirm/deny admin-only)

SEE ALSO:
  - handlers.go: Handler implementations
  - auth.go: Token middleware
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", h.Login)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(h.Tokens))

			r.Route("/users", func(r chi.Router) {
				r.With(RequireAdmin).Post("/", h.CreateUser)
				r.Get("/{id}", h.GetUser)
				r.Get("/{id}/balance", h.GetBalance)
				r.Get("/{id}/vacations", h.ListVacations)
				r.Post("/{id}/vacations", h.CreateVacation)
			})

			r.Route("/vacations", func(r chi.Router) {
				r.Get("/{id}", h.GetVacation)
				r.With(RequireAdmin).Post("/{id}/confirm", h.ConfirmVacation)
				r.With(RequireAdmin).Post("/{id}/deny", h.DenyVacation)
			})
		})
	})

	return r
}
