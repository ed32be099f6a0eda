// Package http provides HTTP routing and middleware configuration
// for the account manager API.
package http

import (
	"net/http"

	"github.com/atinyakov/accountkeeper/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves
// the account API.
//
// Routes:
//
//	GET    /api/accounts           → accountsHandler.List
//	POST   /api/accounts           → accountsHandler.Add
//	GET    /api/accounts/count     → accountsHandler.Count
//	POST   /api/accounts/validate  → accountsHandler.Validate
//	GET    /api/accounts/{id}      → accountsHandler.Get
//	PATCH  /api/accounts/{id}      → accountsHandler.Update
//	DELETE /api/accounts/{id}      → accountsHandler.Remove
//	POST   /api/tags/parse         → tagsHandler.Parse
//	POST   /api/tags/format        → tagsHandler.Format
//
// Middleware chain (applied in order):
//  1. Recoverer: turns panics into 500
//  2. AllowContentType("application/json"): rejects non-JSON bodies
//  3. WithRequestLogging(logger): logs served requests
func NewRouter(
	accountsHandler *AccountsHandler,
	tagsHandler TagsHandler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", accountsHandler.List)
			r.Post("/", accountsHandler.Add)
			r.Get("/count", accountsHandler.Count)
			r.Post("/validate", accountsHandler.Validate)
			r.Get("/{id}", accountsHandler.Get)
			r.Patch("/{id}", accountsHandler.Update)
			r.Delete("/{id}", accountsHandler.Remove)
		})
		r.Post("/tags/parse", tagsHandler.Parse)
		r.Post("/tags/format", tagsHandler.Format)
	})

	return r
}
