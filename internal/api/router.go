package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/starford/vaultlink/internal/linkservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
func NewRouter(svc *linkservice.Service, authEnabled bool, token string) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	r.Get("/completions", h.Complete)
	r.Get("/referenceables", h.Referenceables)

	return r
}
