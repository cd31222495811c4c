package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/starford/obi/internal/noteservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
func NewRouter(svc *noteservice.Service, authEnabled bool, token string) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Notes.
	r.Get("/notes", h.ListNotes)
	r.Get("/notes/*", h.GetNote)
	r.Get("/toc/*", h.TOC)

	// Graph.
	r.Get("/links/*", h.Links)

	// Vault overview.
	r.Get("/map", h.Map)
	r.Get("/recent", h.Recent)
	r.Get("/unread", h.Unread)
	r.Get("/schema", h.Schema)
	r.Get("/context", h.Context)

	// Search.
	r.Get("/search", h.Search)
	r.Get("/query", h.Query)

	return r
}
