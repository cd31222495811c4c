package api

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/starford/obi/internal/apperr"
	"github.com/starford/obi/internal/noteservice"
)

// Handler holds API route handlers.
type Handler struct {
	svc *noteservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *noteservice.Service) *Handler {
	return &Handler{svc: svc}
}

// notePath extracts the note path from the wildcard URL segment.
// Supports encoded slashes from OpenAPI clients (e.g. topics%2Fnote.md).
func notePath(r *http.Request) string {
	raw := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if raw == "" {
		return ""
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// writeError maps service failures to HTTP responses. Unknown notes and
// sections are 404s carrying their context; anything else is logged.
func writeError(w http.ResponseWriter, op string, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, apperr.ErrNoteNotFound), errors.Is(err, apperr.ErrSectionNotFound):
			status = http.StatusNotFound
		}
		writeJSON(w, status, appErrorBody(appErr))
		return
	}
	slog.Error(op+" failed", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
}

// ListNotes handles GET /api/notes.
//
//	@Summary		List notes with title, type and tags
//	@Tags			notes
//	@Produce		json
//	@Param			folder	query		string	false	"Folder to list (default: whole vault)"
//	@Success		200		{object}	ListResponse
//	@Security		BearerAuth
//	@Router			/notes [get]
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.List(r.Context(), r.URL.Query().Get("folder"))
	if err != nil {
		writeError(w, "list notes", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GetNote handles GET /api/notes/*.
//
//	@Summary		Read a note with its links
//	@Tags			notes
//	@Produce		json
//	@Param			path	path		string	true	"Note path (.md optional)"
//	@Param			section	query		string	false	"Restrict the body to this heading's section"
//	@Success		200		{object}	ReadResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{path} [get]
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	path := notePath(r)
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	res, err := h.svc.Read(r.Context(), path, r.URL.Query().Get("section"))
	if err != nil {
		writeError(w, "read note", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// TOC handles GET /api/toc/*.
//
//	@Summary		Heading outline of a note
//	@Tags			notes
//	@Produce		json
//	@Param			path	path		string	true	"Note path (.md optional)"
//	@Success		200		{object}	TocResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/toc/{path} [get]
func (h *Handler) TOC(w http.ResponseWriter, r *http.Request) {
	path := notePath(r)
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	res, err := h.svc.TOC(r.Context(), path)
	if err != nil {
		writeError(w, "toc", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Links handles GET /api/links/*.
//
//	@Summary		Outgoing, incoming and two-hop links of a note
//	@Tags			graph
//	@Produce		json
//	@Param			path	path		string	true	"Note path (.md optional)"
//	@Success		200		{object}	LinksResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/links/{path} [get]
func (h *Handler) Links(w http.ResponseWriter, r *http.Request) {
	path := notePath(r)
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	res, err := h.svc.Links(r.Context(), path)
	if err != nil {
		writeError(w, "links", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Map handles GET /api/map.
//
//	@Summary		Vault structure with folder counts and file metadata
//	@Tags			vault
//	@Produce		json
//	@Success		200	{object}	MapResponse
//	@Security		BearerAuth
//	@Router			/map [get]
func (h *Handler) Map(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Map(r.Context())
	if err != nil {
		writeError(w, "map", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Query handles GET /api/query. Every query parameter is a frontmatter
// filter; "tag" matches the tags array.
//
//	@Summary		Filter notes by frontmatter values
//	@Tags			search
//	@Produce		json
//	@Param			type	query		string	false	"Filter by type"
//	@Param			tag		query		string	false	"Filter by tag"
//	@Param			status	query		string	false	"Filter by status"
//	@Success		200		{object}	QueryResponse
//	@Security		BearerAuth
//	@Router			/query [get]
func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	filters := make(map[string]string)
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			filters[key] = values[len(values)-1]
		}
	}
	res, err := h.svc.Query(r.Context(), filters)
	if err != nil {
		writeError(w, "query", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Search handles GET /api/search.
//
//	@Summary		Case-insensitive content search
//	@Tags			search
//	@Produce		json
//	@Param			q	query		string	true	"Search term"
//	@Success		200	{object}	SearchResponse
//	@Failure		400	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	res, err := h.svc.Search(r.Context(), q)
	if err != nil {
		writeError(w, "search", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Recent handles GET /api/recent.
//
//	@Summary		Notes ordered by updated_at, newest first
//	@Tags			notes
//	@Produce		json
//	@Param			limit	query		int	false	"Max results (default 10)"
//	@Success		200		{object}	RecentResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/recent [get]
func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, errorBody("limit must be a non-negative integer"))
			return
		}
		limit = n
	}
	res, err := h.svc.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, "recent", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Unread handles GET /api/unread.
//
//	@Summary		Notes marked read: false
//	@Tags			notes
//	@Produce		json
//	@Success		200	{object}	UnreadResponse
//	@Security		BearerAuth
//	@Router			/unread [get]
func (h *Handler) Unread(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Unread(r.Context())
	if err != nil {
		writeError(w, "unread", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Schema handles GET /api/schema.
//
//	@Summary		Declared property types, types and tags in use
//	@Tags			vault
//	@Produce		json
//	@Success		200	{object}	SchemaResponse
//	@Security		BearerAuth
//	@Router			/schema [get]
func (h *Handler) Schema(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Schema(r.Context())
	if err != nil {
		writeError(w, "schema", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Context handles GET /api/context.
//
//	@Summary		Obsidian workspace state
//	@Tags			vault
//	@Produce		json
//	@Success		200	{object}	ContextResponse
//	@Security		BearerAuth
//	@Router			/context [get]
func (h *Handler) Context(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Context(r.Context())
	if err != nil {
		writeError(w, "context", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
