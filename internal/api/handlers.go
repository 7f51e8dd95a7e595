package api

import (
	"fmt"
	"net/http"

	"github.com/starford/vaultlink/internal/apperr"
	"github.com/starford/vaultlink/internal/linkservice"
	"github.com/starford/vaultlink/internal/querier"
)

// Handler holds API route handlers.
type Handler struct {
	svc *linkservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *linkservice.Service) *Handler {
	return &Handler{svc: svc}
}

// linkQuery reads the typed link from the request. Either q carries the raw
// text ("a#Intro", "b#^1"), or file plus at most one of heading and index.
func linkQuery(r *http.Request) (querier.LinkQuery, error) {
	v := r.URL.Query()
	if v.Has("q") {
		return querier.ParseLinkQuery(v.Get("q")), nil
	}
	if !v.Has("file") {
		return querier.LinkQuery{}, fmt.Errorf("%w: q or file is required", apperr.ErrInvalidQuery)
	}

	lq := querier.LinkQuery{FileRef: v.Get("file")}
	switch {
	case v.Has("heading") && v.Has("index"):
		return querier.LinkQuery{}, fmt.Errorf("%w: heading and index are exclusive", apperr.ErrInvalidQuery)
	case v.Has("heading"):
		lq.InfileRef = querier.HeadingRef(v.Get("heading"))
	case v.Has("index"):
		lq.InfileRef = querier.IndexRef(v.Get("index"))
	}
	return lq, nil
}

// Complete handles GET /api/completions.
//
//	@Summary		Rank link targets for a partially typed wikilink
//	@Tags			completions
//	@Produce		json
//	@Param			q		query		string	false	"Raw typed link text, e.g. a#Intro"
//	@Param			file	query		string	false	"File name fragment"
//	@Param			heading	query		string	false	"Heading fragment"
//	@Param			index	query		string	false	"Block index fragment"
//	@Success		200		{object}	CompletionResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/completions [get]
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	lq, err := linkQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.svc.CompleteQuery(r.Context(), lq)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, CompletionResponse{Query: c.Query, Items: c.Items, Skipped: c.Skipped})
}

// Referenceables handles GET /api/referenceables.
//
//	@Summary		List referenceable nodes of the vault or of one note
//	@Tags			completions
//	@Produce		json
//	@Param			path	query		string	false	"Note path"
//	@Success		200		{object}	ReferenceablesResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/referenceables [get]
func (h *Handler) Referenceables(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	nodes, err := h.svc.Referenceables(r.Context(), path)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ReferenceablesResponse{Nodes: nodes})
}
