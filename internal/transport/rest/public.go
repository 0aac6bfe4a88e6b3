package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/sipalaciosv/dupe/internal/domain"
)

// publicGroupService resolves publicly readable groups.
type publicGroupService interface {
	GetGroupByPublicSlug(ctx context.Context, slug string) (*domain.Group, error)
}

// publicOriginalService lists originals without authentication.
type publicOriginalService interface {
	ListPublic(ctx context.Context, publicSlug string) ([]*domain.Original, error)
}

// publicDupeService lists dupes without authentication.
type publicDupeService interface {
	ListPublic(ctx context.Context, publicSlug string, originalID *uuid.UUID) ([]*domain.Dupe, error)
}

// PublicHandler serves the unauthenticated read-only group view. Only
// groups with public access enabled resolve here, and invite codes are
// never exposed.
type PublicHandler struct {
	groups    publicGroupService
	originals publicOriginalService
	dupes     publicDupeService
	log       *slog.Logger
}

// NewPublicHandler creates a PublicHandler.
func NewPublicHandler(groups publicGroupService, originals publicOriginalService, dupes publicDupeService, logger *slog.Logger) *PublicHandler {
	return &PublicHandler{
		groups:    groups,
		originals: originals,
		dupes:     dupes,
		log:       logger.With("handler", "public"),
	}
}

// Get handles GET /public/{slug}.
func (h *PublicHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.groups.GetGroupByPublicSlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := toGroupResponse(g)
	resp.InviteCode = ""
	writeJSON(w, http.StatusOK, resp)
}

// ListOriginals handles GET /public/{slug}/originals.
func (h *PublicHandler) ListOriginals(w http.ResponseWriter, r *http.Request) {
	originals, err := h.originals.ListPublic(r.Context(), r.PathValue("slug"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := make([]originalResponse, 0, len(originals))
	for _, o := range originals {
		resp = append(resp, toOriginalResponse(o))
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListDupes handles GET /public/{slug}/dupes. Accepts an optional
// ?originalId= filter.
func (h *PublicHandler) ListDupes(w http.ResponseWriter, r *http.Request) {
	originalID, err := queryOriginalID(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	dupes, err := h.dupes.ListPublic(r.Context(), r.PathValue("slug"), originalID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := make([]dupeResponse, 0, len(dupes))
	for _, d := range dupes {
		resp = append(resp, toDupeResponse(d))
	}
	writeJSON(w, http.StatusOK, resp)
}
