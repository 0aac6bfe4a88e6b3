package rest

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sipalaciosv/dupe/internal/domain"
	"github.com/sipalaciosv/dupe/internal/service/dupe"
)

// dupeService defines the minimal interface needed by DupeHandler.
type dupeService interface {
	List(ctx context.Context, groupID uuid.UUID, originalID *uuid.UUID) ([]*domain.Dupe, error)
	Get(ctx context.Context, groupID, id uuid.UUID) (*domain.Dupe, error)
	Create(ctx context.Context, input dupe.CreateInput) (*dupe.CreateResult, error)
	Update(ctx context.Context, input dupe.UpdateInput) (*domain.Dupe, error)
	Delete(ctx context.Context, groupID, id uuid.UUID) error
	UploadImage(ctx context.Context, groupID, id uuid.UUID, content io.Reader) (*domain.Dupe, error)
}

// DupeHandler serves dupe catalog REST endpoints.
type DupeHandler struct {
	svc dupeService
	log *slog.Logger
}

// NewDupeHandler creates a DupeHandler.
func NewDupeHandler(svc dupeService, logger *slog.Logger) *DupeHandler {
	return &DupeHandler{svc: svc, log: logger.With("handler", "dupe")}
}

type dupeURLsJSON struct {
	Fragrantica *string  `json:"fragrantica,omitempty"`
	Marca       *string  `json:"marca,omitempty"`
	Otros       []string `json:"otros,omitempty"`
}

type createDupeRequest struct {
	OriginalID string                  `json:"originalId"`
	Nombre     string                  `json:"nombre"`
	Marca      *string                 `json:"marca"`
	ML         *int                    `json:"ml"`
	Tags       []string                `json:"tags"`
	URLs       *dupeURLsJSON           `json:"urls"`
	Tiendas    []storeAvailabilityJSON `json:"tiendas"`
}

type updateDupeRequest struct {
	OriginalID *string                  `json:"originalId"`
	Nombre     *string                  `json:"nombre"`
	Marca      *string                  `json:"marca"`
	ML         *int                     `json:"ml"`
	Tags       *[]string                `json:"tags"`
	URLs       *dupeURLsJSON            `json:"urls"`
	Tiendas    *[]storeAvailabilityJSON `json:"tiendas"`
}

type dupeResponse struct {
	ID                string                  `json:"id"`
	GroupID           string                  `json:"groupId"`
	OriginalID        string                  `json:"originalId"`
	Nombre            string                  `json:"nombre"`
	Marca             *string                 `json:"marca,omitempty"`
	ML                *int                    `json:"ml,omitempty"`
	ImagenPrincipal   *string                 `json:"imagenPrincipal,omitempty"`
	Tags              []string                `json:"tags,omitempty"`
	Slug              string                  `json:"slug"`
	URLs              dupeURLsJSON            `json:"urls"`
	Tiendas           []storeAvailabilityJSON `json:"tiendas,omitempty"`
	AvgParecido       float64                 `json:"avgParecido"`
	AvgGustoAlAplicar float64                 `json:"avgGustoAlAplicar"`
	AvgGustoDespues   float64                 `json:"avgGustoDespues"`
	VotesCount        int                     `json:"votesCount"`
	CreatedAt         time.Time               `json:"createdAt"`
	UpdatedAt         time.Time               `json:"updatedAt"`
	DuplicateSlug     bool                    `json:"duplicateSlug,omitempty"`
}

func toDupeURLs(in *dupeURLsJSON) domain.DupeURLs {
	if in == nil {
		return domain.DupeURLs{}
	}
	return domain.DupeURLs{Fragrantica: in.Fragrantica, Marca: in.Marca, Otros: in.Otros}
}

func toDupeResponse(d *domain.Dupe) dupeResponse {
	return dupeResponse{
		ID:                d.ID.String(),
		GroupID:           d.GroupID.String(),
		OriginalID:        d.OriginalID.String(),
		Nombre:            d.Nombre,
		Marca:             d.Marca,
		ML:                d.ML,
		ImagenPrincipal:   d.ImagenPrincipal,
		Tags:              d.Tags,
		Slug:              d.Slug,
		URLs:              dupeURLsJSON{Fragrantica: d.URLs.Fragrantica, Marca: d.URLs.Marca, Otros: d.URLs.Otros},
		Tiendas:           fromTiendas(d.Tiendas),
		AvgParecido:       d.AvgParecido,
		AvgGustoAlAplicar: d.AvgGustoAlAplicar,
		AvgGustoDespues:   d.AvgGustoDespues,
		VotesCount:        d.VotesCount,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

// queryOriginalID parses the optional ?originalId= filter.
func queryOriginalID(r *http.Request) (*uuid.UUID, error) {
	raw := r.URL.Query().Get("originalId")
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, domain.NewValidationError("originalId", "must be a valid UUID")
	}
	return &id, nil
}

// List handles GET /groups/{groupID}/dupes. Accepts an optional
// ?originalId= filter.
func (h *DupeHandler) List(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathUUID(r, "groupID")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	originalID, err := queryOriginalID(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	dupes, err := h.svc.List(r.Context(), groupID, originalID)
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

// Get handles GET /groups/{groupID}/dupes/{id}.
func (h *DupeHandler) Get(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathUUID(r, "groupID")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	d, err := h.svc.Get(r.Context(), groupID, id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toDupeResponse(d))
}

// Create handles POST /groups/{groupID}/dupes.
func (h *DupeHandler) Create(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathUUID(r, "groupID")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var req createDupeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	originalID, err := uuid.Parse(req.OriginalID)
	if err != nil {
		handleError(w, r, h.log, domain.NewValidationError("originalId", "must be a valid UUID"))
		return
	}

	result, err := h.svc.Create(r.Context(), dupe.CreateInput{
		GroupID:    groupID,
		OriginalID: originalID,
		Nombre:     req.Nombre,
		Marca:      req.Marca,
		ML:         req.ML,
		Tags:       req.Tags,
		URLs:       toDupeURLs(req.URLs),
		Tiendas:    toTiendas(req.Tiendas),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := toDupeResponse(result.Dupe)
	resp.DuplicateSlug = result.DuplicateSlug
	writeJSON(w, http.StatusCreated, resp)
}

// Update handles PATCH /groups/{groupID}/dupes/{id}.
func (h *DupeHandler) Update(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathUUID(r, "groupID")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var req updateDupeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := dupe.UpdateInput{
		GroupID: groupID,
		ID:      id,
		Nombre:  req.Nombre,
		Marca:   req.Marca,
		ML:      req.ML,
		Tags:    req.Tags,
	}
	if req.OriginalID != nil {
		originalID, err := uuid.Parse(*req.OriginalID)
		if err != nil {
			handleError(w, r, h.log, domain.NewValidationError("originalId", "must be a valid UUID"))
			return
		}
		input.OriginalID = &originalID
	}
	if req.URLs != nil {
		urls := toDupeURLs(req.URLs)
		input.URLs = &urls
	}
	if req.Tiendas != nil {
		tiendas := toTiendas(*req.Tiendas)
		input.Tiendas = &tiendas
	}

	d, err := h.svc.Update(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toDupeResponse(d))
}

// Delete handles DELETE /groups/{groupID}/dupes/{id}.
func (h *DupeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathUUID(r, "groupID")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if err := h.svc.Delete(r.Context(), groupID, id); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadImage handles PUT /groups/{groupID}/dupes/{id}/image.
// The request body is the raw image.
func (h *DupeHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathUUID(r, "groupID")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	d, err := h.svc.UploadImage(r.Context(), groupID, id, http.MaxBytesReader(w, r.Body, maxImageBytes))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toDupeResponse(d))
}
