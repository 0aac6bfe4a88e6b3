package rest

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sipalaciosv/dupe/internal/domain"
	"github.com/sipalaciosv/dupe/internal/service/original"
)

// originalService defines the minimal interface needed by OriginalHandler.
type originalService interface {
	List(ctx context.Context, groupID uuid.UUID) ([]*domain.Original, error)
	Get(ctx context.Context, groupID, id uuid.UUID) (*domain.Original, error)
	Create(ctx context.Context, input original.CreateInput) (*original.CreateResult, error)
	Update(ctx context.Context, input original.UpdateInput) (*domain.Original, error)
	Delete(ctx context.Context, groupID, id uuid.UUID) error
	UploadImage(ctx context.Context, groupID, id uuid.UUID, content io.Reader) (*domain.Original, error)
}

// OriginalHandler serves original catalog REST endpoints.
type OriginalHandler struct {
	svc originalService
	log *slog.Logger
}

// NewOriginalHandler creates an OriginalHandler.
func NewOriginalHandler(svc originalService, logger *slog.Logger) *OriginalHandler {
	return &OriginalHandler{svc: svc, log: logger.With("handler", "original")}
}

type storeAvailabilityJSON struct {
	Tienda string   `json:"tienda"`
	Precio *float64 `json:"precio,omitempty"`
	URL    *string  `json:"url,omitempty"`
}

type createOriginalRequest struct {
	Nombre         string                  `json:"nombre"`
	Marca          *string                 `json:"marca"`
	ML             *int                    `json:"ml"`
	URLFragrantica *string                 `json:"urlFragrantica"`
	Tags           []string                `json:"tags"`
	Tiendas        []storeAvailabilityJSON `json:"tiendas"`
}

type updateOriginalRequest struct {
	Nombre         *string                  `json:"nombre"`
	Marca          *string                  `json:"marca"`
	ML             *int                     `json:"ml"`
	URLFragrantica *string                  `json:"urlFragrantica"`
	Tags           *[]string                `json:"tags"`
	Tiendas        *[]storeAvailabilityJSON `json:"tiendas"`
}

type originalResponse struct {
	ID              string                  `json:"id"`
	GroupID         string                  `json:"groupId"`
	Nombre          string                  `json:"nombre"`
	Marca           *string                 `json:"marca,omitempty"`
	ML              *int                    `json:"ml,omitempty"`
	URLFragrantica  *string                 `json:"urlFragrantica,omitempty"`
	ImagenPrincipal *string                 `json:"imagenPrincipal,omitempty"`
	Tags            []string                `json:"tags,omitempty"`
	Slug            string                  `json:"slug"`
	Tiendas         []storeAvailabilityJSON `json:"tiendas,omitempty"`
	CreatedAt       time.Time               `json:"createdAt"`
	UpdatedAt       time.Time               `json:"updatedAt"`
	DuplicateSlug   bool                    `json:"duplicateSlug,omitempty"`
}

func toTiendas(in []storeAvailabilityJSON) []domain.StoreAvailability {
	if in == nil {
		return nil
	}
	out := make([]domain.StoreAvailability, 0, len(in))
	for _, t := range in {
		out = append(out, domain.StoreAvailability{Tienda: t.Tienda, Precio: t.Precio, URL: t.URL})
	}
	return out
}

func fromTiendas(in []domain.StoreAvailability) []storeAvailabilityJSON {
	if in == nil {
		return nil
	}
	out := make([]storeAvailabilityJSON, 0, len(in))
	for _, t := range in {
		out = append(out, storeAvailabilityJSON{Tienda: t.Tienda, Precio: t.Precio, URL: t.URL})
	}
	return out
}

func toOriginalResponse(o *domain.Original) originalResponse {
	return originalResponse{
		ID:              o.ID.String(),
		GroupID:         o.GroupID.String(),
		Nombre:          o.Nombre,
		Marca:           o.Marca,
		ML:              o.ML,
		URLFragrantica:  o.URLFragrantica,
		ImagenPrincipal: o.ImagenPrincipal,
		Tags:            o.Tags,
		Slug:            o.Slug,
		Tiendas:         fromTiendas(o.Tiendas),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// List handles GET /groups/{groupID}/originals.
func (h *OriginalHandler) List(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathUUID(r, "groupID")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	originals, err := h.svc.List(r.Context(), groupID)
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

// Get handles GET /groups/{groupID}/originals/{id}.
func (h *OriginalHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	o, err := h.svc.Get(r.Context(), groupID, id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toOriginalResponse(o))
}

// Create handles POST /groups/{groupID}/originals.
func (h *OriginalHandler) Create(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathUUID(r, "groupID")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var req createOriginalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.Create(r.Context(), original.CreateInput{
		GroupID:        groupID,
		Nombre:         req.Nombre,
		Marca:          req.Marca,
		ML:             req.ML,
		URLFragrantica: req.URLFragrantica,
		Tags:           req.Tags,
		Tiendas:        toTiendas(req.Tiendas),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := toOriginalResponse(result.Original)
	resp.DuplicateSlug = result.DuplicateSlug
	writeJSON(w, http.StatusCreated, resp)
}

// Update handles PATCH /groups/{groupID}/originals/{id}.
func (h *OriginalHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req updateOriginalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := original.UpdateInput{
		GroupID:        groupID,
		ID:             id,
		Nombre:         req.Nombre,
		Marca:          req.Marca,
		ML:             req.ML,
		URLFragrantica: req.URLFragrantica,
		Tags:           req.Tags,
	}
	if req.Tiendas != nil {
		tiendas := toTiendas(*req.Tiendas)
		input.Tiendas = &tiendas
	}

	o, err := h.svc.Update(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toOriginalResponse(o))
}

// Delete handles DELETE /groups/{groupID}/originals/{id}.
func (h *OriginalHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// UploadImage handles PUT /groups/{groupID}/originals/{id}/image.
// The request body is the raw image.
func (h *OriginalHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
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

	o, err := h.svc.UploadImage(r.Context(), groupID, id, http.MaxBytesReader(w, r.Body, maxImageBytes))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toOriginalResponse(o))
}
