package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sipalaciosv/dupe/internal/domain"
	"github.com/sipalaciosv/dupe/internal/service/store"
)

// storeService defines the minimal interface needed by StoreHandler.
type storeService interface {
	List(ctx context.Context, groupID uuid.UUID) ([]*domain.GroupStore, error)
	Create(ctx context.Context, input store.CreateInput) (*domain.GroupStore, error)
	GetOrCreate(ctx context.Context, input store.CreateInput) (*domain.GroupStore, error)
	Update(ctx context.Context, input store.UpdateInput) (*domain.GroupStore, error)
	Delete(ctx context.Context, groupID, id uuid.UUID) error
}

// StoreHandler serves group store REST endpoints.
type StoreHandler struct {
	svc storeService
	log *slog.Logger
}

// NewStoreHandler creates a StoreHandler.
func NewStoreHandler(svc storeService, logger *slog.Logger) *StoreHandler {
	return &StoreHandler{svc: svc, log: logger.With("handler", "store")}
}

type createStoreRequest struct {
	Nombre string `json:"nombre"`
	Tipo   string `json:"tipo"`
}

type updateStoreRequest struct {
	Nombre *string `json:"nombre"`
	Tipo   *string `json:"tipo"`
}

type storeResponse struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"groupId"`
	Nombre    string    `json:"nombre"`
	Tipo      string    `json:"tipo"`
	CreatedAt time.Time `json:"createdAt"`
}

func toStoreResponse(s *domain.GroupStore) storeResponse {
	return storeResponse{
		ID:        s.ID.String(),
		GroupID:   s.GroupID.String(),
		Nombre:    s.Nombre,
		Tipo:      string(s.Tipo),
		CreatedAt: s.CreatedAt,
	}
}

// List handles GET /groups/{groupID}/stores.
func (h *StoreHandler) List(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathUUID(r, "groupID")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	stores, err := h.svc.List(r.Context(), groupID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := make([]storeResponse, 0, len(stores))
	for _, s := range stores {
		resp = append(resp, toStoreResponse(s))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Create handles POST /groups/{groupID}/stores.
func (h *StoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathUUID(r, "groupID")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var req createStoreRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s, err := h.svc.Create(r.Context(), store.CreateInput{
		GroupID: groupID,
		Nombre:  req.Nombre,
		Tipo:    domain.StoreTipo(req.Tipo),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toStoreResponse(s))
}

// Resolve handles POST /groups/{groupID}/stores/resolve. It returns the
// existing store with the given name (case-insensitive) or creates it.
// Offer entry flows use this so free-typed store names converge.
func (h *StoreHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathUUID(r, "groupID")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var req createStoreRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s, err := h.svc.GetOrCreate(r.Context(), store.CreateInput{
		GroupID: groupID,
		Nombre:  req.Nombre,
		Tipo:    domain.StoreTipo(req.Tipo),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toStoreResponse(s))
}

// Update handles PATCH /groups/{groupID}/stores/{id}.
func (h *StoreHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req updateStoreRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := store.UpdateInput{GroupID: groupID, ID: id, Nombre: req.Nombre}
	if req.Tipo != nil {
		tipo := domain.StoreTipo(*req.Tipo)
		input.Tipo = &tipo
	}

	s, err := h.svc.Update(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toStoreResponse(s))
}

// Delete handles DELETE /groups/{groupID}/stores/{id}.
func (h *StoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
