package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sipalaciosv/dupe/internal/domain"
	"github.com/sipalaciosv/dupe/internal/service/expedition"
)

// expeditionService defines the minimal interface needed by ExpeditionHandler.
type expeditionService interface {
	List(ctx context.Context, groupID uuid.UUID) ([]*domain.Expedition, error)
	Get(ctx context.Context, groupID, id uuid.UUID) (*domain.Expedition, error)
	Create(ctx context.Context, input expedition.CreateInput) (*domain.Expedition, error)
	Close(ctx context.Context, groupID, id uuid.UUID) (*domain.Expedition, error)
	ListItems(ctx context.Context, groupID, expeditionID uuid.UUID) ([]*domain.ExpeditionItem, error)
	AddItem(ctx context.Context, input expedition.AddItemInput) (*expedition.AddItemResult, error)
	UpdateItemStatus(ctx context.Context, input expedition.UpdateItemStatusInput) (*domain.ExpeditionItem, error)
}

// ExpeditionHandler serves expedition REST endpoints.
type ExpeditionHandler struct {
	svc expeditionService
	log *slog.Logger
}

// NewExpeditionHandler creates an ExpeditionHandler.
func NewExpeditionHandler(svc expeditionService, logger *slog.Logger) *ExpeditionHandler {
	return &ExpeditionHandler{svc: svc, log: logger.With("handler", "expedition")}
}

type createExpeditionRequest struct {
	Nombre string     `json:"nombre"`
	Fecha  *time.Time `json:"fecha"`
}

type addItemRequest struct {
	DupeID       *string `json:"dupeId"`
	OriginalID   *string `json:"originalId"`
	Nombre       *string `json:"nombre"`
	NotasRapidas *string `json:"notasRapidas"`
}

type updateItemStatusRequest struct {
	Status       string  `json:"status"`
	NotasRapidas *string `json:"notasRapidas"`
}

type expeditionResponse struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"groupId"`
	Nombre    string    `json:"nombre"`
	Fecha     time.Time `json:"fecha"`
	Estado    string    `json:"estado"`
	CreatedAt time.Time `json:"createdAt"`
}

type expeditionItemResponse struct {
	ID           string    `json:"id"`
	ExpeditionID string    `json:"expeditionId"`
	DupeID       *string   `json:"dupeId,omitempty"`
	OriginalID   *string   `json:"originalId,omitempty"`
	Nombre       *string   `json:"nombre,omitempty"`
	Status       string    `json:"status"`
	NotasRapidas *string   `json:"notasRapidas,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Duplicate    bool      `json:"duplicate,omitempty"`
}

func toExpeditionResponse(e *domain.Expedition) expeditionResponse {
	return expeditionResponse{
		ID:        e.ID.String(),
		GroupID:   e.GroupID.String(),
		Nombre:    e.Nombre,
		Fecha:     e.Fecha,
		Estado:    string(e.Estado),
		CreatedAt: e.CreatedAt,
	}
}

func toExpeditionItemResponse(it *domain.ExpeditionItem) expeditionItemResponse {
	return expeditionItemResponse{
		ID:           it.ID.String(),
		ExpeditionID: it.ExpeditionID.String(),
		DupeID:       uuidPtrString(it.DupeID),
		OriginalID:   uuidPtrString(it.OriginalID),
		Nombre:       it.Nombre,
		Status:       string(it.Status),
		NotasRapidas: it.NotasRapidas,
		CreatedAt:    it.CreatedAt,
		UpdatedAt:    it.UpdatedAt,
	}
}

// List handles GET /groups/{groupID}/expeditions.
func (h *ExpeditionHandler) List(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathUUID(r, "groupID")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	expeditions, err := h.svc.List(r.Context(), groupID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := make([]expeditionResponse, 0, len(expeditions))
	for _, e := range expeditions {
		resp = append(resp, toExpeditionResponse(e))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /groups/{groupID}/expeditions/{id}.
func (h *ExpeditionHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	e, err := h.svc.Get(r.Context(), groupID, id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toExpeditionResponse(e))
}

// Create handles POST /groups/{groupID}/expeditions.
func (h *ExpeditionHandler) Create(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathUUID(r, "groupID")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var req createExpeditionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := expedition.CreateInput{GroupID: groupID, Nombre: req.Nombre}
	if req.Fecha != nil {
		input.Fecha = *req.Fecha
	}

	e, err := h.svc.Create(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExpeditionResponse(e))
}

// Close handles POST /groups/{groupID}/expeditions/{id}/close.
func (h *ExpeditionHandler) Close(w http.ResponseWriter, r *http.Request) {
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

	e, err := h.svc.Close(r.Context(), groupID, id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toExpeditionResponse(e))
}

// ListItems handles GET /groups/{groupID}/expeditions/{id}/items.
func (h *ExpeditionHandler) ListItems(w http.ResponseWriter, r *http.Request) {
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

	items, err := h.svc.ListItems(r.Context(), groupID, id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := make([]expeditionItemResponse, 0, len(items))
	for _, it := range items {
		resp = append(resp, toExpeditionItemResponse(it))
	}
	writeJSON(w, http.StatusOK, resp)
}

// AddItem handles POST /groups/{groupID}/expeditions/{id}/items.
func (h *ExpeditionHandler) AddItem(w http.ResponseWriter, r *http.Request) {
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

	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := expedition.AddItemInput{
		GroupID:      groupID,
		ExpeditionID: id,
		Nombre:       req.Nombre,
		NotasRapidas: req.NotasRapidas,
	}
	if req.DupeID != nil {
		dupeID, err := uuid.Parse(*req.DupeID)
		if err != nil {
			handleError(w, r, h.log, domain.NewValidationError("dupeId", "must be a valid UUID"))
			return
		}
		input.DupeID = &dupeID
	}
	if req.OriginalID != nil {
		originalID, err := uuid.Parse(*req.OriginalID)
		if err != nil {
			handleError(w, r, h.log, domain.NewValidationError("originalId", "must be a valid UUID"))
			return
		}
		input.OriginalID = &originalID
	}

	result, err := h.svc.AddItem(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := toExpeditionItemResponse(result.Item)
	resp.Duplicate = result.Duplicate
	writeJSON(w, http.StatusCreated, resp)
}

// UpdateItemStatus handles PATCH /groups/{groupID}/expeditions/{id}/items/{itemID}.
func (h *ExpeditionHandler) UpdateItemStatus(w http.ResponseWriter, r *http.Request) {
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
	itemID, err := pathUUID(r, "itemID")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var req updateItemStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	it, err := h.svc.UpdateItemStatus(r.Context(), expedition.UpdateItemStatusInput{
		GroupID:      groupID,
		ExpeditionID: id,
		ItemID:       itemID,
		Status:       domain.ExpeditionItemStatus(req.Status),
		NotasRapidas: req.NotasRapidas,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toExpeditionItemResponse(it))
}
