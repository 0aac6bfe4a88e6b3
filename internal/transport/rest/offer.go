package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sipalaciosv/dupe/internal/domain"
	"github.com/sipalaciosv/dupe/internal/service/offer"
)

// offerService defines the minimal interface needed by OfferHandler.
type offerService interface {
	List(ctx context.Context, groupID, dupeID uuid.UUID) (*offer.OffersView, error)
	Create(ctx context.Context, input offer.CreateInput) (*domain.Offer, error)
	Delete(ctx context.Context, groupID, offerID uuid.UUID) error
}

// OfferHandler serves price offer REST endpoints.
type OfferHandler struct {
	svc offerService
	log *slog.Logger
}

// NewOfferHandler creates an OfferHandler.
func NewOfferHandler(svc offerService, logger *slog.Logger) *OfferHandler {
	return &OfferHandler{svc: svc, log: logger.With("handler", "offer")}
}

type createOfferRequest struct {
	Tienda    string     `json:"tienda"`
	Precio    float64    `json:"precio"`
	Fecha     *time.Time `json:"fecha"`
	URLTienda *string    `json:"urlTienda"`
	Nota      *string    `json:"nota"`
}

type offerResponse struct {
	ID        string    `json:"id"`
	DupeID    string    `json:"dupeId"`
	Tienda    string    `json:"tienda"`
	Precio    float64   `json:"precio"`
	Fecha     time.Time `json:"fecha"`
	URLTienda *string   `json:"urlTienda,omitempty"`
	Nota      *string   `json:"nota,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type offersViewResponse struct {
	Offers   []offerResponse            `json:"offers"`
	MinPrice *offerResponse             `json:"minPrice,omitempty"`
	ByTienda map[string][]offerResponse `json:"byTienda"`
}

func toOfferResponse(o *domain.Offer) offerResponse {
	return offerResponse{
		ID:        o.ID.String(),
		DupeID:    o.DupeID.String(),
		Tienda:    o.Tienda,
		Precio:    o.Precio,
		Fecha:     o.Fecha,
		URLTienda: o.URLTienda,
		Nota:      o.Nota,
		CreatedAt: o.CreatedAt,
	}
}

func toOffersViewResponse(view *offer.OffersView) offersViewResponse {
	resp := offersViewResponse{
		Offers:   make([]offerResponse, 0, len(view.Offers)),
		ByTienda: make(map[string][]offerResponse, len(view.ByTienda)),
	}
	for i := range view.Offers {
		resp.Offers = append(resp.Offers, toOfferResponse(&view.Offers[i]))
	}
	if view.MinPrice != nil {
		min := toOfferResponse(view.MinPrice)
		resp.MinPrice = &min
	}
	for tienda, offers := range view.ByTienda {
		group := make([]offerResponse, 0, len(offers))
		for i := range offers {
			group = append(group, toOfferResponse(&offers[i]))
		}
		resp.ByTienda[tienda] = group
	}
	return resp
}

// List handles GET /groups/{groupID}/dupes/{id}/offers.
func (h *OfferHandler) List(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathUUID(r, "groupID")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	dupeID, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	view, err := h.svc.List(r.Context(), groupID, dupeID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toOffersViewResponse(view))
}

// Create handles POST /groups/{groupID}/dupes/{id}/offers.
func (h *OfferHandler) Create(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathUUID(r, "groupID")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	dupeID, err := pathUUID(r, "id")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var req createOfferRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := offer.CreateInput{
		GroupID:   groupID,
		DupeID:    dupeID,
		Tienda:    req.Tienda,
		Precio:    req.Precio,
		URLTienda: req.URLTienda,
		Nota:      req.Nota,
	}
	if req.Fecha != nil {
		input.Fecha = *req.Fecha
	}

	o, err := h.svc.Create(r.Context(), input)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOfferResponse(o))
}

// Delete handles DELETE /groups/{groupID}/offers/{offerID}.
func (h *OfferHandler) Delete(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathUUID(r, "groupID")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	offerID, err := pathUUID(r, "offerID")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	if err := h.svc.Delete(r.Context(), groupID, offerID); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
