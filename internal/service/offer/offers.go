package offer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sipalaciosv/dupe/internal/domain"
)

// OffersView couples a dupe's offer history with the cheapest sighting and a
// per-store breakdown.
type OffersView struct {
	Offers   []domain.Offer
	MinPrice *domain.Offer
	ByTienda map[string][]domain.Offer
}

// List returns a dupe's offers, newest first. Requires membership.
func (s *Service) List(ctx context.Context, groupID, dupeID uuid.UUID) (*OffersView, error) {
	if _, err := s.requireMember(ctx, groupID); err != nil {
		return nil, err
	}
	if err := s.requireDupe(ctx, groupID, dupeID); err != nil {
		return nil, err
	}

	offers, err := s.offers.ListByDupe(ctx, dupeID)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}

	return &OffersView{
		Offers:   offers,
		MinPrice: domain.MinOfferPrice(offers),
		ByTienda: domain.OffersByTienda(offers),
	}, nil
}

// CreateInput is the input for Create. A zero Fecha defaults to today.
type CreateInput struct {
	GroupID   uuid.UUID
	DupeID    uuid.UUID
	Tienda    string
	Precio    float64
	Fecha     time.Time
	URLTienda *string
	Nota      *string
}

// Validate checks the input fields.
func (in CreateInput) Validate() error {
	var fields []domain.FieldError
	if in.DupeID == uuid.Nil {
		fields = append(fields, domain.FieldError{Field: "dupeId", Message: "is required"})
	}
	if strings.TrimSpace(in.Tienda) == "" {
		fields = append(fields, domain.FieldError{Field: "tienda", Message: "is required"})
	}
	if in.Precio < 0 {
		fields = append(fields, domain.FieldError{Field: "precio", Message: "must not be negative"})
	}
	if len(fields) > 0 {
		return domain.NewValidationErrors(fields)
	}
	return nil
}

// Create records a price sighting on a dupe. Requires the editor role.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Offer, error) {
	member, err := s.requireMember(ctx, input.GroupID)
	if err != nil {
		return nil, err
	}
	if !member.CanCreateOffer() {
		return nil, fmt.Errorf("%w: %s", domain.ErrForbidden, "insufficient role")
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}
	if err := s.requireDupe(ctx, input.GroupID, input.DupeID); err != nil {
		return nil, err
	}

	fecha := input.Fecha
	if fecha.IsZero() {
		fecha = time.Now()
	}

	created, err := s.offers.Create(ctx, &domain.Offer{
		DupeID:    input.DupeID,
		Tienda:    strings.TrimSpace(input.Tienda),
		Precio:    input.Precio,
		Fecha:     fecha,
		URLTienda: input.URLTienda,
		Nota:      input.Nota,
		CreatedBy: member.UserID,
	})
	if err != nil {
		return nil, fmt.Errorf("create offer: %w", err)
	}

	s.log.InfoContext(ctx, "offer created",
		slog.String("dupe_id", input.DupeID.String()),
		slog.String("tienda", created.Tienda))

	return created, nil
}

// Delete removes an offer. Requires the editor role. The offer must belong
// to a dupe of the given group.
func (s *Service) Delete(ctx context.Context, groupID, offerID uuid.UUID) error {
	member, err := s.requireMember(ctx, groupID)
	if err != nil {
		return err
	}
	if !member.CanCreateOffer() {
		return fmt.Errorf("%w: %s", domain.ErrForbidden, "insufficient role")
	}

	offer, err := s.offers.GetByID(ctx, offerID)
	if err != nil {
		return fmt.Errorf("get offer: %w", err)
	}
	if err := s.requireDupe(ctx, groupID, offer.DupeID); err != nil {
		return err
	}

	if err := s.offers.Delete(ctx, offerID); err != nil {
		return fmt.Errorf("delete offer: %w", err)
	}

	s.log.InfoContext(ctx, "offer deleted", slog.String("offer_id", offerID.String()))
	return nil
}
