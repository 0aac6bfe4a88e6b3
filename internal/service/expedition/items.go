package expedition

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/sipalaciosv/dupe/internal/domain"
)

// AddItemInput is the input for AddItem. At least one of DupeID, OriginalID,
// and Nombre must be set.
type AddItemInput struct {
	GroupID      uuid.UUID
	ExpeditionID uuid.UUID
	DupeID       *uuid.UUID
	OriginalID   *uuid.UUID
	Nombre       *string
	NotasRapidas *string
}

// Validate checks the input fields.
func (in AddItemInput) Validate() error {
	var fields []domain.FieldError
	hasDupe := in.DupeID != nil && *in.DupeID != uuid.Nil
	hasOriginal := in.OriginalID != nil && *in.OriginalID != uuid.Nil
	hasNombre := in.Nombre != nil && strings.TrimSpace(*in.Nombre) != ""
	if !hasDupe && !hasOriginal && !hasNombre {
		fields = append(fields, domain.FieldError{Field: "item", Message: "one of dupeId, originalId, or nombre must be set"})
	}
	if len(fields) > 0 {
		return domain.NewValidationErrors(fields)
	}
	return nil
}

// AddItemResult carries the created item plus an advisory flag set when the
// expedition already lists the same dupe, original, or free-text name.
// Duplicates are allowed; the flag lets clients warn the user.
type AddItemResult struct {
	Item      *domain.ExpeditionItem
	Duplicate bool
}

// ListItems returns an expedition's try-list in insertion order. Requires
// membership.
func (s *Service) ListItems(ctx context.Context, groupID, expeditionID uuid.UUID) ([]*domain.ExpeditionItem, error) {
	if _, err := s.requireMember(ctx, groupID); err != nil {
		return nil, err
	}

	if _, err := s.expeditions.GetByID(ctx, groupID, expeditionID); err != nil {
		return nil, fmt.Errorf("get expedition: %w", err)
	}

	items, err := s.expeditions.ListItems(ctx, expeditionID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// AddItem adds an entry to an expedition's try-list in status por_probar.
// Requires the editor role.
func (s *Service) AddItem(ctx context.Context, input AddItemInput) (*AddItemResult, error) {
	member, err := s.requireMember(ctx, input.GroupID)
	if err != nil {
		return nil, err
	}
	if !member.CanManageExpeditions() {
		return nil, fmt.Errorf("%w: %s", domain.ErrForbidden, "insufficient role")
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.expeditions.GetByID(ctx, input.GroupID, input.ExpeditionID); err != nil {
		return nil, fmt.Errorf("get expedition: %w", err)
	}

	existing, err := s.expeditions.ListItems(ctx, input.ExpeditionID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	duplicate := false
	for _, it := range existing {
		if it.RefersTo(input.DupeID, input.OriginalID, input.Nombre) {
			duplicate = true
			break
		}
	}

	item, err := s.expeditions.AddItem(ctx, &domain.ExpeditionItem{
		ExpeditionID: input.ExpeditionID,
		DupeID:       input.DupeID,
		OriginalID:   input.OriginalID,
		Nombre:       input.Nombre,
		Status:       domain.ItemPorProbar,
		NotasRapidas: input.NotasRapidas,
		UpdatedBy:    member.UserID,
	})
	if err != nil {
		return nil, fmt.Errorf("add item: %w", err)
	}

	s.log.InfoContext(ctx, "expedition item added",
		slog.String("expedition_id", input.ExpeditionID.String()),
		slog.String("item_id", item.ID.String()))

	return &AddItemResult{Item: item, Duplicate: duplicate}, nil
}

// UpdateItemStatusInput is the input for UpdateItemStatus. A nil
// NotasRapidas keeps the existing notes.
type UpdateItemStatusInput struct {
	GroupID      uuid.UUID
	ExpeditionID uuid.UUID
	ItemID       uuid.UUID
	Status       domain.ExpeditionItemStatus
	NotasRapidas *string
}

// Validate checks the input fields.
func (in UpdateItemStatusInput) Validate() error {
	var fields []domain.FieldError
	if !in.Status.IsValid() {
		fields = append(fields, domain.FieldError{Field: "status", Message: "must be por_probar, probado, no_encontre, or me_lo_llevo"})
	}
	if len(fields) > 0 {
		return domain.NewValidationErrors(fields)
	}
	return nil
}

// UpdateItemStatus moves a try-list item to a new status, optionally
// replacing its quick notes. Requires the editor role. Items on closed
// expeditions stay editable.
func (s *Service) UpdateItemStatus(ctx context.Context, input UpdateItemStatusInput) (*domain.ExpeditionItem, error) {
	member, err := s.requireMember(ctx, input.GroupID)
	if err != nil {
		return nil, err
	}
	if !member.CanManageExpeditions() {
		return nil, fmt.Errorf("%w: %s", domain.ErrForbidden, "insufficient role")
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.expeditions.GetByID(ctx, input.GroupID, input.ExpeditionID); err != nil {
		return nil, fmt.Errorf("get expedition: %w", err)
	}

	item, err := s.expeditions.UpdateItemStatus(ctx, input.ExpeditionID, input.ItemID, input.Status, input.NotasRapidas, member.UserID)
	if err != nil {
		return nil, fmt.Errorf("update item status: %w", err)
	}

	s.log.InfoContext(ctx, "expedition item updated",
		slog.String("item_id", input.ItemID.String()),
		slog.String("status", string(input.Status)))

	return item, nil
}
