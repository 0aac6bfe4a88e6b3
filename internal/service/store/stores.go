package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/sipalaciosv/dupe/internal/domain"
)

// CreateInput is the input for Create and GetOrCreate.
type CreateInput struct {
	GroupID uuid.UUID
	Nombre  string
	Tipo    domain.StoreTipo
}

// Validate checks the input fields.
func (in CreateInput) Validate() error {
	var fields []domain.FieldError
	if strings.TrimSpace(in.Nombre) == "" {
		fields = append(fields, domain.FieldError{Field: "nombre", Message: "is required"})
	}
	if !in.Tipo.IsValid() {
		fields = append(fields, domain.FieldError{Field: "tipo", Message: "must be fisica or online"})
	}
	if len(fields) > 0 {
		return domain.NewValidationErrors(fields)
	}
	return nil
}

// UpdateInput is the input for Update. Nil fields stay unchanged.
type UpdateInput struct {
	GroupID uuid.UUID
	ID      uuid.UUID
	Nombre  *string
	Tipo    *domain.StoreTipo
}

// Validate checks the input fields.
func (in UpdateInput) Validate() error {
	var fields []domain.FieldError
	if in.Nombre != nil && strings.TrimSpace(*in.Nombre) == "" {
		fields = append(fields, domain.FieldError{Field: "nombre", Message: "cannot be empty"})
	}
	if in.Tipo != nil && !in.Tipo.IsValid() {
		fields = append(fields, domain.FieldError{Field: "tipo", Message: "must be fisica or online"})
	}
	if len(fields) > 0 {
		return domain.NewValidationErrors(fields)
	}
	return nil
}

// List returns the group's stores, ordered by name. Requires membership.
func (s *Service) List(ctx context.Context, groupID uuid.UUID) ([]*domain.GroupStore, error) {
	if _, err := s.requireMember(ctx, groupID); err != nil {
		return nil, err
	}

	stores, err := s.stores.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	return stores, nil
}

// Create registers a store in the group. Requires the editor role. A store
// with the same name (case-insensitive) must not already exist.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.GroupStore, error) {
	member, err := s.requireMember(ctx, input.GroupID)
	if err != nil {
		return nil, err
	}
	if !member.CanEditCatalogItem() {
		return nil, fmt.Errorf("%w: %s", domain.ErrForbidden, "insufficient role")
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	nombre := strings.TrimSpace(input.Nombre)

	existing, err := s.stores.GetByNombre(ctx, input.GroupID, nombre)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get store by nombre: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrAlreadyExists, "a store with this name already exists")
	}

	created, err := s.stores.Create(ctx, &domain.GroupStore{
		GroupID:   input.GroupID,
		Nombre:    nombre,
		Tipo:      input.Tipo,
		CreatedBy: member.UserID,
	})
	if err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}

	s.log.InfoContext(ctx, "store created",
		slog.String("group_id", input.GroupID.String()),
		slog.String("nombre", created.Nombre))

	return created, nil
}

// GetOrCreate returns the store with the given name, creating it when
// missing. Used by flows that reference stores by free-text name, so a typo'd
// casing does not spawn duplicates. Requires the editor role.
func (s *Service) GetOrCreate(ctx context.Context, input CreateInput) (*domain.GroupStore, error) {
	member, err := s.requireMember(ctx, input.GroupID)
	if err != nil {
		return nil, err
	}
	if !member.CanEditCatalogItem() {
		return nil, fmt.Errorf("%w: %s", domain.ErrForbidden, "insufficient role")
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	nombre := strings.TrimSpace(input.Nombre)

	existing, err := s.stores.GetByNombre(ctx, input.GroupID, nombre)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get store by nombre: %w", err)
	}

	created, err := s.stores.Create(ctx, &domain.GroupStore{
		GroupID:   input.GroupID,
		Nombre:    nombre,
		Tipo:      input.Tipo,
		CreatedBy: member.UserID,
	})
	if err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}

	s.log.InfoContext(ctx, "store created",
		slog.String("group_id", input.GroupID.String()),
		slog.String("nombre", created.Nombre))

	return created, nil
}

// Update partially updates a store. Requires the editor role. Renaming to a
// name already used by another store (case-insensitive) is rejected.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.GroupStore, error) {
	member, err := s.requireMember(ctx, input.GroupID)
	if err != nil {
		return nil, err
	}
	if !member.CanEditCatalogItem() {
		return nil, fmt.Errorf("%w: %s", domain.ErrForbidden, "insufficient role")
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	params := domain.StoreUpdateParams{Tipo: input.Tipo}
	if input.Nombre != nil {
		nombre := strings.TrimSpace(*input.Nombre)

		existing, err := s.stores.GetByNombre(ctx, input.GroupID, nombre)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("get store by nombre: %w", err)
		}
		if existing != nil && existing.ID != input.ID {
			return nil, fmt.Errorf("%w: %s", domain.ErrAlreadyExists, "a store with this name already exists")
		}
		params.Nombre = &nombre
	}

	updated, err := s.stores.Update(ctx, input.GroupID, input.ID, params)
	if err != nil {
		return nil, fmt.Errorf("update store: %w", err)
	}

	s.log.InfoContext(ctx, "store updated",
		slog.String("group_id", input.GroupID.String()),
		slog.String("store_id", input.ID.String()))

	return updated, nil
}

// Delete removes a store from the registry. Requires the editor role. Offers
// and availability entries keep their free-text store names.
func (s *Service) Delete(ctx context.Context, groupID, id uuid.UUID) error {
	member, err := s.requireMember(ctx, groupID)
	if err != nil {
		return err
	}
	if !member.CanEditCatalogItem() {
		return fmt.Errorf("%w: %s", domain.ErrForbidden, "insufficient role")
	}

	if err := s.stores.Delete(ctx, groupID, id); err != nil {
		return fmt.Errorf("delete store: %w", err)
	}

	s.log.InfoContext(ctx, "store deleted",
		slog.String("group_id", groupID.String()),
		slog.String("store_id", id.String()))

	return nil
}
