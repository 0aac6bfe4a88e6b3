package expedition

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sipalaciosv/dupe/internal/domain"
)

// CreateInput is the input for Create. A zero Fecha defaults to today.
type CreateInput struct {
	GroupID uuid.UUID
	Nombre  string
	Fecha   time.Time
}

// Validate checks the input fields.
func (in CreateInput) Validate() error {
	var fields []domain.FieldError
	if strings.TrimSpace(in.Nombre) == "" {
		fields = append(fields, domain.FieldError{Field: "nombre", Message: "is required"})
	}
	if len(fields) > 0 {
		return domain.NewValidationErrors(fields)
	}
	return nil
}

// List returns the group's expeditions, newest first. Requires membership.
func (s *Service) List(ctx context.Context, groupID uuid.UUID) ([]*domain.Expedition, error) {
	if _, err := s.requireMember(ctx, groupID); err != nil {
		return nil, err
	}

	expeditions, err := s.expeditions.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list expeditions: %w", err)
	}
	return expeditions, nil
}

// Get returns a single expedition in the group. Requires membership.
func (s *Service) Get(ctx context.Context, groupID, id uuid.UUID) (*domain.Expedition, error) {
	if _, err := s.requireMember(ctx, groupID); err != nil {
		return nil, err
	}

	e, err := s.expeditions.GetByID(ctx, groupID, id)
	if err != nil {
		return nil, fmt.Errorf("get expedition: %w", err)
	}
	return e, nil
}

// Create starts a new expedition in estado activa. Requires the editor role.
// Creating a new expedition does not close previous ones.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Expedition, error) {
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

	fecha := input.Fecha
	if fecha.IsZero() {
		fecha = time.Now()
	}

	created, err := s.expeditions.Create(ctx, &domain.Expedition{
		GroupID:   input.GroupID,
		Nombre:    strings.TrimSpace(input.Nombre),
		Fecha:     fecha,
		Estado:    domain.ExpeditionActiva,
		CreatedBy: member.UserID,
	})
	if err != nil {
		return nil, fmt.Errorf("create expedition: %w", err)
	}

	s.log.InfoContext(ctx, "expedition created",
		slog.String("group_id", input.GroupID.String()),
		slog.String("expedition_id", created.ID.String()))

	return created, nil
}

// Close marks an expedition as cerrada. Requires the editor role. Closing an
// already-closed expedition is a no-op.
func (s *Service) Close(ctx context.Context, groupID, id uuid.UUID) (*domain.Expedition, error) {
	member, err := s.requireMember(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !member.CanManageExpeditions() {
		return nil, fmt.Errorf("%w: %s", domain.ErrForbidden, "insufficient role")
	}

	updated, err := s.expeditions.SetEstado(ctx, groupID, id, domain.ExpeditionCerrada)
	if err != nil {
		return nil, fmt.Errorf("close expedition: %w", err)
	}

	s.log.InfoContext(ctx, "expedition closed",
		slog.String("group_id", groupID.String()),
		slog.String("expedition_id", id.String()))

	return updated, nil
}
