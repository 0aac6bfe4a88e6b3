package dupe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/sipalaciosv/dupe/internal/domain"
)

// Update partially updates a dupe. Requires the editor role. Changing the
// name recomputes the slug; re-pointing at another original verifies the new
// target exists in the group.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.Dupe, error) {
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

	if input.OriginalID != nil {
		if _, err := s.originals.GetByID(ctx, input.GroupID, *input.OriginalID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.NewValidationError("originalId", "original does not exist in this group")
			}
			return nil, fmt.Errorf("get original: %w", err)
		}
	}

	params := domain.DupeUpdateParams{
		OriginalID: input.OriginalID,
		Marca:      input.Marca,
		ML:         input.ML,
		Tags:       input.Tags,
		URLs:       input.URLs,
		Tiendas:    input.Tiendas,
	}
	if input.Nombre != nil {
		nombre := strings.TrimSpace(*input.Nombre)
		slug := domain.Slugify(nombre)
		params.Nombre = &nombre
		params.Slug = &slug
	}

	updated, err := s.dupes.Update(ctx, input.GroupID, input.ID, member.UserID, params)
	if err != nil {
		return nil, fmt.Errorf("update dupe: %w", err)
	}

	s.log.InfoContext(ctx, "dupe updated",
		slog.String("group_id", input.GroupID.String()),
		slog.String("dupe_id", input.ID.String()))

	return updated, nil
}

// UpdateAverages writes recomputed vote aggregates onto a dupe. Called by the
// vote flow after each saved vote.
func (s *Service) UpdateAverages(ctx context.Context, groupID, dupeID uuid.UUID, avg domain.VoteAverages) error {
	if err := s.dupes.UpdateAverages(ctx, groupID, dupeID, avg); err != nil {
		return fmt.Errorf("update averages: %w", err)
	}
	return nil
}
