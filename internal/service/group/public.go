package group

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sipalaciosv/dupe/internal/domain"
)

// TogglePublicAccess enables or disables the group's read-only public view.
// Enabling generates (or refreshes) the public slug from the group name.
// Only the owner may toggle public access.
func (s *Service) TogglePublicAccess(ctx context.Context, groupID uuid.UUID, enabled bool) (*domain.Group, error) {
	caller, err := s.requireMember(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !caller.CanManagePublicAccess() {
		return nil, fmt.Errorf("%w: %s", domain.ErrForbidden, "only the owner can manage public access")
	}

	g, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}

	params := domain.GroupUpdateParams{PublicRead: &enabled}
	if enabled {
		slug := g.PublicSlug
		if slug == "" {
			slug = domain.Slugify(g.Name)
		}
		params.PublicSlug = &slug
	}

	updated, err := s.groups.Update(ctx, groupID, params)
	if err != nil {
		return nil, fmt.Errorf("update group: %w", err)
	}

	s.log.InfoContext(ctx, "public access toggled",
		slog.String("group_id", groupID.String()),
		slog.Bool("enabled", enabled))

	return updated, nil
}
