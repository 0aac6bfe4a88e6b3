package original

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sipalaciosv/dupe/internal/domain"
)

// List returns the group's originals, ordered by name. Requires membership.
func (s *Service) List(ctx context.Context, groupID uuid.UUID) ([]*domain.Original, error) {
	if _, err := s.requireMember(ctx, groupID); err != nil {
		return nil, err
	}

	originals, err := s.originals.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list originals: %w", err)
	}
	return originals, nil
}

// Get returns a single original in the group. Requires membership.
func (s *Service) Get(ctx context.Context, groupID, id uuid.UUID) (*domain.Original, error) {
	if _, err := s.requireMember(ctx, groupID); err != nil {
		return nil, err
	}

	o, err := s.originals.GetByID(ctx, groupID, id)
	if err != nil {
		return nil, fmt.Errorf("get original: %w", err)
	}
	return o, nil
}

// ListPublic returns the originals of a publicly readable group, resolved by
// its public slug. No authentication is required.
func (s *Service) ListPublic(ctx context.Context, publicSlug string) ([]*domain.Original, error) {
	if publicSlug == "" {
		return nil, domain.NewValidationError("slug", "is required")
	}

	g, err := s.groups.GetByPublicSlug(ctx, publicSlug)
	if err != nil {
		return nil, fmt.Errorf("get group by public slug: %w", err)
	}

	originals, err := s.originals.ListByGroup(ctx, g.ID)
	if err != nil {
		return nil, fmt.Errorf("list originals: %w", err)
	}
	return originals, nil
}
