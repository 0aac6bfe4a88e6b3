package dupe

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sipalaciosv/dupe/internal/domain"
)

// List returns the group's dupes, optionally filtered by the original they
// reference. Requires membership.
func (s *Service) List(ctx context.Context, groupID uuid.UUID, originalID *uuid.UUID) ([]*domain.Dupe, error) {
	if _, err := s.requireMember(ctx, groupID); err != nil {
		return nil, err
	}

	dupes, err := s.dupes.ListByGroup(ctx, groupID, originalID)
	if err != nil {
		return nil, fmt.Errorf("list dupes: %w", err)
	}
	return dupes, nil
}

// Get returns a single dupe in the group. Requires membership.
func (s *Service) Get(ctx context.Context, groupID, id uuid.UUID) (*domain.Dupe, error) {
	if _, err := s.requireMember(ctx, groupID); err != nil {
		return nil, err
	}

	d, err := s.dupes.GetByID(ctx, groupID, id)
	if err != nil {
		return nil, fmt.Errorf("get dupe: %w", err)
	}
	return d, nil
}

// ListPublic returns the dupes of a publicly readable group, resolved by its
// public slug. No authentication is required.
func (s *Service) ListPublic(ctx context.Context, publicSlug string, originalID *uuid.UUID) ([]*domain.Dupe, error) {
	if publicSlug == "" {
		return nil, domain.NewValidationError("slug", "is required")
	}

	g, err := s.groups.GetByPublicSlug(ctx, publicSlug)
	if err != nil {
		return nil, fmt.Errorf("get group by public slug: %w", err)
	}

	dupes, err := s.dupes.ListByGroup(ctx, g.ID, originalID)
	if err != nil {
		return nil, fmt.Errorf("list dupes: %w", err)
	}
	return dupes, nil
}
