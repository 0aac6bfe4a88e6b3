package group

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sipalaciosv/dupe/internal/domain"
	"github.com/sipalaciosv/dupe/pkg/ctxutil"
)

// GroupView couples a group with the caller's own membership, so clients can
// decide which actions to offer.
type GroupView struct {
	Group  *domain.Group
	Member *domain.Member
}

// ListUserGroups returns all groups the authenticated user belongs to.
func (s *Service) ListUserGroups(ctx context.Context) ([]*domain.Group, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnauthorized, "authentication required")
	}

	groups, err := s.groups.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

// GetGroup returns a group the authenticated user is a member of, together
// with the caller's membership.
func (s *Service) GetGroup(ctx context.Context, groupID uuid.UUID) (*GroupView, error) {
	member, err := s.requireMember(ctx, groupID)
	if err != nil {
		return nil, err
	}

	g, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}

	return &GroupView{Group: g, Member: member}, nil
}

// GetGroupByPublicSlug returns a publicly readable group by its slug. No
// authentication is required; only groups with public access enabled resolve.
func (s *Service) GetGroupByPublicSlug(ctx context.Context, slug string) (*domain.Group, error) {
	if slug == "" {
		return nil, domain.NewValidationError("slug", "is required")
	}

	g, err := s.groups.GetByPublicSlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get group by public slug: %w", err)
	}
	return g, nil
}
