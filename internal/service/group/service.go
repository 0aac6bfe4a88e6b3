// Package group implements group lifecycle, membership, and public access
// operations.
package group

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sipalaciosv/dupe/internal/domain"
	"github.com/sipalaciosv/dupe/pkg/ctxutil"
)

// groupRepo defines the group repository interface needed by group service.
type groupRepo interface {
	Create(ctx context.Context, g *domain.Group) (*domain.Group, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error)
	GetByInviteCode(ctx context.Context, code string) (*domain.Group, error)
	GetByPublicSlug(ctx context.Context, slug string) (*domain.Group, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Group, error)
	Update(ctx context.Context, id uuid.UUID, params domain.GroupUpdateParams) (*domain.Group, error)
	AddMember(ctx context.Context, m *domain.Member) error
	GetMember(ctx context.Context, groupID, userID uuid.UUID) (*domain.Member, error)
	ListMembers(ctx context.Context, groupID uuid.UUID) ([]*domain.Member, error)
	UpdateMemberRole(ctx context.Context, groupID, userID uuid.UUID, role domain.MemberRole) (*domain.Member, error)
}

// userRepo defines the user repository interface needed by group service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// txManager defines the transaction management interface needed by group service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements group operations.
type Service struct {
	log    *slog.Logger
	groups groupRepo
	users  userRepo
	tx     txManager
}

// NewService creates a new group service instance.
func NewService(logger *slog.Logger, groups groupRepo, users userRepo, tx txManager) *Service {
	return &Service{
		log:    logger.With("service", "group"),
		groups: groups,
		users:  users,
		tx:     tx,
	}
}

// requireMember resolves the authenticated user's membership in the group.
// Missing authentication maps to ErrUnauthorized, missing membership to
// ErrForbidden.
func (s *Service) requireMember(ctx context.Context, groupID uuid.UUID) (*domain.Member, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnauthorized, "authentication required")
	}

	member, err := s.groups.GetMember(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrForbidden, "not a member of this group")
		}
		return nil, fmt.Errorf("get member: %w", err)
	}
	return member, nil
}
