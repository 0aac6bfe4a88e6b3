// Package store implements the per-group store registry.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sipalaciosv/dupe/internal/domain"
	"github.com/sipalaciosv/dupe/pkg/ctxutil"
)

// storeRepo defines the store repository interface needed by store service.
type storeRepo interface {
	Create(ctx context.Context, s *domain.GroupStore) (*domain.GroupStore, error)
	GetByID(ctx context.Context, groupID, id uuid.UUID) (*domain.GroupStore, error)
	GetByNombre(ctx context.Context, groupID uuid.UUID, nombre string) (*domain.GroupStore, error)
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*domain.GroupStore, error)
	Update(ctx context.Context, groupID, id uuid.UUID, params domain.StoreUpdateParams) (*domain.GroupStore, error)
	Delete(ctx context.Context, groupID, id uuid.UUID) error
}

// groupRepo defines the group repository interface needed by store service.
type groupRepo interface {
	GetMember(ctx context.Context, groupID, userID uuid.UUID) (*domain.Member, error)
}

// Service implements store registry operations.
type Service struct {
	log    *slog.Logger
	stores storeRepo
	groups groupRepo
}

// NewService creates a new store service instance.
func NewService(logger *slog.Logger, stores storeRepo, groups groupRepo) *Service {
	return &Service{
		log:    logger.With("service", "store"),
		stores: stores,
		groups: groups,
	}
}

// requireMember resolves the authenticated user's membership in the group.
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
