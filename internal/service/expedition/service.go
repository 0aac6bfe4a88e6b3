// Package expedition implements store-visit planning: expeditions and their
// try-lists.
package expedition

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sipalaciosv/dupe/internal/domain"
	"github.com/sipalaciosv/dupe/pkg/ctxutil"
)

// expeditionRepo defines the expedition repository interface needed by expedition service.
type expeditionRepo interface {
	Create(ctx context.Context, e *domain.Expedition) (*domain.Expedition, error)
	GetByID(ctx context.Context, groupID, id uuid.UUID) (*domain.Expedition, error)
	ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*domain.Expedition, error)
	SetEstado(ctx context.Context, groupID, id uuid.UUID, estado domain.ExpeditionEstado) (*domain.Expedition, error)
	AddItem(ctx context.Context, it *domain.ExpeditionItem) (*domain.ExpeditionItem, error)
	ListItems(ctx context.Context, expeditionID uuid.UUID) ([]*domain.ExpeditionItem, error)
	UpdateItemStatus(ctx context.Context, expeditionID, itemID uuid.UUID, status domain.ExpeditionItemStatus, notasRapidas *string, updatedBy uuid.UUID) (*domain.ExpeditionItem, error)
}

// groupRepo defines the group repository interface needed by expedition service.
type groupRepo interface {
	GetMember(ctx context.Context, groupID, userID uuid.UUID) (*domain.Member, error)
}

// Service implements expedition operations.
type Service struct {
	log         *slog.Logger
	expeditions expeditionRepo
	groups      groupRepo
}

// NewService creates a new expedition service instance.
func NewService(logger *slog.Logger, expeditions expeditionRepo, groups groupRepo) *Service {
	return &Service{
		log:         logger.With("service", "expedition"),
		expeditions: expeditions,
		groups:      groups,
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
