// Package offer implements price sightings attached to dupes.
package offer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sipalaciosv/dupe/internal/domain"
	"github.com/sipalaciosv/dupe/pkg/ctxutil"
)

// offerRepo defines the offer repository interface needed by offer service.
type offerRepo interface {
	Create(ctx context.Context, o *domain.Offer) (*domain.Offer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Offer, error)
	ListByDupe(ctx context.Context, dupeID uuid.UUID) ([]domain.Offer, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// dupeRepo defines the dupe repository interface needed by offer service.
type dupeRepo interface {
	GetByID(ctx context.Context, groupID, id uuid.UUID) (*domain.Dupe, error)
}

// groupRepo defines the group repository interface needed by offer service.
type groupRepo interface {
	GetMember(ctx context.Context, groupID, userID uuid.UUID) (*domain.Member, error)
}

// Service implements offer operations.
type Service struct {
	log    *slog.Logger
	offers offerRepo
	dupes  dupeRepo
	groups groupRepo
}

// NewService creates a new offer service instance.
func NewService(logger *slog.Logger, offers offerRepo, dupes dupeRepo, groups groupRepo) *Service {
	return &Service{
		log:    logger.With("service", "offer"),
		offers: offers,
		dupes:  dupes,
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

// requireDupe verifies the dupe exists in the group.
func (s *Service) requireDupe(ctx context.Context, groupID, dupeID uuid.UUID) error {
	if _, err := s.dupes.GetByID(ctx, groupID, dupeID); err != nil {
		return fmt.Errorf("get dupe: %w", err)
	}
	return nil
}
