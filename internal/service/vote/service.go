// Package vote implements vote saving and the recomputation of the vote
// aggregates denormalized onto dupes.
package vote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sipalaciosv/dupe/internal/domain"
	"github.com/sipalaciosv/dupe/pkg/ctxutil"
)

// voteRepo defines the vote repository interface needed by vote service.
type voteRepo interface {
	Upsert(ctx context.Context, v *domain.Vote) (*domain.Vote, error)
	ListByDupe(ctx context.Context, dupeID uuid.UUID) ([]domain.Vote, error)
	ListByOriginal(ctx context.Context, originalID uuid.UUID) ([]domain.Vote, error)
}

// dupeRepo defines the dupe repository interface needed by vote service.
type dupeRepo interface {
	GetByID(ctx context.Context, groupID, id uuid.UUID) (*domain.Dupe, error)
	UpdateAverages(ctx context.Context, groupID, id uuid.UUID, avg domain.VoteAverages) error
}

// originalRepo defines the original repository interface needed by vote service.
type originalRepo interface {
	GetByID(ctx context.Context, groupID, id uuid.UUID) (*domain.Original, error)
}

// groupRepo defines the group repository interface needed by vote service.
type groupRepo interface {
	GetMember(ctx context.Context, groupID, userID uuid.UUID) (*domain.Member, error)
}

// Service implements vote operations.
type Service struct {
	log       *slog.Logger
	votes     voteRepo
	dupes     dupeRepo
	originals originalRepo
	groups    groupRepo
}

// NewService creates a new vote service instance.
func NewService(logger *slog.Logger, votes voteRepo, dupes dupeRepo, originals originalRepo, groups groupRepo) *Service {
	return &Service{
		log:       logger.With("service", "vote"),
		votes:     votes,
		dupes:     dupes,
		originals: originals,
		groups:    groups,
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
