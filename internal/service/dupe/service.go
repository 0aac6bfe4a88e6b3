// Package dupe implements catalog operations for dupe candidates, including
// the denormalized vote aggregates kept on each dupe.
package dupe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sipalaciosv/dupe/internal/domain"
	"github.com/sipalaciosv/dupe/pkg/ctxutil"
)

// dupeRepo defines the dupe repository interface needed by dupe service.
type dupeRepo interface {
	Create(ctx context.Context, d *domain.Dupe) (*domain.Dupe, error)
	GetByID(ctx context.Context, groupID, id uuid.UUID) (*domain.Dupe, error)
	ListByGroup(ctx context.Context, groupID uuid.UUID, originalID *uuid.UUID) ([]*domain.Dupe, error)
	CountBySlug(ctx context.Context, groupID uuid.UUID, slug string, excludeID uuid.UUID) (int, error)
	Update(ctx context.Context, groupID, id uuid.UUID, updatedBy uuid.UUID, params domain.DupeUpdateParams) (*domain.Dupe, error)
	UpdateAverages(ctx context.Context, groupID, id uuid.UUID, avg domain.VoteAverages) error
	Delete(ctx context.Context, groupID, id uuid.UUID) error
}

// originalRepo defines the original repository interface needed by dupe service.
type originalRepo interface {
	GetByID(ctx context.Context, groupID, id uuid.UUID) (*domain.Original, error)
}

// groupRepo defines the group repository interface needed by dupe service.
type groupRepo interface {
	GetMember(ctx context.Context, groupID, userID uuid.UUID) (*domain.Member, error)
	GetByPublicSlug(ctx context.Context, slug string) (*domain.Group, error)
}

// blobStore defines the image storage interface needed by dupe service.
type blobStore interface {
	Upload(ctx context.Context, blobPath string, content io.Reader) (string, error)
	Delete(ctx context.Context, blobPath string) error
}

// Service implements dupe catalog operations.
type Service struct {
	log       *slog.Logger
	dupes     dupeRepo
	originals originalRepo
	groups    groupRepo
	blobs     blobStore
}

// NewService creates a new dupe service instance.
func NewService(logger *slog.Logger, dupes dupeRepo, originals originalRepo, groups groupRepo, blobs blobStore) *Service {
	return &Service{
		log:       logger.With("service", "dupe"),
		dupes:     dupes,
		originals: originals,
		groups:    groups,
		blobs:     blobs,
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
