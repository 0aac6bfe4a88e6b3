package dupe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/sipalaciosv/dupe/internal/domain"
)

// CreateResult carries the created dupe plus an advisory flag set when
// another dupe in the group already uses the same slug.
type CreateResult struct {
	Dupe          *domain.Dupe
	DuplicateSlug bool
}

// Create adds a dupe pointing at an original in the same group. Any member
// may create catalog items. The referenced original must exist.
func (s *Service) Create(ctx context.Context, input CreateInput) (*CreateResult, error) {
	member, err := s.requireMember(ctx, input.GroupID)
	if err != nil {
		return nil, err
	}
	if !member.CanCreateCatalogItem() {
		return nil, fmt.Errorf("%w: %s", domain.ErrForbidden, "insufficient role")
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.originals.GetByID(ctx, input.GroupID, input.OriginalID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewValidationError("originalId", "original does not exist in this group")
		}
		return nil, fmt.Errorf("get original: %w", err)
	}

	nombre := strings.TrimSpace(input.Nombre)
	slug := domain.Slugify(nombre)

	dupCount, err := s.dupes.CountBySlug(ctx, input.GroupID, slug, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("count by slug: %w", err)
	}

	created, err := s.dupes.Create(ctx, &domain.Dupe{
		GroupID:    input.GroupID,
		OriginalID: input.OriginalID,
		Nombre:     nombre,
		Marca:      input.Marca,
		ML:         input.ML,
		Tags:       input.Tags,
		Slug:       slug,
		URLs:       input.URLs,
		Tiendas:    input.Tiendas,
		CreatedBy:  member.UserID,
		UpdatedBy:  member.UserID,
	})
	if err != nil {
		return nil, fmt.Errorf("create dupe: %w", err)
	}

	s.log.InfoContext(ctx, "dupe created",
		slog.String("group_id", input.GroupID.String()),
		slog.String("dupe_id", created.ID.String()),
		slog.String("original_id", input.OriginalID.String()))

	return &CreateResult{Dupe: created, DuplicateSlug: dupCount > 0}, nil
}
