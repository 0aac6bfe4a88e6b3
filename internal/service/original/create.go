package original

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/sipalaciosv/dupe/internal/domain"
)

// CreateResult carries the created original plus an advisory flag set when
// another original in the group already uses the same slug. Duplicates are
// allowed; the flag lets clients warn the user.
type CreateResult struct {
	Original      *domain.Original
	DuplicateSlug bool
}

// Create adds an original to the group's catalog. Any member may create
// catalog items.
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

	nombre := strings.TrimSpace(input.Nombre)
	slug := domain.Slugify(nombre)

	dupCount, err := s.originals.CountBySlug(ctx, input.GroupID, slug, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("count by slug: %w", err)
	}

	created, err := s.originals.Create(ctx, &domain.Original{
		GroupID:        input.GroupID,
		Nombre:         nombre,
		Marca:          input.Marca,
		ML:             input.ML,
		URLFragrantica: input.URLFragrantica,
		Tags:           input.Tags,
		Slug:           slug,
		Tiendas:        input.Tiendas,
		CreatedBy:      member.UserID,
		UpdatedBy:      member.UserID,
	})
	if err != nil {
		return nil, fmt.Errorf("create original: %w", err)
	}

	s.log.InfoContext(ctx, "original created",
		slog.String("group_id", input.GroupID.String()),
		slog.String("original_id", created.ID.String()))

	return &CreateResult{Original: created, DuplicateSlug: dupCount > 0}, nil
}
