package original

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sipalaciosv/dupe/internal/domain"
)

// Update partially updates an original. Requires the editor role. Changing
// the name recomputes the slug.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.Original, error) {
	member, err := s.requireMember(ctx, input.GroupID)
	if err != nil {
		return nil, err
	}
	if !member.CanEditCatalogItem() {
		return nil, fmt.Errorf("%w: %s", domain.ErrForbidden, "insufficient role")
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	params := domain.OriginalUpdateParams{
		Marca:          input.Marca,
		ML:             input.ML,
		URLFragrantica: input.URLFragrantica,
		Tags:           input.Tags,
		Tiendas:        input.Tiendas,
	}
	if input.Nombre != nil {
		nombre := strings.TrimSpace(*input.Nombre)
		slug := domain.Slugify(nombre)
		params.Nombre = &nombre
		params.Slug = &slug
	}

	updated, err := s.originals.Update(ctx, input.GroupID, input.ID, member.UserID, params)
	if err != nil {
		return nil, fmt.Errorf("update original: %w", err)
	}

	s.log.InfoContext(ctx, "original updated",
		slog.String("group_id", input.GroupID.String()),
		slog.String("original_id", input.ID.String()))

	return updated, nil
}
