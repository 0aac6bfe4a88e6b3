package original

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sipalaciosv/dupe/internal/domain"
)

// Delete removes an original from the catalog. Requires the editor role.
// Dupes pointing at the original are left in place and simply lose their
// reference target; votes and offers on those dupes are untouched.
func (s *Service) Delete(ctx context.Context, groupID, id uuid.UUID) error {
	member, err := s.requireMember(ctx, groupID)
	if err != nil {
		return err
	}
	if !member.CanEditCatalogItem() {
		return fmt.Errorf("%w: %s", domain.ErrForbidden, "insufficient role")
	}

	if err := s.originals.Delete(ctx, groupID, id); err != nil {
		return fmt.Errorf("delete original: %w", err)
	}

	// The stored image stays deletable by path even after the row is gone.
	if err := s.blobs.Delete(ctx, imagePath(groupID, id)); err != nil {
		s.log.WarnContext(ctx, "image cleanup failed",
			slog.String("original_id", id.String()),
			slog.String("error", err.Error()))
	}

	s.log.InfoContext(ctx, "original deleted",
		slog.String("group_id", groupID.String()),
		slog.String("original_id", id.String()))

	return nil
}
