package original

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sipalaciosv/dupe/internal/domain"
)

func imagePath(groupID, id uuid.UUID) string {
	return fmt.Sprintf("groups/%s/originals/%s/main.jpg", groupID, id)
}

// UploadImage stores the main image for an original and records its public
// URL on the item. Requires the editor role. Re-uploading replaces the
// previous image.
func (s *Service) UploadImage(ctx context.Context, groupID, id uuid.UUID, content io.Reader) (*domain.Original, error) {
	member, err := s.requireMember(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !member.CanEditCatalogItem() {
		return nil, fmt.Errorf("%w: %s", domain.ErrForbidden, "insufficient role")
	}

	// Verify the item exists before touching storage.
	if _, err := s.originals.GetByID(ctx, groupID, id); err != nil {
		return nil, fmt.Errorf("get original: %w", err)
	}

	url, err := s.blobs.Upload(ctx, imagePath(groupID, id), content)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	updated, err := s.originals.Update(ctx, groupID, id, member.UserID, domain.OriginalUpdateParams{
		ImagenPrincipal: &url,
	})
	if err != nil {
		return nil, fmt.Errorf("record image url: %w", err)
	}

	s.log.InfoContext(ctx, "original image uploaded",
		slog.String("group_id", groupID.String()),
		slog.String("original_id", id.String()))

	return updated, nil
}
