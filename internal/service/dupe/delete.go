package dupe

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sipalaciosv/dupe/internal/domain"
)

func imagePath(groupID, id uuid.UUID) string {
	return fmt.Sprintf("groups/%s/dupes/%s/main.jpg", groupID, id)
}

// Delete removes a dupe from the catalog. Requires the editor role. Votes and
// offers that referenced the dupe are left in place.
func (s *Service) Delete(ctx context.Context, groupID, id uuid.UUID) error {
	member, err := s.requireMember(ctx, groupID)
	if err != nil {
		return err
	}
	if !member.CanEditCatalogItem() {
		return fmt.Errorf("%w: %s", domain.ErrForbidden, "insufficient role")
	}

	if err := s.dupes.Delete(ctx, groupID, id); err != nil {
		return fmt.Errorf("delete dupe: %w", err)
	}

	if err := s.blobs.Delete(ctx, imagePath(groupID, id)); err != nil {
		s.log.WarnContext(ctx, "image cleanup failed",
			slog.String("dupe_id", id.String()),
			slog.String("error", err.Error()))
	}

	s.log.InfoContext(ctx, "dupe deleted",
		slog.String("group_id", groupID.String()),
		slog.String("dupe_id", id.String()))

	return nil
}

// UploadImage stores the main image for a dupe and records its public URL on
// the item. Requires the editor role.
func (s *Service) UploadImage(ctx context.Context, groupID, id uuid.UUID, content io.Reader) (*domain.Dupe, error) {
	member, err := s.requireMember(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !member.CanEditCatalogItem() {
		return nil, fmt.Errorf("%w: %s", domain.ErrForbidden, "insufficient role")
	}

	if _, err := s.dupes.GetByID(ctx, groupID, id); err != nil {
		return nil, fmt.Errorf("get dupe: %w", err)
	}

	url, err := s.blobs.Upload(ctx, imagePath(groupID, id), content)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	updated, err := s.dupes.Update(ctx, groupID, id, member.UserID, domain.DupeUpdateParams{
		ImagenPrincipal: &url,
	})
	if err != nil {
		return nil, fmt.Errorf("record image url: %w", err)
	}

	s.log.InfoContext(ctx, "dupe image uploaded",
		slog.String("group_id", groupID.String()),
		slog.String("dupe_id", id.String()))

	return updated, nil
}
