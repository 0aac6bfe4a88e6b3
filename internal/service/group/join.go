package group

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sipalaciosv/dupe/internal/domain"
	"github.com/sipalaciosv/dupe/pkg/ctxutil"
)

// JoinGroupInput is the input for JoinGroupByCode.
type JoinGroupInput struct {
	InviteCode string
}

// Validate checks the input fields.
func (in JoinGroupInput) Validate() error {
	var fields []domain.FieldError
	if strings.TrimSpace(in.InviteCode) == "" {
		fields = append(fields, domain.FieldError{Field: "inviteCode", Message: "is required"})
	}
	if len(fields) > 0 {
		return domain.NewValidationErrors(fields)
	}
	return nil
}

// JoinGroupByCode adds the authenticated user to the group behind the invite
// code as a viewer. Codes are matched case-insensitively. Joining a group the
// user already belongs to is a no-op and keeps the existing role.
func (s *Service) JoinGroupByCode(ctx context.Context, input JoinGroupInput) (*domain.Group, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnauthorized, "authentication required")
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	code := strings.ToUpper(strings.TrimSpace(input.InviteCode))

	g, err := s.groups.GetByInviteCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, "invalid invite code")
		}
		return nil, fmt.Errorf("get group by invite code: %w", err)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := s.groups.AddMember(ctx, &domain.Member{
		GroupID:     g.ID,
		UserID:      userID,
		Role:        domain.RoleViewer,
		DisplayName: user.DisplayName,
		PhotoURL:    user.PhotoURL,
	}); err != nil {
		return nil, fmt.Errorf("add member: %w", err)
	}

	s.log.InfoContext(ctx, "user joined group",
		slog.String("group_id", g.ID.String()),
		slog.String("user_id", userID.String()))

	return g, nil
}
