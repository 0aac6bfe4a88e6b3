package group

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sipalaciosv/dupe/internal/domain"
)

// ListMembers returns all members of a group the caller belongs to.
func (s *Service) ListMembers(ctx context.Context, groupID uuid.UUID) ([]*domain.Member, error) {
	if _, err := s.requireMember(ctx, groupID); err != nil {
		return nil, err
	}

	members, err := s.groups.ListMembers(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

// UpdateMemberRoleInput is the input for UpdateMemberRole.
type UpdateMemberRoleInput struct {
	GroupID uuid.UUID
	UserID  uuid.UUID
	Role    domain.MemberRole
}

// Validate checks the input fields.
func (in UpdateMemberRoleInput) Validate() error {
	var fields []domain.FieldError
	if in.UserID == uuid.Nil {
		fields = append(fields, domain.FieldError{Field: "userId", Message: "is required"})
	}
	if in.Role != domain.RoleEditor && in.Role != domain.RoleViewer {
		fields = append(fields, domain.FieldError{Field: "role", Message: "must be editor or viewer"})
	}
	if len(fields) > 0 {
		return domain.NewValidationErrors(fields)
	}
	return nil
}

// UpdateMemberRole changes another member's role. Only the owner may do this,
// and only between editor and viewer; ownership itself is not transferable.
func (s *Service) UpdateMemberRole(ctx context.Context, input UpdateMemberRoleInput) (*domain.Member, error) {
	caller, err := s.requireMember(ctx, input.GroupID)
	if err != nil {
		return nil, err
	}
	if !caller.CanManageMembers() {
		return nil, fmt.Errorf("%w: %s", domain.ErrForbidden, "only the owner can manage members")
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	if input.UserID == caller.UserID {
		return nil, fmt.Errorf("%w: %s", domain.ErrConflict, "the owner cannot change their own role")
	}

	member, err := s.groups.UpdateMemberRole(ctx, input.GroupID, input.UserID, input.Role)
	if err != nil {
		return nil, fmt.Errorf("update member role: %w", err)
	}

	s.log.InfoContext(ctx, "member role updated",
		slog.String("group_id", input.GroupID.String()),
		slog.String("user_id", input.UserID.String()),
		slog.String("role", string(input.Role)))

	return member, nil
}
