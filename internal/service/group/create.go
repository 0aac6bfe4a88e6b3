package group

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sipalaciosv/dupe/internal/domain"
	"github.com/sipalaciosv/dupe/pkg/ctxutil"
)

// CreateGroupInput is the input for CreateGroup.
type CreateGroupInput struct {
	Name string
}

// Validate checks the input fields.
func (in CreateGroupInput) Validate() error {
	var fields []domain.FieldError
	name := strings.TrimSpace(in.Name)
	if name == "" {
		fields = append(fields, domain.FieldError{Field: "name", Message: "is required"})
	}
	if len(name) > 100 {
		fields = append(fields, domain.FieldError{Field: "name", Message: "must be at most 100 characters"})
	}
	if len(fields) > 0 {
		return domain.NewValidationErrors(fields)
	}
	return nil
}

// CreateGroup creates a group and its owner membership in one transaction.
// The creator becomes the owner, and a fresh invite code is generated.
func (s *Service) CreateGroup(ctx context.Context, input CreateGroupInput) (*domain.Group, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnauthorized, "authentication required")
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	creator, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get creator: %w", err)
	}

	var created *domain.Group
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		g, err := s.groups.Create(ctx, &domain.Group{
			Name:       strings.TrimSpace(input.Name),
			OwnerID:    userID,
			InviteCode: domain.NewInviteCode(),
			CreatedBy:  userID,
		})
		if err != nil {
			return fmt.Errorf("create group: %w", err)
		}

		if err := s.groups.AddMember(ctx, &domain.Member{
			GroupID:     g.ID,
			UserID:      userID,
			Role:        domain.RoleOwner,
			DisplayName: creator.DisplayName,
			PhotoURL:    creator.PhotoURL,
		}); err != nil {
			return fmt.Errorf("add owner membership: %w", err)
		}

		created = g
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "group created",
		slog.String("group_id", created.ID.String()),
		slog.String("owner_id", userID.String()))

	return created, nil
}
