// Package user implements profile operations for the authenticated account.
package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sipalaciosv/dupe/internal/domain"
	"github.com/sipalaciosv/dupe/pkg/ctxutil"
)

// userRepo defines the user repository interface needed by user service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, displayName *string, photoURL *string) (*domain.User, error)
}

// Service implements user profile operations.
type Service struct {
	log   *slog.Logger
	users userRepo
}

// NewService creates a new user service instance.
func NewService(logger *slog.Logger, users userRepo) *Service {
	return &Service{
		log:   logger.With("service", "user"),
		users: users,
	}
}

// GetProfile returns the authenticated user's profile.
func (s *Service) GetProfile(ctx context.Context) (*domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnauthorized, "authentication required")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// UpdateProfileInput is the input for UpdateProfile. Nil fields stay
// unchanged.
type UpdateProfileInput struct {
	DisplayName *string
	PhotoURL    *string
}

// Validate checks the input fields.
func (in UpdateProfileInput) Validate() error {
	var fields []domain.FieldError
	if in.DisplayName == nil && in.PhotoURL == nil {
		fields = append(fields, domain.FieldError{Field: "displayName", Message: "at least one field must be provided"})
	}
	if in.DisplayName != nil && *in.DisplayName == "" {
		fields = append(fields, domain.FieldError{Field: "displayName", Message: "cannot be empty"})
	}
	if len(fields) > 0 {
		return domain.NewValidationErrors(fields)
	}
	return nil
}

// UpdateProfile updates the authenticated user's display name and photo.
func (s *Service) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnauthorized, "authentication required")
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.UpdateProfile(ctx, userID, input.DisplayName, input.PhotoURL)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.log.InfoContext(ctx, "profile updated", slog.String("user_id", userID.String()))

	return user, nil
}
