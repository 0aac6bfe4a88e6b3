package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sipalaciosv/dupe/internal/domain"
)

// Login exchanges a Google authorization code for a session. The account is
// looked up by email and created on first login; a changed display name or
// photo on the Google side is synced into the stored profile.
func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	identity, err := s.oauth.VerifyCode(ctx, input.Code)
	if err != nil {
		s.log.WarnContext(ctx, "oauth verification failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %s", domain.ErrUnauthorized, "invalid authorization code")
	}

	email := strings.ToLower(strings.TrimSpace(identity.Email))

	user, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if profileChanged(user, identity) {
			updated, uerr := s.users.UpdateProfile(ctx, user.ID, identity.DisplayName, identity.PhotoURL)
			if uerr != nil {
				s.log.WarnContext(ctx, "profile sync failed",
					slog.String("user_id", user.ID.String()),
					slog.String("error", uerr.Error()))
			} else {
				user = updated
			}
		}
	case errors.Is(err, domain.ErrNotFound):
		user, err = s.createUser(ctx, email, identity.DisplayName, identity.PhotoURL)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	result, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID.String()),
		slog.String("email", user.Email))

	return result, nil
}

// createUser registers a first-time account. A concurrent login with the same
// email can win the race, in which case the existing row is used.
func (s *Service) createUser(ctx context.Context, email string, displayName, photoURL *string) (*domain.User, error) {
	newUser := &domain.User{
		Email:       email,
		DisplayName: derefOrEmpty(displayName),
		PhotoURL:    photoURL,
	}
	if newUser.DisplayName == "" {
		newUser.DisplayName = email
	}

	user, err := s.users.Create(ctx, newUser)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return s.users.GetByEmail(ctx, email)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID.String()),
		slog.String("email", user.Email))

	return user, nil
}
