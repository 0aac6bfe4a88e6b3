package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sipalaciosv/dupe/internal/auth"
	"github.com/sipalaciosv/dupe/internal/domain"
	"github.com/sipalaciosv/dupe/pkg/ctxutil"
)

// Logout revokes the presented refresh token, or every session of the
// authenticated user when input.All is set. Revoking an unknown token is not
// an error so logout stays idempotent.
func (s *Service) Logout(ctx context.Context, input LogoutInput) error {
	if err := input.Validate(); err != nil {
		return err
	}

	if input.All {
		userID, ok := ctxutil.UserIDFromCtx(ctx)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrUnauthorized, "authentication required")
		}
		if err := s.tokens.RevokeAllByUser(ctx, userID); err != nil {
			return fmt.Errorf("revoke all sessions: %w", err)
		}
		s.log.InfoContext(ctx, "all sessions revoked", slog.String("user_id", userID.String()))
		return nil
	}

	stored, err := s.tokens.GetByHash(ctx, auth.HashToken(input.RefreshToken))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("get refresh token: %w", err)
	}

	if err := s.tokens.RevokeByID(ctx, stored.ID); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}

	s.log.InfoContext(ctx, "user logged out", slog.String("user_id", stored.UserID.String()))
	return nil
}

// ValidateToken checks an access token and returns the user ID it carries.
// Used by the auth middleware.
func (s *Service) ValidateToken(ctx context.Context, token string) (uuid.UUID, error) {
	userID, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s", domain.ErrUnauthorized, "invalid access token")
	}
	return userID, nil
}

// CleanupExpiredTokens deletes expired and revoked refresh tokens. Meant to
// be called periodically.
func (s *Service) CleanupExpiredTokens(ctx context.Context) (int, error) {
	deleted, err := s.tokens.DeleteExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete expired tokens: %w", err)
	}
	if deleted > 0 {
		s.log.InfoContext(ctx, "expired tokens cleaned up", slog.Int("deleted", deleted))
	}
	return deleted, nil
}
