package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sipalaciosv/dupe/internal/auth"
	"github.com/sipalaciosv/dupe/internal/domain"
)

// Refresh rotates a refresh token: the presented token is revoked and a new
// access/refresh pair is issued.
func (s *Service) Refresh(ctx context.Context, input RefreshInput) (*AuthResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	stored, err := s.tokens.GetByHash(ctx, auth.HashToken(input.RefreshToken))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnauthorized, "invalid refresh token")
		}
		return nil, fmt.Errorf("get refresh token: %w", err)
	}

	if stored.IsExpired(time.Now()) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnauthorized, "refresh token expired")
	}

	user, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnauthorized, "user no longer exists")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := s.tokens.RevokeByID(ctx, stored.ID); err != nil {
		return nil, fmt.Errorf("revoke refresh token: %w", err)
	}

	result, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "tokens refreshed", slog.String("user_id", user.ID.String()))

	return result, nil
}
