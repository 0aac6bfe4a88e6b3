package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. Profile fields mirror what the identity
// provider hands us on login.
type User struct {
	ID          uuid.UUID
	Email       string
	DisplayName string
	PhotoURL    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RefreshToken is a stored (hashed) refresh token for session rotation.
// The raw token is only ever held by the client.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// IsExpired reports whether the token has expired as of now.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
