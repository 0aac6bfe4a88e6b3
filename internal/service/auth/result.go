package auth

import "github.com/sipalaciosv/dupe/internal/domain"

// AuthResult is returned by Login and Refresh.
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	User         *domain.User
}
