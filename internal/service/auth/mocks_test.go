package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/sipalaciosv/dupe/internal/auth"
	"github.com/sipalaciosv/dupe/internal/domain"
)

type userRepoMock struct {
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFunc    func(ctx context.Context, email string) (*domain.User, error)
	CreateFunc        func(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateProfileFunc func(ctx context.Context, id uuid.UUID, displayName *string, photoURL *string) (*domain.User, error)
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.GetByEmailFunc(ctx, email)
}

func (m *userRepoMock) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	return m.CreateFunc(ctx, user)
}

func (m *userRepoMock) UpdateProfile(ctx context.Context, id uuid.UUID, displayName *string, photoURL *string) (*domain.User, error) {
	return m.UpdateProfileFunc(ctx, id, displayName, photoURL)
}

type tokenRepoMock struct {
	CreateFunc          func(ctx context.Context, token *domain.RefreshToken) error
	GetByHashFunc       func(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	RevokeByIDFunc      func(ctx context.Context, id uuid.UUID) error
	RevokeAllByUserFunc func(ctx context.Context, userID uuid.UUID) error
	DeleteExpiredFunc   func(ctx context.Context) (int, error)
}

func (m *tokenRepoMock) Create(ctx context.Context, token *domain.RefreshToken) error {
	return m.CreateFunc(ctx, token)
}

func (m *tokenRepoMock) GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	return m.GetByHashFunc(ctx, tokenHash)
}

func (m *tokenRepoMock) RevokeByID(ctx context.Context, id uuid.UUID) error {
	return m.RevokeByIDFunc(ctx, id)
}

func (m *tokenRepoMock) RevokeAllByUser(ctx context.Context, userID uuid.UUID) error {
	return m.RevokeAllByUserFunc(ctx, userID)
}

func (m *tokenRepoMock) DeleteExpired(ctx context.Context) (int, error) {
	return m.DeleteExpiredFunc(ctx)
}

type oauthVerifierMock struct {
	VerifyCodeFunc func(ctx context.Context, code string) (*auth.OAuthIdentity, error)
}

func (m *oauthVerifierMock) VerifyCode(ctx context.Context, code string) (*auth.OAuthIdentity, error) {
	return m.VerifyCodeFunc(ctx, code)
}

type jwtManagerMock struct {
	GenerateAccessTokenFunc  func(userID uuid.UUID) (string, error)
	ValidateAccessTokenFunc  func(token string) (uuid.UUID, error)
	GenerateRefreshTokenFunc func() (string, string, error)
}

func (m *jwtManagerMock) GenerateAccessToken(userID uuid.UUID) (string, error) {
	return m.GenerateAccessTokenFunc(userID)
}

func (m *jwtManagerMock) ValidateAccessToken(token string) (uuid.UUID, error) {
	return m.ValidateAccessTokenFunc(token)
}

func (m *jwtManagerMock) GenerateRefreshToken() (string, string, error) {
	return m.GenerateRefreshTokenFunc()
}
