// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/sipalaciosv/dupe/internal/adapter/postgres"
	"github.com/sipalaciosv/dupe/internal/domain"
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getByIDSQL = `
SELECT id, email, display_name, photo_url, created_at, updated_at
FROM users
WHERE id = $1`

const getByEmailSQL = `
SELECT id, email, display_name, photo_url, created_at, updated_at
FROM users
WHERE email = $1`

const createSQL = `
INSERT INTO users (email, display_name, photo_url)
VALUES ($1, $2, $3)
RETURNING id, email, display_name, photo_url, created_at, updated_at`

const updateProfileSQL = `
UPDATE users
SET display_name = COALESCE($2, display_name),
    photo_url    = COALESCE($3, photo_url),
    updated_at   = now()
WHERE id = $1
RETURNING id, email, display_name, photo_url, created_at, updated_at`

// GetByID returns a user by primary key.
// Returns domain.ErrNotFound if the user does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	return u, nil
}

// GetByEmail returns a user by email.
// Returns domain.ErrNotFound if no user has that email.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(q.QueryRow(ctx, getByEmailSQL, email))
	if err != nil {
		return nil, postgres.MapError(err, "user", email)
	}
	return u, nil
}

// Create inserts a new user.
// Returns domain.ErrAlreadyExists if the email is taken.
func (r *Repo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(q.QueryRow(ctx, createSQL, user.Email, user.DisplayName, user.PhotoURL))
	if err != nil {
		return nil, postgres.MapError(err, "user", user.Email)
	}
	return u, nil
}

// UpdateProfile updates display name and/or photo URL. nil means keep current.
func (r *Repo) UpdateProfile(ctx context.Context, id uuid.UUID, displayName *string, photoURL *string) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	u, err := scanUser(q.QueryRow(ctx, updateProfileSQL, id, displayName, photoURL))
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	return u, nil
}

type row interface {
	Scan(dest ...any) error
}

func scanUser(r row) (*domain.User, error) {
	var u domain.User
	err := r.Scan(&u.ID, &u.Email, &u.DisplayName, &u.PhotoURL, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}
