// Package store implements the GroupStore repository using PostgreSQL.
package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/sipalaciosv/dupe/internal/adapter/postgres"
	"github.com/sipalaciosv/dupe/internal/domain"
)

// Repo provides store persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new store repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const columns = `id, group_id, nombre, tipo, created_by, created_at`

const createSQL = `
INSERT INTO stores (group_id, nombre, tipo, created_by)
VALUES ($1, $2, $3, $4)
RETURNING ` + columns

const getByIDSQL = `
SELECT ` + columns + `
FROM stores
WHERE id = $1 AND group_id = $2`

const listByGroupSQL = `
SELECT ` + columns + `
FROM stores
WHERE group_id = $1
ORDER BY nombre`

// Case-insensitive lookup for the advisory uniqueness check; the oldest
// match wins when duplicates slipped in concurrently.
const getByNombreSQL = `
SELECT ` + columns + `
FROM stores
WHERE group_id = $1 AND lower(nombre) = lower($2)
ORDER BY created_at
LIMIT 1`

const deleteSQL = `
DELETE FROM stores WHERE id = $1 AND group_id = $2`

// Create inserts a new store and returns the persisted row.
func (r *Repo) Create(ctx context.Context, s *domain.GroupStore) (*domain.GroupStore, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	created, err := scanStore(q.QueryRow(ctx, createSQL, s.GroupID, s.Nombre, s.Tipo, s.CreatedBy))
	if err != nil {
		return nil, postgres.MapError(err, "store", s.Nombre)
	}
	return created, nil
}

// GetByID returns a store scoped to a group.
func (r *Repo) GetByID(ctx context.Context, groupID, id uuid.UUID) (*domain.GroupStore, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	s, err := scanStore(q.QueryRow(ctx, getByIDSQL, id, groupID))
	if err != nil {
		return nil, postgres.MapError(err, "store", id)
	}
	return s, nil
}

// GetByNombre returns the store with the given name (case-insensitive).
// Returns domain.ErrNotFound when no store matches.
func (r *Repo) GetByNombre(ctx context.Context, groupID uuid.UUID, nombre string) (*domain.GroupStore, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	s, err := scanStore(q.QueryRow(ctx, getByNombreSQL, groupID, nombre))
	if err != nil {
		return nil, postgres.MapError(err, "store", nombre)
	}
	return s, nil
}

// ListByGroup returns all stores in a group ordered by nombre.
// Returns an empty slice (not nil) when there are none.
func (r *Repo) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*domain.GroupStore, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listByGroupSQL, groupID)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()

	result := []*domain.GroupStore{}
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}

	return result, nil
}

// Update applies a partial update built from non-nil params.
func (r *Repo) Update(ctx context.Context, groupID, id uuid.UUID, params domain.StoreUpdateParams) (*domain.GroupStore, error) {
	b := sq.Update("stores").
		Where(sq.Eq{"id": id, "group_id": groupID}).
		Suffix("RETURNING " + columns).
		PlaceholderFormat(sq.Dollar)

	if params.Nombre != nil {
		b = b.Set("nombre", *params.Nombre)
	}
	if params.Tipo != nil {
		b = b.Set("tipo", *params.Tipo)
	}

	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build store update: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	s, err := scanStore(q.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return nil, postgres.MapError(err, "store", id)
	}
	return s, nil
}

// Delete removes a store. Offers referencing it by name stay behind.
// Returns domain.ErrNotFound if it does not exist in that group.
func (r *Repo) Delete(ctx context.Context, groupID, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, deleteSQL, id, groupID)
	if err != nil {
		return postgres.MapError(err, "store", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("store %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanStore(row pgx.Row) (*domain.GroupStore, error) {
	var s domain.GroupStore
	err := row.Scan(&s.ID, &s.GroupID, &s.Nombre, &s.Tipo, &s.CreatedBy, &s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("scan store: %w", err)
	}
	return &s, nil
}
