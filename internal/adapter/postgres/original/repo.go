// Package original implements the Original repository using PostgreSQL.
package original

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

// Repo provides original persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new original repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const columns = `id, group_id, nombre, marca, ml, url_fragrantica, imagen_principal, tags, slug, tiendas, created_by, created_at, updated_by, updated_at`

const createSQL = `
INSERT INTO originals (group_id, nombre, marca, ml, url_fragrantica, imagen_principal, tags, slug, tiendas, created_by, updated_by)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
RETURNING ` + columns

const getByIDSQL = `
SELECT ` + columns + `
FROM originals
WHERE id = $1 AND group_id = $2`

const listByGroupSQL = `
SELECT ` + columns + `
FROM originals
WHERE group_id = $1
ORDER BY nombre`

const countBySlugSQL = `
SELECT count(*) FROM originals WHERE group_id = $1 AND slug = $2 AND id <> $3`

const deleteSQL = `
DELETE FROM originals WHERE id = $1 AND group_id = $2`

// Create inserts a new original and returns the persisted row.
func (r *Repo) Create(ctx context.Context, o *domain.Original) (*domain.Original, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	created, err := scanOriginal(q.QueryRow(ctx, createSQL,
		o.GroupID, o.Nombre, o.Marca, o.ML, o.URLFragrantica, o.ImagenPrincipal,
		o.Tags, o.Slug, o.Tiendas, o.CreatedBy))
	if err != nil {
		return nil, postgres.MapError(err, "original", o.Nombre)
	}
	return created, nil
}

// GetByID returns an original scoped to a group.
// Returns domain.ErrNotFound if it does not exist in that group.
func (r *Repo) GetByID(ctx context.Context, groupID, id uuid.UUID) (*domain.Original, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	o, err := scanOriginal(q.QueryRow(ctx, getByIDSQL, id, groupID))
	if err != nil {
		return nil, postgres.MapError(err, "original", id)
	}
	return o, nil
}

// ListByGroup returns all originals in a group ordered by nombre.
// Returns an empty slice (not nil) for an empty catalog.
func (r *Repo) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*domain.Original, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listByGroupSQL, groupID)
	if err != nil {
		return nil, fmt.Errorf("list originals: %w", err)
	}
	defer rows.Close()

	return collectOriginals(rows)
}

// CountBySlug counts originals in the group sharing a slug, excluding the
// given id. Used for the advisory duplicate warning; uuid.Nil excludes nothing.
func (r *Repo) CountBySlug(ctx context.Context, groupID uuid.UUID, slug string, excludeID uuid.UUID) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := q.QueryRow(ctx, countBySlugSQL, groupID, slug, excludeID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count originals by slug: %w", err)
	}
	return count, nil
}

// Update applies a partial update built from non-nil params and stamps
// updated_by/updated_at.
func (r *Repo) Update(ctx context.Context, groupID, id uuid.UUID, updatedBy uuid.UUID, params domain.OriginalUpdateParams) (*domain.Original, error) {
	b := sq.Update("originals").
		Set("updated_by", updatedBy).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, "group_id": groupID}).
		Suffix("RETURNING " + columns).
		PlaceholderFormat(sq.Dollar)

	if params.Nombre != nil {
		b = b.Set("nombre", *params.Nombre)
	}
	if params.Marca != nil {
		b = b.Set("marca", *params.Marca)
	}
	if params.ML != nil {
		b = b.Set("ml", *params.ML)
	}
	if params.URLFragrantica != nil {
		b = b.Set("url_fragrantica", *params.URLFragrantica)
	}
	if params.ImagenPrincipal != nil {
		b = b.Set("imagen_principal", *params.ImagenPrincipal)
	}
	if params.Tags != nil {
		b = b.Set("tags", *params.Tags)
	}
	if params.Slug != nil {
		b = b.Set("slug", *params.Slug)
	}
	if params.Tiendas != nil {
		b = b.Set("tiendas", *params.Tiendas)
	}

	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build original update: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	o, err := scanOriginal(q.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return nil, postgres.MapError(err, "original", id)
	}
	return o, nil
}

// Delete removes an original. Dupes, offers, and votes that reference it
// stay behind (no cascade).
// Returns domain.ErrNotFound if it does not exist in that group.
func (r *Repo) Delete(ctx context.Context, groupID, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, deleteSQL, id, groupID)
	if err != nil {
		return postgres.MapError(err, "original", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("original %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanOriginal(row pgx.Row) (*domain.Original, error) {
	var o domain.Original
	err := row.Scan(&o.ID, &o.GroupID, &o.Nombre, &o.Marca, &o.ML, &o.URLFragrantica,
		&o.ImagenPrincipal, &o.Tags, &o.Slug, &o.Tiendas,
		&o.CreatedBy, &o.CreatedAt, &o.UpdatedBy, &o.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("scan original: %w", err)
	}
	return &o, nil
}

func collectOriginals(rows pgx.Rows) ([]*domain.Original, error) {
	result := []*domain.Original{}
	for rows.Next() {
		o, err := scanOriginal(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
