// Package dupe implements the Dupe repository using PostgreSQL.
package dupe

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

// Repo provides dupe persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new dupe repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const columns = `id, group_id, original_id, nombre, marca, ml, imagen_principal, tags, slug, urls, tiendas,
avg_parecido, avg_gusto_al_aplicar, avg_gusto_despues, votes_count,
created_by, created_at, updated_by, updated_at`

const createSQL = `
INSERT INTO dupes (group_id, original_id, nombre, marca, ml, imagen_principal, tags, slug, urls, tiendas, created_by, updated_by)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
RETURNING ` + columns

const getByIDSQL = `
SELECT ` + columns + `
FROM dupes
WHERE id = $1 AND group_id = $2`

const listByGroupSQL = `
SELECT ` + columns + `
FROM dupes
WHERE group_id = $1
ORDER BY nombre`

const listByOriginalSQL = `
SELECT ` + columns + `
FROM dupes
WHERE group_id = $1 AND original_id = $2
ORDER BY nombre`

const countBySlugSQL = `
SELECT count(*) FROM dupes WHERE group_id = $1 AND slug = $2 AND id <> $3`

const updateAveragesSQL = `
UPDATE dupes
SET avg_parecido = $3, avg_gusto_al_aplicar = $4, avg_gusto_despues = $5, votes_count = $6
WHERE id = $1 AND group_id = $2`

const deleteSQL = `
DELETE FROM dupes WHERE id = $1 AND group_id = $2`

// Create inserts a new dupe and returns the persisted row.
func (r *Repo) Create(ctx context.Context, d *domain.Dupe) (*domain.Dupe, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	created, err := scanDupe(q.QueryRow(ctx, createSQL,
		d.GroupID, d.OriginalID, d.Nombre, d.Marca, d.ML, d.ImagenPrincipal,
		d.Tags, d.Slug, d.URLs, d.Tiendas, d.CreatedBy))
	if err != nil {
		return nil, postgres.MapError(err, "dupe", d.Nombre)
	}
	return created, nil
}

// GetByID returns a dupe scoped to a group.
// Returns domain.ErrNotFound if it does not exist in that group.
func (r *Repo) GetByID(ctx context.Context, groupID, id uuid.UUID) (*domain.Dupe, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	d, err := scanDupe(q.QueryRow(ctx, getByIDSQL, id, groupID))
	if err != nil {
		return nil, postgres.MapError(err, "dupe", id)
	}
	return d, nil
}

// ListByGroup returns all dupes in a group ordered by nombre, optionally
// filtered to one original. Returns an empty slice (not nil) when none match.
func (r *Repo) ListByGroup(ctx context.Context, groupID uuid.UUID, originalID *uuid.UUID) ([]*domain.Dupe, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		rows pgx.Rows
		err  error
	)
	if originalID != nil {
		rows, err = q.Query(ctx, listByOriginalSQL, groupID, *originalID)
	} else {
		rows, err = q.Query(ctx, listByGroupSQL, groupID)
	}
	if err != nil {
		return nil, fmt.Errorf("list dupes: %w", err)
	}
	defer rows.Close()

	return collectDupes(rows)
}

// CountBySlug counts dupes in the group sharing a slug, excluding the given
// id. Used for the advisory duplicate warning; uuid.Nil excludes nothing.
func (r *Repo) CountBySlug(ctx context.Context, groupID uuid.UUID, slug string, excludeID uuid.UUID) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	if err := q.QueryRow(ctx, countBySlugSQL, groupID, slug, excludeID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count dupes by slug: %w", err)
	}
	return count, nil
}

// Update applies a partial update built from non-nil params and stamps
// updated_by/updated_at.
func (r *Repo) Update(ctx context.Context, groupID, id uuid.UUID, updatedBy uuid.UUID, params domain.DupeUpdateParams) (*domain.Dupe, error) {
	b := sq.Update("dupes").
		Set("updated_by", updatedBy).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, "group_id": groupID}).
		Suffix("RETURNING " + columns).
		PlaceholderFormat(sq.Dollar)

	if params.OriginalID != nil {
		b = b.Set("original_id", *params.OriginalID)
	}
	if params.Nombre != nil {
		b = b.Set("nombre", *params.Nombre)
	}
	if params.Marca != nil {
		b = b.Set("marca", *params.Marca)
	}
	if params.ML != nil {
		b = b.Set("ml", *params.ML)
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
	if params.URLs != nil {
		b = b.Set("urls", *params.URLs)
	}
	if params.Tiendas != nil {
		b = b.Set("tiendas", *params.Tiendas)
	}

	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build dupe update: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	d, err := scanDupe(q.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return nil, postgres.MapError(err, "dupe", id)
	}
	return d, nil
}

// UpdateAverages overwrites the denormalized vote aggregates.
// Returns domain.ErrNotFound if the dupe does not exist in that group.
func (r *Repo) UpdateAverages(ctx context.Context, groupID, id uuid.UUID, avg domain.VoteAverages) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, updateAveragesSQL, id, groupID,
		avg.Parecido, avg.GustoAlAplicar, avg.GustoDespues, avg.Count)
	if err != nil {
		return postgres.MapError(err, "dupe", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("dupe %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Delete removes a dupe. Offers and votes that reference it stay behind
// (no cascade).
// Returns domain.ErrNotFound if it does not exist in that group.
func (r *Repo) Delete(ctx context.Context, groupID, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, deleteSQL, id, groupID)
	if err != nil {
		return postgres.MapError(err, "dupe", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("dupe %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanDupe(row pgx.Row) (*domain.Dupe, error) {
	var d domain.Dupe
	err := row.Scan(&d.ID, &d.GroupID, &d.OriginalID, &d.Nombre, &d.Marca, &d.ML,
		&d.ImagenPrincipal, &d.Tags, &d.Slug, &d.URLs, &d.Tiendas,
		&d.AvgParecido, &d.AvgGustoAlAplicar, &d.AvgGustoDespues, &d.VotesCount,
		&d.CreatedBy, &d.CreatedAt, &d.UpdatedBy, &d.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("scan dupe: %w", err)
	}
	return &d, nil
}

func collectDupes(rows pgx.Rows) ([]*domain.Dupe, error) {
	result := []*domain.Dupe{}
	for rows.Next() {
		d, err := scanDupe(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
