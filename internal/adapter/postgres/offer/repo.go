// Package offer implements the Offer repository using PostgreSQL.
package offer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/sipalaciosv/dupe/internal/adapter/postgres"
	"github.com/sipalaciosv/dupe/internal/domain"
)

// Repo provides offer persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new offer repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const columns = `id, dupe_id, tienda, precio, fecha, url_tienda, nota, created_by, created_at`

const createSQL = `
INSERT INTO offers (dupe_id, tienda, precio, fecha, url_tienda, nota, created_by)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + columns

const getByIDSQL = `
SELECT ` + columns + `
FROM offers
WHERE id = $1`

const listByDupeSQL = `
SELECT ` + columns + `
FROM offers
WHERE dupe_id = $1
ORDER BY fecha DESC`

const deleteSQL = `
DELETE FROM offers WHERE id = $1`

// Create inserts a new offer and returns the persisted row.
func (r *Repo) Create(ctx context.Context, o *domain.Offer) (*domain.Offer, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	created, err := scanOffer(q.QueryRow(ctx, createSQL,
		o.DupeID, o.Tienda, o.Precio, o.Fecha, o.URLTienda, o.Nota, o.CreatedBy))
	if err != nil {
		return nil, postgres.MapError(err, "offer", o.DupeID)
	}
	return created, nil
}

// GetByID returns an offer by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Offer, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	o, err := scanOffer(q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "offer", id)
	}
	return o, nil
}

// ListByDupe returns all offers for a dupe, newest fecha first.
// Returns an empty slice (not nil) when there are none.
func (r *Repo) ListByDupe(ctx context.Context, dupeID uuid.UUID) ([]domain.Offer, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listByDupeSQL, dupeID)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	defer rows.Close()

	offers := []domain.Offer{}
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		offers = append(offers, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}

	return offers, nil
}

// Delete removes an offer.
// Returns domain.ErrNotFound if it does not exist.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "offer", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("offer %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanOffer(row pgx.Row) (*domain.Offer, error) {
	var o domain.Offer
	err := row.Scan(&o.ID, &o.DupeID, &o.Tienda, &o.Precio, &o.Fecha,
		&o.URLTienda, &o.Nota, &o.CreatedBy, &o.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("scan offer: %w", err)
	}
	return &o, nil
}
