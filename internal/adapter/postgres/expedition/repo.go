// Package expedition implements the Expedition and ExpeditionItem
// repositories using PostgreSQL.
package expedition

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/sipalaciosv/dupe/internal/adapter/postgres"
	"github.com/sipalaciosv/dupe/internal/domain"
)

// Repo provides expedition persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new expedition repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const columns = `id, group_id, nombre, fecha, estado, created_by, created_at`

const createSQL = `
INSERT INTO expeditions (group_id, nombre, fecha, estado, created_by)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + columns

const getByIDSQL = `
SELECT ` + columns + `
FROM expeditions
WHERE id = $1 AND group_id = $2`

const listByGroupSQL = `
SELECT ` + columns + `
FROM expeditions
WHERE group_id = $1
ORDER BY fecha DESC`

const setEstadoSQL = `
UPDATE expeditions SET estado = $3
WHERE id = $1 AND group_id = $2
RETURNING ` + columns

// Create inserts a new expedition and returns the persisted row.
func (r *Repo) Create(ctx context.Context, e *domain.Expedition) (*domain.Expedition, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	created, err := scanExpedition(q.QueryRow(ctx, createSQL,
		e.GroupID, e.Nombre, e.Fecha, e.Estado, e.CreatedBy))
	if err != nil {
		return nil, postgres.MapError(err, "expedition", e.Nombre)
	}
	return created, nil
}

// GetByID returns an expedition scoped to a group.
func (r *Repo) GetByID(ctx context.Context, groupID, id uuid.UUID) (*domain.Expedition, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	e, err := scanExpedition(q.QueryRow(ctx, getByIDSQL, id, groupID))
	if err != nil {
		return nil, postgres.MapError(err, "expedition", id)
	}
	return e, nil
}

// ListByGroup returns all expeditions in a group, newest fecha first.
// Returns an empty slice (not nil) when there are none.
func (r *Repo) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*domain.Expedition, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listByGroupSQL, groupID)
	if err != nil {
		return nil, fmt.Errorf("list expeditions: %w", err)
	}
	defer rows.Close()

	result := []*domain.Expedition{}
	for rows.Next() {
		e, err := scanExpedition(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list expeditions: %w", err)
	}

	return result, nil
}

// SetEstado transitions the expedition to the given state.
// Returns domain.ErrNotFound if it does not exist in that group.
func (r *Repo) SetEstado(ctx context.Context, groupID, id uuid.UUID, estado domain.ExpeditionEstado) (*domain.Expedition, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	e, err := scanExpedition(q.QueryRow(ctx, setEstadoSQL, id, groupID, estado))
	if err != nil {
		return nil, postgres.MapError(err, "expedition", id)
	}
	return e, nil
}

// ---------------------------------------------------------------------------
// Items
// ---------------------------------------------------------------------------

const itemColumns = `id, expedition_id, dupe_id, original_id, nombre, status, notas_rapidas, created_at, updated_at, updated_by`

const addItemSQL = `
INSERT INTO expedition_items (expedition_id, dupe_id, original_id, nombre, status, notas_rapidas, updated_by)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING ` + itemColumns

const listItemsSQL = `
SELECT ` + itemColumns + `
FROM expedition_items
WHERE expedition_id = $1
ORDER BY created_at`

const updateItemStatusSQL = `
UPDATE expedition_items
SET status = $3,
    notas_rapidas = COALESCE($4, notas_rapidas),
    updated_at = now(),
    updated_by = $5
WHERE id = $2 AND expedition_id = $1
RETURNING ` + itemColumns

// AddItem inserts a try-list item and returns the persisted row.
func (r *Repo) AddItem(ctx context.Context, it *domain.ExpeditionItem) (*domain.ExpeditionItem, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	created, err := scanItem(q.QueryRow(ctx, addItemSQL,
		it.ExpeditionID, it.DupeID, it.OriginalID, it.Nombre, it.Status, it.NotasRapidas, it.UpdatedBy))
	if err != nil {
		return nil, postgres.MapError(err, "expedition_item", it.ExpeditionID)
	}
	return created, nil
}

// ListItems returns the expedition's items in insertion order.
// Returns an empty slice (not nil) when there are none.
func (r *Repo) ListItems(ctx context.Context, expeditionID uuid.UUID) ([]*domain.ExpeditionItem, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listItemsSQL, expeditionID)
	if err != nil {
		return nil, fmt.Errorf("list expedition items: %w", err)
	}
	defer rows.Close()

	result := []*domain.ExpeditionItem{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list expedition items: %w", err)
	}

	return result, nil
}

// UpdateItemStatus sets an item's status and optionally its notas rápidas
// (nil keeps the current notes).
// Returns domain.ErrNotFound if the item does not exist on that expedition.
func (r *Repo) UpdateItemStatus(ctx context.Context, expeditionID, itemID uuid.UUID, status domain.ExpeditionItemStatus, notasRapidas *string, updatedBy uuid.UUID) (*domain.ExpeditionItem, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	it, err := scanItem(q.QueryRow(ctx, updateItemStatusSQL, expeditionID, itemID, status, notasRapidas, updatedBy))
	if err != nil {
		return nil, postgres.MapError(err, "expedition_item", itemID)
	}
	return it, nil
}

func scanExpedition(row pgx.Row) (*domain.Expedition, error) {
	var e domain.Expedition
	err := row.Scan(&e.ID, &e.GroupID, &e.Nombre, &e.Fecha, &e.Estado, &e.CreatedBy, &e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("scan expedition: %w", err)
	}
	return &e, nil
}

func scanItem(row pgx.Row) (*domain.ExpeditionItem, error) {
	var it domain.ExpeditionItem
	err := row.Scan(&it.ID, &it.ExpeditionID, &it.DupeID, &it.OriginalID, &it.Nombre,
		&it.Status, &it.NotasRapidas, &it.CreatedAt, &it.UpdatedAt, &it.UpdatedBy)
	if err != nil {
		return nil, fmt.Errorf("scan expedition item: %w", err)
	}
	return &it, nil
}
