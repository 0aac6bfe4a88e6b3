// Package vote implements the Vote repository using PostgreSQL.
//
// Votes are keyed by (subject, user): the partial unique indexes on
// (dupe_id, user_id) and (original_id, user_id) let Upsert overwrite a
// member's previous vote in a single statement.
package vote

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/sipalaciosv/dupe/internal/adapter/postgres"
	"github.com/sipalaciosv/dupe/internal/domain"
)

// Repo provides vote persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new vote repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const columns = `id, dupe_id, original_id, user_id, parecido, gusto_al_aplicar, gusto_despues, comentario, display_name, photo_url, updated_at`

const upsertDupeVoteSQL = `
INSERT INTO votes (dupe_id, user_id, parecido, gusto_al_aplicar, gusto_despues, comentario, display_name, photo_url)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (dupe_id, user_id) WHERE dupe_id IS NOT NULL DO UPDATE
SET parecido = EXCLUDED.parecido,
    gusto_al_aplicar = EXCLUDED.gusto_al_aplicar,
    gusto_despues = EXCLUDED.gusto_despues,
    comentario = EXCLUDED.comentario,
    display_name = EXCLUDED.display_name,
    photo_url = EXCLUDED.photo_url,
    updated_at = now()
RETURNING ` + columns

const upsertOriginalVoteSQL = `
INSERT INTO votes (original_id, user_id, parecido, gusto_al_aplicar, gusto_despues, comentario, display_name, photo_url)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (original_id, user_id) WHERE original_id IS NOT NULL DO UPDATE
SET parecido = EXCLUDED.parecido,
    gusto_al_aplicar = EXCLUDED.gusto_al_aplicar,
    gusto_despues = EXCLUDED.gusto_despues,
    comentario = EXCLUDED.comentario,
    display_name = EXCLUDED.display_name,
    photo_url = EXCLUDED.photo_url,
    updated_at = now()
RETURNING ` + columns

const listByDupeSQL = `
SELECT ` + columns + `
FROM votes
WHERE dupe_id = $1
ORDER BY updated_at DESC`

const listByOriginalSQL = `
SELECT ` + columns + `
FROM votes
WHERE original_id = $1
ORDER BY updated_at DESC`

// Upsert saves a vote, overwriting the user's previous vote on the same
// subject if one exists. Exactly one of v.DupeID / v.OriginalID must be set;
// the votes CHECK constraint enforces this (mapped to domain.ErrValidation).
func (r *Repo) Upsert(ctx context.Context, v *domain.Vote) (*domain.Vote, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var row pgx.Row
	switch {
	case v.DupeID != nil:
		row = q.QueryRow(ctx, upsertDupeVoteSQL,
			v.DupeID, v.UserID, v.Parecido, v.GustoAlAplicar, v.GustoDespues,
			v.Comentario, v.DisplayName, v.PhotoURL)
	case v.OriginalID != nil:
		row = q.QueryRow(ctx, upsertOriginalVoteSQL,
			v.OriginalID, v.UserID, v.Parecido, v.GustoAlAplicar, v.GustoDespues,
			v.Comentario, v.DisplayName, v.PhotoURL)
	default:
		return nil, fmt.Errorf("vote: %w", domain.ErrValidation)
	}

	saved, err := scanVote(row)
	if err != nil {
		return nil, postgres.MapError(err, "vote", v.UserID)
	}
	return saved, nil
}

// ListByDupe returns all votes on a dupe, most recently updated first.
// Returns an empty slice (not nil) when there are none.
func (r *Repo) ListByDupe(ctx context.Context, dupeID uuid.UUID) ([]domain.Vote, error) {
	return r.list(ctx, listByDupeSQL, dupeID)
}

// ListByOriginal returns all votes on an original, most recently updated first.
func (r *Repo) ListByOriginal(ctx context.Context, originalID uuid.UUID) ([]domain.Vote, error) {
	return r.list(ctx, listByOriginalSQL, originalID)
}

func (r *Repo) list(ctx context.Context, sql string, subjectID uuid.UUID) ([]domain.Vote, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, sql, subjectID)
	if err != nil {
		return nil, fmt.Errorf("list votes: %w", err)
	}
	defer rows.Close()

	votes := []domain.Vote{}
	for rows.Next() {
		v, err := scanVote(rows)
		if err != nil {
			return nil, err
		}
		votes = append(votes, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list votes: %w", err)
	}

	return votes, nil
}

func scanVote(row pgx.Row) (*domain.Vote, error) {
	var v domain.Vote
	err := row.Scan(&v.ID, &v.DupeID, &v.OriginalID, &v.UserID,
		&v.Parecido, &v.GustoAlAplicar, &v.GustoDespues,
		&v.Comentario, &v.DisplayName, &v.PhotoURL, &v.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("scan vote: %w", err)
	}
	return &v, nil
}
