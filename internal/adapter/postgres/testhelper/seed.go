package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedUser inserts a user row and returns its ID.
func SeedUser(t *testing.T, pool *pgxpool.Pool, email, displayName string) uuid.UUID {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var id uuid.UUID
	err := pool.QueryRow(ctx,
		`INSERT INTO users (email, display_name) VALUES ($1, $2) RETURNING id`,
		email, displayName,
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: seed user: %v", err)
	}
	return id
}

// SeedGroup inserts a group owned by ownerID plus the owner membership row,
// and returns the group ID.
func SeedGroup(t *testing.T, pool *pgxpool.Pool, ownerID uuid.UUID, name, inviteCode string) uuid.UUID {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var id uuid.UUID
	err := pool.QueryRow(ctx,
		`INSERT INTO groups (name, owner_id, invite_code, created_by) VALUES ($1, $2, $3, $2) RETURNING id`,
		name, ownerID, inviteCode,
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: seed group: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO group_members (group_id, user_id, role, display_name) VALUES ($1, $2, 'owner', 'seed owner')`,
		id, ownerID,
	)
	if err != nil {
		t.Fatalf("testhelper: seed owner membership: %v", err)
	}
	return id
}
