// Package group implements the Group and Member repositories using PostgreSQL.
package group

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

// Repo provides group and membership persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new group repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const groupColumns = `id, name, owner_id, invite_code, public_read, public_slug, created_by, created_at, updated_at`

const createGroupSQL = `
INSERT INTO groups (name, owner_id, invite_code, public_slug, created_by)
VALUES ($1, $2, $3, $4, $2)
RETURNING ` + groupColumns

const getGroupByIDSQL = `
SELECT ` + groupColumns + `
FROM groups
WHERE id = $1`

// Invite codes are unique by convention only; take the oldest match so a
// colliding newer code never hijacks an existing group.
const getGroupByInviteCodeSQL = `
SELECT ` + groupColumns + `
FROM groups
WHERE invite_code = $1
ORDER BY created_at
LIMIT 1`

const getGroupByPublicSlugSQL = `
SELECT ` + groupColumns + `
FROM groups
WHERE public_slug = $1 AND public_read
ORDER BY created_at
LIMIT 1`

const listGroupsByUserSQL = `
SELECT g.id, g.name, g.owner_id, g.invite_code, g.public_read, g.public_slug, g.created_by, g.created_at, g.updated_at
FROM group_members gm
JOIN groups g ON g.id = gm.group_id
WHERE gm.user_id = $1
ORDER BY g.created_at`

// Create inserts a new group.
func (r *Repo) Create(ctx context.Context, g *domain.Group) (*domain.Group, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	created, err := scanGroup(q.QueryRow(ctx, createGroupSQL, g.Name, g.OwnerID, g.InviteCode, g.PublicSlug))
	if err != nil {
		return nil, postgres.MapError(err, "group", g.Name)
	}
	return created, nil
}

// GetByID returns a group by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	g, err := scanGroup(q.QueryRow(ctx, getGroupByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "group", id)
	}
	return g, nil
}

// GetByInviteCode returns the group matching the invite code.
// Returns domain.ErrNotFound if no group has that code.
func (r *Repo) GetByInviteCode(ctx context.Context, code string) (*domain.Group, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	g, err := scanGroup(q.QueryRow(ctx, getGroupByInviteCodeSQL, code))
	if err != nil {
		return nil, postgres.MapError(err, "group", code)
	}
	return g, nil
}

// GetByPublicSlug returns a publicly readable group by its public slug.
// Groups with public_read=false are invisible here.
func (r *Repo) GetByPublicSlug(ctx context.Context, slug string) (*domain.Group, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	g, err := scanGroup(q.QueryRow(ctx, getGroupByPublicSlugSQL, slug))
	if err != nil {
		return nil, postgres.MapError(err, "group", slug)
	}
	return g, nil
}

// ListByUser returns all groups the user is a member of, ordered by creation.
// Returns an empty slice (not nil) when the user has no groups.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Group, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listGroupsByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list groups by user: %w", err)
	}
	defer rows.Close()

	groups := []*domain.Group{}
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("list groups by user: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list groups by user: %w", err)
	}

	return groups, nil
}

// Update applies a partial update built from non-nil params.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, params domain.GroupUpdateParams) (*domain.Group, error) {
	b := sq.Update("groups").
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + groupColumns).
		PlaceholderFormat(sq.Dollar)

	if params.Name != nil {
		b = b.Set("name", *params.Name)
	}
	if params.PublicRead != nil {
		b = b.Set("public_read", *params.PublicRead)
	}
	if params.PublicSlug != nil {
		b = b.Set("public_slug", *params.PublicSlug)
	}

	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build group update: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	g, err := scanGroup(q.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return nil, postgres.MapError(err, "group", id)
	}
	return g, nil
}

// ---------------------------------------------------------------------------
// Members
// ---------------------------------------------------------------------------

const memberColumns = `group_id, user_id, role, display_name, photo_url, joined_at`

// Joining twice is a no-op: the existing membership (and role) is kept.
const addMemberSQL = `
INSERT INTO group_members (group_id, user_id, role, display_name, photo_url)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (group_id, user_id) DO NOTHING`

const getMemberSQL = `
SELECT ` + memberColumns + `
FROM group_members
WHERE group_id = $1 AND user_id = $2`

const listMembersSQL = `
SELECT ` + memberColumns + `
FROM group_members
WHERE group_id = $1
ORDER BY joined_at`

const updateMemberRoleSQL = `
UPDATE group_members SET role = $3
WHERE group_id = $1 AND user_id = $2
RETURNING ` + memberColumns

// AddMember inserts a membership. Idempotent: adding an existing member
// keeps the current row untouched.
func (r *Repo) AddMember(ctx context.Context, m *domain.Member) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx, addMemberSQL, m.GroupID, m.UserID, m.Role, m.DisplayName, m.PhotoURL)
	if err != nil {
		return postgres.MapError(err, "member", m.UserID)
	}
	return nil
}

// GetMember returns the membership of a user in a group.
// Returns domain.ErrNotFound when the user is not a member.
func (r *Repo) GetMember(ctx context.Context, groupID, userID uuid.UUID) (*domain.Member, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	m, err := scanMember(q.QueryRow(ctx, getMemberSQL, groupID, userID))
	if err != nil {
		return nil, postgres.MapError(err, "member", userID)
	}
	return m, nil
}

// ListMembers returns all members of a group ordered by join time.
func (r *Repo) ListMembers(ctx context.Context, groupID uuid.UUID) ([]*domain.Member, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listMembersSQL, groupID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	members := []*domain.Member{}
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("list members: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	return members, nil
}

// UpdateMemberRole changes a member's role.
// Returns domain.ErrNotFound when the membership does not exist.
func (r *Repo) UpdateMemberRole(ctx context.Context, groupID, userID uuid.UUID, role domain.MemberRole) (*domain.Member, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	m, err := scanMember(q.QueryRow(ctx, updateMemberRoleSQL, groupID, userID, role))
	if err != nil {
		return nil, postgres.MapError(err, "member", userID)
	}
	return m, nil
}

// ---------------------------------------------------------------------------
// Row scanning
// ---------------------------------------------------------------------------

func scanGroup(row pgx.Row) (*domain.Group, error) {
	var g domain.Group
	err := row.Scan(&g.ID, &g.Name, &g.OwnerID, &g.InviteCode, &g.PublicRead, &g.PublicSlug,
		&g.CreatedBy, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("scan group: %w", err)
	}
	return &g, nil
}

func scanMember(row pgx.Row) (*domain.Member, error) {
	var m domain.Member
	err := row.Scan(&m.GroupID, &m.UserID, &m.Role, &m.DisplayName, &m.PhotoURL, &m.JoinedAt)
	if err != nil {
		return nil, fmt.Errorf("scan member: %w", err)
	}
	return &m, nil
}
