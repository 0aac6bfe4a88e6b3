package domain

import (
	"crypto/rand"
	"time"

	"github.com/google/uuid"
)

// Group is a shared catalog workspace. Members collaborate on its originals,
// dupes, offers, votes, expeditions, and stores.
type Group struct {
	ID         uuid.UUID
	Name       string
	OwnerID    uuid.UUID
	InviteCode string
	PublicRead bool
	PublicSlug string
	CreatedBy  uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Member is a user's membership in a group. DisplayName and PhotoURL are
// denormalized from the user profile at join time.
type Member struct {
	GroupID     uuid.UUID
	UserID      uuid.UUID
	Role        MemberRole
	DisplayName string
	PhotoURL    *string
	JoinedAt    time.Time
}

// HasRole reports whether the member's role is at least the required role
// in the owner > editor > viewer order. A nil member (no membership) fails
// every check.
func (m *Member) HasRole(required MemberRole) bool {
	if m == nil {
		return false
	}
	have, ok := roleRank[m.Role]
	if !ok {
		return false
	}
	want, ok := roleRank[required]
	if !ok {
		return false
	}
	return have >= want
}

// Capability checks. These are the fixed capability-to-role assignments
// enforced by every service operation.

func (m *Member) CanCreateCatalogItem() bool { return m.HasRole(RoleViewer) }
func (m *Member) CanVote() bool              { return m.HasRole(RoleViewer) }
func (m *Member) CanEditCatalogItem() bool   { return m.HasRole(RoleEditor) }
func (m *Member) CanCreateOffer() bool       { return m.HasRole(RoleEditor) }
func (m *Member) CanManageExpeditions() bool { return m.HasRole(RoleEditor) }
func (m *Member) CanManageMembers() bool     { return m.HasRole(RoleOwner) }
func (m *Member) CanManagePublicAccess() bool { return m.HasRole(RoleOwner) }

// GroupUpdateParams holds partial update fields for a group.
// nil = don't change.
type GroupUpdateParams struct {
	Name       *string
	PublicRead *bool
	PublicSlug *string
}

const inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewInviteCode generates an 8-character uppercase alphanumeric invite code.
// Codes are unique by convention, not enforced by storage.
func NewInviteCode() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms; fall back to a UUID-derived code.
		s := uuid.NewString()
		for i := range b {
			b[i] = inviteCodeAlphabet[int(s[i])%len(inviteCodeAlphabet)]
		}
		return string(b)
	}
	for i := range b {
		b[i] = inviteCodeAlphabet[int(b[i])%len(inviteCodeAlphabet)]
	}
	return string(b)
}
