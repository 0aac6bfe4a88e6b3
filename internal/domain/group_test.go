package domain

import (
	"strings"
	"testing"
)

func TestHasRole_Ordering(t *testing.T) {
	t.Parallel()

	tests := []struct {
		have     MemberRole
		required MemberRole
		want     bool
	}{
		{RoleOwner, RoleOwner, true},
		{RoleOwner, RoleEditor, true},
		{RoleOwner, RoleViewer, true},
		{RoleEditor, RoleOwner, false},
		{RoleEditor, RoleEditor, true},
		{RoleEditor, RoleViewer, true},
		{RoleViewer, RoleOwner, false},
		{RoleViewer, RoleEditor, false},
		{RoleViewer, RoleViewer, true},
	}

	for _, tt := range tests {
		m := &Member{Role: tt.have}
		if got := m.HasRole(tt.required); got != tt.want {
			t.Errorf("HasRole(%s→%s) = %v, want %v", tt.have, tt.required, got, tt.want)
		}
	}
}

func TestHasRole_NilMember(t *testing.T) {
	t.Parallel()

	var m *Member
	for _, r := range []MemberRole{RoleOwner, RoleEditor, RoleViewer} {
		if m.HasRole(r) {
			t.Errorf("nil member must fail HasRole(%s)", r)
		}
	}
}

func TestHasRole_UnknownRole(t *testing.T) {
	t.Parallel()

	m := &Member{Role: MemberRole("superadmin")}
	if m.HasRole(RoleViewer) {
		t.Error("unknown role must rank below viewer")
	}
}

func TestCapabilities(t *testing.T) {
	t.Parallel()

	viewer := &Member{Role: RoleViewer}
	editor := &Member{Role: RoleEditor}
	owner := &Member{Role: RoleOwner}

	// viewer-level
	if !viewer.CanCreateCatalogItem() || !viewer.CanVote() {
		t.Error("viewer must be able to create catalog items and vote")
	}

	// editor-level
	if viewer.CanEditCatalogItem() || viewer.CanCreateOffer() || viewer.CanManageExpeditions() {
		t.Error("viewer must not have editor capabilities")
	}
	if !editor.CanEditCatalogItem() || !editor.CanCreateOffer() || !editor.CanManageExpeditions() {
		t.Error("editor must have editor capabilities")
	}

	// owner-level
	if editor.CanManageMembers() || editor.CanManagePublicAccess() {
		t.Error("editor must not have owner capabilities")
	}
	if !owner.CanManageMembers() || !owner.CanManagePublicAccess() {
		t.Error("owner must have owner capabilities")
	}
}

func TestNewInviteCode(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := NewInviteCode()
		if len(code) != 8 {
			t.Fatalf("invite code length: got %d, want 8 (%q)", len(code), code)
		}
		for _, c := range code {
			if !strings.ContainsRune(inviteCodeAlphabet, c) {
				t.Fatalf("invite code %q contains %q outside alphabet", code, c)
			}
		}
		seen[code] = true
	}
	// 100 random 8-char codes colliding would indicate a broken generator.
	if len(seen) < 95 {
		t.Errorf("too many collisions: %d unique of 100", len(seen))
	}
}
