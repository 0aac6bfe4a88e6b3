package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sipalaciosv/dupe/internal/domain"
	"github.com/sipalaciosv/dupe/internal/service/group"
)

// groupService defines the minimal interface needed by GroupHandler.
type groupService interface {
	CreateGroup(ctx context.Context, input group.CreateGroupInput) (*domain.Group, error)
	JoinGroupByCode(ctx context.Context, input group.JoinGroupInput) (*domain.Group, error)
	ListUserGroups(ctx context.Context) ([]*domain.Group, error)
	GetGroup(ctx context.Context, groupID uuid.UUID) (*group.GroupView, error)
	ListMembers(ctx context.Context, groupID uuid.UUID) ([]*domain.Member, error)
	UpdateMemberRole(ctx context.Context, input group.UpdateMemberRoleInput) (*domain.Member, error)
	TogglePublicAccess(ctx context.Context, groupID uuid.UUID, enabled bool) (*domain.Group, error)
}

// GroupHandler serves group REST endpoints.
type GroupHandler struct {
	svc groupService
	log *slog.Logger
}

// NewGroupHandler creates a GroupHandler.
func NewGroupHandler(svc groupService, logger *slog.Logger) *GroupHandler {
	return &GroupHandler{svc: svc, log: logger.With("handler", "group")}
}

type createGroupRequest struct {
	Name string `json:"name"`
}

type joinGroupRequest struct {
	InviteCode string `json:"inviteCode"`
}

type updateMemberRoleRequest struct {
	Role string `json:"role"`
}

type publicAccessRequest struct {
	Enabled bool `json:"enabled"`
}

type groupResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	OwnerID    string    `json:"ownerId"`
	InviteCode string    `json:"inviteCode,omitempty"`
	PublicRead bool      `json:"publicRead"`
	PublicSlug string    `json:"publicSlug,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	MyRole     string    `json:"myRole,omitempty"`
}

type memberResponse struct {
	UserID      string    `json:"userId"`
	Role        string    `json:"role"`
	DisplayName string    `json:"displayName"`
	PhotoURL    *string   `json:"photoUrl,omitempty"`
	JoinedAt    time.Time `json:"joinedAt"`
}

func toGroupResponse(g *domain.Group) groupResponse {
	return groupResponse{
		ID:         g.ID.String(),
		Name:       g.Name,
		OwnerID:    g.OwnerID.String(),
		InviteCode: g.InviteCode,
		PublicRead: g.PublicRead,
		PublicSlug: g.PublicSlug,
		CreatedAt:  g.CreatedAt,
	}
}

func toMemberResponse(m *domain.Member) memberResponse {
	return memberResponse{
		UserID:      m.UserID.String(),
		Role:        string(m.Role),
		DisplayName: m.DisplayName,
		PhotoURL:    m.PhotoURL,
		JoinedAt:    m.JoinedAt,
	}
}

// Create handles POST /groups.
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	g, err := h.svc.CreateGroup(r.Context(), group.CreateGroupInput{Name: req.Name})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGroupResponse(g))
}

// Join handles POST /groups/join.
func (h *GroupHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req joinGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	g, err := h.svc.JoinGroupByCode(r.Context(), group.JoinGroupInput{InviteCode: req.InviteCode})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupResponse(g))
}

// List handles GET /groups.
func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	groups, err := h.svc.ListUserGroups(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := make([]groupResponse, 0, len(groups))
	for _, g := range groups {
		resp = append(resp, toGroupResponse(g))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /groups/{groupID}.
func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathUUID(r, "groupID")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	view, err := h.svc.GetGroup(r.Context(), groupID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := toGroupResponse(view.Group)
	resp.MyRole = string(view.Member.Role)
	writeJSON(w, http.StatusOK, resp)
}

// ListMembers handles GET /groups/{groupID}/members.
func (h *GroupHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathUUID(r, "groupID")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	members, err := h.svc.ListMembers(r.Context(), groupID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := make([]memberResponse, 0, len(members))
	for _, m := range members {
		resp = append(resp, toMemberResponse(m))
	}
	writeJSON(w, http.StatusOK, resp)
}

// UpdateMemberRole handles PATCH /groups/{groupID}/members/{userID}.
func (h *GroupHandler) UpdateMemberRole(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathUUID(r, "groupID")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	userID, err := pathUUID(r, "userID")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var req updateMemberRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m, err := h.svc.UpdateMemberRole(r.Context(), group.UpdateMemberRoleInput{
		GroupID: groupID,
		UserID:  userID,
		Role:    domain.MemberRole(req.Role),
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toMemberResponse(m))
}

// PublicAccess handles PATCH /groups/{groupID}/public-access.
func (h *GroupHandler) PublicAccess(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathUUID(r, "groupID")
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	var req publicAccessRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	g, err := h.svc.TogglePublicAccess(r.Context(), groupID, req.Enabled)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupResponse(g))
}
