package group

import (
	"context"

	"github.com/google/uuid"

	"github.com/sipalaciosv/dupe/internal/domain"
)

type groupRepoMock struct {
	CreateFunc           func(ctx context.Context, g *domain.Group) (*domain.Group, error)
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (*domain.Group, error)
	GetByInviteCodeFunc  func(ctx context.Context, code string) (*domain.Group, error)
	GetByPublicSlugFunc  func(ctx context.Context, slug string) (*domain.Group, error)
	ListByUserFunc       func(ctx context.Context, userID uuid.UUID) ([]*domain.Group, error)
	UpdateFunc           func(ctx context.Context, id uuid.UUID, params domain.GroupUpdateParams) (*domain.Group, error)
	AddMemberFunc        func(ctx context.Context, m *domain.Member) error
	GetMemberFunc        func(ctx context.Context, groupID, userID uuid.UUID) (*domain.Member, error)
	ListMembersFunc      func(ctx context.Context, groupID uuid.UUID) ([]*domain.Member, error)
	UpdateMemberRoleFunc func(ctx context.Context, groupID, userID uuid.UUID, role domain.MemberRole) (*domain.Member, error)
}

func (m *groupRepoMock) Create(ctx context.Context, g *domain.Group) (*domain.Group, error) {
	return m.CreateFunc(ctx, g)
}

func (m *groupRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *groupRepoMock) GetByInviteCode(ctx context.Context, code string) (*domain.Group, error) {
	return m.GetByInviteCodeFunc(ctx, code)
}

func (m *groupRepoMock) GetByPublicSlug(ctx context.Context, slug string) (*domain.Group, error) {
	return m.GetByPublicSlugFunc(ctx, slug)
}

func (m *groupRepoMock) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Group, error) {
	return m.ListByUserFunc(ctx, userID)
}

func (m *groupRepoMock) Update(ctx context.Context, id uuid.UUID, params domain.GroupUpdateParams) (*domain.Group, error) {
	return m.UpdateFunc(ctx, id, params)
}

func (m *groupRepoMock) AddMember(ctx context.Context, mem *domain.Member) error {
	return m.AddMemberFunc(ctx, mem)
}

func (m *groupRepoMock) GetMember(ctx context.Context, groupID, userID uuid.UUID) (*domain.Member, error) {
	return m.GetMemberFunc(ctx, groupID, userID)
}

func (m *groupRepoMock) ListMembers(ctx context.Context, groupID uuid.UUID) ([]*domain.Member, error) {
	return m.ListMembersFunc(ctx, groupID)
}

func (m *groupRepoMock) UpdateMemberRole(ctx context.Context, groupID, userID uuid.UUID, role domain.MemberRole) (*domain.Member, error) {
	return m.UpdateMemberRoleFunc(ctx, groupID, userID, role)
}

type userRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.GetByIDFunc(ctx, id)
}

// txManagerMock runs the callback directly, without a real transaction.
type txManagerMock struct{}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
