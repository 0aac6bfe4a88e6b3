package vote

import (
	"context"

	"github.com/google/uuid"

	"github.com/sipalaciosv/dupe/internal/domain"
)

type voteRepoMock struct {
	UpsertFunc         func(ctx context.Context, v *domain.Vote) (*domain.Vote, error)
	ListByDupeFunc     func(ctx context.Context, dupeID uuid.UUID) ([]domain.Vote, error)
	ListByOriginalFunc func(ctx context.Context, originalID uuid.UUID) ([]domain.Vote, error)
}

func (m *voteRepoMock) Upsert(ctx context.Context, v *domain.Vote) (*domain.Vote, error) {
	return m.UpsertFunc(ctx, v)
}

func (m *voteRepoMock) ListByDupe(ctx context.Context, dupeID uuid.UUID) ([]domain.Vote, error) {
	return m.ListByDupeFunc(ctx, dupeID)
}

func (m *voteRepoMock) ListByOriginal(ctx context.Context, originalID uuid.UUID) ([]domain.Vote, error) {
	return m.ListByOriginalFunc(ctx, originalID)
}

type dupeRepoMock struct {
	GetByIDFunc        func(ctx context.Context, groupID, id uuid.UUID) (*domain.Dupe, error)
	UpdateAveragesFunc func(ctx context.Context, groupID, id uuid.UUID, avg domain.VoteAverages) error
}

func (m *dupeRepoMock) GetByID(ctx context.Context, groupID, id uuid.UUID) (*domain.Dupe, error) {
	return m.GetByIDFunc(ctx, groupID, id)
}

func (m *dupeRepoMock) UpdateAverages(ctx context.Context, groupID, id uuid.UUID, avg domain.VoteAverages) error {
	return m.UpdateAveragesFunc(ctx, groupID, id, avg)
}

type originalRepoMock struct {
	GetByIDFunc func(ctx context.Context, groupID, id uuid.UUID) (*domain.Original, error)
}

func (m *originalRepoMock) GetByID(ctx context.Context, groupID, id uuid.UUID) (*domain.Original, error) {
	return m.GetByIDFunc(ctx, groupID, id)
}

type groupRepoMock struct {
	GetMemberFunc func(ctx context.Context, groupID, userID uuid.UUID) (*domain.Member, error)
}

func (m *groupRepoMock) GetMember(ctx context.Context, groupID, userID uuid.UUID) (*domain.Member, error) {
	return m.GetMemberFunc(ctx, groupID, userID)
}
