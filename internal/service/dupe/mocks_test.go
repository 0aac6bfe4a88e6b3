package dupe

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/sipalaciosv/dupe/internal/domain"
)

type dupeRepoMock struct {
	CreateFunc         func(ctx context.Context, d *domain.Dupe) (*domain.Dupe, error)
	GetByIDFunc        func(ctx context.Context, groupID, id uuid.UUID) (*domain.Dupe, error)
	ListByGroupFunc    func(ctx context.Context, groupID uuid.UUID, originalID *uuid.UUID) ([]*domain.Dupe, error)
	CountBySlugFunc    func(ctx context.Context, groupID uuid.UUID, slug string, excludeID uuid.UUID) (int, error)
	UpdateFunc         func(ctx context.Context, groupID, id uuid.UUID, updatedBy uuid.UUID, params domain.DupeUpdateParams) (*domain.Dupe, error)
	UpdateAveragesFunc func(ctx context.Context, groupID, id uuid.UUID, avg domain.VoteAverages) error
	DeleteFunc         func(ctx context.Context, groupID, id uuid.UUID) error
}

func (m *dupeRepoMock) Create(ctx context.Context, d *domain.Dupe) (*domain.Dupe, error) {
	return m.CreateFunc(ctx, d)
}

func (m *dupeRepoMock) GetByID(ctx context.Context, groupID, id uuid.UUID) (*domain.Dupe, error) {
	return m.GetByIDFunc(ctx, groupID, id)
}

func (m *dupeRepoMock) ListByGroup(ctx context.Context, groupID uuid.UUID, originalID *uuid.UUID) ([]*domain.Dupe, error) {
	return m.ListByGroupFunc(ctx, groupID, originalID)
}

func (m *dupeRepoMock) CountBySlug(ctx context.Context, groupID uuid.UUID, slug string, excludeID uuid.UUID) (int, error) {
	return m.CountBySlugFunc(ctx, groupID, slug, excludeID)
}

func (m *dupeRepoMock) Update(ctx context.Context, groupID, id uuid.UUID, updatedBy uuid.UUID, params domain.DupeUpdateParams) (*domain.Dupe, error) {
	return m.UpdateFunc(ctx, groupID, id, updatedBy, params)
}

func (m *dupeRepoMock) UpdateAverages(ctx context.Context, groupID, id uuid.UUID, avg domain.VoteAverages) error {
	return m.UpdateAveragesFunc(ctx, groupID, id, avg)
}

func (m *dupeRepoMock) Delete(ctx context.Context, groupID, id uuid.UUID) error {
	return m.DeleteFunc(ctx, groupID, id)
}

type originalRepoMock struct {
	GetByIDFunc func(ctx context.Context, groupID, id uuid.UUID) (*domain.Original, error)
}

func (m *originalRepoMock) GetByID(ctx context.Context, groupID, id uuid.UUID) (*domain.Original, error) {
	return m.GetByIDFunc(ctx, groupID, id)
}

type groupRepoMock struct {
	GetMemberFunc       func(ctx context.Context, groupID, userID uuid.UUID) (*domain.Member, error)
	GetByPublicSlugFunc func(ctx context.Context, slug string) (*domain.Group, error)
}

func (m *groupRepoMock) GetMember(ctx context.Context, groupID, userID uuid.UUID) (*domain.Member, error) {
	return m.GetMemberFunc(ctx, groupID, userID)
}

func (m *groupRepoMock) GetByPublicSlug(ctx context.Context, slug string) (*domain.Group, error) {
	return m.GetByPublicSlugFunc(ctx, slug)
}

type blobStoreMock struct {
	UploadFunc func(ctx context.Context, blobPath string, content io.Reader) (string, error)
	DeleteFunc func(ctx context.Context, blobPath string) error
}

func (m *blobStoreMock) Upload(ctx context.Context, blobPath string, content io.Reader) (string, error) {
	if m.UploadFunc == nil {
		return "http://localhost/blobs/" + blobPath, nil
	}
	return m.UploadFunc(ctx, blobPath, content)
}

func (m *blobStoreMock) Delete(ctx context.Context, blobPath string) error {
	if m.DeleteFunc == nil {
		return nil
	}
	return m.DeleteFunc(ctx, blobPath)
}
