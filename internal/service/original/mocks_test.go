package original

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/sipalaciosv/dupe/internal/domain"
)

type originalRepoMock struct {
	CreateFunc      func(ctx context.Context, o *domain.Original) (*domain.Original, error)
	GetByIDFunc     func(ctx context.Context, groupID, id uuid.UUID) (*domain.Original, error)
	ListByGroupFunc func(ctx context.Context, groupID uuid.UUID) ([]*domain.Original, error)
	CountBySlugFunc func(ctx context.Context, groupID uuid.UUID, slug string, excludeID uuid.UUID) (int, error)
	UpdateFunc      func(ctx context.Context, groupID, id uuid.UUID, updatedBy uuid.UUID, params domain.OriginalUpdateParams) (*domain.Original, error)
	DeleteFunc      func(ctx context.Context, groupID, id uuid.UUID) error
}

func (m *originalRepoMock) Create(ctx context.Context, o *domain.Original) (*domain.Original, error) {
	return m.CreateFunc(ctx, o)
}

func (m *originalRepoMock) GetByID(ctx context.Context, groupID, id uuid.UUID) (*domain.Original, error) {
	return m.GetByIDFunc(ctx, groupID, id)
}

func (m *originalRepoMock) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*domain.Original, error) {
	return m.ListByGroupFunc(ctx, groupID)
}

func (m *originalRepoMock) CountBySlug(ctx context.Context, groupID uuid.UUID, slug string, excludeID uuid.UUID) (int, error) {
	return m.CountBySlugFunc(ctx, groupID, slug, excludeID)
}

func (m *originalRepoMock) Update(ctx context.Context, groupID, id uuid.UUID, updatedBy uuid.UUID, params domain.OriginalUpdateParams) (*domain.Original, error) {
	return m.UpdateFunc(ctx, groupID, id, updatedBy, params)
}

func (m *originalRepoMock) Delete(ctx context.Context, groupID, id uuid.UUID) error {
	return m.DeleteFunc(ctx, groupID, id)
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
