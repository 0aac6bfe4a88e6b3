package store

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sipalaciosv/dupe/internal/domain"
	"github.com/sipalaciosv/dupe/pkg/ctxutil"
)

type storeRepoMock struct {
	CreateFunc      func(ctx context.Context, s *domain.GroupStore) (*domain.GroupStore, error)
	GetByIDFunc     func(ctx context.Context, groupID, id uuid.UUID) (*domain.GroupStore, error)
	GetByNombreFunc func(ctx context.Context, groupID uuid.UUID, nombre string) (*domain.GroupStore, error)
	ListByGroupFunc func(ctx context.Context, groupID uuid.UUID) ([]*domain.GroupStore, error)
	UpdateFunc      func(ctx context.Context, groupID, id uuid.UUID, params domain.StoreUpdateParams) (*domain.GroupStore, error)
	DeleteFunc      func(ctx context.Context, groupID, id uuid.UUID) error
}

func (m *storeRepoMock) Create(ctx context.Context, s *domain.GroupStore) (*domain.GroupStore, error) {
	return m.CreateFunc(ctx, s)
}

func (m *storeRepoMock) GetByID(ctx context.Context, groupID, id uuid.UUID) (*domain.GroupStore, error) {
	return m.GetByIDFunc(ctx, groupID, id)
}

func (m *storeRepoMock) GetByNombre(ctx context.Context, groupID uuid.UUID, nombre string) (*domain.GroupStore, error) {
	return m.GetByNombreFunc(ctx, groupID, nombre)
}

func (m *storeRepoMock) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*domain.GroupStore, error) {
	return m.ListByGroupFunc(ctx, groupID)
}

func (m *storeRepoMock) Update(ctx context.Context, groupID, id uuid.UUID, params domain.StoreUpdateParams) (*domain.GroupStore, error) {
	return m.UpdateFunc(ctx, groupID, id, params)
}

func (m *storeRepoMock) Delete(ctx context.Context, groupID, id uuid.UUID) error {
	return m.DeleteFunc(ctx, groupID, id)
}

type groupRepoMock struct {
	GetMemberFunc func(ctx context.Context, groupID, userID uuid.UUID) (*domain.Member, error)
}

func (m *groupRepoMock) GetMember(ctx context.Context, groupID, userID uuid.UUID) (*domain.Member, error) {
	return m.GetMemberFunc(ctx, groupID, userID)
}

func authedCtx(userID uuid.UUID) context.Context {
	return ctxutil.WithUserID(context.Background(), userID)
}

func groupsWithMember(groupID, userID uuid.UUID, role domain.MemberRole) *groupRepoMock {
	return &groupRepoMock{
		GetMemberFunc: func(ctx context.Context, gID, uID uuid.UUID) (*domain.Member, error) {
			if gID == groupID && uID == userID {
				return &domain.Member{GroupID: groupID, UserID: userID, Role: role}, nil
			}
			return nil, domain.ErrNotFound
		},
	}
}

// registry backs GetByNombre/Create with a case-insensitive in-memory map.
func registry(groupID uuid.UUID) *storeRepoMock {
	byName := map[string]*domain.GroupStore{}
	return &storeRepoMock{
		GetByNombreFunc: func(ctx context.Context, gID uuid.UUID, nombre string) (*domain.GroupStore, error) {
			if s, ok := byName[strings.ToLower(nombre)]; ok {
				return s, nil
			}
			return nil, domain.ErrNotFound
		},
		CreateFunc: func(ctx context.Context, s *domain.GroupStore) (*domain.GroupStore, error) {
			created := *s
			created.ID = uuid.New()
			byName[strings.ToLower(s.Nombre)] = &created
			return &created, nil
		},
	}
}

func TestCreate(t *testing.T) {
	userID := uuid.New()
	groupID := uuid.New()

	svc := NewService(slog.Default(), registry(groupID), groupsWithMember(groupID, userID, domain.RoleEditor))
	created, err := svc.Create(authedCtx(userID), CreateInput{
		GroupID: groupID,
		Nombre:  " Falabella ",
		Tipo:    domain.StoreFisica,
	})

	require.NoError(t, err)
	assert.Equal(t, "Falabella", created.Nombre)
	assert.NotEqual(t, uuid.Nil, created.ID)
}

func TestCreate_BlocksCaseInsensitiveDuplicate(t *testing.T) {
	userID := uuid.New()
	groupID := uuid.New()

	svc := NewService(slog.Default(), registry(groupID), groupsWithMember(groupID, userID, domain.RoleEditor))
	ctx := authedCtx(userID)

	_, err := svc.Create(ctx, CreateInput{GroupID: groupID, Nombre: "Falabella", Tipo: domain.StoreFisica})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateInput{GroupID: groupID, Nombre: "FALABELLA", Tipo: domain.StoreOnline})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestCreate_ViewerForbidden(t *testing.T) {
	userID := uuid.New()
	groupID := uuid.New()

	svc := NewService(slog.Default(), &storeRepoMock{}, groupsWithMember(groupID, userID, domain.RoleViewer))
	_, err := svc.Create(authedCtx(userID), CreateInput{GroupID: groupID, Nombre: "X", Tipo: domain.StoreFisica})

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreate_InvalidTipo(t *testing.T) {
	userID := uuid.New()
	groupID := uuid.New()

	svc := NewService(slog.Default(), &storeRepoMock{}, groupsWithMember(groupID, userID, domain.RoleEditor))
	_, err := svc.Create(authedCtx(userID), CreateInput{GroupID: groupID, Nombre: "X", Tipo: "hibrida"})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGetOrCreate_ReturnsExisting(t *testing.T) {
	userID := uuid.New()
	groupID := uuid.New()

	svc := NewService(slog.Default(), registry(groupID), groupsWithMember(groupID, userID, domain.RoleEditor))
	ctx := authedCtx(userID)

	first, err := svc.GetOrCreate(ctx, CreateInput{GroupID: groupID, Nombre: "AliExpress", Tipo: domain.StoreOnline})
	require.NoError(t, err)

	second, err := svc.GetOrCreate(ctx, CreateInput{GroupID: groupID, Nombre: "aliexpress", Tipo: domain.StoreOnline})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
}

func TestUpdate_RejectsRenameToExisting(t *testing.T) {
	userID := uuid.New()
	groupID := uuid.New()
	otherID := uuid.New()
	targetID := uuid.New()

	repo := &storeRepoMock{
		GetByNombreFunc: func(ctx context.Context, gID uuid.UUID, nombre string) (*domain.GroupStore, error) {
			if strings.EqualFold(nombre, "Falabella") {
				return &domain.GroupStore{ID: otherID, Nombre: "Falabella"}, nil
			}
			return nil, domain.ErrNotFound
		},
	}

	svc := NewService(slog.Default(), repo, groupsWithMember(groupID, userID, domain.RoleEditor))
	nombre := "Falabella"
	_, err := svc.Update(authedCtx(userID), UpdateInput{GroupID: groupID, ID: targetID, Nombre: &nombre})

	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestUpdate_SelfRenameAllowed(t *testing.T) {
	userID := uuid.New()
	groupID := uuid.New()
	targetID := uuid.New()

	repo := &storeRepoMock{
		GetByNombreFunc: func(ctx context.Context, gID uuid.UUID, nombre string) (*domain.GroupStore, error) {
			return &domain.GroupStore{ID: targetID, Nombre: "falabella"}, nil
		},
		UpdateFunc: func(ctx context.Context, gID, id uuid.UUID, params domain.StoreUpdateParams) (*domain.GroupStore, error) {
			require.NotNil(t, params.Nombre)
			return &domain.GroupStore{ID: id, Nombre: *params.Nombre}, nil
		},
	}

	svc := NewService(slog.Default(), repo, groupsWithMember(groupID, userID, domain.RoleEditor))
	nombre := "Falabella"
	updated, err := svc.Update(authedCtx(userID), UpdateInput{GroupID: groupID, ID: targetID, Nombre: &nombre})

	require.NoError(t, err)
	assert.Equal(t, "Falabella", updated.Nombre)
}

func TestDelete(t *testing.T) {
	userID := uuid.New()
	groupID := uuid.New()
	storeID := uuid.New()
	deleted := false

	repo := &storeRepoMock{
		DeleteFunc: func(ctx context.Context, gID, id uuid.UUID) error {
			assert.Equal(t, storeID, id)
			deleted = true
			return nil
		},
	}

	svc := NewService(slog.Default(), repo, groupsWithMember(groupID, userID, domain.RoleEditor))
	err := svc.Delete(authedCtx(userID), groupID, storeID)

	require.NoError(t, err)
	assert.True(t, deleted)
}
