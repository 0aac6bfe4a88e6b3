package offer

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sipalaciosv/dupe/internal/domain"
	"github.com/sipalaciosv/dupe/pkg/ctxutil"
)

type offerRepoMock struct {
	CreateFunc     func(ctx context.Context, o *domain.Offer) (*domain.Offer, error)
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.Offer, error)
	ListByDupeFunc func(ctx context.Context, dupeID uuid.UUID) ([]domain.Offer, error)
	DeleteFunc     func(ctx context.Context, id uuid.UUID) error
}

func (m *offerRepoMock) Create(ctx context.Context, o *domain.Offer) (*domain.Offer, error) {
	return m.CreateFunc(ctx, o)
}

func (m *offerRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Offer, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *offerRepoMock) ListByDupe(ctx context.Context, dupeID uuid.UUID) ([]domain.Offer, error) {
	return m.ListByDupeFunc(ctx, dupeID)
}

func (m *offerRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFunc(ctx, id)
}

type dupeRepoMock struct {
	GetByIDFunc func(ctx context.Context, groupID, id uuid.UUID) (*domain.Dupe, error)
}

func (m *dupeRepoMock) GetByID(ctx context.Context, groupID, id uuid.UUID) (*domain.Dupe, error) {
	return m.GetByIDFunc(ctx, groupID, id)
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

func dupesWith(groupID, dupeID uuid.UUID) *dupeRepoMock {
	return &dupeRepoMock{
		GetByIDFunc: func(ctx context.Context, gID, id uuid.UUID) (*domain.Dupe, error) {
			if gID == groupID && id == dupeID {
				return &domain.Dupe{ID: dupeID, GroupID: groupID}, nil
			}
			return nil, domain.ErrNotFound
		},
	}
}

func TestList_BuildsView(t *testing.T) {
	userID := uuid.New()
	groupID := uuid.New()
	dupeID := uuid.New()

	offers := &offerRepoMock{
		ListByDupeFunc: func(ctx context.Context, id uuid.UUID) ([]domain.Offer, error) {
			return []domain.Offer{
				{Tienda: "Falabella", Precio: 19990},
				{Tienda: "AliExpress", Precio: 10990},
				{Tienda: "Falabella", Precio: 15990},
			}, nil
		},
	}

	svc := NewService(slog.Default(), offers, dupesWith(groupID, dupeID), groupsWithMember(groupID, userID, domain.RoleViewer))
	view, err := svc.List(authedCtx(userID), groupID, dupeID)

	require.NoError(t, err)
	assert.Len(t, view.Offers, 3)
	require.NotNil(t, view.MinPrice)
	assert.Equal(t, 10990.0, view.MinPrice.Precio)
	assert.Len(t, view.ByTienda["Falabella"], 2)
	assert.Len(t, view.ByTienda["AliExpress"], 1)
}

func TestCreate_DefaultsFechaToToday(t *testing.T) {
	userID := uuid.New()
	groupID := uuid.New()
	dupeID := uuid.New()

	offers := &offerRepoMock{
		CreateFunc: func(ctx context.Context, o *domain.Offer) (*domain.Offer, error) {
			assert.WithinDuration(t, time.Now(), o.Fecha, time.Minute)
			assert.Equal(t, userID, o.CreatedBy)
			created := *o
			created.ID = uuid.New()
			return &created, nil
		},
	}

	svc := NewService(slog.Default(), offers, dupesWith(groupID, dupeID), groupsWithMember(groupID, userID, domain.RoleEditor))
	created, err := svc.Create(authedCtx(userID), CreateInput{
		GroupID: groupID,
		DupeID:  dupeID,
		Tienda:  " Falabella ",
		Precio:  15990,
	})

	require.NoError(t, err)
	assert.Equal(t, "Falabella", created.Tienda)
}

func TestCreate_ViewerForbidden(t *testing.T) {
	userID := uuid.New()
	groupID := uuid.New()

	svc := NewService(slog.Default(), &offerRepoMock{}, &dupeRepoMock{}, groupsWithMember(groupID, userID, domain.RoleViewer))
	_, err := svc.Create(authedCtx(userID), CreateInput{GroupID: groupID, DupeID: uuid.New(), Tienda: "X", Precio: 1})

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreate_DupeOutsideGroup(t *testing.T) {
	userID := uuid.New()
	groupID := uuid.New()

	svc := NewService(slog.Default(), &offerRepoMock{}, dupesWith(groupID, uuid.New()), groupsWithMember(groupID, userID, domain.RoleEditor))
	_, err := svc.Create(authedCtx(userID), CreateInput{GroupID: groupID, DupeID: uuid.New(), Tienda: "X", Precio: 1})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_Validation(t *testing.T) {
	userID := uuid.New()
	groupID := uuid.New()
	svc := NewService(slog.Default(), &offerRepoMock{}, &dupeRepoMock{}, groupsWithMember(groupID, userID, domain.RoleEditor))

	_, err := svc.Create(authedCtx(userID), CreateInput{GroupID: groupID, DupeID: uuid.New(), Tienda: "", Precio: 1})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Create(authedCtx(userID), CreateInput{GroupID: groupID, DupeID: uuid.New(), Tienda: "X", Precio: -1})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDelete_ChecksDupeOwnership(t *testing.T) {
	userID := uuid.New()
	groupID := uuid.New()
	dupeID := uuid.New()
	offerID := uuid.New()
	deleted := false

	offers := &offerRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Offer, error) {
			return &domain.Offer{ID: offerID, DupeID: dupeID}, nil
		},
		DeleteFunc: func(ctx context.Context, id uuid.UUID) error {
			deleted = true
			return nil
		},
	}

	svc := NewService(slog.Default(), offers, dupesWith(groupID, dupeID), groupsWithMember(groupID, userID, domain.RoleEditor))
	err := svc.Delete(authedCtx(userID), groupID, offerID)

	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestDelete_OfferFromAnotherGroup(t *testing.T) {
	userID := uuid.New()
	groupID := uuid.New()
	offerID := uuid.New()

	offers := &offerRepoMock{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Offer, error) {
			return &domain.Offer{ID: offerID, DupeID: uuid.New()}, nil
		},
	}

	svc := NewService(slog.Default(), offers, dupesWith(groupID, uuid.New()), groupsWithMember(groupID, userID, domain.RoleEditor))
	err := svc.Delete(authedCtx(userID), groupID, offerID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
