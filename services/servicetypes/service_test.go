package servicetypes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sgruwertal/dienst-service/repos/postgres"
)

type fakeStore struct {
	types   map[int64]*postgres.ServiceType
	members map[int64]*postgres.ServiceTypeMember
	nextID  int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		types:   map[int64]*postgres.ServiceType{},
		members: map[int64]*postgres.ServiceTypeMember{},
	}
}

func (f *fakeStore) ListServiceTypes(_ context.Context) ([]postgres.ServiceType, error) {
	out := make([]postgres.ServiceType, 0, len(f.types))
	for _, st := range f.types {
		out = append(out, *st)
	}
	return out, nil
}

func (f *fakeStore) CreateServiceType(_ context.Context, st *postgres.ServiceType) error {
	f.nextID++
	st.ID = f.nextID
	copied := *st
	f.types[st.ID] = &copied
	return nil
}

func (f *fakeStore) UpdateServiceType(_ context.Context, st *postgres.ServiceType) (bool, error) {
	if _, ok := f.types[st.ID]; !ok {
		return false, nil
	}
	copied := *st
	f.types[st.ID] = &copied
	return true, nil
}

func (f *fakeStore) DeleteServiceType(_ context.Context, id int64) (bool, error) {
	if _, ok := f.types[id]; !ok {
		return false, nil
	}
	delete(f.types, id)
	for memberID, member := range f.members {
		if member.ServiceTypeID == id {
			delete(f.members, memberID)
		}
	}
	return true, nil
}

func (f *fakeStore) ListServiceTypeMembers(_ context.Context, serviceTypeID int64) ([]postgres.ServiceTypeMember, error) {
	var out []postgres.ServiceTypeMember
	for _, member := range f.members {
		if member.ServiceTypeID == serviceTypeID {
			out = append(out, *member)
		}
	}
	return out, nil
}

func (f *fakeStore) AddServiceTypeMember(_ context.Context, member *postgres.ServiceTypeMember) error {
	f.nextID++
	member.ID = f.nextID
	copied := *member
	f.members[member.ID] = &copied
	return nil
}

func (f *fakeStore) DeleteServiceTypeMember(_ context.Context, id int64) (bool, error) {
	if _, ok := f.members[id]; !ok {
		return false, nil
	}
	delete(f.members, id)
	return true, nil
}

func TestCreateDefaultsCountToOne(t *testing.T) {
	service := NewCatalogService(newFakeStore(), zap.NewNop())

	st, err := service.Create(context.Background(), TypeRequest{Name: "Theke"})
	require.NoError(t, err)
	assert.Equal(t, 1, st.DefaultCount)
}

func TestCreateRejectsEmptyName(t *testing.T) {
	service := NewCatalogService(newFakeStore(), zap.NewNop())

	_, err := service.Create(context.Background(), TypeRequest{Name: "  "})
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestUpdateUnknownType(t *testing.T) {
	service := NewCatalogService(newFakeStore(), zap.NewNop())

	_, err := service.Update(context.Background(), 42, TypeRequest{Name: "Theke"})
	assert.ErrorIs(t, err, ErrTypeNotFound)
}

func TestRosterRoundTrip(t *testing.T) {
	store := newFakeStore()
	service := NewCatalogService(store, zap.NewNop())
	ctx := context.Background()

	st, err := service.Create(ctx, TypeRequest{Name: "Kampfgericht", DefaultCount: 2})
	require.NoError(t, err)

	member, err := service.AddMember(ctx, st.ID, MemberRequest{Name: "Anna Becker"})
	require.NoError(t, err)

	members, err := service.ListMembers(ctx, st.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "Anna Becker", members[0].Name)

	require.NoError(t, service.DeleteMember(ctx, member.ID))
	assert.ErrorIs(t, service.DeleteMember(ctx, member.ID), ErrMemberNotFound)
}
