package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkalinin/healthportal/internal/client/models"
)

type fakeUserAdminAPI struct {
	users   []models.User
	updated []models.User
	deleted []string
}

func (f *fakeUserAdminAPI) ListUsers(ctx context.Context) ([]models.User, error) {
	return f.users, nil
}

func (f *fakeUserAdminAPI) UpdateUser(ctx context.Context, user models.User) error {
	f.updated = append(f.updated, user)
	return nil
}

func (f *fakeUserAdminAPI) DeleteUser(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func TestUserAdminService_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("email is required", func(t *testing.T) {
		api := &fakeUserAdminAPI{}
		err := NewUserAdminService(api).Save(ctx, models.User{FirstName: "Ada"})
		require.ErrorIs(t, err, ErrMissingFields)
		require.Empty(t, api.updated)
	})

	t.Run("valid record is sent", func(t *testing.T) {
		api := &fakeUserAdminAPI{}
		u := models.User{ID: "u1", Email: "ada@example.com", Role: models.RoleAdmin}
		require.NoError(t, NewUserAdminService(api).Save(ctx, u))
		require.Equal(t, []models.User{u}, api.updated)
	})
}

func TestUserAdminService_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	api := &fakeUserAdminAPI{users: []models.User{{ID: "u1"}}}
	svc := NewUserAdminService(api)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, "u1"))
	require.Equal(t, []string{"u1"}, api.deleted)
}

func TestFilterUsers(t *testing.T) {
	list := []models.User{
		{ID: "u1", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"},
		{ID: "u2", FirstName: "Grace", LastName: "Hopper", Email: "grace@navy.mil"},
	}

	tests := []struct {
		name    string
		term    string
		wantIDs []string
	}{
		{"empty term keeps everything", "", []string{"u1", "u2"}},
		{"matches full name", "lovelace", []string{"u1"}},
		{"matches email", "NAVY", []string{"u2"}},
		{"no match", "turing", []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FilterUsers(list, tc.term)
			ids := make([]string, 0, len(got))
			for _, u := range got {
				ids = append(ids, u.ID)
			}
			require.Equal(t, tc.wantIDs, ids)
		})
	}
}
