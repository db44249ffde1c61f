package services

import (
	"context"
	"strings"

	"github.com/mkalinin/healthportal/internal/client/models"
)

// UserAdminAPI is the slice of the portal client the user-admin service needs.
type UserAdminAPI interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user models.User) error
	DeleteUser(ctx context.Context, id string) error
}

// UserAdminService backs the admin dashboard's account management page.
type UserAdminService struct {
	api UserAdminAPI
}

func NewUserAdminService(api UserAdminAPI) *UserAdminService {
	return &UserAdminService{api: api}
}

func (s *UserAdminService) List(ctx context.Context) ([]models.User, error) {
	return s.api.ListUsers(ctx)
}

// Save writes back the editable profile fields of a record.
func (s *UserAdminService) Save(ctx context.Context, user models.User) error {
	if user.Email == "" {
		return ErrMissingFields
	}
	return s.api.UpdateUser(ctx, user)
}

func (s *UserAdminService) Delete(ctx context.Context, id string) error {
	return s.api.DeleteUser(ctx, id)
}

// FilterUsers keeps the users whose full name or email contains term,
// case-insensitively. An empty term keeps everything.
func FilterUsers(list []models.User, term string) []models.User {
	if term == "" {
		return list
	}
	q := strings.ToLower(term)
	out := make([]models.User, 0, len(list))
	for _, u := range list {
		if strings.Contains(strings.ToLower(u.FullName()), q) ||
			strings.Contains(strings.ToLower(u.Email), q) {
			out = append(out, u)
		}
	}
	return out
}
