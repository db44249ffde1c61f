// Package services contains the page-facing application services: thin
// operations over the API client plus the in-memory filtering the pages do.
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/mkalinin/healthportal/internal/client/models"
)

// ErrMissingFields means a required form field was empty; nothing was sent
// to the server.
var ErrMissingFields = errors.New("please fill in all required fields")

// MedicineAPI is the slice of the portal client the medicine service needs.
type MedicineAPI interface {
	ListMedicines(ctx context.Context) ([]models.Medicine, error)
	ListCommonMedicines(ctx context.Context, category string) ([]models.Medicine, error)
	CreateMedicine(ctx context.Context, m models.Medicine) error
	UpdateMedicine(ctx context.Context, m models.Medicine) error
	DeleteMedicine(ctx context.Context, id string) error
}

type MedicineService struct {
	api MedicineAPI
}

func NewMedicineService(api MedicineAPI) *MedicineService {
	return &MedicineService{api: api}
}

// Browse lists the catalog. Admins see the full management listing; everyone
// else gets the public listing, optionally narrowed by category.
func (s *MedicineService) Browse(ctx context.Context, admin bool, category string) ([]models.Medicine, error) {
	if admin {
		return s.api.ListMedicines(ctx)
	}
	return s.api.ListCommonMedicines(ctx, category)
}

// Save validates the required fields before any network call, then creates
// or updates depending on whether the record already has an id.
func (s *MedicineService) Save(ctx context.Context, m models.Medicine) error {
	if m.Title == "" || m.Usage == "" || m.Category == "" {
		return ErrMissingFields
	}
	if m.ID == "" {
		return s.api.CreateMedicine(ctx, m)
	}
	return s.api.UpdateMedicine(ctx, m)
}

func (s *MedicineService) Delete(ctx context.Context, id string) error {
	return s.api.DeleteMedicine(ctx, id)
}

// SplitList turns comma-separated form input into a list: items trimmed,
// empties dropped.
func SplitList(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
