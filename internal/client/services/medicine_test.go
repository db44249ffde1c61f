package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkalinin/healthportal/internal/client/models"
)

type fakeMedicineAPI struct {
	listCalls   int
	commonCalls int
	gotCategory string
	created     []models.Medicine
	updated     []models.Medicine
	deleted     []string
}

func (f *fakeMedicineAPI) ListMedicines(ctx context.Context) ([]models.Medicine, error) {
	f.listCalls++
	return []models.Medicine{{ID: "m1"}}, nil
}

func (f *fakeMedicineAPI) ListCommonMedicines(ctx context.Context, category string) ([]models.Medicine, error) {
	f.commonCalls++
	f.gotCategory = category
	return []models.Medicine{{ID: "m2"}}, nil
}

func (f *fakeMedicineAPI) CreateMedicine(ctx context.Context, m models.Medicine) error {
	f.created = append(f.created, m)
	return nil
}

func (f *fakeMedicineAPI) UpdateMedicine(ctx context.Context, m models.Medicine) error {
	f.updated = append(f.updated, m)
	return nil
}

func (f *fakeMedicineAPI) DeleteMedicine(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func TestMedicineService_Browse(t *testing.T) {
	ctx := context.Background()

	t.Run("admin gets the management listing", func(t *testing.T) {
		api := &fakeMedicineAPI{}
		list, err := NewMedicineService(api).Browse(ctx, true, "ignored")
		require.NoError(t, err)
		require.Equal(t, "m1", list[0].ID)
		require.Equal(t, 1, api.listCalls)
		require.Zero(t, api.commonCalls)
	})

	t.Run("everyone else gets the public listing", func(t *testing.T) {
		api := &fakeMedicineAPI{}
		list, err := NewMedicineService(api).Browse(ctx, false, "analgesic")
		require.NoError(t, err)
		require.Equal(t, "m2", list[0].ID)
		require.Equal(t, "analgesic", api.gotCategory)
		require.Zero(t, api.listCalls)
	})
}

func TestMedicineService_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("missing required fields send nothing", func(t *testing.T) {
		api := &fakeMedicineAPI{}
		svc := NewMedicineService(api)

		for _, m := range []models.Medicine{
			{Usage: "u", Category: "c"},
			{Title: "t", Category: "c"},
			{Title: "t", Usage: "u"},
		} {
			require.ErrorIs(t, svc.Save(ctx, m), ErrMissingFields)
		}
		require.Empty(t, api.created)
		require.Empty(t, api.updated)
	})

	t.Run("no id creates", func(t *testing.T) {
		api := &fakeMedicineAPI{}
		m := models.Medicine{Title: "t", Usage: "u", Category: "c"}
		require.NoError(t, NewMedicineService(api).Save(ctx, m))
		require.Len(t, api.created, 1)
		require.Empty(t, api.updated)
	})

	t.Run("existing id updates", func(t *testing.T) {
		api := &fakeMedicineAPI{}
		m := models.Medicine{ID: "m1", Title: "t", Usage: "u", Category: "c"}
		require.NoError(t, NewMedicineService(api).Save(ctx, m))
		require.Len(t, api.updated, 1)
		require.Empty(t, api.created)
	})
}

func TestMedicineService_Delete(t *testing.T) {
	api := &fakeMedicineAPI{}
	require.NoError(t, NewMedicineService(api).Delete(context.Background(), "m1"))
	require.Equal(t, []string{"m1"}, api.deleted)
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"plain", "a,b,c", []string{"a", "b", "c"}},
		{"trims items", " a , b ", []string{"a", "b"}},
		{"drops empties", "a,,b,", []string{"a", "b"}},
		{"empty input", "", []string{}},
		{"only separators", ", ,", []string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, SplitList(tc.input))
		})
	}
}
