package service

import (
	"testing"

	"github.com/rutasloja/rutas-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeoService_SeedHierarchyIsIdempotent(t *testing.T) {
	s := setupServices(t)

	first, err := s.geo.SeedHierarchy(DefaultHierarchy())
	require.NoError(t, err)
	assert.Equal(t, 1, first.Provinces)
	assert.Equal(t, 5, first.Cantons)
	assert.Equal(t, 35, first.Parishes)

	second, err := s.geo.SeedHierarchy(DefaultHierarchy())
	require.NoError(t, err)
	assert.Zero(t, second.Total())

	provinces, err := s.geo.ListProvinces()
	require.NoError(t, err)
	require.Len(t, provinces, 1)
	assert.Equal(t, "Loja", provinces[0].Name)
}

func TestGeoService_ListChildren(t *testing.T) {
	s := setupServices(t)
	_, err := s.geo.SeedHierarchy(DefaultHierarchy())
	require.NoError(t, err)

	provinces, err := s.geo.ListProvinces()
	require.NoError(t, err)

	cantons, err := s.geo.ListCantons(provinces[0].ID)
	require.NoError(t, err)
	names := make([]string, 0, len(cantons))
	for _, c := range cantons {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Calvas", "Catamayo", "Loja", "Paltas", "Saraguro"}, names)

	parishes, err := s.geo.ListParishes(cantons[0].ID)
	require.NoError(t, err)
	assert.Len(t, parishes, 3)

	cantons, err = s.geo.ListCantons(9999)
	require.NoError(t, err)
	assert.Empty(t, cantons)

	parishes, err = s.geo.ListParishes(9999)
	require.NoError(t, err)
	assert.Empty(t, parishes)
}

func TestGeoService_ClassifyPlace(t *testing.T) {
	s := setupServices(t)
	_, err := s.geo.SeedHierarchy([]model.ProvinceSeed{
		{Name: "Loja", Cantons: []model.CantonSeed{{Name: "Loja", Parishes: []string{"Vilcabamba"}}}},
	})
	require.NoError(t, err)

	var parish model.Parish
	require.NoError(t, s.db.Where("name = ?", "Vilcabamba").First(&parish).Error)

	t.Run("resolved through the reference", func(t *testing.T) {
		c := s.geo.ClassifyPlace(&model.Place{ParishID: &parish.ID})
		assert.True(t, c.IsClassified())
		assert.Equal(t, "Loja", c.Province)
		assert.Equal(t, "Loja", c.Canton)
		assert.Equal(t, "Vilcabamba", c.Parish)
		assert.Equal(t, parish.ID, c.ParishID)
		assert.Equal(t, parish.CantonID, c.CantonID)
	})

	t.Run("legacy text is ignored", func(t *testing.T) {
		province, canton, legacyParish := "Loja", "Loja", "Vilcabamba"
		c := s.geo.ClassifyPlace(&model.Place{
			LegacyProvince: &province,
			LegacyCanton:   &canton,
			LegacyParish:   &legacyParish,
		})
		assert.Equal(t, model.Unclassified, c)
	})

	t.Run("dangling reference", func(t *testing.T) {
		missing := uint(9999)
		assert.Equal(t, model.Unclassified, s.geo.ClassifyPlace(&model.Place{ParishID: &missing}))
	})

	t.Run("nil place", func(t *testing.T) {
		assert.False(t, s.geo.ClassifyPlace(nil).IsClassified())
	})
}

func TestGeoService_DeleteProvince(t *testing.T) {
	s := setupServices(t)
	_, err := s.geo.SeedHierarchy(DefaultHierarchy())
	require.NoError(t, err)

	var parish model.Parish
	require.NoError(t, s.db.Where("name = ?", "Malacatos").First(&parish).Error)
	place, err := s.places.CreatePlace(PlaceInput{Name: "Trapiche", ParishID: &parish.ID})
	require.NoError(t, err)
	require.True(t, place.Classification.IsClassified())

	provinces, err := s.geo.ListProvinces()
	require.NoError(t, err)
	require.NoError(t, s.geo.DeleteProvince(provinces[0].ID))

	var cantons, parishes int64
	require.NoError(t, s.db.Model(&model.Canton{}).Count(&cantons).Error)
	require.NoError(t, s.db.Model(&model.Parish{}).Count(&parishes).Error)
	assert.Zero(t, cantons)
	assert.Zero(t, parishes)

	detail, err := s.places.GetPlace(place.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.ParishID)
	assert.False(t, detail.Classification.IsClassified())

	assert.ErrorIs(t, s.geo.DeleteProvince(provinces[0].ID), ErrProvinceNotFound)
}
