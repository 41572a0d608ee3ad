package db

import (
	"testing"

	"github.com/rutasloja/rutas-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedCategories_Idempotent(t *testing.T) {
	testDB, err := SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { CleanupTestDB(testDB) })

	require.NoError(t, SeedCategories(testDB))
	require.NoError(t, SeedCategories(testDB))

	var count int64
	require.NoError(t, testDB.Model(&model.Category{}).Count(&count).Error)
	assert.Equal(t, int64(len(DefaultCategories)), count)

	var cultura model.Category
	require.NoError(t, testDB.Where("name = ?", "Cultura").First(&cultura).Error)
	assert.Equal(t, "museum", cultura.IconURL)
}

func TestTruncateAllTables(t *testing.T) {
	testDB, err := SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { CleanupTestDB(testDB) })

	require.NoError(t, SeedCategories(testDB))
	require.NoError(t, TruncateAllTables(testDB))

	var count int64
	require.NoError(t, testDB.Model(&model.Category{}).Count(&count).Error)
	assert.Zero(t, count)
}
