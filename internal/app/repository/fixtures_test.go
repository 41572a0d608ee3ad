package repository

import (
	"fmt"
	"testing"

	"github.com/rutasloja/rutas-backend/internal/app/model"
	"github.com/rutasloja/rutas-backend/internal/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })
	return testDB
}

func createTestUser(t *testing.T, testDB *gorm.DB, username string) *model.User {
	t.Helper()
	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
	}
	require.NoError(t, testDB.Create(user).Error)
	return user
}

func createTestPlace(t *testing.T, testDB *gorm.DB, name string) *model.Place {
	t.Helper()
	place := &model.Place{
		Name:      name,
		Latitude:  decimal.RequireFromString("-3.993300"),
		Longitude: decimal.RequireFromString("-79.204500"),
	}
	require.NoError(t, testDB.Create(place).Error)
	return place
}

func createTestRoute(t *testing.T, testDB *gorm.DB, owner *model.User, durationSeconds int) *model.Route {
	t.Helper()
	route := &model.Route{
		Name:            fmt.Sprintf("Ruta de %s", owner.Username),
		Visibility:      model.VisibilityPublic,
		DurationSeconds: durationSeconds,
		DistanceKm:      decimal.RequireFromString("15.50"),
		UserID:          owner.ID,
	}
	require.NoError(t, testDB.Omit("User").Create(route).Error)
	return route
}
