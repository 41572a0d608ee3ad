package service

import (
	"testing"

	"github.com/rutasloja/rutas-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteService_AddFavorite(t *testing.T) {
	s := setupServices(t)
	user := s.user(t, "camila")
	place := s.place(t, "Laguna", "-4.000000", "-79.200000")

	fav, err := s.favorites.AddFavorite(user.ID, place.ID, "")
	require.NoError(t, err)
	assert.Equal(t, model.FavoriteTypeFavorite, fav.Type)

	// the same place may carry a different marker
	visit, err := s.favorites.AddFavorite(user.ID, place.ID, "visit")
	require.NoError(t, err)
	assert.Equal(t, model.FavoriteTypeVisited, visit.Type)

	_, err = s.favorites.AddFavorite(user.ID, place.ID, "FAV")
	assert.ErrorIs(t, err, ErrDuplicateFavorite)

	_, err = s.favorites.AddFavorite(user.ID, place.ID, "LIKE")
	assert.ErrorIs(t, err, ErrInvalidFavoriteType)

	_, err = s.favorites.AddFavorite(user.ID, 9999, "")
	assert.ErrorIs(t, err, ErrUnknownPlace)

	stats, err := s.auth.GetUserStats(user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Favorites)
	assert.Equal(t, int64(1), stats.Visited)
}

func TestFavoriteService_ListAndRemove(t *testing.T) {
	s := setupServices(t)
	user := s.user(t, "dario")
	other := s.user(t, "eva")
	place := s.place(t, "Laguna", "-4.000000", "-79.200000")

	fav, err := s.favorites.AddFavorite(user.ID, place.ID, "FAV")
	require.NoError(t, err)
	_, err = s.favorites.AddFavorite(user.ID, place.ID, "PEND")
	require.NoError(t, err)

	pending, err := s.favorites.ListFavorites(FavoriteQuery{UserID: user.ID, Type: "pend"})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, model.FavoriteTypePending, pending[0].Type)

	_, err = s.favorites.ListFavorites(FavoriteQuery{Type: "nope"})
	assert.ErrorIs(t, err, ErrInvalidFavoriteType)

	assert.ErrorIs(t, s.favorites.RemoveFavorite(other.ID, fav.ID), ErrAccessDenied)
	require.NoError(t, s.favorites.RemoveFavorite(user.ID, fav.ID))
	assert.ErrorIs(t, s.favorites.RemoveFavorite(user.ID, fav.ID), ErrFavoriteNotFound)

	all, err := s.favorites.ListFavorites(FavoriteQuery{UserID: user.ID})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
