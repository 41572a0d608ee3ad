package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseVisibility(t *testing.T) {
	tests := []struct {
		in     string
		want   Visibility
		wantOK bool
	}{
		{in: "PUBLIC", want: VisibilityPublic, wantOK: true},
		{in: " private ", want: VisibilityPrivate, wantOK: true},
		{in: "Public", want: VisibilityPublic, wantOK: true},
		{in: "friends"},
		{in: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseVisibility(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
				assert.True(t, got.Valid())
			}
		})
	}

	assert.False(t, Visibility("HIDDEN").Valid())
}

func TestParseFavoriteType(t *testing.T) {
	got, ok := ParseFavoriteType("visit")
	assert.True(t, ok)
	assert.Equal(t, FavoriteTypeVisited, got)

	_, ok = ParseFavoriteType("LIKE")
	assert.False(t, ok)
}

func TestTotalEstimatedMinutes(t *testing.T) {
	assert.Equal(t, 145, TotalEstimatedMinutes(7200, 25))
	assert.Equal(t, 290, TotalEstimatedMinutes(14400, 50))
	assert.Equal(t, 0, TotalEstimatedMinutes(59, 0))
}

func TestNewRouteView(t *testing.T) {
	route := &Route{
		ID:              3,
		Name:            "Vilcabamba",
		Visibility:      VisibilityPublic,
		DurationSeconds: 7200,
		DistanceKm:      decimal.RequireFromString("15.50"),
		UserID:          9,
		User:            User{ID: 9, Username: "ana"},
	}

	view := NewRouteView(route, 4, 25)
	assert.Equal(t, uint(9), view.OwnerID)
	assert.Equal(t, "ana", view.OwnerUsername)
	assert.Equal(t, int64(4), view.SavedCount)
	assert.Equal(t, 145, view.TotalEstimatedMinutes)
	assert.NotNil(t, view.Categories)
	assert.Empty(t, view.Categories)
}

func TestStopView(t *testing.T) {
	stop := &RouteStop{
		ID:               1,
		RouteID:          2,
		PlaceID:          3,
		Order:            4,
		SuggestedMinutes: 30,
		Route:            Route{Name: "Centro"},
		Place:            Place{Name: "Catedral"},
	}

	view := stop.View()
	assert.Equal(t, "Centro", view.RouteName)
	assert.Equal(t, "Catedral", view.PlaceName)
	assert.Equal(t, 4, view.Order)
	assert.Nil(t, view.Note)
}
