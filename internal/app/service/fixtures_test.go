package service

import (
	"testing"
	"time"

	"github.com/rutasloja/rutas-backend/internal/app/model"
	"github.com/rutasloja/rutas-backend/internal/app/repository"
	"github.com/rutasloja/rutas-backend/internal/db"
	"github.com/rutasloja/rutas-backend/pkg/redis"
	"github.com/rutasloja/rutas-backend/pkg/util"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testServices struct {
	db         *gorm.DB
	auth       AuthService
	categories CategoryService
	geo        GeoService
	places     PlaceService
	routes     RouteService
	stops      RouteStopService
	saved      SavedRouteService
	favorites  FavoriteService
	reviews    ReviewService
	events     EventService
}

func setupServices(t *testing.T) *testServices {
	t.Helper()
	util.BcryptCost = 4

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	userRepo := repository.NewUserRepository(testDB)
	categoryRepo := repository.NewCategoryRepository(testDB)
	geoRepo := repository.NewGeoRepository(testDB)
	placeRepo := repository.NewPlaceRepository(testDB)
	routeRepo := repository.NewRouteRepository(testDB)
	stopRepo := repository.NewRouteStopRepository(testDB)
	savedRepo := repository.NewSavedRouteRepository(testDB)
	favoriteRepo := repository.NewFavoriteRepository(testDB)
	reviewRepo := repository.NewReviewRepository(testDB)

	geoService := NewGeoService(geoRepo)

	return &testServices{
		db:         testDB,
		auth:       NewAuthService(userRepo, redis.NewTokenBlacklist(nil), "test-jwt-secret", 15*time.Minute, 24*time.Hour),
		categories: NewCategoryService(categoryRepo),
		geo:        geoService,
		places:     NewPlaceService(placeRepo, categoryRepo, geoRepo, geoService),
		routes:     NewRouteService(routeRepo, categoryRepo),
		stops:      NewRouteStopService(stopRepo, routeRepo, placeRepo, savedRepo),
		saved:      NewSavedRouteService(savedRepo, routeRepo),
		favorites:  NewFavoriteService(favoriteRepo, placeRepo),
		reviews:    NewReviewService(reviewRepo, placeRepo),
		events:     NewEventService(repository.NewEventRepository(testDB), placeRepo),
	}
}

func (s *testServices) user(t *testing.T, username string) *model.User {
	t.Helper()
	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
	}
	require.NoError(t, s.db.Create(user).Error)
	return user
}

func (s *testServices) place(t *testing.T, name, lat, lon string) *model.Place {
	t.Helper()
	detail, err := s.places.CreatePlace(PlaceInput{
		Name:      name,
		Latitude:  decimal.RequireFromString(lat),
		Longitude: decimal.RequireFromString(lon),
	})
	require.NoError(t, err)
	return &detail.Place
}

func (s *testServices) route(t *testing.T, owner *model.User, name string, durationSeconds int) *model.RouteView {
	t.Helper()
	view, err := s.routes.CreateRoute(owner.ID, CreateRouteInput{
		Name:            name,
		DurationSeconds: durationSeconds,
		DistanceKm:      decimal.RequireFromString("12.5"),
	})
	require.NoError(t, err)
	return view
}

func (s *testServices) addStop(t *testing.T, routeID, placeID uint, order, minutes int) *model.StopView {
	t.Helper()
	stop, err := s.stops.AddStop(AddStopInput{
		RouteID:          routeID,
		PlaceID:          placeID,
		Order:            order,
		SuggestedMinutes: minutes,
	})
	require.NoError(t, err)
	return stop
}
