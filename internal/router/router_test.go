package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rutasloja/rutas-backend/config"
	"github.com/rutasloja/rutas-backend/internal/app/controller"
	"github.com/rutasloja/rutas-backend/internal/app/model"
	"github.com/rutasloja/rutas-backend/internal/app/repository"
	"github.com/rutasloja/rutas-backend/internal/app/service"
	"github.com/rutasloja/rutas-backend/internal/db"
	"github.com/rutasloja/rutas-backend/internal/middleware"
	"github.com/rutasloja/rutas-backend/internal/storage"
	"github.com/rutasloja/rutas-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "router-test-secret"

// setupRouter seeds a regular user; use promote for an admin.
func setupRouter(t *testing.T) (*gin.Engine, *model.User) {
	t.Helper()
	util.BcryptCost = 4

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	user := &model.User{Username: "viajera", Email: "viajera@example.com", PasswordHash: "hash", Role: model.RoleUser}
	require.NoError(t, testDB.Create(user).Error)

	cfg := &config.Config{
		Server: config.ServerConfig{GinMode: gin.TestMode},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		S3: config.S3Config{
			Region:          "us-east-1",
			Bucket:          "rutas-test",
			AccessKeyID:     "AKIDEXAMPLE",
			SecretAccessKey: "secret",
		},
	}

	uploader, err := storage.NewS3Storage(context.Background(), cfg.S3)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(testDB)
	categoryRepo := repository.NewCategoryRepository(testDB)
	geoRepo := repository.NewGeoRepository(testDB)
	placeRepo := repository.NewPlaceRepository(testDB)
	routeRepo := repository.NewRouteRepository(testDB)
	stopRepo := repository.NewRouteStopRepository(testDB)
	savedRepo := repository.NewSavedRouteRepository(testDB)

	geoService := service.NewGeoService(geoRepo)
	stopService := service.NewRouteStopService(stopRepo, routeRepo, placeRepo, savedRepo)
	_, err = geoService.SeedHierarchy(service.DefaultHierarchy())
	require.NoError(t, err)

	controllers := Controllers{
		Auth:       controller.NewAuthController(service.NewAuthService(userRepo, nil, testSecret, 15*time.Minute, time.Hour)),
		Category:   controller.NewCategoryController(service.NewCategoryService(categoryRepo)),
		Geo:        controller.NewGeoController(geoService),
		Place:      controller.NewPlaceController(service.NewPlaceService(placeRepo, categoryRepo, geoRepo, geoService)),
		Route:      controller.NewRouteController(service.NewRouteService(routeRepo, categoryRepo), stopService),
		RouteStop:  controller.NewRouteStopController(stopService),
		SavedRoute: controller.NewSavedRouteController(service.NewSavedRouteService(savedRepo, routeRepo)),
		Favorite:   controller.NewFavoriteController(service.NewFavoriteService(repository.NewFavoriteRepository(testDB), placeRepo)),
		Review:     controller.NewReviewController(service.NewReviewService(repository.NewReviewRepository(testDB), placeRepo)),
		Event:      controller.NewEventController(service.NewEventService(repository.NewEventRepository(testDB), placeRepo)),
		Upload:     controller.NewUploadController(uploader),
	}

	engine, err := NewRouter(controllers, middleware.NewAuthMiddleware(testSecret, nil), middleware.NewMetrics(), cfg).Setup()
	require.NoError(t, err)
	return engine, user
}

func bearer(t *testing.T, user *model.User) string {
	t.Helper()
	tokens, err := util.GenerateTokenPair(user.ID, user.Username, string(user.Role), testSecret, 15*time.Minute, time.Hour)
	require.NoError(t, err)
	return "Bearer " + tokens.AccessToken
}

func promote(user *model.User) *model.User {
	admin := *user
	admin.Role = model.RoleAdmin
	return &admin
}

func authHeader(t *testing.T, user *model.User) http.Header {
	t.Helper()
	header := http.Header{}
	header.Set("Authorization", bearer(t, user))
	return header
}

func serve(engine *gin.Engine, method, path string, body interface{}, header http.Header) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	engine, _ := setupRouter(t)

	w := serve(engine, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	w = serve(engine, http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `rutas_http_requests_total{method="GET",route="/health",status="200"} 1`)
}

func TestRouter_CORSPreflight(t *testing.T) {
	engine, _ := setupRouter(t)

	header := http.Header{}
	header.Set("Origin", "http://localhost:3000")
	w := serve(engine, http.MethodOptions, "/api/v1/routes", nil, header)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	header.Set("Origin", "http://evil.example.com")
	w = serve(engine, http.MethodOptions, "/api/v1/routes", nil, header)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_WritesRequireAuthentication(t *testing.T) {
	engine, user := setupRouter(t)
	body := map[string]interface{}{"name": "Vilcabamba", "duration_seconds": 7200}

	w := serve(engine, http.MethodPost, "/api/v1/routes", body, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	header := http.Header{}
	header.Set("Authorization", bearer(t, user))
	w = serve(engine, http.MethodPost, "/api/v1/routes", body, header)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var route model.RouteView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &route))
	assert.Equal(t, user.ID, route.OwnerID)

	w = serve(engine, http.MethodGet, "/api/v1/routes", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Vilcabamba")
}

func TestRouter_AjaxAndHierarchy(t *testing.T) {
	engine, _ := setupRouter(t)

	w := serve(engine, http.MethodGet, "/api/v1/provinces", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Loja")

	w = serve(engine, http.MethodGet, "/api/v1/ajax/load-cantones?provincia=1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var options []model.HierarchyOption
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &options))
	assert.Len(t, options, 5)
}

func TestRouter_PresignCover(t *testing.T) {
	engine, user := setupRouter(t)

	header := http.Header{}
	header.Set("Authorization", bearer(t, user))
	w := serve(engine, http.MethodPost, "/api/v1/upload/cover", map[string]string{
		"filename":     "mirador.jpg",
		"content_type": "image/jpeg",
	}, header)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var presigned storage.PresignedUpload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &presigned))
	assert.Contains(t, presigned.UploadURL, "rutas-test")
	assert.Contains(t, presigned.Key, "covers/")
}

func TestRouter_CatalogWritesRequireAdmin(t *testing.T) {
	engine, user := setupRouter(t)
	asUser := authHeader(t, user)
	asAdmin := authHeader(t, promote(user))
	place := map[string]interface{}{"name": "Mirador Pucará", "latitude": "-3.98", "longitude": "-79.21"}

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		want   int
	}{
		{"create category", http.MethodPost, "/api/v1/categories", map[string]string{"name": "Miradores"}, http.StatusCreated},
		{"create place", http.MethodPost, "/api/v1/places", place, http.StatusCreated},
		{"update place", http.MethodPut, "/api/v1/places/1", place, http.StatusOK},
		{"create event", http.MethodPost, "/api/v1/events", map[string]interface{}{
			"name": "Festival de Independencia", "event_date": "2026-11-18T10:00:00Z", "place_id": 1,
		}, http.StatusCreated},
		{"update event", http.MethodPut, "/api/v1/events/1", map[string]interface{}{
			"name": "Festival", "event_date": "2026-11-18T11:00:00Z", "place_id": 1,
		}, http.StatusOK},
		{"delete event", http.MethodDelete, "/api/v1/events/1", nil, http.StatusNoContent},
		{"delete place", http.MethodDelete, "/api/v1/places/1", nil, http.StatusNoContent},
		{"delete province", http.MethodDelete, "/api/v1/provinces/1", nil, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(engine, tt.method, tt.path, tt.body, nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)

			w = serve(engine, tt.method, tt.path, tt.body, asUser)
			assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), "AUTHZ_FORBIDDEN")

			w = serve(engine, tt.method, tt.path, tt.body, asAdmin)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}
}

func TestRouter_EventsArePublic(t *testing.T) {
	engine, user := setupRouter(t)
	asAdmin := authHeader(t, promote(user))

	w := serve(engine, http.MethodPost, "/api/v1/places", map[string]interface{}{
		"name": "Teatro Benjamín Carrión", "latitude": "-3.99", "longitude": "-79.20",
	}, asAdmin)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	for _, date := range []string{"2026-12-01T20:00:00Z", "2026-11-01T20:00:00Z"} {
		w = serve(engine, http.MethodPost, "/api/v1/events", map[string]interface{}{
			"name": "Función " + date[:10], "event_date": date, "place_id": 1,
		}, asAdmin)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w = serve(engine, http.MethodGet, "/api/v1/events?lugar=1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Events []model.EventView `json:"events"`
		Count  int               `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Equal(t, 2, list.Count)
	assert.Equal(t, "Función 2026-11-01", list.Events[0].Name)
	assert.Equal(t, "Teatro Benjamín Carrión", list.Events[0].PlaceName)

	w = serve(engine, http.MethodGet, "/api/v1/events/99", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "EVENT_NOT_FOUND")
}

func TestRouter_PrivateRoutesNeedOwner(t *testing.T) {
	engine, user := setupRouter(t)
	asOwner := authHeader(t, user)

	w := serve(engine, http.MethodPost, "/api/v1/routes", map[string]interface{}{
		"name": "Ruta secreta", "visibility": "private",
	}, asOwner)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = serve(engine, http.MethodGet, "/api/v1/routes/1", nil, asOwner)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(engine, http.MethodGet, "/api/v1/routes/1", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// A bad token on a public read degrades to an anonymous viewer.
	badToken := http.Header{}
	badToken.Set("Authorization", "Bearer nope")
	w = serve(engine, http.MethodGet, "/api/v1/routes", nil, badToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":0`)

	w = serve(engine, http.MethodGet, "/api/v1/routes", nil, asOwner)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ruta secreta")
}
