package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rutasloja/rutas-backend/internal/app/model"
	"github.com/rutasloja/rutas-backend/internal/app/repository"
	"github.com/rutasloja/rutas-backend/internal/app/service"
	"github.com/rutasloja/rutas-backend/internal/db"
	"github.com/rutasloja/rutas-backend/internal/middleware"
	"github.com/rutasloja/rutas-backend/pkg/util"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testUserHeader = "X-Test-User"
	anonymousUser  = "anonymous"
)

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
	owner  *model.User
	other  *model.User
}

// setupControllerTest wires every controller on a fresh database. Requests
// run as owner unless testUserHeader names another user id or anonymousUser.
func setupControllerTest(t *testing.T) *testEnv {
	t.Helper()
	util.BcryptCost = 4
	require.NoError(t, middleware.RegisterValidators())

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	owner := &model.User{Username: "owner", Email: "owner@example.com", PasswordHash: "hash"}
	other := &model.User{Username: "other", Email: "other@example.com", PasswordHash: "hash"}
	require.NoError(t, testDB.Create(owner).Error)
	require.NoError(t, testDB.Create(other).Error)

	userRepo := repository.NewUserRepository(testDB)
	categoryRepo := repository.NewCategoryRepository(testDB)
	geoRepo := repository.NewGeoRepository(testDB)
	placeRepo := repository.NewPlaceRepository(testDB)
	routeRepo := repository.NewRouteRepository(testDB)
	stopRepo := repository.NewRouteStopRepository(testDB)
	savedRepo := repository.NewSavedRouteRepository(testDB)

	geoService := service.NewGeoService(geoRepo)
	stopService := service.NewRouteStopService(stopRepo, routeRepo, placeRepo, savedRepo)

	authCtrl := NewAuthController(service.NewAuthService(userRepo, nil, "test-secret", 15*time.Minute, time.Hour))
	geoCtrl := NewGeoController(geoService)
	placeCtrl := NewPlaceController(service.NewPlaceService(placeRepo, categoryRepo, geoRepo, geoService))
	routeCtrl := NewRouteController(service.NewRouteService(routeRepo, categoryRepo), stopService)
	stopCtrl := NewRouteStopController(stopService)
	savedCtrl := NewSavedRouteController(service.NewSavedRouteService(savedRepo, routeRepo))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		userID := owner.ID
		raw := c.GetHeader(testUserHeader)
		if raw == anonymousUser {
			c.Next()
			return
		}
		if raw != "" {
			id, _ := strconv.ParseUint(raw, 10, 32)
			userID = uint(id)
		}
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	})

	router.POST("/auth/register", authCtrl.Register)
	router.POST("/auth/login", authCtrl.Login)
	router.GET("/auth/me", authCtrl.GetMe)
	router.GET("/users/:id/stats", authCtrl.GetStats)

	router.GET("/ajax/load-cantones", geoCtrl.LoadCantones)
	router.GET("/ajax/load-parroquias", geoCtrl.LoadParroquias)
	router.GET("/provinces", geoCtrl.ListProvinces)

	router.POST("/places", placeCtrl.CreatePlace)
	router.GET("/places/:id", placeCtrl.GetPlace)

	router.GET("/routes", routeCtrl.ListRoutes)
	router.POST("/routes", routeCtrl.CreateRoute)
	router.GET("/routes/:id", routeCtrl.GetRoute)
	router.PUT("/routes/:id", routeCtrl.UpdateRoute)
	router.DELETE("/routes/:id", routeCtrl.DeleteRoute)
	router.GET("/routes/:id/stops", routeCtrl.ListStops)
	router.GET("/routes/:id/path", routeCtrl.GetPath)
	router.GET("/routes/:id/total-time", routeCtrl.GetTotalTime)
	router.POST("/routes/:id/stops", stopCtrl.AddStop)
	router.DELETE("/routes/:id/stops/:place_id", stopCtrl.RemoveStop)
	router.GET("/route-stops", stopCtrl.ListStops)
	router.GET("/route-stops/:id", stopCtrl.GetStop)
	router.PUT("/route-stops/:id", stopCtrl.UpdateStop)

	router.GET("/saved-routes", savedCtrl.ListSavedRoutes)
	router.POST("/saved-routes", savedCtrl.SaveRoute)
	router.DELETE("/saved-routes/:route_id", savedCtrl.UnsaveRoute)

	return &testEnv{db: testDB, router: router, owner: owner, other: other}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func errorCodeOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	decode(t, w, &body)
	return body.Error
}

func (e *testEnv) createRoute(t *testing.T, name string, durationSeconds int) model.RouteView {
	t.Helper()
	w := e.do(t, http.MethodPost, "/routes", gin.H{"name": name, "duration_seconds": durationSeconds, "distance_km": "10.5"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var view model.RouteView
	decode(t, w, &view)
	return view
}

func (e *testEnv) createPlace(t *testing.T, name string, lat, lon float64) model.PlaceDetail {
	t.Helper()
	w := e.do(t, http.MethodPost, "/places", gin.H{"name": name, "latitude": lat, "longitude": lon})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var detail model.PlaceDetail
	decode(t, w, &detail)
	return detail
}

func routePath(id uint, suffix string) string {
	return "/routes/" + strconv.FormatUint(uint64(id), 10) + suffix
}
