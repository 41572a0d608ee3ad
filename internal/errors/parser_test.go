package errors

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		context  string
		wantCode string
	}{
		{"nil", nil, "", InternalServerError},
		{"record not found", gorm.ErrRecordNotFound, "get route", ResourceNotFound},
		{"translated duplicate on stops", fmt.Errorf("add stop: %w", gorm.ErrDuplicatedKey), "add stop", RouteStopDuplicate},
		{"postgres duplicate saved route", errors.New(`ERROR: duplicate key value violates unique constraint "idx_saved_routes_user_route" (SQLSTATE 23505)`), "", RouteSavedDuplicate},
		{"sqlite duplicate email", errors.New("UNIQUE constraint failed: users.email"), "", AuthEmailAlreadyExists},
		{"foreign key", errors.New("FOREIGN KEY constraint failed"), "create", ValidationInvalidReference},
		{"not null", errors.New("NOT NULL constraint failed: places.name"), "", ValidationRequired},
		{"timeout", errors.New("dial tcp: i/o timeout"), "", InternalExternalAPI},
		{"other", errors.New("boom"), "update", InternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, ParseError(tt.err, tt.context).Code)
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: route_stops.route_id, route_stops.place_id")))
	assert.True(t, IsUniqueViolation(errors.New("duplicate key value violates unique constraint")))
	assert.False(t, IsUniqueViolation(errors.New("record not found")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestGetNotFoundMessage(t *testing.T) {
	assert.Equal(t, "Parada no encontrada", getNotFoundMessage("route stop"))
	assert.Equal(t, "Ruta no encontrada", getNotFoundMessage("route"))
	assert.Equal(t, "Evento no encontrado", getNotFoundMessage("get event"))
	assert.Equal(t, "No se encontró el recurso solicitado", getNotFoundMessage(""))
}

func TestRespondHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Conflict(c, RouteStopDuplicate, "El lugar ya forma parte de la ruta")

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"error":"ROUTE_STOP_DUPLICATE","message":"El lugar ya forma parte de la ruta"}`, w.Body.String())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	Unauthorized(c, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), AuthUnauthorized)
}
