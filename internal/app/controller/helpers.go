package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rutasloja/rutas-backend/internal/app/service"
	apperrors "github.com/rutasloja/rutas-backend/internal/errors"
	"github.com/rutasloja/rutas-backend/internal/middleware"
)

// serviceError maps a service sentinel to status, code and message.
type serviceError struct {
	err     error
	status  int
	code    string
	message string
}

// Checked in order: specific cases before the families they wrap.
var serviceErrors = []serviceError{
	{service.ErrDuplicateStop, http.StatusConflict, apperrors.RouteStopDuplicate, "El lugar ya forma parte de la ruta"},
	{service.ErrDuplicateSavedRoute, http.StatusConflict, apperrors.RouteSavedDuplicate, "Ya guardaste esta ruta"},
	{service.ErrDuplicateFavorite, http.StatusConflict, apperrors.FavoriteDuplicate, "El lugar ya está marcado con este tipo"},
	{service.ErrCategoryExists, http.StatusConflict, apperrors.ResourceAlreadyExists, "La categoría ya existe"},

	{service.ErrRouteNotFound, http.StatusNotFound, apperrors.RouteNotFound, "Ruta no encontrada"},
	{service.ErrStopNotFound, http.StatusNotFound, apperrors.RouteStopNotFound, "Parada no encontrada"},
	{service.ErrPlaceNotFound, http.StatusNotFound, apperrors.PlaceNotFound, "Lugar no encontrado"},
	{service.ErrProvinceNotFound, http.StatusNotFound, apperrors.GeoProvinceNotFound, "Provincia no encontrada"},
	{service.ErrFavoriteNotFound, http.StatusNotFound, apperrors.FavoriteNotFound, "Favorito no encontrado"},
	{service.ErrReviewNotFound, http.StatusNotFound, apperrors.ReviewNotFound, "Reseña no encontrada"},
	{service.ErrEventNotFound, http.StatusNotFound, apperrors.EventNotFound, "Evento no encontrado"},
	{service.ErrNotFound, http.StatusNotFound, apperrors.ResourceNotFound, "Recurso no encontrado"},

	{service.ErrInvalidVisibility, http.StatusBadRequest, apperrors.RouteInvalidVisibility, "La visibilidad debe ser PUBLIC o PRIVATE"},
	{service.ErrInvalidRating, http.StatusBadRequest, apperrors.ReviewInvalidRating, "La calificación debe estar entre 1 y 5"},
	{service.ErrInvalidPassword, http.StatusBadRequest, apperrors.ValidationInvalidInput, "La contraseña debe tener entre 6 y 72 caracteres"},
	{service.ErrInvalidRole, http.StatusBadRequest, apperrors.ValidationInvalidInput, "El rol debe ser user o admin"},
	{service.ErrInvalidFavoriteType, http.StatusBadRequest, apperrors.ValidationInvalidInput, "El tipo debe ser FAV, PEND o VISIT"},
	{service.ErrUnknownPlace, http.StatusBadRequest, apperrors.ValidationInvalidReference, "El lugar indicado no existe"},
	{service.ErrUnknownRoute, http.StatusBadRequest, apperrors.ValidationInvalidReference, "La ruta indicada no existe"},
	{service.ErrUnknownCategory, http.StatusBadRequest, apperrors.ValidationInvalidReference, "Alguna categoría indicada no existe"},
	{service.ErrUnknownParish, http.StatusBadRequest, apperrors.ValidationInvalidReference, "La parroquia indicada no existe"},
	{service.ErrInvalidReference, http.StatusBadRequest, apperrors.ValidationInvalidRange, "Valor fuera de rango"},

	{service.ErrAccessDenied, http.StatusForbidden, apperrors.AuthzOwnerOnly, "Solo el propietario puede realizar esta acción"},
}

// respondServiceError writes the reply for err; unknown errors go through
// the store error parser as 500s.
func respondServiceError(c *gin.Context, err error, context string) {
	log := middleware.GetLoggerFromContext(c)

	for _, se := range serviceErrors {
		if errors.Is(err, se.err) {
			log.Warn("Request rejected", map[string]interface{}{
				"context": context,
				"code":    se.code,
				"error":   err.Error(),
			})
			apperrors.RespondWithError(c, se.status, se.code, se.message)
			return
		}
	}

	log.Error("Request failed", err, map[string]interface{}{
		"context": context,
	})
	apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, context)
}

// respondBindingError reports field level validation failures when present.
func respondBindingError(c *gin.Context, err error) {
	middleware.GetLoggerFromContext(c).Warn("Invalid request body", map[string]interface{}{
		"error": err.Error(),
	})
	if fields, ok := middleware.ValidationErrors(err); ok {
		apperrors.RespondWithValidationError(c, fields)
		return
	}
	apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Los datos ingresados no son válidos")
}

// pathID parses a numeric path parameter, answering 400 on failure.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Identificador inválido")
		return 0, false
	}
	return uint(id), true
}

// queryID reads the first non-empty of the given query keys. A missing
// value yields 0; a malformed one answers 400.
func queryID(c *gin.Context, keys ...string) (uint, bool) {
	for _, key := range keys {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Parámetro inválido: "+key)
			return 0, false
		}
		return uint(id), true
	}
	return 0, true
}

// currentUser answers 401 when the request is anonymous.
func currentUser(c *gin.Context) (uint, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return 0, false
	}
	return userID, true
}
