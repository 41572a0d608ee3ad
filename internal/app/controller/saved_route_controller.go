package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rutasloja/rutas-backend/internal/app/repository"
	"github.com/rutasloja/rutas-backend/internal/app/service"
)

type SavedRouteController struct {
	savedService service.SavedRouteService
}

func NewSavedRouteController(savedService service.SavedRouteService) *SavedRouteController {
	return &SavedRouteController{savedService: savedService}
}

type SaveRouteRequest struct {
	RouteID uint `json:"route_id" binding:"required"`
	Order   int  `json:"order" binding:"min=0"`
}

// ListSavedRoutes defaults to the caller's list when no user is given.
// GET /api/v1/saved-routes?user=&route=
func (ctrl *SavedRouteController) ListSavedRoutes(c *gin.Context) {
	var filter repository.SavedRouteFilter
	var ok bool
	if filter.UserID, ok = queryID(c, "user", "usuario"); !ok {
		return
	}
	if filter.RouteID, ok = queryID(c, "route", "ruta"); !ok {
		return
	}
	if filter.UserID == 0 && filter.RouteID == 0 {
		if filter.UserID, ok = currentUser(c); !ok {
			return
		}
	}

	saved, err := ctrl.savedService.ListSavedRoutes(filter)
	if err != nil {
		respondServiceError(c, err, "list saved routes")
		return
	}
	c.JSON(http.StatusOK, gin.H{"saved_routes": saved, "count": len(saved)})
}

// SaveRoute
// POST /api/v1/saved-routes
func (ctrl *SavedRouteController) SaveRoute(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req SaveRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	saved, err := ctrl.savedService.SaveRoute(userID, req.RouteID, req.Order)
	if err != nil {
		respondServiceError(c, err, "save route")
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// UnsaveRoute
// DELETE /api/v1/saved-routes/:route_id
func (ctrl *SavedRouteController) UnsaveRoute(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	routeID, ok := pathID(c, "route_id")
	if !ok {
		return
	}
	if err := ctrl.savedService.UnsaveRoute(userID, routeID); err != nil {
		respondServiceError(c, err, "unsave route")
		return
	}
	c.Status(http.StatusNoContent)
}
