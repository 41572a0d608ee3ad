package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rutasloja/rutas-backend/internal/app/repository"
	"github.com/rutasloja/rutas-backend/internal/app/service"
	"github.com/rutasloja/rutas-backend/internal/middleware"
)

type RouteStopController struct {
	stopService service.RouteStopService
}

func NewRouteStopController(stopService service.RouteStopService) *RouteStopController {
	return &RouteStopController{stopService: stopService}
}

// AddStopRequest: order 0 or omitted appends after the last stop.
type AddStopRequest struct {
	PlaceID          uint    `json:"place_id" binding:"required"`
	Order            int     `json:"order" binding:"min=0"`
	SuggestedMinutes int     `json:"suggested_minutes" binding:"min=0"`
	Note             *string `json:"note"`
}

type UpdateStopRequest struct {
	Order            *int    `json:"order" binding:"omitempty,min=1"`
	SuggestedMinutes *int    `json:"suggested_minutes" binding:"omitempty,min=0"`
	Note             *string `json:"note"`
}

// AddStop
// POST /api/v1/routes/:id/stops
func (ctrl *RouteStopController) AddStop(c *gin.Context) {
	routeID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req AddStopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	stop, err := ctrl.stopService.AddStop(service.AddStopInput{
		RouteID:          routeID,
		PlaceID:          req.PlaceID,
		Order:            req.Order,
		SuggestedMinutes: req.SuggestedMinutes,
		Note:             req.Note,
	})
	if err != nil {
		respondServiceError(c, err, "add route stop")
		return
	}

	middleware.GetLoggerFromContext(c).Info("Stop added", map[string]interface{}{
		"route_id": routeID,
		"place_id": req.PlaceID,
		"order":    stop.Order,
	})
	c.JSON(http.StatusCreated, stop)
}

// RemoveStop succeeds even when the place was not in the route.
// DELETE /api/v1/routes/:id/stops/:place_id
func (ctrl *RouteStopController) RemoveStop(c *gin.Context) {
	routeID, ok := pathID(c, "id")
	if !ok {
		return
	}
	placeID, ok := pathID(c, "place_id")
	if !ok {
		return
	}
	if err := ctrl.stopService.RemoveStop(routeID, placeID); err != nil {
		respondServiceError(c, err, "remove route stop")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListStops filters stops by route and/or place. An unknown route yields [].
// Stops of PRIVATE routes are only listed for their owner.
// GET /api/v1/route-stops?route=&place=
func (ctrl *RouteStopController) ListStops(c *gin.Context) {
	var filter repository.RouteStopFilter
	var ok bool
	if filter.RouteID, ok = queryID(c, "route", "ruta"); !ok {
		return
	}
	if filter.PlaceID, ok = queryID(c, "place", "lugar"); !ok {
		return
	}
	viewerID, _ := middleware.GetUserID(c)
	filter.VisibleTo = &viewerID

	stops, err := ctrl.stopService.FilterStops(filter)
	if err != nil {
		respondServiceError(c, err, "filter route stops")
		return
	}
	c.JSON(http.StatusOK, gin.H{"stops": stops, "count": len(stops)})
}

// GetStop
// GET /api/v1/route-stops/:id
func (ctrl *RouteStopController) GetStop(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	viewerID, _ := middleware.GetUserID(c)
	stop, err := ctrl.stopService.GetVisibleStop(viewerID, id)
	if err != nil {
		respondServiceError(c, err, "get route stop")
		return
	}
	c.JSON(http.StatusOK, stop)
}

// UpdateStop
// PUT /api/v1/route-stops/:id
func (ctrl *RouteStopController) UpdateStop(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req UpdateStopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	stop, err := ctrl.stopService.UpdateStop(id, service.UpdateStopInput{
		Order:            req.Order,
		SuggestedMinutes: req.SuggestedMinutes,
		Note:             req.Note,
	})
	if err != nil {
		respondServiceError(c, err, "update route stop")
		return
	}
	c.JSON(http.StatusOK, stop)
}
