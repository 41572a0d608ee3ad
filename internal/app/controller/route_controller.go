package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rutasloja/rutas-backend/internal/app/model"
	"github.com/rutasloja/rutas-backend/internal/app/service"
	"github.com/rutasloja/rutas-backend/internal/middleware"
	"github.com/shopspring/decimal"
)

type RouteController struct {
	routeService service.RouteService
	stopService  service.RouteStopService
}

func NewRouteController(routeService service.RouteService, stopService service.RouteStopService) *RouteController {
	return &RouteController{
		routeService: routeService,
		stopService:  stopService,
	}
}

type CreateRouteRequest struct {
	Name            string          `json:"name" binding:"required,max=200"`
	Description     string          `json:"description"`
	Visibility      string          `json:"visibility" binding:"visibility"`
	CoverImageURL   string          `json:"cover_image_url"`
	DurationSeconds int             `json:"duration_seconds" binding:"min=0"`
	DistanceKm      decimal.Decimal `json:"distance_km"`
	CategoryIDs     []uint          `json:"category_ids"`
}

type UpdateRouteRequest struct {
	Name            *string          `json:"name" binding:"omitempty,max=200"`
	Description     *string          `json:"description"`
	Visibility      *string          `json:"visibility" binding:"omitempty,visibility"`
	CoverImageURL   *string          `json:"cover_image_url"`
	DurationSeconds *int             `json:"duration_seconds" binding:"omitempty,min=0"`
	DistanceKm      *decimal.Decimal `json:"distance_km"`
}

type SetCategoriesRequest struct {
	CategoryIDs []uint `json:"category_ids"`
}

// ListRoutes
// GET /api/v1/routes?user=&place=&category=&visibility=
func (ctrl *RouteController) ListRoutes(c *gin.Context) {
	var query service.RouteQuery
	var ok bool
	if query.UserID, ok = queryID(c, "user", "usuario"); !ok {
		return
	}
	if query.PlaceID, ok = queryID(c, "place", "lugar"); !ok {
		return
	}
	if query.CategoryID, ok = queryID(c, "category", "categoria"); !ok {
		return
	}
	query.Visibility = c.Query("visibility")
	query.ViewerID, _ = middleware.GetUserID(c)

	routes, err := ctrl.routeService.ListRoutes(query)
	if err != nil {
		respondServiceError(c, err, "list routes")
		return
	}
	c.JSON(http.StatusOK, gin.H{"routes": routes, "count": len(routes)})
}

// GetRoute
// GET /api/v1/routes/:id
func (ctrl *RouteController) GetRoute(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	route, ok := ctrl.visibleRoute(c, id)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, route)
}

// visibleRoute answers 404 for another user's PRIVATE route.
func (ctrl *RouteController) visibleRoute(c *gin.Context, id uint) (*model.RouteView, bool) {
	viewerID, _ := middleware.GetUserID(c)
	route, err := ctrl.routeService.GetVisibleRoute(viewerID, id)
	if err != nil {
		respondServiceError(c, err, "get route")
		return nil, false
	}
	return route, true
}

// CreateRoute makes the authenticated user the owner.
// POST /api/v1/routes
func (ctrl *RouteController) CreateRoute(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	route, err := ctrl.routeService.CreateRoute(userID, service.CreateRouteInput{
		Name:            req.Name,
		Description:     req.Description,
		Visibility:      req.Visibility,
		CoverImageURL:   req.CoverImageURL,
		DurationSeconds: req.DurationSeconds,
		DistanceKm:      req.DistanceKm,
		CategoryIDs:     req.CategoryIDs,
	})
	if err != nil {
		respondServiceError(c, err, "create route")
		return
	}

	middleware.GetLoggerFromContext(c).Info("Route created", map[string]interface{}{
		"route_id": route.ID,
		"user_id":  userID,
	})
	c.JSON(http.StatusCreated, route)
}

// UpdateRoute
// PUT /api/v1/routes/:id
func (ctrl *RouteController) UpdateRoute(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req UpdateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	route, err := ctrl.routeService.UpdateRoute(userID, id, service.UpdateRouteInput{
		Name:            req.Name,
		Description:     req.Description,
		Visibility:      req.Visibility,
		CoverImageURL:   req.CoverImageURL,
		DurationSeconds: req.DurationSeconds,
		DistanceKm:      req.DistanceKm,
	})
	if err != nil {
		respondServiceError(c, err, "update route")
		return
	}
	c.JSON(http.StatusOK, route)
}

// DeleteRoute
// DELETE /api/v1/routes/:id
func (ctrl *RouteController) DeleteRoute(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.routeService.DeleteRoute(userID, id); err != nil {
		respondServiceError(c, err, "delete route")
		return
	}
	c.Status(http.StatusNoContent)
}

// SetCategories replaces the route's category set.
// PUT /api/v1/routes/:id/categories
func (ctrl *RouteController) SetCategories(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req SetCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	route, err := ctrl.routeService.SetCategories(userID, id, req.CategoryIDs)
	if err != nil {
		respondServiceError(c, err, "set route categories")
		return
	}
	c.JSON(http.StatusOK, route)
}

// ListStops returns the itinerary in order.
// GET /api/v1/routes/:id/stops
func (ctrl *RouteController) ListStops(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, ok := ctrl.visibleRoute(c, id); !ok {
		return
	}
	stops, err := ctrl.stopService.ListStops(id)
	if err != nil {
		respondServiceError(c, err, "list route stops")
		return
	}
	c.JSON(http.StatusOK, gin.H{"stops": stops, "count": len(stops)})
}

// GetPath returns the stops as a GeoJSON feature.
// GET /api/v1/routes/:id/path
func (ctrl *RouteController) GetPath(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, ok := ctrl.visibleRoute(c, id); !ok {
		return
	}
	feature, err := ctrl.stopService.RoutePath(id)
	if err != nil {
		respondServiceError(c, err, "route path")
		return
	}
	c.JSON(http.StatusOK, feature)
}

// GetTotalTime
// GET /api/v1/routes/:id/total-time
func (ctrl *RouteController) GetTotalTime(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if _, ok := ctrl.visibleRoute(c, id); !ok {
		return
	}
	total, err := ctrl.stopService.ComputeTotalEstimatedMinutes(id)
	if err != nil {
		respondServiceError(c, err, "route total time")
		return
	}
	saved, err := ctrl.stopService.ComputeSavedCount(id)
	if err != nil {
		respondServiceError(c, err, "route saved count")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"route_id":                id,
		"total_estimated_minutes": total,
		"saved_count":             saved,
	})
}
