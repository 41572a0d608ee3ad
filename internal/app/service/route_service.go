package service

import (
	"errors"

	"github.com/rutasloja/rutas-backend/internal/app/model"
	"github.com/rutasloja/rutas-backend/internal/app/repository"
	"github.com/rutasloja/rutas-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateRouteInput struct {
	Name            string
	Description     string
	Visibility      string // empty means PUBLIC
	CoverImageURL   string
	DurationSeconds int
	DistanceKm      decimal.Decimal
	CategoryIDs     []uint
}

// UpdateRouteInput leaves nil fields untouched.
type UpdateRouteInput struct {
	Name            *string
	Description     *string
	Visibility      *string
	CoverImageURL   *string
	DurationSeconds *int
	DistanceKm      *decimal.Decimal
}

// RouteQuery is the list filter as received from the boundary. ViewerID
// is the authenticated caller, 0 when anonymous.
type RouteQuery struct {
	ViewerID   uint
	UserID     uint
	PlaceID    uint
	CategoryID uint
	Visibility string
}

type RouteService interface {
	CreateRoute(userID uint, input CreateRouteInput) (*model.RouteView, error)
	GetRoute(id uint) (*model.RouteView, error)
	GetVisibleRoute(viewerID, id uint) (*model.RouteView, error)
	ListRoutes(query RouteQuery) ([]model.RouteView, error)
	UpdateRoute(userID, id uint, input UpdateRouteInput) (*model.RouteView, error)
	DeleteRoute(userID, id uint) error
	SetCategories(userID, routeID uint, categoryIDs []uint) (*model.RouteView, error)
}

type routeService struct {
	routeRepo    repository.RouteRepository
	categoryRepo repository.CategoryRepository
}

func NewRouteService(
	routeRepo repository.RouteRepository,
	categoryRepo repository.CategoryRepository,
) RouteService {
	return &routeService{
		routeRepo:    routeRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *routeService) CreateRoute(userID uint, input CreateRouteInput) (*model.RouteView, error) {
	logger.Info("Creating route", map[string]interface{}{
		"user_id":    userID,
		"name":       input.Name,
		"visibility": input.Visibility,
	})

	visibility := model.VisibilityPublic
	if input.Visibility != "" {
		v, ok := model.ParseVisibility(input.Visibility)
		if !ok {
			logger.Warn("Route creation rejected: invalid visibility", map[string]interface{}{
				"visibility": input.Visibility,
			})
			return nil, ErrInvalidVisibility
		}
		visibility = v
	}
	if err := validateEstimates(input.DurationSeconds, input.DistanceKm); err != nil {
		return nil, err
	}

	categories, err := loadCategories(s.categoryRepo, input.CategoryIDs)
	if err != nil {
		return nil, err
	}

	route := &model.Route{
		Name:            input.Name,
		Description:     input.Description,
		Visibility:      visibility,
		CoverImageURL:   input.CoverImageURL,
		DurationSeconds: input.DurationSeconds,
		DistanceKm:      input.DistanceKm.Round(2),
		UserID:          userID,
		Categories:      categories,
	}
	if err := s.routeRepo.Create(route); err != nil {
		logger.Error("Failed to create route", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("Route created", map[string]interface{}{
		"route_id": route.ID,
		"user_id":  userID,
	})
	return s.GetRoute(route.ID)
}

func (s *routeService) GetRoute(id uint) (*model.RouteView, error) {
	route, err := s.routeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRouteNotFound
		}
		logger.Error("Failed to get route", err, map[string]interface{}{
			"route_id": id,
		})
		return nil, err
	}

	views, err := s.buildViews([]model.Route{*route})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// GetVisibleRoute hides another user's PRIVATE route as not found.
func (s *routeService) GetVisibleRoute(viewerID, id uint) (*model.RouteView, error) {
	view, err := s.GetRoute(id)
	if err != nil {
		return nil, err
	}
	if !view.VisibleTo(viewerID) {
		logger.Debug("Private route hidden from viewer", map[string]interface{}{
			"route_id":  id,
			"viewer_id": viewerID,
		})
		return nil, ErrRouteNotFound
	}
	return view, nil
}

func (s *routeService) ListRoutes(query RouteQuery) ([]model.RouteView, error) {
	viewer := query.ViewerID
	filter := repository.RouteFilter{
		UserID:     query.UserID,
		PlaceID:    query.PlaceID,
		CategoryID: query.CategoryID,
		VisibleTo:  &viewer,
	}
	if query.Visibility != "" {
		v, ok := model.ParseVisibility(query.Visibility)
		if !ok {
			return nil, ErrInvalidVisibility
		}
		filter.Visibility = v
	}

	routes, err := s.routeRepo.FindAll(filter)
	if err != nil {
		logger.Error("Failed to list routes", err)
		return nil, err
	}

	views, err := s.buildViews(routes)
	if err != nil {
		return nil, err
	}

	logger.Debug("Routes listed", map[string]interface{}{
		"count": len(views),
	})
	return views, nil
}

func (s *routeService) UpdateRoute(userID, id uint, input UpdateRouteInput) (*model.RouteView, error) {
	route, err := s.ownedRoute(userID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		route.Name = *input.Name
	}
	if input.Description != nil {
		route.Description = *input.Description
	}
	if input.Visibility != nil {
		v, ok := model.ParseVisibility(*input.Visibility)
		if !ok {
			return nil, ErrInvalidVisibility
		}
		route.Visibility = v
	}
	if input.CoverImageURL != nil {
		route.CoverImageURL = *input.CoverImageURL
	}
	if input.DurationSeconds != nil {
		route.DurationSeconds = *input.DurationSeconds
	}
	if input.DistanceKm != nil {
		route.DistanceKm = input.DistanceKm.Round(2)
	}
	if err := validateEstimates(route.DurationSeconds, route.DistanceKm); err != nil {
		return nil, err
	}

	if err := s.routeRepo.Update(route); err != nil {
		logger.Error("Failed to update route", err, map[string]interface{}{
			"route_id": id,
		})
		return nil, err
	}

	logger.Info("Route updated", map[string]interface{}{
		"route_id": id,
		"user_id":  userID,
	})
	return s.GetRoute(id)
}

func (s *routeService) DeleteRoute(userID, id uint) error {
	if _, err := s.ownedRoute(userID, id); err != nil {
		return err
	}

	if err := s.routeRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRouteNotFound
		}
		logger.Error("Failed to delete route", err, map[string]interface{}{
			"route_id": id,
		})
		return err
	}

	logger.Info("Route deleted", map[string]interface{}{
		"route_id": id,
		"user_id":  userID,
	})
	return nil
}

// SetCategories replaces the full category set of a route in one transaction.
func (s *routeService) SetCategories(userID, routeID uint, categoryIDs []uint) (*model.RouteView, error) {
	if _, err := s.ownedRoute(userID, routeID); err != nil {
		return nil, err
	}

	categories, err := loadCategories(s.categoryRepo, categoryIDs)
	if err != nil {
		return nil, err
	}

	if err := s.routeRepo.ReplaceCategories(routeID, categories); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRouteNotFound
		}
		return nil, err
	}

	logger.Info("Route categories replaced", map[string]interface{}{
		"route_id":     routeID,
		"category_ids": categoryIDs,
	})
	return s.GetRoute(routeID)
}

func (s *routeService) ownedRoute(userID, id uint) (*model.Route, error) {
	route, err := s.routeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRouteNotFound
		}
		return nil, err
	}
	if route.UserID != userID {
		logger.Warn("Route modification forbidden", map[string]interface{}{
			"route_id": id,
			"owner_id": route.UserID,
			"user_id":  userID,
		})
		return nil, ErrRouteAccessDenied
	}
	return route, nil
}

// buildViews attaches the derived aggregates with one grouped query each.
func (s *routeService) buildViews(routes []model.Route) ([]model.RouteView, error) {
	ids := make([]uint, 0, len(routes))
	for _, r := range routes {
		ids = append(ids, r.ID)
	}

	savedCounts, err := s.routeRepo.SavedCounts(ids)
	if err != nil {
		return nil, err
	}
	minuteSums, err := s.routeRepo.SuggestedMinutesSums(ids)
	if err != nil {
		return nil, err
	}

	views := make([]model.RouteView, 0, len(routes))
	for i := range routes {
		r := &routes[i]
		views = append(views, model.NewRouteView(r, savedCounts[r.ID], minuteSums[r.ID]))
	}
	return views, nil
}

func validateEstimates(durationSeconds int, distanceKm decimal.Decimal) error {
	if durationSeconds < 0 {
		return ErrInvalidDuration
	}
	if distanceKm.IsNegative() {
		return ErrInvalidDistance
	}
	return nil
}
