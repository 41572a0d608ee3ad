package service

import (
	"errors"

	"github.com/rutasloja/rutas-backend/internal/app/model"
	"github.com/rutasloja/rutas-backend/internal/app/repository"
	apperrors "github.com/rutasloja/rutas-backend/internal/errors"
	"github.com/rutasloja/rutas-backend/pkg/logger"
	"gorm.io/gorm"
)

type SavedRouteService interface {
	SaveRoute(userID, routeID uint, order int) (*model.SavedRouteView, error)
	UnsaveRoute(userID, routeID uint) error
	ListSavedRoutes(filter repository.SavedRouteFilter) ([]model.SavedRouteView, error)
}

type savedRouteService struct {
	savedRepo repository.SavedRouteRepository
	routeRepo repository.RouteRepository
}

func NewSavedRouteService(
	savedRepo repository.SavedRouteRepository,
	routeRepo repository.RouteRepository,
) SavedRouteService {
	return &savedRouteService{
		savedRepo: savedRepo,
		routeRepo: routeRepo,
	}
}

// SaveRoute bookmarks a route for a user. order 0 appends to the user's list.
func (s *savedRouteService) SaveRoute(userID, routeID uint, order int) (*model.SavedRouteView, error) {
	logger.Info("Saving route", map[string]interface{}{
		"user_id":  userID,
		"route_id": routeID,
	})

	if order < 0 {
		return nil, ErrInvalidOrder
	}

	exists, err := s.routeRepo.Exists(routeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUnknownRoute
	}

	saved := &model.SavedRoute{UserID: userID, RouteID: routeID, Order: order}
	if err := s.savedRepo.Save(saved); err != nil {
		if apperrors.IsUniqueViolation(err) {
			logger.Warn("Save rejected: route already saved", map[string]interface{}{
				"user_id":  userID,
				"route_id": routeID,
			})
			return nil, ErrDuplicateSavedRoute
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrUnknownRoute
		}
		logger.Error("Failed to save route", err, map[string]interface{}{
			"user_id":  userID,
			"route_id": routeID,
		})
		return nil, err
	}

	view := saved.View()
	return &view, nil
}

// UnsaveRoute succeeds whether or not the route was saved.
func (s *savedRouteService) UnsaveRoute(userID, routeID uint) error {
	removed, err := s.savedRepo.Unsave(userID, routeID)
	if err != nil {
		return err
	}

	logger.Info("Route unsaved", map[string]interface{}{
		"user_id":  userID,
		"route_id": routeID,
		"removed":  removed,
	})
	return nil
}

func (s *savedRouteService) ListSavedRoutes(filter repository.SavedRouteFilter) ([]model.SavedRouteView, error) {
	saved, err := s.savedRepo.FindAll(filter)
	if err != nil {
		return nil, err
	}

	views := make([]model.SavedRouteView, 0, len(saved))
	for i := range saved {
		views = append(views, saved[i].View())
	}
	return views, nil
}
