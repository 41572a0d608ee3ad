package service

import (
	"errors"
	"strconv"

	"github.com/rutasloja/rutas-backend/internal/app/model"
	"github.com/rutasloja/rutas-backend/internal/app/repository"
	apperrors "github.com/rutasloja/rutas-backend/internal/errors"
	"github.com/rutasloja/rutas-backend/pkg/logger"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"gorm.io/gorm"
)

type AddStopInput struct {
	RouteID          uint
	PlaceID          uint
	Order            int // 0 takes the next free position
	SuggestedMinutes int
	Note             *string
}

// UpdateStopInput leaves nil fields untouched. A blank Note clears it.
type UpdateStopInput struct {
	Order            *int
	SuggestedMinutes *int
	Note             *string
}

type RouteStopService interface {
	AddStop(input AddStopInput) (*model.StopView, error)
	RemoveStop(routeID, placeID uint) error
	ListStops(routeID uint) ([]model.StopView, error)
	FilterStopsByRoute(routeID uint) ([]model.StopView, error)
	FilterStops(filter repository.RouteStopFilter) ([]model.StopView, error)
	GetStop(id uint) (*model.StopView, error)
	GetVisibleStop(viewerID, id uint) (*model.StopView, error)
	UpdateStop(id uint, input UpdateStopInput) (*model.StopView, error)
	ComputeTotalEstimatedMinutes(routeID uint) (int, error)
	ComputeSavedCount(routeID uint) (int64, error)
	RoutePath(routeID uint) (*geojson.Feature, error)
}

type routeStopService struct {
	stopRepo  repository.RouteStopRepository
	routeRepo repository.RouteRepository
	placeRepo repository.PlaceRepository
	savedRepo repository.SavedRouteRepository
}

func NewRouteStopService(
	stopRepo repository.RouteStopRepository,
	routeRepo repository.RouteRepository,
	placeRepo repository.PlaceRepository,
	savedRepo repository.SavedRouteRepository,
) RouteStopService {
	return &routeStopService{
		stopRepo:  stopRepo,
		routeRepo: routeRepo,
		placeRepo: placeRepo,
		savedRepo: savedRepo,
	}
}

// AddStop appends place to route. Callers pick the order; existing stops are
// never renumbered.
func (s *routeStopService) AddStop(input AddStopInput) (*model.StopView, error) {
	logger.Info("Adding stop to route", map[string]interface{}{
		"route_id":          input.RouteID,
		"place_id":          input.PlaceID,
		"order":             input.Order,
		"suggested_minutes": input.SuggestedMinutes,
	})

	if input.Order < 0 {
		return nil, ErrInvalidOrder
	}
	if input.SuggestedMinutes < 0 {
		return nil, ErrInvalidMinutes
	}

	if err := s.requireRoute(input.RouteID); err != nil {
		return nil, err
	}

	placeExists, err := s.placeRepo.Exists(input.PlaceID)
	if err != nil {
		logger.Error("Failed to check place for new stop", err, map[string]interface{}{
			"place_id": input.PlaceID,
		})
		return nil, err
	}
	if !placeExists {
		logger.Warn("Add stop rejected: unknown place", map[string]interface{}{
			"route_id": input.RouteID,
			"place_id": input.PlaceID,
		})
		return nil, ErrUnknownPlace
	}

	stop := &model.RouteStop{
		RouteID:          input.RouteID,
		PlaceID:          input.PlaceID,
		Order:            input.Order,
		SuggestedMinutes: input.SuggestedMinutes,
		Note:             optionalNote(input.Note),
	}
	if err := s.stopRepo.Add(stop); err != nil {
		if apperrors.IsUniqueViolation(err) {
			logger.Warn("Add stop rejected: place already in route", map[string]interface{}{
				"route_id": input.RouteID,
				"place_id": input.PlaceID,
			})
			return nil, ErrDuplicateStop
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrUnknownPlace
		}
		logger.Error("Failed to add stop to route", err, map[string]interface{}{
			"route_id": input.RouteID,
			"place_id": input.PlaceID,
		})
		return nil, err
	}

	logger.Info("Stop added to route", map[string]interface{}{
		"stop_id":  stop.ID,
		"route_id": stop.RouteID,
		"order":    stop.Order,
	})

	view := stop.View()
	return &view, nil
}

// RemoveStop is idempotent: removing an absent stop succeeds.
func (s *routeStopService) RemoveStop(routeID, placeID uint) error {
	removed, err := s.stopRepo.Remove(routeID, placeID)
	if err != nil {
		logger.Error("Failed to remove stop from route", err, map[string]interface{}{
			"route_id": routeID,
			"place_id": placeID,
		})
		return err
	}

	logger.Info("Stop removed from route", map[string]interface{}{
		"route_id": routeID,
		"place_id": placeID,
		"removed":  removed,
	})
	return nil
}

func (s *routeStopService) ListStops(routeID uint) ([]model.StopView, error) {
	if err := s.requireRoute(routeID); err != nil {
		return nil, err
	}
	return s.FilterStopsByRoute(routeID)
}

// FilterStopsByRoute never fails for an unknown route; it yields no stops.
func (s *routeStopService) FilterStopsByRoute(routeID uint) ([]model.StopView, error) {
	return s.FilterStops(repository.RouteStopFilter{RouteID: routeID})
}

func (s *routeStopService) FilterStops(filter repository.RouteStopFilter) ([]model.StopView, error) {
	stops, err := s.stopRepo.FindAll(filter)
	if err != nil {
		logger.Error("Failed to list route stops", err, map[string]interface{}{
			"route_id": filter.RouteID,
			"place_id": filter.PlaceID,
		})
		return nil, err
	}
	return model.StopViews(stops), nil
}

func (s *routeStopService) GetStop(id uint) (*model.StopView, error) {
	stop, err := s.stopRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStopNotFound
		}
		logger.Error("Failed to get route stop", err, map[string]interface{}{
			"stop_id": id,
		})
		return nil, err
	}
	view := stop.View()
	return &view, nil
}

// GetVisibleStop hides stops of another user's PRIVATE route as not found.
func (s *routeStopService) GetVisibleStop(viewerID, id uint) (*model.StopView, error) {
	stop, err := s.stopRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStopNotFound
		}
		return nil, err
	}
	if !stop.Route.VisibleTo(viewerID) {
		return nil, ErrStopNotFound
	}
	view := stop.View()
	return &view, nil
}

// UpdateStop edits one stop in place. Sibling stops keep their orders even
// when the new order collides with one of them.
func (s *routeStopService) UpdateStop(id uint, input UpdateStopInput) (*model.StopView, error) {
	if input.Order != nil && *input.Order < 1 {
		return nil, ErrInvalidOrder
	}
	if input.SuggestedMinutes != nil && *input.SuggestedMinutes < 0 {
		return nil, ErrInvalidMinutes
	}

	stop, err := s.stopRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStopNotFound
		}
		return nil, err
	}

	if input.Order != nil {
		stop.Order = *input.Order
	}
	if input.SuggestedMinutes != nil {
		stop.SuggestedMinutes = *input.SuggestedMinutes
	}
	if input.Note != nil {
		stop.Note = optionalNote(input.Note)
	}

	if err := s.stopRepo.Update(stop); err != nil {
		logger.Error("Failed to update route stop", err, map[string]interface{}{
			"stop_id": id,
		})
		return nil, err
	}

	logger.Info("Route stop updated", map[string]interface{}{
		"stop_id":           id,
		"order":             stop.Order,
		"suggested_minutes": stop.SuggestedMinutes,
	})

	view := stop.View()
	return &view, nil
}

// ComputeTotalEstimatedMinutes is recomputed from storage on every call.
func (s *routeStopService) ComputeTotalEstimatedMinutes(routeID uint) (int, error) {
	route, err := s.routeRepo.FindByID(routeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrRouteNotFound
		}
		return 0, err
	}

	sum, err := s.stopRepo.SumSuggestedMinutes(routeID)
	if err != nil {
		return 0, err
	}
	return model.TotalEstimatedMinutes(route.DurationSeconds, sum), nil
}

func (s *routeStopService) ComputeSavedCount(routeID uint) (int64, error) {
	if err := s.requireRoute(routeID); err != nil {
		return 0, err
	}
	return s.savedRepo.CountByRoute(routeID)
}

// RoutePath connects the stop coordinates in itinerary order as a GeoJSON
// feature for the client map. A LineString needs two positions, so a single
// stop is a Point and an empty route has a null geometry.
func (s *routeStopService) RoutePath(routeID uint) (*geojson.Feature, error) {
	if err := s.requireRoute(routeID); err != nil {
		return nil, err
	}

	stops, err := s.stopRepo.FindByRoute(routeID)
	if err != nil {
		return nil, err
	}

	coords := make([]geom.Coord, 0, len(stops))
	placeIDs := make([]uint, 0, len(stops))
	for _, stop := range stops {
		lon, _ := stop.Place.Longitude.Float64()
		lat, _ := stop.Place.Latitude.Float64()
		coords = append(coords, geom.Coord{lon, lat})
		placeIDs = append(placeIDs, stop.PlaceID)
	}

	var geometry geom.T
	switch len(coords) {
	case 0:
	case 1:
		geometry, err = geom.NewPoint(geom.XY).SetCoords(coords[0])
	default:
		geometry, err = geom.NewLineString(geom.XY).SetCoords(coords)
	}
	if err != nil {
		logger.Error("Failed to build route path", err, map[string]interface{}{
			"route_id": routeID,
		})
		return nil, err
	}

	return &geojson.Feature{
		ID:       strconv.FormatUint(uint64(routeID), 10),
		Geometry: geometry,
		Properties: map[string]interface{}{
			"route_id":  routeID,
			"place_ids": placeIDs,
			"stops":     len(stops),
		},
	}, nil
}

func (s *routeStopService) requireRoute(routeID uint) error {
	exists, err := s.routeRepo.Exists(routeID)
	if err != nil {
		logger.Error("Failed to check route", err, map[string]interface{}{
			"route_id": routeID,
		})
		return err
	}
	if !exists {
		return ErrRouteNotFound
	}
	return nil
}

func optionalNote(note *string) *string {
	if note == nil {
		return nil
	}
	return optionalText(*note)
}
