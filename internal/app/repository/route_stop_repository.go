package repository

import (
	"github.com/rutasloja/rutas-backend/internal/app/model"
	"github.com/rutasloja/rutas-backend/pkg/logger"
	"gorm.io/gorm"
)

// stopOrdering is the iteration order of a route's stops. Equal orders
// fall back to insertion order through the primary key.
const stopOrdering = "route_stops.stop_order ASC, route_stops.id ASC"

type RouteStopFilter struct {
	RouteID   uint
	PlaceID   uint
	VisibleTo *uint // when set, stops of other users' PRIVATE routes are excluded
}

type RouteStopRepository interface {
	Add(stop *model.RouteStop) error
	Remove(routeID, placeID uint) (int64, error)
	Update(stop *model.RouteStop) error
	FindByID(id uint) (*model.RouteStop, error)
	FindByRoute(routeID uint) ([]model.RouteStop, error)
	FindAll(filter RouteStopFilter) ([]model.RouteStop, error)
	SumSuggestedMinutes(routeID uint) (int, error)
}

type routeStopRepository struct {
	db *gorm.DB
}

func NewRouteStopRepository(db *gorm.DB) RouteStopRepository {
	return &routeStopRepository{db: db}
}

// Add inserts stop in one transaction. An existing (route, place) pair yields
// gorm.ErrDuplicatedKey; the unique index reports the same for a racing
// writer. A zero Order is replaced by the next free position.
func (r *routeStopRepository) Add(stop *model.RouteStop) error {
	logger.Debug("Adding route stop in database", map[string]interface{}{
		"route_id": stop.RouteID,
		"place_id": stop.PlaceID,
		"order":    stop.Order,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&model.RouteStop{}).
			Where("route_id = ? AND place_id = ?", stop.RouteID, stop.PlaceID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return gorm.ErrDuplicatedKey
		}

		if stop.Order == 0 {
			var maxOrder int
			if err := tx.Model(&model.RouteStop{}).
				Where("route_id = ?", stop.RouteID).
				Select("COALESCE(MAX(stop_order), 0)").
				Scan(&maxOrder).Error; err != nil {
				return err
			}
			stop.Order = maxOrder + 1
		}

		if err := tx.Omit("Route", "Place").Create(stop).Error; err != nil {
			return err
		}
		return tx.Preload("Route").Preload("Place").First(stop, stop.ID).Error
	})
	if err != nil {
		logger.Error("Failed to add route stop in database", err, map[string]interface{}{
			"route_id": stop.RouteID,
			"place_id": stop.PlaceID,
		})
		return err
	}

	logger.Debug("Route stop added in database", map[string]interface{}{
		"stop_id":  stop.ID,
		"route_id": stop.RouteID,
		"order":    stop.Order,
	})
	return nil
}

// Remove deletes the (route, place) stop and reports how many rows went away.
// The orders of the remaining stops are left untouched.
func (r *routeStopRepository) Remove(routeID, placeID uint) (int64, error) {
	logger.Debug("Removing route stop from database", map[string]interface{}{
		"route_id": routeID,
		"place_id": placeID,
	})

	result := r.db.Where("route_id = ? AND place_id = ?", routeID, placeID).Delete(&model.RouteStop{})
	if result.Error != nil {
		logger.Error("Failed to remove route stop from database", result.Error, map[string]interface{}{
			"route_id": routeID,
			"place_id": placeID,
		})
		return 0, result.Error
	}

	logger.Debug("Route stop removed from database", map[string]interface{}{
		"route_id": routeID,
		"place_id": placeID,
		"removed":  result.RowsAffected,
	})
	return result.RowsAffected, nil
}

func (r *routeStopRepository) Update(stop *model.RouteStop) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(stop).
			Select("Order", "SuggestedMinutes", "Note").
			Updates(stop).Error; err != nil {
			return err
		}
		return tx.Preload("Route").Preload("Place").First(stop, stop.ID).Error
	})
	if err != nil {
		logger.Error("Failed to update route stop in database", err, map[string]interface{}{
			"stop_id": stop.ID,
		})
		return err
	}
	return nil
}

func (r *routeStopRepository) FindByID(id uint) (*model.RouteStop, error) {
	var stop model.RouteStop
	if err := r.db.Preload("Route").Preload("Place").First(&stop, id).Error; err != nil {
		return nil, err
	}
	return &stop, nil
}

func (r *routeStopRepository) FindByRoute(routeID uint) ([]model.RouteStop, error) {
	return r.FindAll(RouteStopFilter{RouteID: routeID})
}

func (r *routeStopRepository) FindAll(filter RouteStopFilter) ([]model.RouteStop, error) {
	logger.Debug("Finding route stops in database", map[string]interface{}{
		"route_id": filter.RouteID,
		"place_id": filter.PlaceID,
	})

	query := r.db.Model(&model.RouteStop{}).Preload("Route").Preload("Place")
	if filter.RouteID != 0 {
		query = query.Where("route_stops.route_id = ?", filter.RouteID)
	}
	if filter.PlaceID != 0 {
		query = query.Where("route_stops.place_id = ?", filter.PlaceID)
	}
	if filter.VisibleTo != nil {
		query = query.Where("EXISTS (SELECT 1 FROM routes r WHERE r.id = route_stops.route_id AND (r.visibility = ? OR r.user_id = ?))",
			model.VisibilityPublic, *filter.VisibleTo)
	}
	if filter.RouteID == 0 {
		query = query.Order("route_stops.route_id ASC")
	}

	stops := []model.RouteStop{}
	if err := query.Order(stopOrdering).Find(&stops).Error; err != nil {
		logger.Error("Failed to find route stops in database", err, map[string]interface{}{
			"route_id": filter.RouteID,
		})
		return nil, err
	}

	logger.Debug("Route stops found in database", map[string]interface{}{
		"route_id": filter.RouteID,
		"count":    len(stops),
	})
	return stops, nil
}

func (r *routeStopRepository) SumSuggestedMinutes(routeID uint) (int, error) {
	var total int
	err := r.db.Model(&model.RouteStop{}).
		Where("route_id = ?", routeID).
		Select("COALESCE(SUM(suggested_minutes), 0)").
		Scan(&total).Error
	if err != nil {
		logger.Error("Failed to sum suggested minutes", err, map[string]interface{}{
			"route_id": routeID,
		})
		return 0, err
	}
	return total, nil
}
