package repository

import (
	"github.com/rutasloja/rutas-backend/internal/app/model"
	"github.com/rutasloja/rutas-backend/pkg/logger"
	"gorm.io/gorm"
)

// RouteFilter fields are AND-combined; zero values are ignored.
type RouteFilter struct {
	UserID     uint
	PlaceID    uint
	CategoryID uint
	Visibility model.Visibility
	VisibleTo  *uint // when set, PRIVATE routes of other users are excluded
}

type RouteRepository interface {
	Create(route *model.Route) error
	Update(route *model.Route) error
	Delete(id uint) error
	FindByID(id uint) (*model.Route, error)
	FindAll(filter RouteFilter) ([]model.Route, error)
	Exists(id uint) (bool, error)
	ReplaceCategories(routeID uint, categories []model.Category) error
	SavedCounts(routeIDs []uint) (map[uint]int64, error)
	SuggestedMinutesSums(routeIDs []uint) (map[uint]int, error)
}

type routeRepository struct {
	db *gorm.DB
}

func NewRouteRepository(db *gorm.DB) RouteRepository {
	return &routeRepository{db: db}
}

func (r *routeRepository) Create(route *model.Route) error {
	logger.Debug("Creating route in database", map[string]interface{}{
		"name":    route.Name,
		"user_id": route.UserID,
	})

	if err := r.db.Omit("User", "Categories.*").Create(route).Error; err != nil {
		logger.Error("Failed to create route in database", err, map[string]interface{}{
			"name":    route.Name,
			"user_id": route.UserID,
		})
		return err
	}

	logger.Debug("Route created in database", map[string]interface{}{
		"route_id": route.ID,
		"user_id":  route.UserID,
	})
	return nil
}

func (r *routeRepository) Update(route *model.Route) error {
	logger.Debug("Updating route in database", map[string]interface{}{
		"route_id": route.ID,
	})

	if err := r.db.Omit("User", "Categories").Save(route).Error; err != nil {
		logger.Error("Failed to update route in database", err, map[string]interface{}{
			"route_id": route.ID,
		})
		return err
	}
	return nil
}

// Delete removes the route with its stops, saves and category links.
func (r *routeRepository) Delete(id uint) error {
	logger.Debug("Deleting route from database", map[string]interface{}{
		"route_id": id,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var route model.Route
		if err := tx.First(&route, id).Error; err != nil {
			return err
		}
		if err := tx.Where("route_id = ?", id).Delete(&model.RouteStop{}).Error; err != nil {
			return err
		}
		if err := tx.Where("route_id = ?", id).Delete(&model.SavedRoute{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&route).Association("Categories").Clear(); err != nil {
			return err
		}
		return tx.Delete(&route).Error
	})
	if err != nil {
		logger.Error("Failed to delete route from database", err, map[string]interface{}{
			"route_id": id,
		})
		return err
	}

	logger.Debug("Route deleted from database", map[string]interface{}{
		"route_id": id,
	})
	return nil
}

func (r *routeRepository) FindByID(id uint) (*model.Route, error) {
	var route model.Route
	if err := r.db.Preload("User").Preload("Categories").First(&route, id).Error; err != nil {
		logger.Debug("Route not found", map[string]interface{}{
			"route_id": id,
		})
		return nil, err
	}
	return &route, nil
}

func (r *routeRepository) FindAll(filter RouteFilter) ([]model.Route, error) {
	logger.Debug("Finding routes in database", map[string]interface{}{
		"user_id":     filter.UserID,
		"place_id":    filter.PlaceID,
		"category_id": filter.CategoryID,
		"visibility":  filter.Visibility,
	})

	query := r.db.Model(&model.Route{}).Preload("User").Preload("Categories")

	if filter.UserID != 0 {
		query = query.Where("routes.user_id = ?", filter.UserID)
	}
	if filter.PlaceID != 0 {
		query = query.Where("EXISTS (SELECT 1 FROM route_stops rs WHERE rs.route_id = routes.id AND rs.place_id = ?)", filter.PlaceID)
	}
	if filter.CategoryID != 0 {
		query = query.Where("EXISTS (SELECT 1 FROM route_categories rc WHERE rc.route_id = routes.id AND rc.category_id = ?)", filter.CategoryID)
	}
	if filter.Visibility != "" {
		query = query.Where("routes.visibility = ?", filter.Visibility)
	}
	if filter.VisibleTo != nil {
		query = query.Where("(routes.visibility = ? OR routes.user_id = ?)", model.VisibilityPublic, *filter.VisibleTo)
	}

	routes := []model.Route{}
	if err := query.Order("routes.created_at DESC").Order("routes.id DESC").Find(&routes).Error; err != nil {
		logger.Error("Failed to find routes in database", err)
		return nil, err
	}

	logger.Debug("Routes found in database", map[string]interface{}{
		"count": len(routes),
	})
	return routes, nil
}

func (r *routeRepository) Exists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&model.Route{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ReplaceCategories swaps the whole category set of a route atomically.
func (r *routeRepository) ReplaceCategories(routeID uint, categories []model.Category) error {
	logger.Debug("Replacing route categories", map[string]interface{}{
		"route_id":       routeID,
		"category_count": len(categories),
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var route model.Route
		if err := tx.First(&route, routeID).Error; err != nil {
			return err
		}
		if len(categories) == 0 {
			return tx.Model(&route).Association("Categories").Clear()
		}
		return tx.Model(&route).Association("Categories").Replace(categories)
	})
	if err != nil {
		logger.Error("Failed to replace route categories", err, map[string]interface{}{
			"route_id": routeID,
		})
		return err
	}
	return nil
}

// SavedCounts returns the number of saves per route in one grouped query.
// Routes nobody saved are absent from the map.
func (r *routeRepository) SavedCounts(routeIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(routeIDs))
	if len(routeIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		RouteID uint
		Total   int64
	}
	err := r.db.Model(&model.SavedRoute{}).
		Select("route_id, COUNT(*) AS total").
		Where("route_id IN ?", routeIDs).
		Group("route_id").
		Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to count saved routes", err, map[string]interface{}{
			"route_ids": routeIDs,
		})
		return nil, err
	}

	for _, row := range rows {
		counts[row.RouteID] = row.Total
	}
	return counts, nil
}

// SuggestedMinutesSums returns the sum of stop suggestions per route in one
// grouped query. Routes without stops are absent from the map.
func (r *routeRepository) SuggestedMinutesSums(routeIDs []uint) (map[uint]int, error) {
	sums := make(map[uint]int, len(routeIDs))
	if len(routeIDs) == 0 {
		return sums, nil
	}

	var rows []struct {
		RouteID uint
		Total   int
	}
	err := r.db.Model(&model.RouteStop{}).
		Select("route_id, COALESCE(SUM(suggested_minutes), 0) AS total").
		Where("route_id IN ?", routeIDs).
		Group("route_id").
		Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to sum suggested minutes", err, map[string]interface{}{
			"route_ids": routeIDs,
		})
		return nil, err
	}

	for _, row := range rows {
		sums[row.RouteID] = row.Total
	}
	return sums, nil
}
