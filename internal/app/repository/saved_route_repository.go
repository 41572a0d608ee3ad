package repository

import (
	"github.com/rutasloja/rutas-backend/internal/app/model"
	"github.com/rutasloja/rutas-backend/pkg/logger"
	"gorm.io/gorm"
)

type SavedRouteFilter struct {
	UserID  uint
	RouteID uint
}

type SavedRouteRepository interface {
	Save(saved *model.SavedRoute) error
	Unsave(userID, routeID uint) (int64, error)
	FindAll(filter SavedRouteFilter) ([]model.SavedRoute, error)
	CountByRoute(routeID uint) (int64, error)
}

type savedRouteRepository struct {
	db *gorm.DB
}

func NewSavedRouteRepository(db *gorm.DB) SavedRouteRepository {
	return &savedRouteRepository{db: db}
}

// Save follows the same contract as RouteStopRepository.Add: duplicates
// surface as gorm.ErrDuplicatedKey and a zero Order takes the next free slot.
func (r *savedRouteRepository) Save(saved *model.SavedRoute) error {
	logger.Debug("Saving route for user in database", map[string]interface{}{
		"user_id":  saved.UserID,
		"route_id": saved.RouteID,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&model.SavedRoute{}).
			Where("user_id = ? AND route_id = ?", saved.UserID, saved.RouteID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return gorm.ErrDuplicatedKey
		}

		if saved.Order == 0 {
			var maxOrder int
			if err := tx.Model(&model.SavedRoute{}).
				Where("user_id = ?", saved.UserID).
				Select("COALESCE(MAX(saved_order), 0)").
				Scan(&maxOrder).Error; err != nil {
				return err
			}
			saved.Order = maxOrder + 1
		}

		if err := tx.Omit("User", "Route").Create(saved).Error; err != nil {
			return err
		}
		return tx.Preload("User").Preload("Route").First(saved, saved.ID).Error
	})
	if err != nil {
		logger.Error("Failed to save route for user in database", err, map[string]interface{}{
			"user_id":  saved.UserID,
			"route_id": saved.RouteID,
		})
		return err
	}

	logger.Debug("Route saved for user in database", map[string]interface{}{
		"saved_route_id": saved.ID,
		"order":          saved.Order,
	})
	return nil
}

func (r *savedRouteRepository) Unsave(userID, routeID uint) (int64, error) {
	result := r.db.Where("user_id = ? AND route_id = ?", userID, routeID).Delete(&model.SavedRoute{})
	if result.Error != nil {
		logger.Error("Failed to unsave route in database", result.Error, map[string]interface{}{
			"user_id":  userID,
			"route_id": routeID,
		})
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *savedRouteRepository) FindAll(filter SavedRouteFilter) ([]model.SavedRoute, error) {
	query := r.db.Model(&model.SavedRoute{}).Preload("User").Preload("Route")
	if filter.UserID != 0 {
		query = query.Where("saved_routes.user_id = ?", filter.UserID)
	}
	if filter.RouteID != 0 {
		query = query.Where("saved_routes.route_id = ?", filter.RouteID)
	}

	saved := []model.SavedRoute{}
	err := query.Order("saved_routes.saved_order ASC").Order("saved_routes.id ASC").Find(&saved).Error
	if err != nil {
		logger.Error("Failed to find saved routes in database", err, map[string]interface{}{
			"user_id":  filter.UserID,
			"route_id": filter.RouteID,
		})
		return nil, err
	}
	return saved, nil
}

func (r *savedRouteRepository) CountByRoute(routeID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&model.SavedRoute{}).Where("route_id = ?", routeID).Count(&count).Error; err != nil {
		logger.Error("Failed to count saved routes", err, map[string]interface{}{
			"route_id": routeID,
		})
		return 0, err
	}
	return count, nil
}
