package repository

import (
	"github.com/rutasloja/rutas-backend/internal/app/model"
	"github.com/rutasloja/rutas-backend/pkg/logger"
	"gorm.io/gorm"
)

// PlaceFilter fields are AND-combined; zero values are ignored.
type PlaceFilter struct {
	CategoryID uint
	ProvinceID uint
	CantonID   uint
	ParishID   uint
	Search     string
}

type PlaceRepository interface {
	Create(place *model.Place) error
	Update(place *model.Place, categories []model.Category) error
	Delete(id uint) error
	FindByID(id uint) (*model.Place, error)
	FindAll(filter PlaceFilter) ([]model.Place, error)
	Exists(id uint) (bool, error)
	RatingSummary(placeID uint) (*model.RatingSummary, error)
}

type placeRepository struct {
	db *gorm.DB
}

func NewPlaceRepository(db *gorm.DB) PlaceRepository {
	return &placeRepository{db: db}
}

func (r *placeRepository) Create(place *model.Place) error {
	logger.Debug("Creating place in database", map[string]interface{}{
		"name":      place.Name,
		"parish_id": place.ParishID,
	})

	if err := r.db.Omit("Categories.*").Create(place).Error; err != nil {
		logger.Error("Failed to create place in database", err, map[string]interface{}{
			"name": place.Name,
		})
		return err
	}

	logger.Debug("Place created in database", map[string]interface{}{
		"place_id": place.ID,
		"name":     place.Name,
	})
	return nil
}

// Update saves the scalar columns and, when categories is non-nil, replaces
// the category set in the same transaction.
func (r *placeRepository) Update(place *model.Place, categories []model.Category) error {
	logger.Debug("Updating place in database", map[string]interface{}{
		"place_id": place.ID,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Categories").Save(place).Error; err != nil {
			return err
		}
		if categories == nil {
			return nil
		}
		association := tx.Model(place).Association("Categories")
		if len(categories) == 0 {
			if err := association.Clear(); err != nil {
				return err
			}
		} else if err := association.Replace(categories); err != nil {
			return err
		}
		place.Categories = categories
		return nil
	})
	if err != nil {
		logger.Error("Failed to update place in database", err, map[string]interface{}{
			"place_id": place.ID,
		})
		return err
	}
	return nil
}

// Delete removes the place and everything hanging off it: stops in any
// route, favorites, reviews and category links. Remaining stops keep their order.
func (r *placeRepository) Delete(id uint) error {
	logger.Debug("Deleting place from database", map[string]interface{}{
		"place_id": id,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var place model.Place
		if err := tx.First(&place, id).Error; err != nil {
			return err
		}
		if err := tx.Where("place_id = ?", id).Delete(&model.RouteStop{}).Error; err != nil {
			return err
		}
		if err := tx.Where("place_id = ?", id).Delete(&model.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("place_id = ?", id).Delete(&model.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("place_id = ?", id).Delete(&model.Event{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&place).Association("Categories").Clear(); err != nil {
			return err
		}
		return tx.Delete(&place).Error
	})
	if err != nil {
		logger.Error("Failed to delete place from database", err, map[string]interface{}{
			"place_id": id,
		})
		return err
	}

	logger.Debug("Place deleted from database", map[string]interface{}{
		"place_id": id,
	})
	return nil
}

func (r *placeRepository) FindByID(id uint) (*model.Place, error) {
	var place model.Place
	if err := r.db.Preload("Categories").First(&place, id).Error; err != nil {
		logger.Debug("Place not found", map[string]interface{}{
			"place_id": id,
		})
		return nil, err
	}
	return &place, nil
}

func (r *placeRepository) FindAll(filter PlaceFilter) ([]model.Place, error) {
	logger.Debug("Finding places in database", map[string]interface{}{
		"category_id": filter.CategoryID,
		"province_id": filter.ProvinceID,
		"canton_id":   filter.CantonID,
		"parish_id":   filter.ParishID,
		"search":      filter.Search,
	})

	query := r.db.Model(&model.Place{}).Preload("Categories")

	if filter.CategoryID != 0 {
		query = query.Where("EXISTS (SELECT 1 FROM place_categories pc WHERE pc.place_id = places.id AND pc.category_id = ?)", filter.CategoryID)
	}
	if filter.ParishID != 0 {
		query = query.Where("places.parish_id = ?", filter.ParishID)
	}
	if filter.CantonID != 0 {
		query = query.Where("places.parish_id IN (?)",
			r.db.Model(&model.Parish{}).Select("id").Where("canton_id = ?", filter.CantonID))
	}
	if filter.ProvinceID != 0 {
		cantons := r.db.Model(&model.Canton{}).Select("id").Where("province_id = ?", filter.ProvinceID)
		query = query.Where("places.parish_id IN (?)",
			r.db.Model(&model.Parish{}).Select("id").Where("canton_id IN (?)", cantons))
	}
	if filter.Search != "" {
		query = query.Where("LOWER(places.name) LIKE LOWER(?)", "%"+filter.Search+"%")
	}

	places := []model.Place{}
	if err := query.Order("places.name ASC").Order("places.id ASC").Find(&places).Error; err != nil {
		logger.Error("Failed to find places in database", err)
		return nil, err
	}

	logger.Debug("Places found in database", map[string]interface{}{
		"count": len(places),
	})
	return places, nil
}

func (r *placeRepository) Exists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&model.Place{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *placeRepository) RatingSummary(placeID uint) (*model.RatingSummary, error) {
	var row struct {
		Count   int64
		Average float64
	}
	err := r.db.Model(&model.Review{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS average").
		Where("place_id = ?", placeID).
		Scan(&row).Error
	if err != nil {
		logger.Error("Failed to compute place rating", err, map[string]interface{}{
			"place_id": placeID,
		})
		return nil, err
	}
	return &model.RatingSummary{PlaceID: placeID, Count: row.Count, Average: row.Average}, nil
}
