package repository

import (
	"github.com/rutasloja/rutas-backend/internal/app/model"
	"github.com/rutasloja/rutas-backend/pkg/logger"
	"gorm.io/gorm"
)

type FavoriteFilter struct {
	UserID  uint
	PlaceID uint
	Type    model.FavoriteType
}

type FavoriteRepository interface {
	Create(favorite *model.Favorite) error
	FindByID(id uint) (*model.Favorite, error)
	FindAll(filter FavoriteFilter) ([]model.Favorite, error)
	Delete(id uint) error
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Create(favorite *model.Favorite) error {
	logger.Debug("Creating favorite in database", map[string]interface{}{
		"user_id":  favorite.UserID,
		"place_id": favorite.PlaceID,
		"type":     favorite.Type,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&model.Favorite{}).
			Where("user_id = ? AND place_id = ? AND type = ?", favorite.UserID, favorite.PlaceID, favorite.Type).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return gorm.ErrDuplicatedKey
		}
		if err := tx.Omit("User", "Place").Create(favorite).Error; err != nil {
			return err
		}
		return tx.Preload("Place").First(favorite, favorite.ID).Error
	})
	if err != nil {
		logger.Error("Failed to create favorite in database", err, map[string]interface{}{
			"user_id":  favorite.UserID,
			"place_id": favorite.PlaceID,
		})
		return err
	}
	return nil
}

func (r *favoriteRepository) FindByID(id uint) (*model.Favorite, error) {
	var favorite model.Favorite
	if err := r.db.Preload("Place").First(&favorite, id).Error; err != nil {
		return nil, err
	}
	return &favorite, nil
}

func (r *favoriteRepository) FindAll(filter FavoriteFilter) ([]model.Favorite, error) {
	query := r.db.Model(&model.Favorite{}).Preload("Place")
	if filter.UserID != 0 {
		query = query.Where("favorites.user_id = ?", filter.UserID)
	}
	if filter.PlaceID != 0 {
		query = query.Where("favorites.place_id = ?", filter.PlaceID)
	}
	if filter.Type != "" {
		query = query.Where("favorites.type = ?", filter.Type)
	}

	favorites := []model.Favorite{}
	if err := query.Order("favorites.created_at DESC").Order("favorites.id DESC").Find(&favorites).Error; err != nil {
		logger.Error("Failed to find favorites in database", err, map[string]interface{}{
			"user_id":  filter.UserID,
			"place_id": filter.PlaceID,
		})
		return nil, err
	}
	return favorites, nil
}

func (r *favoriteRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Favorite{}, id).Error; err != nil {
		logger.Error("Failed to delete favorite from database", err, map[string]interface{}{
			"favorite_id": id,
		})
		return err
	}
	return nil
}
