package repository

import (
	"errors"

	"github.com/rutasloja/rutas-backend/internal/app/model"
	"github.com/rutasloja/rutas-backend/pkg/logger"
	"gorm.io/gorm"
)

// SeedResult counts the hierarchy rows a seed run actually inserted.
type SeedResult struct {
	Provinces int `json:"provinces"`
	Cantons   int `json:"cantons"`
	Parishes  int `json:"parishes"`
}

func (s SeedResult) Total() int {
	return s.Provinces + s.Cantons + s.Parishes
}

type GeoRepository interface {
	ListProvinces() ([]model.Province, error)
	FindProvinceByID(id uint) (*model.Province, error)
	ListCantons(provinceID uint) ([]model.Canton, error)
	ListParishes(cantonID uint) ([]model.Parish, error)
	FindParishWithAncestors(parishID uint) (*model.Parish, error)
	Seed(tree []model.ProvinceSeed) (SeedResult, error)
	DeleteProvince(id uint) error
}

type geoRepository struct {
	db *gorm.DB
}

func NewGeoRepository(db *gorm.DB) GeoRepository {
	return &geoRepository{db: db}
}

func (r *geoRepository) ListProvinces() ([]model.Province, error) {
	provinces := []model.Province{}
	if err := r.db.Order("name ASC").Find(&provinces).Error; err != nil {
		logger.Error("Failed to list provinces", err)
		return nil, err
	}
	return provinces, nil
}

func (r *geoRepository) FindProvinceByID(id uint) (*model.Province, error) {
	var province model.Province
	if err := r.db.First(&province, id).Error; err != nil {
		return nil, err
	}
	return &province, nil
}

func (r *geoRepository) ListCantons(provinceID uint) ([]model.Canton, error) {
	logger.Debug("Listing cantons by province", map[string]interface{}{
		"province_id": provinceID,
	})

	cantons := []model.Canton{}
	if err := r.db.Where("province_id = ?", provinceID).Order("name ASC").Find(&cantons).Error; err != nil {
		logger.Error("Failed to list cantons", err, map[string]interface{}{
			"province_id": provinceID,
		})
		return nil, err
	}
	return cantons, nil
}

func (r *geoRepository) ListParishes(cantonID uint) ([]model.Parish, error) {
	logger.Debug("Listing parishes by canton", map[string]interface{}{
		"canton_id": cantonID,
	})

	parishes := []model.Parish{}
	if err := r.db.Where("canton_id = ?", cantonID).Order("name ASC").Find(&parishes).Error; err != nil {
		logger.Error("Failed to list parishes", err, map[string]interface{}{
			"canton_id": cantonID,
		})
		return nil, err
	}
	return parishes, nil
}

func (r *geoRepository) FindParishWithAncestors(parishID uint) (*model.Parish, error) {
	var parish model.Parish
	if err := r.db.Preload("Canton.Province").First(&parish, parishID).Error; err != nil {
		return nil, err
	}
	return &parish, nil
}

// Seed creates the missing nodes of tree, matching by name within the parent.
// The whole run is one transaction.
func (r *geoRepository) Seed(tree []model.ProvinceSeed) (SeedResult, error) {
	var result SeedResult

	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, ps := range tree {
			province := model.Province{Name: ps.Name}
			created, err := findOrCreate(tx, &province, "name = ?", ps.Name)
			if err != nil {
				return err
			}
			if created {
				result.Provinces++
			}

			for _, cs := range ps.Cantons {
				canton := model.Canton{ProvinceID: province.ID, Name: cs.Name}
				created, err := findOrCreate(tx, &canton, "province_id = ? AND name = ?", province.ID, cs.Name)
				if err != nil {
					return err
				}
				if created {
					result.Cantons++
				}

				for _, name := range cs.Parishes {
					parish := model.Parish{CantonID: canton.ID, Name: name}
					created, err := findOrCreate(tx, &parish, "canton_id = ? AND name = ?", canton.ID, name)
					if err != nil {
						return err
					}
					if created {
						result.Parishes++
					}
				}
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to seed hierarchy", err)
		return SeedResult{}, err
	}

	logger.Debug("Hierarchy seed applied", map[string]interface{}{
		"provinces": result.Provinces,
		"cantons":   result.Cantons,
		"parishes":  result.Parishes,
	})
	return result, nil
}

// findOrCreate loads the row matching query into dest, or inserts dest as is.
func findOrCreate(tx *gorm.DB, dest interface{}, query string, args ...interface{}) (bool, error) {
	err := tx.Where(query, args...).Take(dest).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	if err := tx.Create(dest).Error; err != nil {
		return false, err
	}
	return true, nil
}

// DeleteProvince removes the province with its cantons and parishes. Places
// that pointed at a removed parish keep existing without a hierarchy reference.
func (r *geoRepository) DeleteProvince(id uint) error {
	logger.Debug("Deleting province from database", map[string]interface{}{
		"province_id": id,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var province model.Province
		if err := tx.First(&province, id).Error; err != nil {
			return err
		}

		cantonIDs := tx.Model(&model.Canton{}).Select("id").Where("province_id = ?", id)
		parishIDs := tx.Model(&model.Parish{}).Select("id").Where("canton_id IN (?)", cantonIDs)

		if err := tx.Model(&model.Place{}).
			Where("parish_id IN (?)", parishIDs).
			Update("parish_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("canton_id IN (?)", cantonIDs).Delete(&model.Parish{}).Error; err != nil {
			return err
		}
		if err := tx.Where("province_id = ?", id).Delete(&model.Canton{}).Error; err != nil {
			return err
		}
		return tx.Delete(&province).Error
	})
	if err != nil {
		logger.Error("Failed to delete province from database", err, map[string]interface{}{
			"province_id": id,
		})
		return err
	}

	logger.Debug("Province deleted from database", map[string]interface{}{
		"province_id": id,
	})
	return nil
}
