package service

import (
	"errors"

	"github.com/rutasloja/rutas-backend/internal/app/model"
	"github.com/rutasloja/rutas-backend/internal/app/repository"
	"github.com/rutasloja/rutas-backend/pkg/logger"
	"gorm.io/gorm"
)

type GeoService interface {
	ListProvinces() ([]model.Province, error)
	ListCantons(provinceID uint) ([]model.Canton, error)
	ListParishes(cantonID uint) ([]model.Parish, error)
	ClassifyPlace(place *model.Place) model.Classification
	SeedHierarchy(tree []model.ProvinceSeed) (repository.SeedResult, error)
	DeleteProvince(id uint) error
}

type geoService struct {
	geoRepo repository.GeoRepository
}

func NewGeoService(geoRepo repository.GeoRepository) GeoService {
	return &geoService{geoRepo: geoRepo}
}

func (s *geoService) ListProvinces() ([]model.Province, error) {
	return s.geoRepo.ListProvinces()
}

// ListCantons returns an empty list for an unknown or childless province.
func (s *geoService) ListCantons(provinceID uint) ([]model.Canton, error) {
	cantons, err := s.geoRepo.ListCantons(provinceID)
	if err != nil {
		return nil, err
	}
	logger.Debug("Cantons listed", map[string]interface{}{
		"province_id": provinceID,
		"count":       len(cantons),
	})
	return cantons, nil
}

func (s *geoService) ListParishes(cantonID uint) ([]model.Parish, error) {
	parishes, err := s.geoRepo.ListParishes(cantonID)
	if err != nil {
		return nil, err
	}
	logger.Debug("Parishes listed", map[string]interface{}{
		"canton_id": cantonID,
		"count":     len(parishes),
	})
	return parishes, nil
}

// ClassifyPlace walks Parish -> Canton -> Province from the place's hierarchy
// reference. The legacy text columns are never consulted. It does not fail:
// any lookup problem yields model.Unclassified.
func (s *geoService) ClassifyPlace(place *model.Place) model.Classification {
	if place == nil || place.ParishID == nil {
		return model.Unclassified
	}

	parish, err := s.geoRepo.FindParishWithAncestors(*place.ParishID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to classify place", err, map[string]interface{}{
				"place_id":  place.ID,
				"parish_id": *place.ParishID,
			})
		}
		return model.Unclassified
	}

	return model.Classification{
		Status:     model.ClassificationClassified,
		ProvinceID: parish.Canton.Province.ID,
		Province:   parish.Canton.Province.Name,
		CantonID:   parish.Canton.ID,
		Canton:     parish.Canton.Name,
		ParishID:   parish.ID,
		Parish:     parish.Name,
	}
}

// SeedHierarchy is idempotent; a second run with the same tree inserts nothing.
func (s *geoService) SeedHierarchy(tree []model.ProvinceSeed) (repository.SeedResult, error) {
	logger.Info("Seeding geographic hierarchy", map[string]interface{}{
		"provinces": len(tree),
	})

	result, err := s.geoRepo.Seed(tree)
	if err != nil {
		logger.Error("Failed to seed geographic hierarchy", err)
		return repository.SeedResult{}, err
	}

	logger.Info("Geographic hierarchy seeded", map[string]interface{}{
		"provinces_created": result.Provinces,
		"cantons_created":   result.Cantons,
		"parishes_created":  result.Parishes,
	})
	return result, nil
}

func (s *geoService) DeleteProvince(id uint) error {
	if err := s.geoRepo.DeleteProvince(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProvinceNotFound
		}
		return err
	}

	logger.Info("Province deleted with its cantons and parishes", map[string]interface{}{
		"province_id": id,
	})
	return nil
}

// DefaultHierarchy is the Loja province tree loaded on first start.
func DefaultHierarchy() []model.ProvinceSeed {
	return []model.ProvinceSeed{
		{
			Name: "Loja",
			Cantons: []model.CantonSeed{
				{Name: "Loja", Parishes: []string{
					// urban
					"El Sagrario", "San Sebastián", "Sucre", "El Valle",
					// rural
					"Vilcabamba", "Malacatos", "El Cisne", "Chuquiribamba", "Santiago", "San Lucas",
					"Jimbilla", "Yangana", "Quinara", "Chantaco", "Gualel", "Taquil",
				}},
				{Name: "Catamayo", Parishes: []string{"Catamayo", "San Pedro de la Bendita", "El Tambo", "Guayquichuma", "Zambi"}},
				{Name: "Saraguro", Parishes: []string{"Saraguro", "San Pablo de Tenta", "El Paraíso de Celén", "Urdaneta", "Lluzhapa", "Manú", "San Antonio de Q."}},
				{Name: "Paltas", Parishes: []string{"Catacocha", "Guachanamá", "Lauro Guerrero", "Cangonamá"}},
				{Name: "Calvas", Parishes: []string{"Cariamanga", "Utuana", "Sanguillín"}},
			},
		},
	}
}
