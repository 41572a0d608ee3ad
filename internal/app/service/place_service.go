package service

import (
	"errors"

	"github.com/rutasloja/rutas-backend/internal/app/model"
	"github.com/rutasloja/rutas-backend/internal/app/repository"
	"github.com/rutasloja/rutas-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	maxLatitude  = decimal.NewFromInt(90)
	maxLongitude = decimal.NewFromInt(180)
)

// PlaceInput is the full writable state of a place. A nil CategoryIDs on
// update keeps the current categories.
type PlaceInput struct {
	Name           string
	Description    string
	Latitude       decimal.Decimal
	Longitude      decimal.Decimal
	Address        string
	Hours          string
	Contact        string
	ImageURL       string
	ParishID       *uint
	LegacyProvince *string
	LegacyCanton   *string
	LegacyParish   *string
	CategoryIDs    []uint
}

type PlaceService interface {
	CreatePlace(input PlaceInput) (*model.PlaceDetail, error)
	GetPlace(id uint) (*model.PlaceDetail, error)
	ListPlaces(filter repository.PlaceFilter) ([]model.PlaceDetail, error)
	UpdatePlace(id uint, input PlaceInput) (*model.PlaceDetail, error)
	DeletePlace(id uint) error
	Classification(id uint) (model.Classification, error)
	RatingSummary(id uint) (*model.RatingSummary, error)
}

type placeService struct {
	placeRepo    repository.PlaceRepository
	categoryRepo repository.CategoryRepository
	geoRepo      repository.GeoRepository
	geoService   GeoService
}

func NewPlaceService(
	placeRepo repository.PlaceRepository,
	categoryRepo repository.CategoryRepository,
	geoRepo repository.GeoRepository,
	geoService GeoService,
) PlaceService {
	return &placeService{
		placeRepo:    placeRepo,
		categoryRepo: categoryRepo,
		geoRepo:      geoRepo,
		geoService:   geoService,
	}
}

func (s *placeService) CreatePlace(input PlaceInput) (*model.PlaceDetail, error) {
	logger.Info("Creating place", map[string]interface{}{
		"name":      input.Name,
		"parish_id": input.ParishID,
	})

	if err := s.validate(input); err != nil {
		return nil, err
	}
	categories, err := loadCategories(s.categoryRepo, input.CategoryIDs)
	if err != nil {
		return nil, err
	}

	place := &model.Place{Categories: categories}
	applyPlaceInput(place, input)

	if err := s.placeRepo.Create(place); err != nil {
		logger.Error("Failed to create place", err, map[string]interface{}{
			"name": input.Name,
		})
		return nil, err
	}

	logger.Info("Place created", map[string]interface{}{
		"place_id": place.ID,
	})
	return s.GetPlace(place.ID)
}

func (s *placeService) GetPlace(id uint) (*model.PlaceDetail, error) {
	place, err := s.placeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaceNotFound
		}
		return nil, err
	}
	return &model.PlaceDetail{
		Place:          *place,
		Classification: s.geoService.ClassifyPlace(place),
	}, nil
}

func (s *placeService) ListPlaces(filter repository.PlaceFilter) ([]model.PlaceDetail, error) {
	places, err := s.placeRepo.FindAll(filter)
	if err != nil {
		logger.Error("Failed to list places", err)
		return nil, err
	}

	// places in the same parish share one lookup
	byParish := make(map[uint]model.Classification)
	details := make([]model.PlaceDetail, 0, len(places))
	for i := range places {
		place := &places[i]
		var classification model.Classification
		if place.ParishID == nil {
			classification = model.Unclassified
		} else if cached, ok := byParish[*place.ParishID]; ok {
			classification = cached
		} else {
			classification = s.geoService.ClassifyPlace(place)
			byParish[*place.ParishID] = classification
		}
		details = append(details, model.PlaceDetail{Place: *place, Classification: classification})
	}
	return details, nil
}

func (s *placeService) UpdatePlace(id uint, input PlaceInput) (*model.PlaceDetail, error) {
	place, err := s.placeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaceNotFound
		}
		return nil, err
	}
	if err := s.validate(input); err != nil {
		return nil, err
	}

	var categories []model.Category
	if input.CategoryIDs != nil {
		categories, err = loadCategories(s.categoryRepo, input.CategoryIDs)
		if err != nil {
			return nil, err
		}
	}

	applyPlaceInput(place, input)
	if err := s.placeRepo.Update(place, categories); err != nil {
		logger.Error("Failed to update place", err, map[string]interface{}{
			"place_id": id,
		})
		return nil, err
	}

	logger.Info("Place updated", map[string]interface{}{
		"place_id": id,
	})
	return s.GetPlace(id)
}

// DeletePlace also drops the place from every route that contains it.
func (s *placeService) DeletePlace(id uint) error {
	if err := s.placeRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlaceNotFound
		}
		logger.Error("Failed to delete place", err, map[string]interface{}{
			"place_id": id,
		})
		return err
	}

	logger.Info("Place deleted", map[string]interface{}{
		"place_id": id,
	})
	return nil
}

func (s *placeService) Classification(id uint) (model.Classification, error) {
	place, err := s.placeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.Classification{}, ErrPlaceNotFound
		}
		return model.Classification{}, err
	}
	return s.geoService.ClassifyPlace(place), nil
}

func (s *placeService) RatingSummary(id uint) (*model.RatingSummary, error) {
	exists, err := s.placeRepo.Exists(id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPlaceNotFound
	}
	return s.placeRepo.RatingSummary(id)
}

func (s *placeService) validate(input PlaceInput) error {
	if input.Latitude.Abs().GreaterThan(maxLatitude) || input.Longitude.Abs().GreaterThan(maxLongitude) {
		return ErrInvalidCoordinates
	}
	if input.ParishID != nil {
		if _, err := s.geoRepo.FindParishWithAncestors(*input.ParishID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownParish
			}
			return err
		}
	}
	return nil
}

func applyPlaceInput(place *model.Place, input PlaceInput) {
	place.Name = input.Name
	place.Description = input.Description
	place.Latitude = input.Latitude.Round(6)
	place.Longitude = input.Longitude.Round(6)
	place.Address = input.Address
	place.Hours = input.Hours
	place.Contact = input.Contact
	place.ImageURL = input.ImageURL
	place.ParishID = input.ParishID
	place.LegacyProvince = input.LegacyProvince
	place.LegacyCanton = input.LegacyCanton
	place.LegacyParish = input.LegacyParish
}
