package service

import (
	"errors"

	"github.com/rutasloja/rutas-backend/internal/app/model"
	"github.com/rutasloja/rutas-backend/internal/app/repository"
	apperrors "github.com/rutasloja/rutas-backend/internal/errors"
	"github.com/rutasloja/rutas-backend/pkg/logger"
	"gorm.io/gorm"
)

type FavoriteQuery struct {
	UserID  uint
	PlaceID uint
	Type    string
}

type FavoriteService interface {
	AddFavorite(userID, placeID uint, favoriteType string) (*model.Favorite, error)
	RemoveFavorite(userID, id uint) error
	ListFavorites(query FavoriteQuery) ([]model.Favorite, error)
}

type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	placeRepo    repository.PlaceRepository
}

func NewFavoriteService(
	favoriteRepo repository.FavoriteRepository,
	placeRepo repository.PlaceRepository,
) FavoriteService {
	return &favoriteService{
		favoriteRepo: favoriteRepo,
		placeRepo:    placeRepo,
	}
}

// AddFavorite marks a place; an empty type means FAV.
func (s *favoriteService) AddFavorite(userID, placeID uint, favoriteType string) (*model.Favorite, error) {
	t := model.FavoriteTypeFavorite
	if favoriteType != "" {
		parsed, ok := model.ParseFavoriteType(favoriteType)
		if !ok {
			return nil, ErrInvalidFavoriteType
		}
		t = parsed
	}

	exists, err := s.placeRepo.Exists(placeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUnknownPlace
	}

	favorite := &model.Favorite{UserID: userID, PlaceID: placeID, Type: t}
	if err := s.favoriteRepo.Create(favorite); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, ErrDuplicateFavorite
		}
		return nil, err
	}

	logger.Info("Favorite added", map[string]interface{}{
		"favorite_id": favorite.ID,
		"user_id":     userID,
		"place_id":    placeID,
		"type":        t,
	})
	return favorite, nil
}

func (s *favoriteService) RemoveFavorite(userID, id uint) error {
	favorite, err := s.favoriteRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFavoriteNotFound
		}
		return err
	}
	if favorite.UserID != userID {
		return ErrAccessDenied
	}
	return s.favoriteRepo.Delete(id)
}

func (s *favoriteService) ListFavorites(query FavoriteQuery) ([]model.Favorite, error) {
	filter := repository.FavoriteFilter{UserID: query.UserID, PlaceID: query.PlaceID}
	if query.Type != "" {
		t, ok := model.ParseFavoriteType(query.Type)
		if !ok {
			return nil, ErrInvalidFavoriteType
		}
		filter.Type = t
	}
	return s.favoriteRepo.FindAll(filter)
}
