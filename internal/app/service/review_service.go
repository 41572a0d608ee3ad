package service

import (
	"errors"

	"github.com/rutasloja/rutas-backend/internal/app/model"
	"github.com/rutasloja/rutas-backend/internal/app/repository"
	"github.com/rutasloja/rutas-backend/pkg/logger"
	"gorm.io/gorm"
)

type ReviewService interface {
	CreateReview(userID, placeID uint, text string, rating int) (*model.Review, error)
	DeleteReview(userID, id uint) error
	ListReviews(filter repository.ReviewFilter) ([]model.Review, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	placeRepo  repository.PlaceRepository
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	placeRepo repository.PlaceRepository,
) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		placeRepo:  placeRepo,
	}
}

func (s *reviewService) CreateReview(userID, placeID uint, text string, rating int) (*model.Review, error) {
	if rating < model.MinRating || rating > model.MaxRating {
		return nil, ErrInvalidRating
	}

	exists, err := s.placeRepo.Exists(placeID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrUnknownPlace
	}

	review := &model.Review{UserID: userID, PlaceID: placeID, Text: text, Rating: rating}
	if err := s.reviewRepo.Create(review); err != nil {
		logger.Error("Failed to create review", err, map[string]interface{}{
			"user_id":  userID,
			"place_id": placeID,
		})
		return nil, err
	}

	logger.Info("Review created", map[string]interface{}{
		"review_id": review.ID,
		"place_id":  placeID,
		"rating":    rating,
	})
	return review, nil
}

func (s *reviewService) DeleteReview(userID, id uint) error {
	review, err := s.reviewRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	if review.UserID != userID {
		return ErrAccessDenied
	}
	return s.reviewRepo.Delete(id)
}

func (s *reviewService) ListReviews(filter repository.ReviewFilter) ([]model.Review, error) {
	return s.reviewRepo.FindAll(filter)
}
