package repository

import (
	"github.com/rutasloja/rutas-backend/internal/app/model"
	"github.com/rutasloja/rutas-backend/pkg/logger"
	"gorm.io/gorm"
)

type ReviewFilter struct {
	PlaceID uint
	UserID  uint
}

type ReviewRepository interface {
	Create(review *model.Review) error
	FindByID(id uint) (*model.Review, error)
	FindAll(filter ReviewFilter) ([]model.Review, error)
	Delete(id uint) error
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *model.Review) error {
	logger.Debug("Creating review in database", map[string]interface{}{
		"user_id":  review.UserID,
		"place_id": review.PlaceID,
		"rating":   review.Rating,
	})

	if err := r.db.Omit("User", "Place").Create(review).Error; err != nil {
		logger.Error("Failed to create review in database", err, map[string]interface{}{
			"user_id":  review.UserID,
			"place_id": review.PlaceID,
		})
		return err
	}

	logger.Debug("Review created in database", map[string]interface{}{
		"review_id": review.ID,
	})
	return r.db.Preload("User").First(review, review.ID).Error
}

func (r *reviewRepository) FindByID(id uint) (*model.Review, error) {
	var review model.Review
	if err := r.db.Preload("User").First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// FindAll lists reviews newest first.
func (r *reviewRepository) FindAll(filter ReviewFilter) ([]model.Review, error) {
	query := r.db.Model(&model.Review{}).Preload("User")
	if filter.PlaceID != 0 {
		query = query.Where("reviews.place_id = ?", filter.PlaceID)
	}
	if filter.UserID != 0 {
		query = query.Where("reviews.user_id = ?", filter.UserID)
	}

	reviews := []model.Review{}
	if err := query.Order("reviews.created_at DESC").Order("reviews.id DESC").Find(&reviews).Error; err != nil {
		logger.Error("Failed to find reviews in database", err, map[string]interface{}{
			"place_id": filter.PlaceID,
			"user_id":  filter.UserID,
		})
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Review{}, id).Error; err != nil {
		logger.Error("Failed to delete review from database", err, map[string]interface{}{
			"review_id": id,
		})
		return err
	}
	return nil
}
