package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rutasloja/rutas-backend/internal/app/repository"
	"github.com/rutasloja/rutas-backend/internal/app/service"
)

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

type CreateReviewRequest struct {
	PlaceID uint   `json:"place_id" binding:"required"`
	Text    string `json:"text"`
	Rating  int    `json:"rating" binding:"required"`
}

// ListReviews
// GET /api/v1/reviews?place=&user=
func (ctrl *ReviewController) ListReviews(c *gin.Context) {
	var filter repository.ReviewFilter
	var ok bool
	if filter.PlaceID, ok = queryID(c, "place", "lugar"); !ok {
		return
	}
	if filter.UserID, ok = queryID(c, "user", "usuario"); !ok {
		return
	}

	reviews, err := ctrl.reviewService.ListReviews(filter)
	if err != nil {
		respondServiceError(c, err, "list reviews")
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews, "count": len(reviews)})
}

// CreateReview
// POST /api/v1/reviews
func (ctrl *ReviewController) CreateReview(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	review, err := ctrl.reviewService.CreateReview(userID, req.PlaceID, req.Text, req.Rating)
	if err != nil {
		respondServiceError(c, err, "create review")
		return
	}
	c.JSON(http.StatusCreated, review)
}

// DeleteReview
// DELETE /api/v1/reviews/:id
func (ctrl *ReviewController) DeleteReview(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.reviewService.DeleteReview(userID, id); err != nil {
		respondServiceError(c, err, "delete review")
		return
	}
	c.Status(http.StatusNoContent)
}
