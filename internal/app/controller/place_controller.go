package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rutasloja/rutas-backend/internal/app/repository"
	"github.com/rutasloja/rutas-backend/internal/app/service"
	"github.com/shopspring/decimal"
)

type PlaceController struct {
	placeService service.PlaceService
}

func NewPlaceController(placeService service.PlaceService) *PlaceController {
	return &PlaceController{placeService: placeService}
}

// PlaceRequest is shared by create and update. Omitting category_ids on
// update keeps the current categories.
type PlaceRequest struct {
	Name           string          `json:"name" binding:"required,max=200"`
	Description    string          `json:"description"`
	Latitude       decimal.Decimal `json:"latitude"`
	Longitude      decimal.Decimal `json:"longitude"`
	Address        string          `json:"address"`
	Hours          string          `json:"hours"`
	Contact        string          `json:"contact"`
	ImageURL       string          `json:"image_url"`
	ParishID       *uint           `json:"parish_id"`
	LegacyProvince *string         `json:"legacy_province"`
	LegacyCanton   *string         `json:"legacy_canton"`
	LegacyParish   *string         `json:"legacy_parish"`
	CategoryIDs    []uint          `json:"category_ids"`
}

func (r *PlaceRequest) input() service.PlaceInput {
	return service.PlaceInput{
		Name:           r.Name,
		Description:    r.Description,
		Latitude:       r.Latitude,
		Longitude:      r.Longitude,
		Address:        r.Address,
		Hours:          r.Hours,
		Contact:        r.Contact,
		ImageURL:       r.ImageURL,
		ParishID:       r.ParishID,
		LegacyProvince: r.LegacyProvince,
		LegacyCanton:   r.LegacyCanton,
		LegacyParish:   r.LegacyParish,
		CategoryIDs:    r.CategoryIDs,
	}
}

// ListPlaces
// GET /api/v1/places?categoria=&provincia=&canton=&parroquia=&q=
func (ctrl *PlaceController) ListPlaces(c *gin.Context) {
	var filter repository.PlaceFilter
	var ok bool
	if filter.CategoryID, ok = queryID(c, "categoria", "category"); !ok {
		return
	}
	if filter.ProvinceID, ok = queryID(c, "provincia", "province"); !ok {
		return
	}
	if filter.CantonID, ok = queryID(c, "canton"); !ok {
		return
	}
	if filter.ParishID, ok = queryID(c, "parroquia", "parish"); !ok {
		return
	}
	filter.Search = c.Query("q")

	places, err := ctrl.placeService.ListPlaces(filter)
	if err != nil {
		respondServiceError(c, err, "list places")
		return
	}
	c.JSON(http.StatusOK, gin.H{"places": places, "count": len(places)})
}

// GetPlace
// GET /api/v1/places/:id
func (ctrl *PlaceController) GetPlace(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	place, err := ctrl.placeService.GetPlace(id)
	if err != nil {
		respondServiceError(c, err, "get place")
		return
	}
	c.JSON(http.StatusOK, place)
}

// CreatePlace
// POST /api/v1/places
func (ctrl *PlaceController) CreatePlace(c *gin.Context) {
	var req PlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	place, err := ctrl.placeService.CreatePlace(req.input())
	if err != nil {
		respondServiceError(c, err, "create place")
		return
	}
	c.JSON(http.StatusCreated, place)
}

// UpdatePlace
// PUT /api/v1/places/:id
func (ctrl *PlaceController) UpdatePlace(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req PlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	place, err := ctrl.placeService.UpdatePlace(id, req.input())
	if err != nil {
		respondServiceError(c, err, "update place")
		return
	}
	c.JSON(http.StatusOK, place)
}

// DeletePlace
// DELETE /api/v1/places/:id
func (ctrl *PlaceController) DeletePlace(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.placeService.DeletePlace(id); err != nil {
		respondServiceError(c, err, "delete place")
		return
	}
	c.Status(http.StatusNoContent)
}

// GetClassification
// GET /api/v1/places/:id/classification
func (ctrl *PlaceController) GetClassification(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	classification, err := ctrl.placeService.Classification(id)
	if err != nil {
		respondServiceError(c, err, "classify place")
		return
	}
	c.JSON(http.StatusOK, classification)
}

// GetRating
// GET /api/v1/places/:id/rating
func (ctrl *PlaceController) GetRating(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	summary, err := ctrl.placeService.RatingSummary(id)
	if err != nil {
		respondServiceError(c, err, "place rating")
		return
	}
	c.JSON(http.StatusOK, summary)
}
