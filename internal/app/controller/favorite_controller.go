package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rutasloja/rutas-backend/internal/app/service"
)

type FavoriteController struct {
	favoriteService service.FavoriteService
}

func NewFavoriteController(favoriteService service.FavoriteService) *FavoriteController {
	return &FavoriteController{favoriteService: favoriteService}
}

type AddFavoriteRequest struct {
	PlaceID uint   `json:"place_id" binding:"required"`
	Type    string `json:"type" binding:"favorite_type"`
}

// ListFavorites lists the caller's markers.
// GET /api/v1/favorites?place=&type=
func (ctrl *FavoriteController) ListFavorites(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	placeID, ok := queryID(c, "place", "lugar")
	if !ok {
		return
	}
	favoriteType := c.Query("type")
	if favoriteType == "" {
		favoriteType = c.Query("tipo")
	}

	favorites, err := ctrl.favoriteService.ListFavorites(service.FavoriteQuery{
		UserID:  userID,
		PlaceID: placeID,
		Type:    favoriteType,
	})
	if err != nil {
		respondServiceError(c, err, "list favorites")
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favorites, "count": len(favorites)})
}

// AddFavorite
// POST /api/v1/favorites
func (ctrl *FavoriteController) AddFavorite(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	favorite, err := ctrl.favoriteService.AddFavorite(userID, req.PlaceID, req.Type)
	if err != nil {
		respondServiceError(c, err, "add favorite")
		return
	}
	c.JSON(http.StatusCreated, favorite)
}

// RemoveFavorite
// DELETE /api/v1/favorites/:id
func (ctrl *FavoriteController) RemoveFavorite(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.favoriteService.RemoveFavorite(userID, id); err != nil {
		respondServiceError(c, err, "remove favorite")
		return
	}
	c.Status(http.StatusNoContent)
}
