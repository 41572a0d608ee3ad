package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rutasloja/rutas-backend/internal/app/service"
)

type CategoryController struct {
	categoryService service.CategoryService
}

func NewCategoryController(categoryService service.CategoryService) *CategoryController {
	return &CategoryController{categoryService: categoryService}
}

type CreateCategoryRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	IconURL  string `json:"icon_url"`
	ImageURL string `json:"image_url"`
}

// ListCategories
// GET /api/v1/categories
func (ctrl *CategoryController) ListCategories(c *gin.Context) {
	categories, err := ctrl.categoryService.ListCategories()
	if err != nil {
		respondServiceError(c, err, "list categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories, "count": len(categories)})
}

// GetCategory
// GET /api/v1/categories/:id
func (ctrl *CategoryController) GetCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	category, err := ctrl.categoryService.GetCategory(id)
	if err != nil {
		respondServiceError(c, err, "get category")
		return
	}
	c.JSON(http.StatusOK, category)
}

// CreateCategory
// POST /api/v1/categories
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	category, err := ctrl.categoryService.CreateCategory(req.Name, req.IconURL, req.ImageURL)
	if err != nil {
		respondServiceError(c, err, "create category")
		return
	}
	c.JSON(http.StatusCreated, category)
}
