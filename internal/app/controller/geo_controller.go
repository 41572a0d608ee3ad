package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rutasloja/rutas-backend/internal/app/model"
	"github.com/rutasloja/rutas-backend/internal/app/service"
)

type GeoController struct {
	geoService service.GeoService
}

func NewGeoController(geoService service.GeoService) *GeoController {
	return &GeoController{geoService: geoService}
}

// ListProvinces
// GET /api/v1/provinces
func (ctrl *GeoController) ListProvinces(c *gin.Context) {
	provinces, err := ctrl.geoService.ListProvinces()
	if err != nil {
		respondServiceError(c, err, "list provinces")
		return
	}
	c.JSON(http.StatusOK, gin.H{"provinces": provinces, "count": len(provinces)})
}

// ListCantons
// GET /api/v1/provinces/:id/cantons
func (ctrl *GeoController) ListCantons(c *gin.Context) {
	provinceID, ok := pathID(c, "id")
	if !ok {
		return
	}
	cantons, err := ctrl.geoService.ListCantons(provinceID)
	if err != nil {
		respondServiceError(c, err, "list cantons")
		return
	}
	c.JSON(http.StatusOK, gin.H{"cantons": cantons, "count": len(cantons)})
}

// ListParishes
// GET /api/v1/cantons/:id/parishes
func (ctrl *GeoController) ListParishes(c *gin.Context) {
	cantonID, ok := pathID(c, "id")
	if !ok {
		return
	}
	parishes, err := ctrl.geoService.ListParishes(cantonID)
	if err != nil {
		respondServiceError(c, err, "list parishes")
		return
	}
	c.JSON(http.StatusOK, gin.H{"parishes": parishes, "count": len(parishes)})
}

// LoadCantones feeds the admin dropdown with a bare [{id, nombre}] array.
// GET /ajax/load-cantones?provincia=
func (ctrl *GeoController) LoadCantones(c *gin.Context) {
	provinceID, ok := queryID(c, "provincia")
	if !ok {
		return
	}
	cantons, err := ctrl.geoService.ListCantons(provinceID)
	if err != nil {
		respondServiceError(c, err, "load cantons")
		return
	}

	options := make([]model.HierarchyOption, 0, len(cantons))
	for _, canton := range cantons {
		options = append(options, model.HierarchyOption{ID: canton.ID, Nombre: canton.Name})
	}
	c.JSON(http.StatusOK, options)
}

// LoadParroquias
// GET /ajax/load-parroquias?canton=
func (ctrl *GeoController) LoadParroquias(c *gin.Context) {
	cantonID, ok := queryID(c, "canton")
	if !ok {
		return
	}
	parishes, err := ctrl.geoService.ListParishes(cantonID)
	if err != nil {
		respondServiceError(c, err, "load parishes")
		return
	}

	options := make([]model.HierarchyOption, 0, len(parishes))
	for _, parish := range parishes {
		options = append(options, model.HierarchyOption{ID: parish.ID, Nombre: parish.Name})
	}
	c.JSON(http.StatusOK, options)
}

// DeleteProvince removes the province with its cantons and parishes.
// DELETE /api/v1/provinces/:id
func (ctrl *GeoController) DeleteProvince(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.geoService.DeleteProvince(id); err != nil {
		respondServiceError(c, err, "delete province")
		return
	}
	c.Status(http.StatusNoContent)
}
