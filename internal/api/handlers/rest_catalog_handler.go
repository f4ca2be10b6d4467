package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/h4d1s/AvtoNetApi/internal/models"
	"github.com/h4d1s/AvtoNetApi/internal/services"
)

// RestCatalogHandler serves the brand/model reference data.
type RestCatalogHandler struct {
	catalogService services.ICatalogService
}

// NewRestCatalogHandler creates a new RestCatalogHandler.
func NewRestCatalogHandler(catalogService services.ICatalogService) *RestCatalogHandler {
	return &RestCatalogHandler{catalogService: catalogService}
}

// GetBrands handles GET /api/brands.
func (h *RestCatalogHandler) GetBrands(c *gin.Context) {
	brands, err := h.catalogService.GetBrands(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve brands")
		return
	}
	if brands == nil {
		brands = []models.VehicleBrand{}
	}
	c.JSON(http.StatusOK, brands)
}

// GetModels handles GET /api/models.
func (h *RestCatalogHandler) GetModels(c *gin.Context) {
	vehicleModels, err := h.catalogService.GetModels(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve models")
		return
	}
	if vehicleModels == nil {
		vehicleModels = []models.VehicleModel{}
	}
	c.JSON(http.StatusOK, vehicleModels)
}

// GetBrandByID handles GET /api/brands/:id.
func (h *RestCatalogHandler) GetBrandByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, fmt.Errorf("brand id must be an integer: %w", models.ErrValidation), "")
		return
	}

	brand, err := h.catalogService.GetBrand(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to retrieve brand")
		return
	}
	c.JSON(http.StatusOK, brand)
}

// GetModelByID handles GET /api/models/:id.
func (h *RestCatalogHandler) GetModelByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, fmt.Errorf("model id must be an integer: %w", models.ErrValidation), "")
		return
	}

	vehicleModel, err := h.catalogService.GetModel(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to retrieve model")
		return
	}
	c.JSON(http.StatusOK, vehicleModel)
}

// GetModelsByBrand handles GET /api/models/byBrand/:brandId.
func (h *RestCatalogHandler) GetModelsByBrand(c *gin.Context) {
	brandID, err := strconv.Atoi(c.Param("brandId"))
	if err != nil {
		respondError(c, fmt.Errorf("brand id must be an integer: %w", models.ErrValidation), "")
		return
	}

	vehicleModels, err := h.catalogService.GetModelsByBrand(c.Request.Context(), brandID)
	if err != nil {
		respondError(c, err, "Failed to retrieve models")
		return
	}
	c.JSON(http.StatusOK, vehicleModels)
}
