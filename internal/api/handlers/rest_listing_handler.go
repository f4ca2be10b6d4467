package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/h4d1s/AvtoNetApi/internal/api/middleware"
	"github.com/h4d1s/AvtoNetApi/internal/models"
	"github.com/h4d1s/AvtoNetApi/internal/repository"
	"github.com/h4d1s/AvtoNetApi/internal/services"
)

const defaultListingPageSize = 5

// RestListingHandler handles REST requests for listings.
type RestListingHandler struct {
	queryService     services.IListingQueryService
	lifecycleService services.IListingLifecycleService
}

// NewRestListingHandler creates a new RestListingHandler.
func NewRestListingHandler(queryService services.IListingQueryService, lifecycleService services.IListingLifecycleService) *RestListingHandler {
	return &RestListingHandler{
		queryService:     queryService,
		lifecycleService: lifecycleService,
	}
}

// intQuery parses an optional integer query parameter. Absent means nil.
func intQuery(c *gin.Context, name string) (*int, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("query parameter %s must be an integer: %w", name, models.ErrValidation)
	}
	return &v, nil
}

func strQuery(c *gin.Context, name string) *string {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	return &raw
}

// listingFilterFromQuery assembles the browse filter from the request query
// string. Absent parameters leave their dimension unconstrained.
func listingFilterFromQuery(c *gin.Context) (repository.ListingFilter, error) {
	var filter repository.ListingFilter
	var err error

	if filter.BrandID, err = intQuery(c, "brandId"); err != nil {
		return filter, err
	}
	if filter.ModelID, err = intQuery(c, "modelId"); err != nil {
		return filter, err
	}
	if filter.PriceMin, err = intQuery(c, "priceMin"); err != nil {
		return filter, err
	}
	if filter.PriceMax, err = intQuery(c, "priceMax"); err != nil {
		return filter, err
	}
	if filter.YearMin, err = intQuery(c, "yearMin"); err != nil {
		return filter, err
	}
	if filter.YearMax, err = intQuery(c, "yearMax"); err != nil {
		return filter, err
	}
	if filter.MileageMin, err = intQuery(c, "kmMin"); err != nil {
		return filter, err
	}
	if filter.MileageMax, err = intQuery(c, "kmMax"); err != nil {
		return filter, err
	}
	filter.FuelType = strQuery(c, "fuelType")
	filter.UserID = strQuery(c, "userId")
	return filter, nil
}

// setPaginationHeader serializes the paging metadata into the X-Pagination
// response header.
func setPaginationHeader(c *gin.Context, meta models.PaginationMetadata) {
	data, err := json.Marshal(meta)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.Header("X-Pagination", string(data))
}

// GetListings handles GET /api/listings.
func (h *RestListingHandler) GetListings(c *gin.Context) {
	filter, err := listingFilterFromQuery(c)
	if err != nil {
		respondError(c, err, "Failed to retrieve listings")
		return
	}

	page := 1
	if p, err := intQuery(c, "page"); err != nil {
		respondError(c, err, "Failed to retrieve listings")
		return
	} else if p != nil {
		page = *p
	}
	pageSize := defaultListingPageSize
	if ps, err := intQuery(c, "pageSize"); err != nil {
		respondError(c, err, "Failed to retrieve listings")
		return
	} else if ps != nil {
		pageSize = *ps
	}

	result, err := h.queryService.List(c.Request.Context(), filter, page, pageSize, requestBaseURL(c))
	if err != nil {
		respondError(c, err, "Failed to retrieve listings")
		return
	}

	setPaginationHeader(c, result.Metadata)
	c.JSON(http.StatusOK, result.Items)
}

// GetListingByID handles GET /api/listings/:id.
func (h *RestListingHandler) GetListingByID(c *gin.Context) {
	detail, err := h.queryService.GetByID(c.Request.Context(), c.Param("id"), requestBaseURL(c))
	if err != nil {
		respondError(c, err, "Failed to retrieve listing")
		return
	}
	c.JSON(http.StatusOK, detail)
}

// formInt parses a required integer multipart form field.
func formInt(c *gin.Context, name string) (int, error) {
	raw := c.PostForm(name)
	if raw == "" {
		return 0, fmt.Errorf("form field %s is required: %w", name, models.ErrValidation)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("form field %s must be an integer: %w", name, models.ErrValidation)
	}
	return v, nil
}

// formImage extracts the optional uploaded photo from the multipart form.
// The returned closer is nil when no file was sent.
func formImage(c *gin.Context) (*services.ImageUpload, func(), error) {
	file, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("invalid image upload: %w", models.ErrValidation)
	}

	src, err := file.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open image upload: %w", err)
	}
	upload := &services.ImageUpload{Filename: file.Filename, Data: src}
	return upload, func() { _ = src.Close() }, nil
}

type listingFormFields struct {
	brandID          int
	modelID          int
	mileage          int
	fuelType         string
	gearbox          string
	yearOfProduction int
	color            string
	price            int
	power            int
	engineSize       int
}

func parseListingForm(c *gin.Context) (listingFormFields, error) {
	var f listingFormFields
	var err error

	if f.brandID, err = formInt(c, "brandId"); err != nil {
		return f, err
	}
	if f.modelID, err = formInt(c, "modelId"); err != nil {
		return f, err
	}
	if f.mileage, err = formInt(c, "mileage"); err != nil {
		return f, err
	}
	if f.yearOfProduction, err = formInt(c, "yearOfProduction"); err != nil {
		return f, err
	}
	if f.price, err = formInt(c, "price"); err != nil {
		return f, err
	}
	if f.power, err = formInt(c, "power"); err != nil {
		return f, err
	}
	if f.engineSize, err = formInt(c, "engineSize"); err != nil {
		return f, err
	}
	f.fuelType = c.PostForm("fuelType")
	f.gearbox = c.PostForm("gearbox")
	f.color = c.PostForm("color")
	return f, nil
}

// CreateListing handles POST /api/listings. The caller becomes the owner.
func (h *RestListingHandler) CreateListing(c *gin.Context) {
	fields, err := parseListingForm(c)
	if err != nil {
		respondError(c, err, "Failed to create listing")
		return
	}

	image, closeImage, err := formImage(c)
	if err != nil {
		respondError(c, err, "Failed to create listing")
		return
	}
	if closeImage != nil {
		defer closeImage()
	}

	input := services.CreateListingInput{
		UserID:           c.GetString(middleware.ContextKeyUserID),
		BrandID:          fields.brandID,
		ModelID:          fields.modelID,
		Mileage:          fields.mileage,
		FuelType:         fields.fuelType,
		Gearbox:          fields.gearbox,
		YearOfProduction: fields.yearOfProduction,
		Color:            fields.color,
		Price:            fields.price,
		Power:            fields.power,
		EngineSize:       fields.engineSize,
		Image:            image,
	}

	listing, err := h.lifecycleService.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, "Failed to create listing")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": listing.ID})
}

// authorizeListingAccess allows the listing owner or an admin through and
// rejects everyone else. Returns false after writing the response.
func (h *RestListingHandler) authorizeListingAccess(c *gin.Context, listingID string) bool {
	ownerID, err := h.queryService.GetOwnerID(c.Request.Context(), listingID)
	if err != nil {
		respondError(c, err, "Failed to resolve listing")
		return false
	}
	if ownerID != c.GetString(middleware.ContextKeyUserID) && !c.GetBool(middleware.ContextKeyIsAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You may only modify your own listings"})
		return false
	}
	return true
}

// UpdateListing handles PUT /api/listings/:id.
func (h *RestListingHandler) UpdateListing(c *gin.Context) {
	listingID := c.Param("id")
	if !h.authorizeListingAccess(c, listingID) {
		return
	}

	fields, err := parseListingForm(c)
	if err != nil {
		respondError(c, err, "Failed to update listing")
		return
	}

	image, closeImage, err := formImage(c)
	if err != nil {
		respondError(c, err, "Failed to update listing")
		return
	}
	if closeImage != nil {
		defer closeImage()
	}

	input := services.UpdateListingInput{
		Mileage:          fields.mileage,
		FuelType:         fields.fuelType,
		Gearbox:          fields.gearbox,
		YearOfProduction: fields.yearOfProduction,
		Color:            fields.color,
		Price:            fields.price,
		Power:            fields.power,
		EngineSize:       fields.engineSize,
		Image:            image,
	}

	if err := h.lifecycleService.Update(c.Request.Context(), listingID, input); err != nil {
		respondError(c, err, "Failed to update listing")
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteListing handles DELETE /api/listings/:id.
func (h *RestListingHandler) DeleteListing(c *gin.Context) {
	listingID := c.Param("id")
	if !h.authorizeListingAccess(c, listingID) {
		return
	}

	if err := h.lifecycleService.Delete(c.Request.Context(), listingID); err != nil {
		respondError(c, err, "Failed to delete listing")
		return
	}
	c.Status(http.StatusNoContent)
}
