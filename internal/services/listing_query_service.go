package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/h4d1s/AvtoNetApi/internal/models"
	"github.com/h4d1s/AvtoNetApi/internal/repository"
	"github.com/h4d1s/AvtoNetApi/internal/utils"
)

// ListingPage is one page of browse results plus the pagination metadata
// computed over the whole filtered set.
type ListingPage struct {
	Items    []models.ListingSummary
	Metadata models.PaginationMetadata
}

// IListingQueryService is the read side of listings: filtered paginated
// browsing and single-listing retrieval. baseURL is the request origin;
// stored relative image paths resolve against it unless the service was
// built with a fixed public image base (the S3 backend, where the API host
// does not serve the files itself).
type IListingQueryService interface {
	List(ctx context.Context, filter repository.ListingFilter, page, pageSize int, baseURL string) (*ListingPage, error)
	GetByID(ctx context.Context, id, baseURL string) (*models.ListingDetail, error)
	GetOwnerID(ctx context.Context, id string) (string, error)
}

type listingQueryService struct {
	listings     repository.IListingRepository
	images       repository.IImageRepository
	users        repository.IUserRepository
	catalog      ICatalogService
	imageBaseURL string
}

// NewListingQueryService creates the listing read-side service. A non-empty
// imageBaseURL overrides the request origin when resolving image URLs.
func NewListingQueryService(
	listings repository.IListingRepository,
	images repository.IImageRepository,
	users repository.IUserRepository,
	catalog ICatalogService,
	imageBaseURL string,
) IListingQueryService {
	return &listingQueryService{
		listings:     listings,
		images:       images,
		users:        users,
		catalog:      catalog,
		imageBaseURL: imageBaseURL,
	}
}

// imageOrigin picks the base for resolving stored image paths: the configured
// public base when one is set, otherwise the request origin.
func (s *listingQueryService) imageOrigin(requestBase string) string {
	if s.imageBaseURL != "" {
		return s.imageBaseURL
	}
	return requestBase
}

// List returns one page of listing summaries, newest first. An empty page
// past the end of the result set is not an error: it comes back with zero
// items and the true total count.
func (s *listingQueryService) List(ctx context.Context, filter repository.ListingFilter, page, pageSize int, baseURL string) (*ListingPage, error) {
	if page < 1 || pageSize < 1 {
		return nil, fmt.Errorf("page and page size must be at least 1: %w", models.ErrValidation)
	}

	listings, total, err := s.listings.FindPage(ctx, filter, page, pageSize)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(listings))
	for i, l := range listings {
		ids[i] = l.ID
	}
	images, err := s.images.FindByListingIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	brandNames, err := s.catalog.BrandNames(ctx)
	if err != nil {
		return nil, err
	}
	modelNames, err := s.catalog.ModelNames(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]models.ListingSummary, 0, len(listings))
	for _, l := range listings {
		summary := models.ListingSummary{
			ID:               l.ID,
			Mileage:          l.Mileage,
			FuelType:         l.FuelType,
			Gearbox:          l.Gearbox,
			YearOfProduction: l.YearOfProduction,
			Color:            l.Color,
			Price:            l.Price,
			Power:            l.Power,
			EngineSize:       l.EngineSize,
			PublishDate:      l.PublishDate,
			Sold:             l.Sold,
			Brand:            brandNames[l.BrandID],
			Model:            modelNames[l.ModelID],
		}
		if img, ok := images[l.ID]; ok {
			summary.ImageURL = utils.ResolveResourceURL(s.imageOrigin(baseURL), img.Path)
		}
		items = append(items, summary)
	}

	return &ListingPage{
		Items:    items,
		Metadata: models.NewPaginationMetadata(total, page, pageSize),
	}, nil
}

// GetByID returns the detail read model for one listing. A missing image row
// leaves ImageURL empty; a missing owner account leaves the contact phone
// empty rather than failing the whole lookup.
func (s *listingQueryService) GetByID(ctx context.Context, id, baseURL string) (*models.ListingDetail, error) {
	listing, err := s.listings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	brandNames, err := s.catalog.BrandNames(ctx)
	if err != nil {
		return nil, err
	}
	modelNames, err := s.catalog.ModelNames(ctx)
	if err != nil {
		return nil, err
	}

	detail := &models.ListingDetail{
		ID:               listing.ID,
		Mileage:          listing.Mileage,
		FuelType:         listing.FuelType,
		Gearbox:          listing.Gearbox,
		YearOfProduction: listing.YearOfProduction,
		Color:            listing.Color,
		Price:            listing.Price,
		Power:            listing.Power,
		EngineSize:       listing.EngineSize,
		PublishDate:      listing.PublishDate,
		Sold:             listing.Sold,
		Brand:            brandNames[listing.BrandID],
		Model:            modelNames[listing.ModelID],
	}

	image, err := s.images.FindByListingID(ctx, id)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}
	if image != nil {
		detail.ImageURL = utils.ResolveResourceURL(s.imageOrigin(baseURL), image.Path)
	}

	owner, err := s.users.FindByID(ctx, listing.UserID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}
	if owner != nil {
		detail.UserPhone = owner.PhoneNumber
	}

	return detail, nil
}

// GetOwnerID resolves the owning user of a listing for authorization checks.
func (s *listingQueryService) GetOwnerID(ctx context.Context, id string) (string, error) {
	listing, err := s.listings.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	return listing.UserID, nil
}
