package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/h4d1s/AvtoNetApi/internal/models"
	"github.com/h4d1s/AvtoNetApi/internal/repository"
	"github.com/h4d1s/AvtoNetApi/internal/storage"
)

// ImageUpload carries one uploaded photo into the lifecycle operations.
type ImageUpload struct {
	Filename string
	Data     io.Reader
}

// CreateListingInput holds everything needed to publish a new listing. The
// image is optional.
type CreateListingInput struct {
	UserID           string
	BrandID          int
	ModelID          int
	Mileage          int
	FuelType         string
	Gearbox          string
	YearOfProduction int
	Color            string
	Price            int
	Power            int
	EngineSize       int
	Image            *ImageUpload
}

// UpdateListingInput replaces the mutable vehicle attributes of a listing.
// Owner, vehicle identity and publish date are fixed at creation. A nil
// image leaves the stored photo untouched.
type UpdateListingInput struct {
	Mileage          int
	FuelType         string
	Gearbox          string
	YearOfProduction int
	Color            string
	Price            int
	Power            int
	EngineSize       int
	Image            *ImageUpload
}

// IListingLifecycleService is the write side of listings. Every operation
// keeps the image file state and the database rows in lockstep.
type IListingLifecycleService interface {
	Create(ctx context.Context, input CreateListingInput) (*models.Listing, error)
	Update(ctx context.Context, id string, input UpdateListingInput) error
	Delete(ctx context.Context, id string) error
}

type listingLifecycleService struct {
	listings repository.IListingRepository
	images   repository.IImageRepository
	users    repository.IUserRepository
	catalog  ICatalogService
	store    storage.IImageStore
}

// NewListingLifecycleService creates the listing write-side service.
func NewListingLifecycleService(
	listings repository.IListingRepository,
	images repository.IImageRepository,
	users repository.IUserRepository,
	catalog ICatalogService,
	store storage.IImageStore,
) IListingLifecycleService {
	return &listingLifecycleService{
		listings: listings,
		images:   images,
		users:    users,
		catalog:  catalog,
		store:    store,
	}
}

func validateListingAttributes(mileage, year, price, power, engineSize int, fuelType, gearbox string) error {
	if mileage < 0 || price < 0 || power < 0 || engineSize < 0 {
		return fmt.Errorf("numeric listing attributes must not be negative: %w", models.ErrValidation)
	}
	if year < 1900 {
		return fmt.Errorf("year of production %d is not plausible: %w", year, models.ErrValidation)
	}
	if fuelType == "" || gearbox == "" {
		return fmt.Errorf("fuel type and gearbox are required: %w", models.ErrValidation)
	}
	return nil
}

// Create publishes a new listing for an existing user and catalog vehicle.
// When an image is supplied its file is written before the listing row is
// inserted, then the image row is linked to the listing.
func (s *listingLifecycleService) Create(ctx context.Context, input CreateListingInput) (*models.Listing, error) {
	if err := validateListingAttributes(input.Mileage, input.YearOfProduction, input.Price, input.Power, input.EngineSize, input.FuelType, input.Gearbox); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByID(ctx, input.UserID); err != nil {
		return nil, fmt.Errorf("listing owner %s: %w", input.UserID, err)
	}
	vehicle, err := s.catalog.GetVehicle(ctx, input.BrandID, input.ModelID)
	if err != nil {
		return nil, fmt.Errorf("vehicle for brand %d model %d: %w", input.BrandID, input.ModelID, err)
	}

	listing := &models.Listing{
		ID:               uuid.NewString(),
		UserID:           input.UserID,
		VehicleID:        vehicle.ID,
		BrandID:          input.BrandID,
		ModelID:          input.ModelID,
		Mileage:          input.Mileage,
		FuelType:         input.FuelType,
		Gearbox:          input.Gearbox,
		YearOfProduction: input.YearOfProduction,
		Color:            input.Color,
		Price:            input.Price,
		Power:            input.Power,
		EngineSize:       input.EngineSize,
		PublishDate:      time.Now().UTC(),
		Sold:             false,
	}

	var imagePath string
	if input.Image != nil {
		imagePath, err = s.store.Write(ctx, listing.ID, input.Image.Filename, input.Image.Data)
		if err != nil {
			return nil, err
		}
	}

	if err := s.listings.Insert(ctx, listing); err != nil {
		return nil, err
	}

	if imagePath != "" {
		if err := s.images.Upsert(ctx, listing.ID, imagePath); err != nil {
			return nil, err
		}
	}

	return listing, nil
}

// Update replaces the mutable attributes of a listing. A supplied image
// replaces the previous one: the upload directory is cleared, the new file
// written, and the image row repointed in place before the listing row is
// saved under its optimistic version check.
func (s *listingLifecycleService) Update(ctx context.Context, id string, input UpdateListingInput) error {
	if err := validateListingAttributes(input.Mileage, input.YearOfProduction, input.Price, input.Power, input.EngineSize, input.FuelType, input.Gearbox); err != nil {
		return err
	}

	listing, err := s.listings.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if input.Image != nil {
		if err := s.store.ClearDirectory(ctx, id); err != nil {
			return err
		}
		imagePath, err := s.store.Write(ctx, id, input.Image.Filename, input.Image.Data)
		if err != nil {
			return err
		}
		if err := s.images.Upsert(ctx, id, imagePath); err != nil {
			return err
		}
	}

	listing.Mileage = input.Mileage
	listing.FuelType = input.FuelType
	listing.Gearbox = input.Gearbox
	listing.YearOfProduction = input.YearOfProduction
	listing.Color = input.Color
	listing.Price = input.Price
	listing.Power = input.Power
	listing.EngineSize = input.EngineSize

	return s.listings.Update(ctx, listing)
}

// Delete removes the listing row, its image row, and the upload directory.
// The directory is removed only after the rows are gone so a failed database
// delete never strands a listing without its files.
func (s *listingLifecycleService) Delete(ctx context.Context, id string) error {
	if err := s.listings.Delete(ctx, id); err != nil {
		return err
	}
	return s.store.DeleteDirectory(ctx, id)
}
