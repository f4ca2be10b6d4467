package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/h4d1s/AvtoNetApi/internal/models"
)

const (
	listingsCollection = "listings"
	imagesCollection   = "images"
)

// ListingFilter narrows the browse query. Nil fields impose no constraint;
// present fields are combined with logical AND.
type ListingFilter struct {
	BrandID    *int
	ModelID    *int
	PriceMin   *int
	PriceMax   *int
	YearMin    *int
	YearMax    *int
	MileageMin *int
	MileageMax *int
	FuelType   *string
	UserID     *string
}

// Criteria composes the filter into a conjunctive MongoDB query document.
func (f ListingFilter) Criteria() bson.M {
	q := bson.M{}
	if f.BrandID != nil {
		q["brand_id"] = *f.BrandID
	}
	if f.ModelID != nil {
		q["model_id"] = *f.ModelID
	}
	if r := rangeCriteria(f.PriceMin, f.PriceMax); r != nil {
		q["price"] = r
	}
	if r := rangeCriteria(f.YearMin, f.YearMax); r != nil {
		q["year_of_production"] = r
	}
	if r := rangeCriteria(f.MileageMin, f.MileageMax); r != nil {
		q["mileage"] = r
	}
	if f.FuelType != nil {
		q["fuel_type"] = *f.FuelType
	}
	if f.UserID != nil {
		q["user_id"] = *f.UserID
	}
	return q
}

func rangeCriteria(min, max *int) bson.M {
	if min == nil && max == nil {
		return nil
	}
	r := bson.M{}
	if min != nil {
		r["$gte"] = *min
	}
	if max != nil {
		r["$lte"] = *max
	}
	return r
}

// IListingRepository is the persistence boundary over listings and their
// paired image rows.
type IListingRepository interface {
	FindPage(ctx context.Context, filter ListingFilter, page, pageSize int) ([]models.Listing, int64, error)
	FindByID(ctx context.Context, id string) (*models.Listing, error)
	Exists(ctx context.Context, id string) (bool, error)
	Insert(ctx context.Context, listing *models.Listing) error
	Update(ctx context.Context, listing *models.Listing) error
	Delete(ctx context.Context, id string) error
}

type mongoListingRepository struct {
	db *mongo.Database
}

// NewListingRepository creates a MongoDB-backed listing repository.
func NewListingRepository(db *mongo.Database) IListingRepository {
	return &mongoListingRepository{db: db}
}

// FindPage returns one page of filtered listings, newest first, together
// with the total count of rows matching the filter before paging. The sort
// breaks publish-date ties on _id so the full ordering is deterministic.
func (r *mongoListingRepository) FindPage(ctx context.Context, filter ListingFilter, page, pageSize int) ([]models.Listing, int64, error) {
	collection := r.db.Collection(listingsCollection)
	criteria := filter.Criteria()

	total, err := collection.CountDocuments(ctx, criteria)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "publish_date", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(page-1) * int64(pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := collection.Find(ctx, criteria, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query listings page: %w", err)
	}
	defer cursor.Close(ctx)

	var listings []models.Listing
	if err = cursor.All(ctx, &listings); err != nil {
		return nil, 0, fmt.Errorf("failed to decode listings page: %w", err)
	}
	return listings, total, nil
}

func (r *mongoListingRepository) FindByID(ctx context.Context, id string) (*models.Listing, error) {
	var listing models.Listing
	err := r.db.Collection(listingsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&listing)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("error finding listing by ID %s: %w", id, err)
	}
	return &listing, nil
}

func (r *mongoListingRepository) Exists(ctx context.Context, id string) (bool, error) {
	count, err := r.db.Collection(listingsCollection).CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("error checking listing %s existence: %w", id, err)
	}
	return count > 0, nil
}

func (r *mongoListingRepository) Insert(ctx context.Context, listing *models.Listing) error {
	if _, err := r.db.Collection(listingsCollection).InsertOne(ctx, listing); err != nil {
		return fmt.Errorf("failed to insert listing %s: %w", listing.ID, err)
	}
	return nil
}

// Update writes the mutable spec fields of a listing. The filter matches on
// the version the caller read, so a row changed in between yields no match:
// ErrNotFound when the row was deleted concurrently, ErrConflict otherwise.
func (r *mongoListingRepository) Update(ctx context.Context, listing *models.Listing) error {
	collection := r.db.Collection(listingsCollection)

	filter := bson.M{"_id": listing.ID, "version": listing.Version}
	update := bson.M{
		"$set": bson.M{
			"mileage":            listing.Mileage,
			"fuel_type":          listing.FuelType,
			"gearbox":            listing.Gearbox,
			"year_of_production": listing.YearOfProduction,
			"color":              listing.Color,
			"price":              listing.Price,
			"power":              listing.Power,
			"engine_size":        listing.EngineSize,
		},
		"$inc": bson.M{"version": 1},
	}

	result, err := collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("db error updating listing %s: %w", listing.ID, err)
	}
	if result.MatchedCount == 0 {
		exists, checkErr := r.Exists(ctx, listing.ID)
		if checkErr != nil {
			return checkErr
		}
		if !exists {
			return models.ErrNotFound
		}
		return models.ErrConflict
	}
	listing.Version++
	return nil
}

// Delete removes the listing row and its image row as one logical operation.
// The image row never survives its listing; the caller is responsible for
// removing the backing upload directory once this returns successfully.
func (r *mongoListingRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Collection(listingsCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("db error deleting listing %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return models.ErrNotFound
	}

	if _, err := r.db.Collection(imagesCollection).DeleteMany(ctx, bson.M{"listing_id": id}); err != nil {
		return fmt.Errorf("listing %s deleted but image row removal failed: %w", id, err)
	}
	return nil
}
