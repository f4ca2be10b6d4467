package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/h4d1s/AvtoNetApi/internal/models"
)

// IImageRepository reads and writes the path-pointer rows for listing photos.
// Row deletion rides on the listing delete (see IListingRepository.Delete).
type IImageRepository interface {
	FindByListingID(ctx context.Context, listingID string) (*models.Image, error)
	FindByListingIDs(ctx context.Context, listingIDs []string) (map[string]models.Image, error)
	Upsert(ctx context.Context, listingID, path string) error
}

type mongoImageRepository struct {
	db *mongo.Database
}

// NewImageRepository creates a MongoDB-backed image repository.
func NewImageRepository(db *mongo.Database) IImageRepository {
	return &mongoImageRepository{db: db}
}

func (r *mongoImageRepository) FindByListingID(ctx context.Context, listingID string) (*models.Image, error) {
	var image models.Image
	err := r.db.Collection(imagesCollection).FindOne(ctx, bson.M{"listing_id": listingID}).Decode(&image)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("error finding image for listing %s: %w", listingID, err)
	}
	return &image, nil
}

// FindByListingIDs batch-loads image rows for one result page, keyed by
// listing id. Listings without an image are simply absent from the map.
func (r *mongoImageRepository) FindByListingIDs(ctx context.Context, listingIDs []string) (map[string]models.Image, error) {
	result := make(map[string]models.Image, len(listingIDs))
	if len(listingIDs) == 0 {
		return result, nil
	}

	cursor, err := r.db.Collection(imagesCollection).Find(ctx, bson.M{"listing_id": bson.M{"$in": listingIDs}})
	if err != nil {
		return nil, fmt.Errorf("failed to query images for listings: %w", err)
	}
	defer cursor.Close(ctx)

	var images []models.Image
	if err = cursor.All(ctx, &images); err != nil {
		return nil, fmt.Errorf("failed to decode images: %w", err)
	}
	for _, img := range images {
		result[img.ListingID] = img
	}
	return result, nil
}

// Upsert overwrites the stored path of the listing's image row in place, or
// creates the row when the listing had no image yet. The unique listing_id
// index keeps this at one row per listing.
func (r *mongoImageRepository) Upsert(ctx context.Context, listingID, path string) error {
	filter := bson.M{"listing_id": listingID}
	update := bson.M{
		"$set": bson.M{"path": path},
		"$setOnInsert": bson.M{
			"_id":        uuid.NewString(),
			"listing_id": listingID,
			"created_at": time.Now().UTC(),
		},
	}
	opts := options.Update().SetUpsert(true)

	if _, err := r.db.Collection(imagesCollection).UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert image for listing %s: %w", listingID, err)
	}
	return nil
}
