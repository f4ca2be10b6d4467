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
	brandsCollection   = "vehicle_brands"
	modelsCollection   = "vehicle_models"
	vehiclesCollection = "vehicles"
)

// ICatalogRepository is the read side of the brand/model/vehicle reference
// data. Listing operations never mutate the catalog.
type ICatalogRepository interface {
	ListBrands(ctx context.Context) ([]models.VehicleBrand, error)
	FindBrand(ctx context.Context, id int) (*models.VehicleBrand, error)
	ListModels(ctx context.Context) ([]models.VehicleModel, error)
	ListModelsByBrand(ctx context.Context, brandID int) ([]models.VehicleModel, error)
	FindModel(ctx context.Context, id int) (*models.VehicleModel, error)
	FindVehicle(ctx context.Context, brandID, modelID int) (*models.Vehicle, error)
}

type mongoCatalogRepository struct {
	db *mongo.Database
}

// NewCatalogRepository creates a MongoDB-backed catalog repository.
func NewCatalogRepository(db *mongo.Database) ICatalogRepository {
	return &mongoCatalogRepository{db: db}
}

func (r *mongoCatalogRepository) ListBrands(ctx context.Context) ([]models.VehicleBrand, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.db.Collection(brandsCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicle brands: %w", err)
	}
	defer cursor.Close(ctx)

	var brands []models.VehicleBrand
	if err = cursor.All(ctx, &brands); err != nil {
		return nil, fmt.Errorf("failed to decode vehicle brands: %w", err)
	}
	return brands, nil
}

func (r *mongoCatalogRepository) FindBrand(ctx context.Context, id int) (*models.VehicleBrand, error) {
	var brand models.VehicleBrand
	err := r.db.Collection(brandsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&brand)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("error finding brand %d: %w", id, err)
	}
	return &brand, nil
}

func (r *mongoCatalogRepository) ListModels(ctx context.Context) ([]models.VehicleModel, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.db.Collection(modelsCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query vehicle models: %w", err)
	}
	defer cursor.Close(ctx)

	var vehicleModels []models.VehicleModel
	if err = cursor.All(ctx, &vehicleModels); err != nil {
		return nil, fmt.Errorf("failed to decode vehicle models: %w", err)
	}
	return vehicleModels, nil
}

func (r *mongoCatalogRepository) ListModelsByBrand(ctx context.Context, brandID int) ([]models.VehicleModel, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.db.Collection(modelsCollection).Find(ctx, bson.M{"brand_id": brandID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query models for brand %d: %w", brandID, err)
	}
	defer cursor.Close(ctx)

	var vehicleModels []models.VehicleModel
	if err = cursor.All(ctx, &vehicleModels); err != nil {
		return nil, fmt.Errorf("failed to decode models for brand %d: %w", brandID, err)
	}
	return vehicleModels, nil
}

func (r *mongoCatalogRepository) FindModel(ctx context.Context, id int) (*models.VehicleModel, error) {
	var vehicleModel models.VehicleModel
	err := r.db.Collection(modelsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&vehicleModel)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("error finding model %d: %w", id, err)
	}
	return &vehicleModel, nil
}

// FindVehicle resolves the vehicle reference for a (brand, model) pair.
func (r *mongoCatalogRepository) FindVehicle(ctx context.Context, brandID, modelID int) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	filter := bson.M{"brand_id": brandID, "model_id": modelID}
	err := r.db.Collection(vehiclesCollection).FindOne(ctx, filter).Decode(&vehicle)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("error finding vehicle for brand %d model %d: %w", brandID, modelID, err)
	}
	return &vehicle, nil
}
