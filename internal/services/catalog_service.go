package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/h4d1s/AvtoNetApi/internal/models"
	"github.com/h4d1s/AvtoNetApi/internal/repository"
)

const (
	brandsCacheKey = "catalog:brands"
	modelsCacheKey = "catalog:models"
)

// ICatalogService serves the brand/model/vehicle reference data. Brand and
// model lists change rarely, so they are cached in Redis with a short TTL;
// a cold or unavailable cache falls through to the database.
type ICatalogService interface {
	GetBrands(ctx context.Context) ([]models.VehicleBrand, error)
	GetBrand(ctx context.Context, id int) (*models.VehicleBrand, error)
	GetModels(ctx context.Context) ([]models.VehicleModel, error)
	GetModel(ctx context.Context, id int) (*models.VehicleModel, error)
	GetModelsByBrand(ctx context.Context, brandID int) ([]models.VehicleModel, error)
	GetVehicle(ctx context.Context, brandID, modelID int) (*models.Vehicle, error)
	BrandNames(ctx context.Context) (map[int]string, error)
	ModelNames(ctx context.Context) (map[int]string, error)
}

type catalogService struct {
	repo     repository.ICatalogRepository
	rdb      *redis.Client
	cacheTTL time.Duration
}

// NewCatalogService creates a catalog service. A nil Redis client disables
// caching entirely.
func NewCatalogService(repo repository.ICatalogRepository, rdb *redis.Client, cacheTTL time.Duration) ICatalogService {
	return &catalogService{repo: repo, rdb: rdb, cacheTTL: cacheTTL}
}

// getCached reads a JSON-encoded list from Redis into dest, returning false
// on a miss. Cache read errors are logged and treated as misses.
func (s *catalogService) getCached(ctx context.Context, key string, dest interface{}) bool {
	if s.rdb == nil {
		return false
	}
	data, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("WARN: failed to read cache key %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		log.Printf("WARN: failed to decode cache key %s: %v", key, err)
		return false
	}
	return true
}

// setCached writes a JSON-encoded list to Redis. Failures are logged, never
// surfaced: the database result is already in hand.
func (s *catalogService) setCached(ctx context.Context, key string, value interface{}) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("WARN: failed to encode cache key %s: %v", key, err)
		return
	}
	if err := s.rdb.Set(ctx, key, data, s.cacheTTL).Err(); err != nil {
		log.Printf("WARN: failed to write cache key %s: %v", key, err)
	}
}

func (s *catalogService) GetBrands(ctx context.Context) ([]models.VehicleBrand, error) {
	var brands []models.VehicleBrand
	if s.getCached(ctx, brandsCacheKey, &brands) {
		return brands, nil
	}

	brands, err := s.repo.ListBrands(ctx)
	if err != nil {
		return nil, err
	}
	s.setCached(ctx, brandsCacheKey, brands)
	return brands, nil
}

func (s *catalogService) GetModels(ctx context.Context) ([]models.VehicleModel, error) {
	var vehicleModels []models.VehicleModel
	if s.getCached(ctx, modelsCacheKey, &vehicleModels) {
		return vehicleModels, nil
	}

	vehicleModels, err := s.repo.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	s.setCached(ctx, modelsCacheKey, vehicleModels)
	return vehicleModels, nil
}

// GetBrand resolves a single brand by id. Point reads go straight to the
// database; only the full lists are cached.
func (s *catalogService) GetBrand(ctx context.Context, id int) (*models.VehicleBrand, error) {
	return s.repo.FindBrand(ctx, id)
}

// GetModel resolves a single model by id.
func (s *catalogService) GetModel(ctx context.Context, id int) (*models.VehicleModel, error) {
	return s.repo.FindModel(ctx, id)
}

// GetModelsByBrand filters the cached full model list when it is warm; a cold
// cache queries only the requested brand rather than priming the whole list.
func (s *catalogService) GetModelsByBrand(ctx context.Context, brandID int) ([]models.VehicleModel, error) {
	var all []models.VehicleModel
	if s.getCached(ctx, modelsCacheKey, &all) {
		filtered := make([]models.VehicleModel, 0, len(all))
		for _, m := range all {
			if m.BrandID == brandID {
				filtered = append(filtered, m)
			}
		}
		return filtered, nil
	}
	return s.repo.ListModelsByBrand(ctx, brandID)
}

func (s *catalogService) GetVehicle(ctx context.Context, brandID, modelID int) (*models.Vehicle, error) {
	return s.repo.FindVehicle(ctx, brandID, modelID)
}

// BrandNames returns the id-to-name lookup used when assembling listing read
// models.
func (s *catalogService) BrandNames(ctx context.Context) (map[int]string, error) {
	brands, err := s.GetBrands(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int]string, len(brands))
	for _, b := range brands {
		names[b.ID] = b.Name
	}
	return names, nil
}

// ModelNames returns the id-to-name lookup used when assembling listing read
// models.
func (s *catalogService) ModelNames(ctx context.Context) (map[int]string, error) {
	vehicleModels, err := s.GetModels(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[int]string, len(vehicleModels))
	for _, m := range vehicleModels {
		names[m.ID] = m.Name
	}
	return names, nil
}
