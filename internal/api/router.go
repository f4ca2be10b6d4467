package api

import (
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/h4d1s/AvtoNetApi/internal/api/handlers"
	"github.com/h4d1s/AvtoNetApi/internal/api/middleware"
	"github.com/h4d1s/AvtoNetApi/internal/config"
	"github.com/h4d1s/AvtoNetApi/internal/repository"
	"github.com/h4d1s/AvtoNetApi/internal/services"
	"github.com/h4d1s/AvtoNetApi/internal/storage"
)

// newImageStore selects the image backend from the config.
func newImageStore(cfg *config.Config) storage.IImageStore {
	if cfg.ImageStoreBackend == config.ImageStoreS3 {
		store, err := storage.NewS3ImageStore(cfg)
		if err != nil {
			log.Fatalf("CRITICAL: Failed to initialize S3 image store: %v", err)
		}
		return store
	}
	return storage.NewLocalImageStore(cfg.UploadsRoot)
}

// SetupRouter configures and returns the main Gin engine.
func SetupRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client) *gin.Engine {
	// Repositories
	listingRepo := repository.NewListingRepository(db)
	imageRepo := repository.NewImageRepository(db)
	userRepo := repository.NewUserRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)

	// Services
	imageStore := newImageStore(cfg)
	catalogService := services.NewCatalogService(catalogRepo, rdb, cfg.CatalogCacheTTL)

	// With S3 the API host does not serve the files, so image URLs resolve
	// against the bucket's public base instead of the request origin.
	imageBaseURL := ""
	if cfg.ImageStoreBackend == config.ImageStoreS3 {
		imageBaseURL = cfg.ImageBaseS3URL
	}
	listingQueryService := services.NewListingQueryService(listingRepo, imageRepo, userRepo, catalogService, imageBaseURL)
	listingLifecycleService := services.NewListingLifecycleService(listingRepo, imageRepo, userRepo, catalogService, imageStore)
	userService := services.NewUserService(userRepo, cfg)

	r := gin.Default()

	// Apply global middleware first (order matters)
	rateLimiter := middleware.NewRateLimiterMiddleware(cfg)
	r.Use(middleware.CORSMiddleware())
	r.Use(rateLimiter.Limit())

	// Handlers
	restListingHandler := handlers.NewRestListingHandler(listingQueryService, listingLifecycleService)
	restCatalogHandler := handlers.NewRestCatalogHandler(catalogService)
	restUserHandler := handlers.NewRestUserHandler(userService)

	// Uploaded images are served straight from disk for the local backend;
	// the S3 backend resolves image URLs against IMAGE_BASE_S3_URL instead.
	if cfg.ImageStoreBackend == config.ImageStoreLocal {
		r.Static("/uploads", filepath.Join(cfg.UploadsRoot, "uploads"))
	}

	apiGroup := r.Group("/api")
	{
		// Public routes
		apiGroup.GET("/listings", restListingHandler.GetListings)
		apiGroup.GET("/listings/:id", restListingHandler.GetListingByID)
		apiGroup.GET("/brands", restCatalogHandler.GetBrands)
		apiGroup.GET("/brands/:id", restCatalogHandler.GetBrandByID)
		apiGroup.GET("/models", restCatalogHandler.GetModels)
		apiGroup.GET("/models/:id", restCatalogHandler.GetModelByID)
		apiGroup.GET("/models/byBrand/:brandId", restCatalogHandler.GetModelsByBrand)
		apiGroup.POST("/user/register", restUserHandler.Register)
		apiGroup.POST("/user/login", restUserHandler.Login)

		apiGroup.GET("/ping", func(c *gin.Context) {
			c.String(http.StatusOK, "pong")
		})

		// Authenticated routes
		authRequired := apiGroup.Group("/")
		authRequired.Use(middleware.AuthMiddleware(cfg.JwtSecret))
		{
			authRequired.POST("/listings", restListingHandler.CreateListing)
			authRequired.PUT("/listings/:id", restListingHandler.UpdateListing)
			authRequired.DELETE("/listings/:id", restListingHandler.DeleteListing)

			authRequired.GET("/user/currentUserId", restUserHandler.CurrentUserID)
			authRequired.PUT("/user/:id", restUserHandler.UpdateUser)
			authRequired.DELETE("/user/:id", restUserHandler.DeleteUser)
		}

		// Admin routes
		adminRequired := apiGroup.Group("/")
		adminRequired.Use(middleware.AuthMiddleware(cfg.JwtSecret), middleware.AdminMiddleware())
		{
			adminRequired.GET("/users", restUserHandler.GetUsers)
		}
	}

	return r
}
