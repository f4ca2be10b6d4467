package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Image store backends selectable via IMAGE_STORE_BACKEND.
const (
	ImageStoreLocal = "local"
	ImageStoreS3    = "s3"
)

// Config holds all configuration for the application.
type Config struct {
	// MongoDB
	MongoURI    string
	MongoDbName string

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// JWT
	JwtSecret string
	JwtTTL    time.Duration

	// Server
	ApiPort string

	// Image storage
	ImageStoreBackend string // "local" or "s3"
	UploadsRoot       string // root directory for the local backend

	// AWS S3 (only used when ImageStoreBackend is "s3")
	AwsAccessKeyID     string
	AwsSecretAccessKey string
	AwsRegion          string
	AwsS3Bucket        string
	ImageBaseS3URL     string

	// Caching
	CatalogCacheTTL time.Duration

	// Rate Limiting
	RateLimitBucketSize int
	RateLimitRefillRate int // tokens per second
}

// Load configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file, ignoring errors if it doesn't exist
	godotenv.Load()

	cfg := &Config{}

	var err error

	// Helper function to get env var or default
	getEnv := func(key, defaultValue string) string {
		if value, exists := os.LookupEnv(key); exists {
			return value
		}
		return defaultValue
	}

	// Helper function to get required env var
	getRequiredEnv := func(key string) (string, error) {
		value, exists := os.LookupEnv(key)
		if !exists {
			return "", fmt.Errorf("missing required environment variable: %s", key)
		}
		return value, nil
	}

	cfg.MongoURI, err = getRequiredEnv("MONGO_URI")
	if err != nil {
		return nil, err
	}
	cfg.MongoDbName = getEnv("MONGO_DB_NAME", "avtonet")
	cfg.RedisAddr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.JwtSecret, err = getRequiredEnv("JWT_SECRET")
	if err != nil {
		return nil, err
	}
	cfg.ApiPort = getEnv("API_PORT", "8080")

	cfg.ImageStoreBackend = getEnv("IMAGE_STORE_BACKEND", ImageStoreLocal)
	if cfg.ImageStoreBackend != ImageStoreLocal && cfg.ImageStoreBackend != ImageStoreS3 {
		return nil, fmt.Errorf("invalid IMAGE_STORE_BACKEND: %s", cfg.ImageStoreBackend)
	}
	cfg.UploadsRoot = getEnv("UPLOADS_ROOT", ".")

	cfg.AwsAccessKeyID = getEnv("AWS_ACCESS_KEY_ID", "")
	cfg.AwsSecretAccessKey = getEnv("AWS_SECRET_ACCESS_KEY", "")
	cfg.AwsRegion = getEnv("AWS_REGION", "")
	cfg.AwsS3Bucket = getEnv("AWS_S3_BUCKET", "")
	cfg.ImageBaseS3URL = getEnv("IMAGE_BASE_S3_URL", "")
	if cfg.ImageStoreBackend == ImageStoreS3 {
		for key, value := range map[string]string{
			"AWS_ACCESS_KEY_ID":     cfg.AwsAccessKeyID,
			"AWS_SECRET_ACCESS_KEY": cfg.AwsSecretAccessKey,
			"AWS_REGION":            cfg.AwsRegion,
			"AWS_S3_BUCKET":         cfg.AwsS3Bucket,
			"IMAGE_BASE_S3_URL":     cfg.ImageBaseS3URL,
		} {
			if value == "" {
				return nil, fmt.Errorf("missing required environment variable for s3 image store: %s", key)
			}
		}
	}

	// Load numeric and time duration values with defaults and parsing
	cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	jwtTTLSeconds, err := strconv.ParseInt(getEnv("JWT_TTL_SECONDS", "3600"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL_SECONDS: %w", err)
	}
	cfg.JwtTTL = time.Duration(jwtTTLSeconds) * time.Second

	catalogCacheTTLSeconds, err := strconv.ParseInt(getEnv("CATALOG_CACHE_TTL_SECONDS", "300"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid CATALOG_CACHE_TTL_SECONDS: %w", err)
	}
	cfg.CatalogCacheTTL = time.Duration(catalogCacheTTLSeconds) * time.Second

	cfg.RateLimitBucketSize, err = strconv.Atoi(getEnv("RATE_LIMIT_BUCKET_SIZE", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BUCKET_SIZE: %w", err)
	}
	cfg.RateLimitRefillRate, err = strconv.Atoi(getEnv("RATE_LIMIT_REFILL_RATE", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_REFILL_RATE: %w", err)
	}

	return cfg, nil
}
