package handlers_test

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"github.com/h4d1s/AvtoNetApi/internal/api/middleware"
	"github.com/h4d1s/AvtoNetApi/internal/models"
	"github.com/h4d1s/AvtoNetApi/internal/repository"
	"github.com/h4d1s/AvtoNetApi/internal/services"
)

// stubAuth injects an authenticated identity the way AuthMiddleware would,
// without going through JWT parsing.
func stubAuth(userID string, isAdmin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextKeyUserID, userID)
		c.Set(middleware.ContextKeyIsAdmin, isAdmin)
		c.Next()
	}
}

// --- Mocks ---

// MockListingQueryService
type MockListingQueryService struct {
	mock.Mock
}

func (m *MockListingQueryService) List(ctx context.Context, filter repository.ListingFilter, page, pageSize int, baseURL string) (*services.ListingPage, error) {
	args := m.Called(ctx, filter, page, pageSize, baseURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ListingPage), args.Error(1)
}

func (m *MockListingQueryService) GetByID(ctx context.Context, id, baseURL string) (*models.ListingDetail, error) {
	args := m.Called(ctx, id, baseURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ListingDetail), args.Error(1)
}

func (m *MockListingQueryService) GetOwnerID(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

// MockListingLifecycleService
type MockListingLifecycleService struct {
	mock.Mock
}

func (m *MockListingLifecycleService) Create(ctx context.Context, input services.CreateListingInput) (*models.Listing, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func (m *MockListingLifecycleService) Update(ctx context.Context, id string, input services.UpdateListingInput) error {
	args := m.Called(ctx, id, input)
	return args.Error(0)
}

func (m *MockListingLifecycleService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, input services.RegisterInput) (*models.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*models.User), args.Error(2)
}

func (m *MockUserService) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) FindPage(ctx context.Context, excludeID string, page, pageSize int) ([]models.User, models.PaginationMetadata, error) {
	args := m.Called(ctx, excludeID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Get(1).(models.PaginationMetadata), args.Error(2)
	}
	return args.Get(0).([]models.User), args.Get(1).(models.PaginationMetadata), args.Error(2)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, id string, input services.UpdateProfileInput) error {
	args := m.Called(ctx, id, input)
	return args.Error(0)
}

func (m *MockUserService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCatalogService
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) GetBrands(ctx context.Context) ([]models.VehicleBrand, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.VehicleBrand), args.Error(1)
}

func (m *MockCatalogService) GetBrand(ctx context.Context, id int) (*models.VehicleBrand, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VehicleBrand), args.Error(1)
}

func (m *MockCatalogService) GetModels(ctx context.Context) ([]models.VehicleModel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.VehicleModel), args.Error(1)
}

func (m *MockCatalogService) GetModel(ctx context.Context, id int) (*models.VehicleModel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VehicleModel), args.Error(1)
}

func (m *MockCatalogService) GetModelsByBrand(ctx context.Context, brandID int) ([]models.VehicleModel, error) {
	args := m.Called(ctx, brandID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.VehicleModel), args.Error(1)
}

func (m *MockCatalogService) GetVehicle(ctx context.Context, brandID, modelID int) (*models.Vehicle, error) {
	args := m.Called(ctx, brandID, modelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockCatalogService) BrandNames(ctx context.Context) (map[int]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int]string), args.Error(1)
}

func (m *MockCatalogService) ModelNames(ctx context.Context) (map[int]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int]string), args.Error(1)
}
