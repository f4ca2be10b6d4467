package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/h4d1s/AvtoNetApi/internal/auth"
	"github.com/h4d1s/AvtoNetApi/internal/config"
	"github.com/h4d1s/AvtoNetApi/internal/models"
	"github.com/h4d1s/AvtoNetApi/internal/repository"
)

// ErrInvalidCredentials is returned by Login for both unknown email and
// wrong password, so the response never reveals which one it was.
var ErrInvalidCredentials = errors.New("invalid email or password")

const minPasswordLength = 8

// RegisterInput holds the fields of a new account registration.
type RegisterInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Street      string
	City        string
	PhoneNumber string
}

// UpdateProfileInput carries the mutable profile fields of an account. Only
// non-empty fields are applied, so a partial payload leaves the rest of the
// profile untouched. Email and password changes are out of scope here.
type UpdateProfileInput struct {
	FirstName   string
	LastName    string
	Street      string
	City        string
	PhoneNumber string
}

// IUserService defines the interface for account-related operations.
type IUserService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindPage(ctx context.Context, excludeID string, page, pageSize int) ([]models.User, models.PaginationMetadata, error)
	UpdateProfile(ctx context.Context, id string, input UpdateProfileInput) error
	Delete(ctx context.Context, id string) error
}

type userService struct {
	users repository.IUserRepository
	cfg   *config.Config
}

// NewUserService creates a new user service.
func NewUserService(users repository.IUserRepository, cfg *config.Config) IUserService {
	return &userService{users: users, cfg: cfg}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account with a bcrypt-hashed password. A duplicate
// email surfaces as ErrConflict from the repository.
func (s *userService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	email := normalizeEmail(input.Email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("email address %q is not valid: %w", input.Email, models.ErrValidation)
	}
	if len(input.Password) < minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters: %w", minPasswordLength, models.ErrValidation)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Street:       input.Street,
		City:         input.City,
		PhoneNumber:  input.PhoneNumber,
		IsAdmin:      false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and issues a signed JWT for the account.
func (s *userService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateJWT(user.ID, user.IsAdmin, s.cfg.JwtSecret, s.cfg.JwtTTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *userService) FindByID(ctx context.Context, id string) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

// FindPage returns one page of accounts excluding the browsing user, newest
// first, with pagination metadata over the remaining set.
func (s *userService) FindPage(ctx context.Context, excludeID string, page, pageSize int) ([]models.User, models.PaginationMetadata, error) {
	if page < 1 || pageSize < 1 {
		return nil, models.PaginationMetadata{}, fmt.Errorf("page and page size must be at least 1: %w", models.ErrValidation)
	}

	users, total, err := s.users.FindPage(ctx, excludeID, page, pageSize)
	if err != nil {
		return nil, models.PaginationMetadata{}, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, models.NewPaginationMetadata(total, page, pageSize), nil
}

func (s *userService) UpdateProfile(ctx context.Context, id string, input UpdateProfileInput) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.Street != "" {
		user.Street = input.Street
	}
	if input.City != "" {
		user.City = input.City
	}
	if input.PhoneNumber != "" {
		user.PhoneNumber = input.PhoneNumber
	}
	user.UpdatedAt = time.Now().UTC()

	return s.users.Update(ctx, user)
}

func (s *userService) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}
