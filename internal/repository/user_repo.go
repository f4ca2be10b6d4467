package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/h4d1s/AvtoNetApi/internal/db"
	"github.com/h4d1s/AvtoNetApi/internal/models"
)

const usersCollection = "users"

// IUserRepository is the persistence boundary over user accounts.
type IUserRepository interface {
	Insert(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindPage(ctx context.Context, excludeID string, page, pageSize int) ([]models.User, int64, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}

type mongoUserRepository struct {
	db *mongo.Database
}

// NewUserRepository creates a MongoDB-backed user repository.
func NewUserRepository(db *mongo.Database) IUserRepository {
	return &mongoUserRepository{db: db}
}

// Insert adds a new user. A unique-index violation on the email address is
// reported as ErrConflict.
func (r *mongoUserRepository) Insert(ctx context.Context, user *models.User) error {
	_, err := r.db.Collection(usersCollection).InsertOne(ctx, user)
	if err != nil {
		if db.IsDuplicateKeyError(err) {
			return fmt.Errorf("email %s already registered: %w", user.Email, models.ErrConflict)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (r *mongoUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.Collection(usersCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("error finding user by ID %s: %w", id, err)
	}
	return &user, nil
}

func (r *mongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.Collection(usersCollection).FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("error finding user by email: %w", err)
	}
	return &user, nil
}

// FindPage returns one page of users excluding the given id (the browsing
// admin does not see their own account), plus the total count before paging.
func (r *mongoUserRepository) FindPage(ctx context.Context, excludeID string, page, pageSize int) ([]models.User, int64, error) {
	collection := r.db.Collection(usersCollection)
	criteria := bson.M{"_id": bson.M{"$ne": excludeID}}

	total, err := collection.CountDocuments(ctx, criteria)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(page-1) * int64(pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := collection.Find(ctx, criteria, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query users page: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, 0, fmt.Errorf("failed to decode users page: %w", err)
	}
	return users, total, nil
}

func (r *mongoUserRepository) Update(ctx context.Context, user *models.User) error {
	update := bson.M{"$set": bson.M{
		"first_name":   user.FirstName,
		"last_name":    user.LastName,
		"street":       user.Street,
		"city":         user.City,
		"phone_number": user.PhoneNumber,
		"updated_at":   user.UpdatedAt,
	}}
	result, err := r.db.Collection(usersCollection).UpdateOne(ctx, bson.M{"_id": user.ID}, update)
	if err != nil {
		return fmt.Errorf("db error updating user %s: %w", user.ID, err)
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *mongoUserRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.Collection(usersCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("db error deleting user %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
