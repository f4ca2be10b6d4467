package models

import (
	"time"
)

// User is a registered marketplace account.
type User struct {
	ID           string    `bson:"_id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	FirstName    string    `bson:"first_name" json:"first_name"`
	LastName     string    `bson:"last_name" json:"last_name"`
	Street       string    `bson:"street" json:"street"`
	City         string    `bson:"city" json:"city"`
	PhoneNumber  string    `bson:"phone_number" json:"phone_number"`
	IsAdmin      bool      `bson:"is_admin" json:"is_admin"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}
