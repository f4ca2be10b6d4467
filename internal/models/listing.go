package models

import (
	"time"
)

// Listing represents a vehicle-for-sale advertisement.
// BrandID and ModelID are denormalized from the Vehicle at creation time so
// that brand/model filters do not require a join; the vehicle reference is
// immutable for the lifetime of the listing.
type Listing struct {
	ID               string    `bson:"_id" json:"id"`
	UserID           string    `bson:"user_id" json:"user_id"`
	VehicleID        string    `bson:"vehicle_id" json:"vehicle_id"`
	BrandID          int       `bson:"brand_id" json:"brand_id"`
	ModelID          int       `bson:"model_id" json:"model_id"`
	Mileage          int       `bson:"mileage" json:"mileage"`
	FuelType         string    `bson:"fuel_type" json:"fuel_type"`
	Gearbox          string    `bson:"gearbox" json:"gearbox"`
	YearOfProduction int       `bson:"year_of_production" json:"year_of_production"`
	Color            string    `bson:"color" json:"color"`
	Price            int       `bson:"price" json:"price"`
	Power            int       `bson:"power" json:"power"`
	EngineSize       int       `bson:"engine_size" json:"engine_size"`
	PublishDate      time.Time `bson:"publish_date" json:"publish_date"`
	Sold             bool      `bson:"sold" json:"sold"`
	// Version backs the optimistic-concurrency check on updates.
	Version int64 `bson:"version" json:"-"`
}
