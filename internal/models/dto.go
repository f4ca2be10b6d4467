package models

import (
	"time"
)

// ListingSummary is the read model for the listing browse endpoint. It is
// assembled by explicit field mapping from the persisted entities; brand and
// model are display names and ImageURL is an absolute, client-resolvable URL
// (empty when the listing has no image).
type ListingSummary struct {
	ID               string    `json:"id"`
	Mileage          int       `json:"mileage"`
	FuelType         string    `json:"fuel_type"`
	Gearbox          string    `json:"gearbox"`
	YearOfProduction int       `json:"year_of_production"`
	Color            string    `json:"color"`
	Price            int       `json:"price"`
	Power            int       `json:"power"`
	EngineSize       int       `json:"engine_size"`
	PublishDate      time.Time `json:"publish_date"`
	Sold             bool      `json:"sold"`
	Brand            string    `json:"brand"`
	Model            string    `json:"model"`
	ImageURL         string    `json:"image_url,omitempty"`
}

// ListingDetail is the read model for single-listing retrieval. Unlike the
// summary it exposes the owner's contact phone.
type ListingDetail struct {
	ID               string    `json:"id"`
	Mileage          int       `json:"mileage"`
	FuelType         string    `json:"fuel_type"`
	Gearbox          string    `json:"gearbox"`
	YearOfProduction int       `json:"year_of_production"`
	Color            string    `json:"color"`
	Price            int       `json:"price"`
	Power            int       `json:"power"`
	EngineSize       int       `json:"engine_size"`
	PublishDate      time.Time `json:"publish_date"`
	Sold             bool      `json:"sold"`
	Brand            string    `json:"brand"`
	Model            string    `json:"model"`
	UserPhone        string    `json:"user_phone"`
	ImageURL         string    `json:"image_url,omitempty"`
}
