package models

import (
	"time"
)

// Image is the single photo attached to a listing. Path is the stored
// relative path (forward slashes, e.g. "uploads/<listingID>/photo.jpg");
// while the row exists the backing file must exist too, and both are removed
// together when the owning listing is deleted.
type Image struct {
	ID        string    `bson:"_id" json:"id"`
	ListingID string    `bson:"listing_id" json:"listing_id"`
	Path      string    `bson:"path" json:"path"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
