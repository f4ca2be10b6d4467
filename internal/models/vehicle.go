package models

// Vehicle ties a listing to a concrete brand+model pair from the catalog.
// Reference data: created once, never mutated by listing operations.
type Vehicle struct {
	ID      string `bson:"_id" json:"id"`
	BrandID int    `bson:"brand_id" json:"brand_id"`
	ModelID int    `bson:"model_id" json:"model_id"`
}

// VehicleBrand is a catalog entry (e.g. "Audi").
type VehicleBrand struct {
	ID   int    `bson:"_id" json:"id"`
	Name string `bson:"name" json:"name"`
}

// VehicleModel is a catalog entry belonging to exactly one brand.
type VehicleModel struct {
	ID      int    `bson:"_id" json:"id"`
	BrandID int    `bson:"brand_id" json:"brand_id"`
	Name    string `bson:"name" json:"name"`
}
