package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Property is a listing owned by the user that created it.
type Property struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string        `bson:"title"         json:"title"`
	Description  string        `bson:"description"   json:"description"`
	Price        float64       `bson:"price"         json:"price"`
	Address      string        `bson:"address"       json:"address"`
	City         string        `bson:"city"          json:"city"`
	State        string        `bson:"state"         json:"state"`
	ZipCode      string        `bson:"zip_code"      json:"zipCode"`
	Bedrooms     int           `bson:"bedrooms"      json:"bedrooms"`
	Bathrooms    int           `bson:"bathrooms"     json:"bathrooms"`
	PropertyType string        `bson:"property_type" json:"propertyType"`
	YearBuilt    int           `bson:"year_built"    json:"yearBuilt"`
	CreatedBy    bson.ObjectID `bson:"created_by"    json:"createdBy"`
	CreatedAt    time.Time     `bson:"created_at"    json:"createdAt"`
	UpdatedAt    time.Time     `bson:"updated_at"    json:"updatedAt"`
}
