package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents a registered account of the marketplace.
type User struct {
	ID                      bson.ObjectID    `bson:"_id,omitempty"`
	Name                    string           `bson:"name"`
	Email                   string           `bson:"email"`
	PasswordHash            string           `bson:"password_hash"`
	Favorites               []bson.ObjectID  `bson:"favorites"`
	RecommendationsReceived []Recommendation `bson:"recommendations_received"`
	CreatedAt               time.Time        `bson:"created_at"`
	UpdatedAt               time.Time        `bson:"updated_at"`
}

// Recommendation is a property one user pointed out to another. It is stored on the
// recipient.
type Recommendation struct {
	PropertyID    bson.ObjectID `bson:"property"`
	RecommendedBy bson.ObjectID `bson:"recommended_by"`
	Date          time.Time     `bson:"date"`
}
