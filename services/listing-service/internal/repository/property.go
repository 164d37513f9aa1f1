package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/property-listing-api/services/listing-service/internal/model"
)

// PropertyRepository defines the interface for property-related database operations.
type PropertyRepository interface {
	CreateProperty(ctx context.Context, property *model.Property) (*model.Property, error)
	GetProperty(ctx context.Context, id string) (*model.Property, error)
	ListProperties(ctx context.Context) ([]*model.Property, error)
	GetPropertiesByIDs(ctx context.Context, ids []bson.ObjectID) ([]*model.Property, error)
	UpdatePropertyByOwner(
		ctx context.Context,
		id, ownerID string,
		params UpdatePropertyParams,
	) (*model.Property, error)
	DeletePropertyByOwner(ctx context.Context, id, ownerID string) error
}

// UpdatePropertyParams defines the optional parameters for updating a property.
// Only the fields that are not nil will be updated.
type UpdatePropertyParams struct {
	Title        *string
	Description  *string
	Price        *float64
	Address      *string
	City         *string
	State        *string
	ZipCode      *string
	Bedrooms     *int
	Bathrooms    *int
	PropertyType *string
	YearBuilt    *int
}

func (p UpdatePropertyParams) setFields() bson.M {
	fields := bson.M{}
	if p.Title != nil {
		fields["title"] = *p.Title
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.Price != nil {
		fields["price"] = *p.Price
	}
	if p.Address != nil {
		fields["address"] = *p.Address
	}
	if p.City != nil {
		fields["city"] = *p.City
	}
	if p.State != nil {
		fields["state"] = *p.State
	}
	if p.ZipCode != nil {
		fields["zip_code"] = *p.ZipCode
	}
	if p.Bedrooms != nil {
		fields["bedrooms"] = *p.Bedrooms
	}
	if p.Bathrooms != nil {
		fields["bathrooms"] = *p.Bathrooms
	}
	if p.PropertyType != nil {
		fields["property_type"] = *p.PropertyType
	}
	if p.YearBuilt != nil {
		fields["year_built"] = *p.YearBuilt
	}

	return fields
}

const propertyCollection = "properties"

type propertyMongoRepository struct {
	db *mongo.Database
}

func NewPropertyMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) PropertyRepository {
	collection := db.Collection(propertyCollection)

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "created_by", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create property indexes")
	}

	return &propertyMongoRepository{db: db}
}

func (r *propertyMongoRepository) CreateProperty(
	ctx context.Context,
	property *model.Property,
) (*model.Property, error) {
	now := time.Now()
	property.CreatedAt = now
	property.UpdatedAt = now

	result, err := r.db.Collection(propertyCollection).InsertOne(ctx, property)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		property.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return property, nil
}

func (r *propertyMongoRepository) GetProperty(ctx context.Context, id string) (*model.Property, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(propertyCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var property model.Property
	if err := result.Decode(&property); err != nil {
		return nil, err
	}

	return &property, nil
}

func (r *propertyMongoRepository) ListProperties(ctx context.Context) ([]*model.Property, error) {
	return r.find(ctx, bson.M{})
}

func (r *propertyMongoRepository) GetPropertiesByIDs(
	ctx context.Context,
	ids []bson.ObjectID,
) ([]*model.Property, error) {
	if len(ids) == 0 {
		return []*model.Property{}, nil
	}

	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *propertyMongoRepository) UpdatePropertyByOwner(
	ctx context.Context,
	id, ownerID string,
	params UpdatePropertyParams,
) (*model.Property, error) {
	filter, err := ownerFilter(id, ownerID)
	if err != nil {
		return nil, err
	}

	updateMap := params.setFields()
	updateMap["updated_at"] = time.Now()

	result := r.db.Collection(propertyCollection).FindOneAndUpdate(
		ctx,
		filter,
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var property model.Property
	if err := result.Decode(&property); err != nil {
		return nil, err
	}

	return &property, nil
}

func (r *propertyMongoRepository) DeletePropertyByOwner(ctx context.Context, id, ownerID string) error {
	filter, err := ownerFilter(id, ownerID)
	if err != nil {
		return err
	}

	result, err := r.db.Collection(propertyCollection).DeleteOne(ctx, filter)
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *propertyMongoRepository) find(ctx context.Context, filter bson.M) ([]*model.Property, error) {
	cursor, err := r.db.Collection(propertyCollection).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	properties := []*model.Property{}
	for cursor.Next(ctx) {
		var property model.Property
		if err := cursor.Decode(&property); err != nil {
			return nil, err
		}
		properties = append(properties, &property)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return properties, nil
}

// ownerFilter matches a property only if it belongs to ownerID. A missing property and
// a property of someone else are indistinguishable to the caller.
func ownerFilter(id, ownerID string) (bson.M, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	ownerObjectID, err := parseObjectID(ownerID)
	if err != nil {
		return nil, err
	}

	return bson.M{"_id": objectID, "created_by": ownerObjectID}, nil
}
