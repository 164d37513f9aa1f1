package repository

import (
	"context"
	"slices"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/property-listing-api/services/listing-service/internal/model"
)

var (
	_ UserRepository     = (*UserMemoryRepository)(nil)
	_ PropertyRepository = (*PropertyMemoryRepository)(nil)
)

// UserMemoryRepository is an in-process UserRepository. It keeps the same observable
// behaviour as the MongoDB implementation, including duplicate key errors on email, and
// is meant for tests and local experiments.
type UserMemoryRepository struct {
	mu    sync.RWMutex
	users []*model.User
}

func NewUserMemoryRepository() *UserMemoryRepository {
	return &UserMemoryRepository{}
}

func (r *UserMemoryRepository) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, duplicateKeyError("email")
		}
	}

	now := time.Now()
	user.ID = bson.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Favorites == nil {
		user.Favorites = []bson.ObjectID{}
	}
	if user.RecommendationsReceived == nil {
		user.RecommendationsReceived = []model.Recommendation{}
	}

	r.users = append(r.users, cloneUser(user))

	return user, nil
}

func (r *UserMemoryRepository) GetUser(_ context.Context, id string) (*model.User, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user := r.lookup(objectID)
	if user == nil {
		return nil, mongo.ErrNoDocuments
	}

	return cloneUser(user), nil
}

func (r *UserMemoryRepository) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (r *UserMemoryRepository) GetUsersByIDs(_ context.Context, ids []bson.ObjectID) ([]*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := []*model.User{}
	for _, user := range r.users {
		if slices.Contains(ids, user.ID) {
			users = append(users, cloneUser(user))
		}
	}

	return users, nil
}

func (r *UserMemoryRepository) AddFavorite(_ context.Context, userID, propertyID string) error {
	return r.update(userID, propertyID, func(user *model.User, propertyObjectID bson.ObjectID) {
		if !slices.Contains(user.Favorites, propertyObjectID) {
			user.Favorites = append(user.Favorites, propertyObjectID)
		}
	})
}

func (r *UserMemoryRepository) RemoveFavorite(_ context.Context, userID, propertyID string) error {
	return r.update(userID, propertyID, func(user *model.User, propertyObjectID bson.ObjectID) {
		user.Favorites = slices.DeleteFunc(user.Favorites, func(id bson.ObjectID) bool {
			return id == propertyObjectID
		})
	})
}

func (r *UserMemoryRepository) AddRecommendation(
	_ context.Context,
	recipientID string,
	recommendation model.Recommendation,
) error {
	objectID, err := parseObjectID(recipientID)
	if err != nil {
		return err
	}

	if recommendation.Date.IsZero() {
		recommendation.Date = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user := r.lookup(objectID)
	if user == nil {
		return mongo.ErrNoDocuments
	}

	user.RecommendationsReceived = append(user.RecommendationsReceived, recommendation)
	user.UpdatedAt = time.Now()

	return nil
}

func (r *UserMemoryRepository) update(
	userID, propertyID string,
	apply func(user *model.User, propertyObjectID bson.ObjectID),
) error {
	userObjectID, err := parseObjectID(userID)
	if err != nil {
		return err
	}
	propertyObjectID, err := parseObjectID(propertyID)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user := r.lookup(userObjectID)
	if user == nil {
		return mongo.ErrNoDocuments
	}

	apply(user, propertyObjectID)
	user.UpdatedAt = time.Now()

	return nil
}

func (r *UserMemoryRepository) lookup(id bson.ObjectID) *model.User {
	for _, user := range r.users {
		if user.ID == id {
			return user
		}
	}
	return nil
}

func cloneUser(user *model.User) *model.User {
	clone := *user
	clone.Favorites = slices.Clone(user.Favorites)
	clone.RecommendationsReceived = slices.Clone(user.RecommendationsReceived)
	return &clone
}

// PropertyMemoryRepository is an in-process PropertyRepository that applies the same
// ownership filter as the MongoDB implementation.
type PropertyMemoryRepository struct {
	mu         sync.RWMutex
	properties []*model.Property
}

func NewPropertyMemoryRepository() *PropertyMemoryRepository {
	return &PropertyMemoryRepository{}
}

func (r *PropertyMemoryRepository) CreateProperty(
	_ context.Context,
	property *model.Property,
) (*model.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	property.ID = bson.NewObjectID()
	property.CreatedAt = now
	property.UpdatedAt = now

	stored := *property
	r.properties = append(r.properties, &stored)

	return property, nil
}

func (r *PropertyMemoryRepository) GetProperty(_ context.Context, id string) (*model.Property, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.index(objectID); i >= 0 {
		property := *r.properties[i]
		return &property, nil
	}

	return nil, mongo.ErrNoDocuments
}

func (r *PropertyMemoryRepository) ListProperties(_ context.Context) ([]*model.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	properties := make([]*model.Property, 0, len(r.properties))
	for _, p := range r.properties {
		property := *p
		properties = append(properties, &property)
	}

	return properties, nil
}

func (r *PropertyMemoryRepository) GetPropertiesByIDs(
	_ context.Context,
	ids []bson.ObjectID,
) ([]*model.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	properties := []*model.Property{}
	for _, p := range r.properties {
		if slices.Contains(ids, p.ID) {
			property := *p
			properties = append(properties, &property)
		}
	}

	return properties, nil
}

func (r *PropertyMemoryRepository) UpdatePropertyByOwner(
	_ context.Context,
	id, ownerID string,
	params UpdatePropertyParams,
) (*model.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, err := r.ownedIndex(id, ownerID)
	if err != nil {
		return nil, err
	}

	p := r.properties[i]
	applyIfSet(&p.Title, params.Title)
	applyIfSet(&p.Description, params.Description)
	applyIfSet(&p.Price, params.Price)
	applyIfSet(&p.Address, params.Address)
	applyIfSet(&p.City, params.City)
	applyIfSet(&p.State, params.State)
	applyIfSet(&p.ZipCode, params.ZipCode)
	applyIfSet(&p.Bedrooms, params.Bedrooms)
	applyIfSet(&p.Bathrooms, params.Bathrooms)
	applyIfSet(&p.PropertyType, params.PropertyType)
	applyIfSet(&p.YearBuilt, params.YearBuilt)
	p.UpdatedAt = time.Now()

	property := *p
	return &property, nil
}

func (r *PropertyMemoryRepository) DeletePropertyByOwner(_ context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, err := r.ownedIndex(id, ownerID)
	if err != nil {
		return err
	}

	r.properties = slices.Delete(r.properties, i, i+1)

	return nil
}

func (r *PropertyMemoryRepository) ownedIndex(id, ownerID string) (int, error) {
	filter, err := ownerFilter(id, ownerID)
	if err != nil {
		return -1, err
	}

	i := r.index(filter["_id"].(bson.ObjectID))
	if i < 0 || r.properties[i].CreatedBy != filter["created_by"].(bson.ObjectID) {
		return -1, mongo.ErrNoDocuments
	}

	return i, nil
}

func (r *PropertyMemoryRepository) index(id bson.ObjectID) int {
	return slices.IndexFunc(r.properties, func(p *model.Property) bool {
		return p.ID == id
	})
}

func applyIfSet[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
