package usecase

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/property-listing-api/services/listing-service/internal/model"
	"github.com/vasapolrittideah/property-listing-api/services/listing-service/internal/repository"
)

// FavoriteUsecase manages the set of properties a user has favorited.
type FavoriteUsecase interface {
	// AddFavorite adds propertyID to the favorites of userID. Adding twice is a no-op.
	AddFavorite(ctx context.Context, userID, propertyID string) error

	// RemoveFavorite removes propertyID from the favorites of userID. It succeeds whether or
	// not the property was a favorite, or even exists.
	RemoveFavorite(ctx context.Context, userID, propertyID string) error

	// ListFavorites returns the favorited properties of user in the order they were added.
	// Favorites whose property has since been deleted are left out.
	ListFavorites(ctx context.Context, user *model.User) ([]*model.Property, error)
}

type favoriteUsecase struct {
	userRepo     repository.UserRepository
	propertyRepo repository.PropertyRepository
}

func NewFavoriteUsecase(
	userRepo repository.UserRepository,
	propertyRepo repository.PropertyRepository,
) FavoriteUsecase {
	return &favoriteUsecase{
		userRepo:     userRepo,
		propertyRepo: propertyRepo,
	}
}

func (u *favoriteUsecase) AddFavorite(ctx context.Context, userID, propertyID string) error {
	if _, err := u.propertyRepo.GetProperty(ctx, propertyID); err != nil {
		if repository.IsNotFound(err) {
			return ErrPropertyNotFound
		}

		return err
	}

	return userGone(u.userRepo.AddFavorite(ctx, userID, propertyID))
}

func (u *favoriteUsecase) RemoveFavorite(ctx context.Context, userID, propertyID string) error {
	if _, err := bson.ObjectIDFromHex(propertyID); err != nil {
		return nil
	}

	return userGone(u.userRepo.RemoveFavorite(ctx, userID, propertyID))
}

// userGone maps a missing user document to ErrUnauthenticated. The caller was resolved by
// the auth gate earlier in the request, so the account was deleted in between.
func userGone(err error) error {
	if err != nil && repository.IsNotFound(err) {
		return ErrUnauthenticated
	}

	return err
}

func (u *favoriteUsecase) ListFavorites(ctx context.Context, user *model.User) ([]*model.Property, error) {
	properties, err := u.propertyRepo.GetPropertiesByIDs(ctx, user.Favorites)
	if err != nil {
		return nil, err
	}

	byID := make(map[bson.ObjectID]*model.Property, len(properties))
	for _, property := range properties {
		byID[property.ID] = property
	}

	favorites := make([]*model.Property, 0, len(user.Favorites))
	for _, id := range user.Favorites {
		if property, ok := byID[id]; ok {
			favorites = append(favorites, property)
		}
	}

	return favorites, nil
}
