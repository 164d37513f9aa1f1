package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/property-listing-api/services/listing-service/internal/model"
	"github.com/vasapolrittideah/property-listing-api/services/listing-service/internal/repository"
)

// PropertyUsecase defines the business logic for property listings.
type PropertyUsecase interface {
	CreateProperty(ctx context.Context, ownerID bson.ObjectID, params CreatePropertyParams) (*model.Property, error)
	ListProperties(ctx context.Context) ([]*model.Property, error)
	GetProperty(ctx context.Context, id string) (*model.Property, error)

	// UpdateProperty and DeleteProperty only touch properties owned by ownerID. Both
	// return ErrPropertyNotFoundOrUnauthorized without telling which of the two it was.
	UpdateProperty(
		ctx context.Context,
		id, ownerID string,
		params repository.UpdatePropertyParams,
	) (*model.Property, error)
	DeleteProperty(ctx context.Context, id, ownerID string) error
}

// CreatePropertyParams defines the parameters for creating a property.
type CreatePropertyParams struct {
	Title        string
	Description  string
	Price        float64
	Address      string
	City         string
	State        string
	ZipCode      string
	Bedrooms     int
	Bathrooms    int
	PropertyType string
	YearBuilt    int
}

var (
	ErrPropertyNotFound               = errors.New("property not found")
	ErrPropertyNotFoundOrUnauthorized = errors.New("property not found or unauthorized")
)

type propertyUsecase struct {
	propertyRepo repository.PropertyRepository
	logger       *zerolog.Logger
}

func NewPropertyUsecase(propertyRepo repository.PropertyRepository, logger *zerolog.Logger) PropertyUsecase {
	return &propertyUsecase{
		propertyRepo: propertyRepo,
		logger:       logger,
	}
}

func (u *propertyUsecase) CreateProperty(
	ctx context.Context,
	ownerID bson.ObjectID,
	params CreatePropertyParams,
) (*model.Property, error) {
	property, err := u.propertyRepo.CreateProperty(ctx, &model.Property{
		Title:        params.Title,
		Description:  params.Description,
		Price:        params.Price,
		Address:      params.Address,
		City:         params.City,
		State:        params.State,
		ZipCode:      params.ZipCode,
		Bedrooms:     params.Bedrooms,
		Bathrooms:    params.Bathrooms,
		PropertyType: params.PropertyType,
		YearBuilt:    params.YearBuilt,
		CreatedBy:    ownerID,
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info().
		Str("property_id", property.ID.Hex()).
		Str("owner_id", ownerID.Hex()).
		Msg("property created")

	return property, nil
}

func (u *propertyUsecase) ListProperties(ctx context.Context) ([]*model.Property, error) {
	return u.propertyRepo.ListProperties(ctx)
}

func (u *propertyUsecase) GetProperty(ctx context.Context, id string) (*model.Property, error) {
	property, err := u.propertyRepo.GetProperty(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrPropertyNotFound
		}

		return nil, err
	}

	return property, nil
}

func (u *propertyUsecase) UpdateProperty(
	ctx context.Context,
	id, ownerID string,
	params repository.UpdatePropertyParams,
) (*model.Property, error) {
	property, err := u.propertyRepo.UpdatePropertyByOwner(ctx, id, ownerID, params)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrPropertyNotFoundOrUnauthorized
		}

		return nil, err
	}

	return property, nil
}

func (u *propertyUsecase) DeleteProperty(ctx context.Context, id, ownerID string) error {
	if err := u.propertyRepo.DeletePropertyByOwner(ctx, id, ownerID); err != nil {
		if repository.IsNotFound(err) {
			return ErrPropertyNotFoundOrUnauthorized
		}

		return err
	}

	u.logger.Info().Str("property_id", id).Str("owner_id", ownerID).Msg("property deleted")

	return nil
}
