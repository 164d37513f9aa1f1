package payload

import (
	"time"

	"github.com/vasapolrittideah/property-listing-api/services/listing-service/internal/model"
	"github.com/vasapolrittideah/property-listing-api/services/listing-service/internal/repository"
	"github.com/vasapolrittideah/property-listing-api/services/listing-service/internal/usecase"
)

// CreatePropertyRequest uses pointers for numbers so that a missing field can be told
// apart from an explicit zero.
type CreatePropertyRequest struct {
	Title        string   `json:"title"        validate:"required"`
	Description  string   `json:"description"  validate:"required"`
	Price        *float64 `json:"price"        validate:"required,gte=0"`
	Address      string   `json:"address"      validate:"required"`
	City         string   `json:"city"         validate:"required"`
	State        string   `json:"state"        validate:"required"`
	ZipCode      string   `json:"zipCode"      validate:"required"`
	Bedrooms     *int     `json:"bedrooms"     validate:"required,gte=0"`
	Bathrooms    *int     `json:"bathrooms"    validate:"required,gte=0"`
	PropertyType string   `json:"propertyType" validate:"required"`
	YearBuilt    *int     `json:"yearBuilt"    validate:"required"`
}

func (r CreatePropertyRequest) Params() usecase.CreatePropertyParams {
	return usecase.CreatePropertyParams{
		Title:        r.Title,
		Description:  r.Description,
		Price:        *r.Price,
		Address:      r.Address,
		City:         r.City,
		State:        r.State,
		ZipCode:      r.ZipCode,
		Bedrooms:     *r.Bedrooms,
		Bathrooms:    *r.Bathrooms,
		PropertyType: r.PropertyType,
		YearBuilt:    *r.YearBuilt,
	}
}

// UpdatePropertyRequest is a partial update. Absent fields keep their stored value.
// The owner of a property is not part of the request and cannot be changed.
type UpdatePropertyRequest struct {
	Title        *string  `json:"title"        validate:"omitnil,min=1"`
	Description  *string  `json:"description"  validate:"omitnil,min=1"`
	Price        *float64 `json:"price"        validate:"omitnil,gte=0"`
	Address      *string  `json:"address"      validate:"omitnil,min=1"`
	City         *string  `json:"city"         validate:"omitnil,min=1"`
	State        *string  `json:"state"        validate:"omitnil,min=1"`
	ZipCode      *string  `json:"zipCode"      validate:"omitnil,min=1"`
	Bedrooms     *int     `json:"bedrooms"     validate:"omitnil,gte=0"`
	Bathrooms    *int     `json:"bathrooms"    validate:"omitnil,gte=0"`
	PropertyType *string  `json:"propertyType" validate:"omitnil,min=1"`
	YearBuilt    *int     `json:"yearBuilt"`
}

func (r UpdatePropertyRequest) Params() repository.UpdatePropertyParams {
	return repository.UpdatePropertyParams{
		Title:        r.Title,
		Description:  r.Description,
		Price:        r.Price,
		Address:      r.Address,
		City:         r.City,
		State:        r.State,
		ZipCode:      r.ZipCode,
		Bedrooms:     r.Bedrooms,
		Bathrooms:    r.Bathrooms,
		PropertyType: r.PropertyType,
		YearBuilt:    r.YearBuilt,
	}
}

type ListPropertiesResponse struct {
	Properties []*model.Property `json:"properties"`
}

type RecommendRequest struct {
	PropertyID     string `json:"propertyId"     validate:"required"`
	RecipientEmail string `json:"recipientEmail" validate:"required,email"`
}

// RecommendationResponse is a received recommendation. Property is null when the
// recommended property has been deleted since.
type RecommendationResponse struct {
	Property      *model.Property `json:"property"`
	RecommendedBy *UserResponse   `json:"recommendedBy"`
	Date          time.Time       `json:"date"`
}

func NewRecommendationResponses(details []*usecase.RecommendationDetail) []RecommendationResponse {
	responses := make([]RecommendationResponse, 0, len(details))
	for _, detail := range details {
		response := RecommendationResponse{
			Property: detail.Property,
			Date:     detail.Date,
		}
		if detail.Recommender != nil {
			recommender := NewUserResponse(detail.Recommender)
			response.RecommendedBy = &recommender
		}
		responses = append(responses, response)
	}

	return responses
}
