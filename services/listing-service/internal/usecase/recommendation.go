package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/property-listing-api/services/listing-service/internal/model"
	"github.com/vasapolrittideah/property-listing-api/services/listing-service/internal/repository"
)

// RecommendationUsecase lets users point properties out to each other.
type RecommendationUsecase interface {
	// RecommendProperty records that recommender suggested propertyID to the user
	// registered under recipientEmail.
	RecommendProperty(ctx context.Context, recommender *model.User, propertyID, recipientEmail string) error

	// ListRecommendations returns what user has received, oldest first, with the property
	// and the recommender resolved.
	ListRecommendations(ctx context.Context, user *model.User) ([]*RecommendationDetail, error)
}

// RecommendationDetail is a received recommendation with its references resolved.
// Property and Recommender are nil when the referenced document no longer exists.
type RecommendationDetail struct {
	Property    *model.Property
	Recommender *model.User
	Date        time.Time
}

var ErrRecipientNotFound = errors.New("recipient not found")

// notificationTimeout bounds a single recommendation email. Delivery runs after the
// request has been answered.
const notificationTimeout = 30 * time.Second

type recommendationUsecase struct {
	userRepo     repository.UserRepository
	propertyRepo repository.PropertyRepository
	notifier     RecommendationNotifier
	logger       *zerolog.Logger
}

func NewRecommendationUsecase(
	userRepo repository.UserRepository,
	propertyRepo repository.PropertyRepository,
	notifier RecommendationNotifier,
	logger *zerolog.Logger,
) RecommendationUsecase {
	return &recommendationUsecase{
		userRepo:     userRepo,
		propertyRepo: propertyRepo,
		notifier:     notifier,
		logger:       logger,
	}
}

func (u *recommendationUsecase) RecommendProperty(
	ctx context.Context,
	recommender *model.User,
	propertyID, recipientEmail string,
) error {
	property, err := u.propertyRepo.GetProperty(ctx, propertyID)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrPropertyNotFound
		}

		return err
	}

	recipient, err := u.userRepo.GetUserByEmail(ctx, normalizeEmail(recipientEmail))
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrRecipientNotFound
		}

		return err
	}

	recommendation := model.Recommendation{
		PropertyID:    property.ID,
		RecommendedBy: recommender.ID,
		Date:          time.Now(),
	}
	if err := u.userRepo.AddRecommendation(ctx, recipient.ID.Hex(), recommendation); err != nil {
		if repository.IsNotFound(err) {
			return ErrRecipientNotFound
		}

		return err
	}

	go u.notify(context.WithoutCancel(ctx), recipient, recommender, property)

	return nil
}

func (u *recommendationUsecase) notify(
	ctx context.Context,
	recipient, recommender *model.User,
	property *model.Property,
) {
	ctx, cancel := context.WithTimeout(ctx, notificationTimeout)
	defer cancel()

	if err := u.notifier.NotifyRecommendation(ctx, recipient, recommender, property); err != nil {
		u.logger.Warn().
			Err(err).
			Str("recipient_id", recipient.ID.Hex()).
			Str("property_id", property.ID.Hex()).
			Msg("failed to send recommendation notification")
	}
}

func (u *recommendationUsecase) ListRecommendations(
	ctx context.Context,
	user *model.User,
) ([]*RecommendationDetail, error) {
	received := user.RecommendationsReceived
	if len(received) == 0 {
		return []*RecommendationDetail{}, nil
	}

	propertyIDs := make([]bson.ObjectID, 0, len(received))
	recommenderIDs := make([]bson.ObjectID, 0, len(received))
	for _, rec := range received {
		propertyIDs = append(propertyIDs, rec.PropertyID)
		recommenderIDs = append(recommenderIDs, rec.RecommendedBy)
	}

	properties, err := u.propertyRepo.GetPropertiesByIDs(ctx, propertyIDs)
	if err != nil {
		return nil, err
	}
	recommenders, err := u.userRepo.GetUsersByIDs(ctx, recommenderIDs)
	if err != nil {
		return nil, err
	}

	propertiesByID := make(map[bson.ObjectID]*model.Property, len(properties))
	for _, property := range properties {
		propertiesByID[property.ID] = property
	}
	recommendersByID := make(map[bson.ObjectID]*model.User, len(recommenders))
	for _, recommender := range recommenders {
		recommendersByID[recommender.ID] = recommender
	}

	details := make([]*RecommendationDetail, 0, len(received))
	for _, rec := range received {
		details = append(details, &RecommendationDetail{
			Property:    propertiesByID[rec.PropertyID],
			Recommender: recommendersByID[rec.RecommendedBy],
			Date:        rec.Date,
		})
	}

	return details, nil
}
