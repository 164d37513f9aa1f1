package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/vasapolrittideah/property-listing-api/services/listing-service/internal/config"
	"github.com/vasapolrittideah/property-listing-api/services/listing-service/internal/model"
	"github.com/vasapolrittideah/property-listing-api/services/listing-service/internal/repository"
	"github.com/vasapolrittideah/property-listing-api/shared/auth"
)

const testIssuer = "property-listing-api"

type testEnv struct {
	users      *repository.UserMemoryRepository
	properties *repository.PropertyMemoryRepository
	notifier   *recordingNotifier

	auth           AuthUsecase
	property       PropertyUsecase
	favorite       FavoriteUsecase
	recommendation RecommendationUsecase
	tokenCfg       config.TokenConfig
	jwtAuth        auth.JWTAuthenticator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := zerolog.Nop()
	users := repository.NewUserMemoryRepository()
	properties := repository.NewPropertyMemoryRepository()
	notifier := &recordingNotifier{}
	tokenCfg := config.TokenConfig{Secret: "test-secret", ExpiresIn: time.Hour, Issuer: testIssuer}
	jwtAuth := auth.NewJWTAuthenticator(testIssuer, testIssuer)

	return &testEnv{
		users:          users,
		properties:     properties,
		notifier:       notifier,
		auth:           NewAuthUsecase(users, jwtAuth, tokenCfg, &logger),
		property:       NewPropertyUsecase(properties, &logger),
		favorite:       NewFavoriteUsecase(users, properties),
		recommendation: NewRecommendationUsecase(users, properties, notifier, &logger),
		tokenCfg:       tokenCfg,
		jwtAuth:        jwtAuth,
	}
}

func (e *testEnv) register(t *testing.T, name, email string) *model.User {
	t.Helper()

	result, err := e.auth.Register(context.Background(), RegisterParams{Name: name, Email: email, Password: "p1"})
	require.NoError(t, err)
	return result.User
}

// reload returns the current stored state of user, the way the auth gate resolves it.
func (e *testEnv) reload(t *testing.T, user *model.User) *model.User {
	t.Helper()

	fresh, err := e.users.GetUser(context.Background(), user.ID.Hex())
	require.NoError(t, err)
	return fresh
}

func (e *testEnv) createProperty(t *testing.T, owner *model.User, title string) *model.Property {
	t.Helper()

	property, err := e.property.CreateProperty(context.Background(), owner.ID, CreatePropertyParams{
		Title:        title,
		Description:  "Bright and quiet",
		Price:        250000,
		Address:      "1 Main St",
		City:         "Springfield",
		State:        "IL",
		ZipCode:      "62701",
		Bedrooms:     2,
		Bathrooms:    1,
		PropertyType: "apartment",
		YearBuilt:    1999,
	})
	require.NoError(t, err)
	return property
}

type notification struct {
	recipient   string
	recommender string
	property    string
}

type recordingNotifier struct {
	mu        sync.Mutex
	sent      []notification
	deadlines []bool
	err       error
	// release, when set, holds every notification until it is closed or ctx is done.
	release chan struct{}
}

func (n *recordingNotifier) NotifyRecommendation(
	ctx context.Context,
	recipient, recommender *model.User,
	property *model.Property,
) error {
	if n.release != nil {
		select {
		case <-n.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	_, hasDeadline := ctx.Deadline()
	n.deadlines = append(n.deadlines, hasDeadline)
	n.sent = append(n.sent, notification{
		recipient:   recipient.Email,
		recommender: recommender.Email,
		property:    property.Title,
	})
	return n.err
}

func (n *recordingNotifier) notifications() []notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	return append([]notification(nil), n.sent...)
}

func (n *recordingNotifier) awaitNotifications(t *testing.T, count int) []notification {
	t.Helper()

	require.Eventually(t, func() bool {
		return len(n.notifications()) == count
	}, time.Second, 5*time.Millisecond)
	return n.notifications()
}

var errMailDown = errors.New("smtp unavailable")
