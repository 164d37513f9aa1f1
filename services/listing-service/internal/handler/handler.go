package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/property-listing-api/services/listing-service/internal/middleware"
	"github.com/vasapolrittideah/property-listing-api/services/listing-service/internal/model"
	"github.com/vasapolrittideah/property-listing-api/services/listing-service/internal/usecase"
	"github.com/vasapolrittideah/property-listing-api/shared/validator"
)

// maxBodyBytes caps every JSON request body.
const maxBodyBytes = 10 << 10

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Handler serves the HTTP API of the listing service.
type Handler struct {
	authUsecase           usecase.AuthUsecase
	propertyUsecase       usecase.PropertyUsecase
	favoriteUsecase       usecase.FavoriteUsecase
	recommendationUsecase usecase.RecommendationUsecase
	healthChecker         HealthChecker
	validator             *validator.Validator
	logger                *zerolog.Logger
	exposeErrorDetail     bool
}

func NewHandler(
	authUsecase usecase.AuthUsecase,
	propertyUsecase usecase.PropertyUsecase,
	favoriteUsecase usecase.FavoriteUsecase,
	recommendationUsecase usecase.RecommendationUsecase,
	healthChecker HealthChecker,
	validator *validator.Validator,
	logger *zerolog.Logger,
	exposeErrorDetail bool,
) *Handler {
	return &Handler{
		authUsecase:           authUsecase,
		propertyUsecase:       propertyUsecase,
		favoriteUsecase:       favoriteUsecase,
		recommendationUsecase: recommendationUsecase,
		healthChecker:         healthChecker,
		validator:             validator,
		logger:                logger,
		exposeErrorDetail:     exposeErrorDetail,
	}
}

// decodeAndValidate reads a JSON body into dst and validates it. An empty body decodes
// as an empty object. The body is capped by the RequestSize middleware in Routes.
func (h *Handler) decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return &requestError{status: http.StatusRequestEntityTooLarge, message: "Request body too large", err: err}
		}

		return &requestError{status: http.StatusBadRequest, message: "Invalid request body", err: err}
	}

	return h.validator.Struct(dst)
}

func (h *Handler) currentUser(r *http.Request) (*model.User, error) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		return nil, usecase.ErrUnauthenticated
	}

	return user, nil
}
