package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/property-listing-api/services/listing-service/internal/model"
	"github.com/vasapolrittideah/property-listing-api/services/listing-service/internal/usecase"
	"github.com/vasapolrittideah/property-listing-api/shared/response"
)

// UnauthenticatedMessage is the only message a client ever sees when authentication
// fails, whatever the reason was.
const UnauthenticatedMessage = "Please authenticate"

type userContextKey struct{}

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext returns the user attached by Authenticate.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userContextKey{}).(*model.User)
	return user, ok && user != nil
}

// Authenticate rejects requests without a valid bearer token and attaches the token's
// user to the request context otherwise.
func Authenticate(authUsecase usecase.AuthUsecase, logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r)
			if err != nil {
				logger.Debug().Err(err).Str("path", r.URL.Path).Msg("authentication failed")
				response.Error(w, http.StatusUnauthorized, UnauthenticatedMessage, "")
				return
			}

			user, err := authUsecase.Authenticate(r.Context(), token)
			if err != nil {
				if !errors.Is(err, usecase.ErrUnauthenticated) {
					logger.Error().Err(err).Msg("failed to resolve authenticated user")
				} else {
					logger.Debug().Err(err).Str("path", r.URL.Path).Msg("authentication failed")
				}
				response.Error(w, http.StatusUnauthorized, UnauthenticatedMessage, "")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errors.New("missing authorization header")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errors.New("invalid authorization header format")
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errors.New("empty bearer token")
	}

	return token, nil
}
