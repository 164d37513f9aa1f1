package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/property-listing-api/services/listing-service/internal/model"
	"github.com/vasapolrittideah/property-listing-api/services/listing-service/internal/usecase"
	"github.com/vasapolrittideah/property-listing-api/shared/response"
)

type fakeAuthUsecase struct {
	usecase.AuthUsecase
	users map[string]*model.User
	err   error
}

func (f *fakeAuthUsecase) Authenticate(_ context.Context, token string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if user, ok := f.users[token]; ok {
		return user, nil
	}
	return nil, usecase.ErrUnauthenticated
}

func echoUser(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		http.Error(w, "no user", http.StatusInternalServerError)
		return
	}
	_, _ = w.Write([]byte(user.Email))
}

func TestAuthenticate(t *testing.T) {
	logger := zerolog.Nop()
	user := &model.User{ID: bson.NewObjectID(), Email: "a@x.com"}
	authUsecase := &fakeAuthUsecase{users: map[string]*model.User{"good-token": user}}
	handler := Authenticate(authUsecase, &logger)(http.HandlerFunc(echoUser))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "valid", header: "Bearer good-token", status: http.StatusOK},
		{name: "lowercase scheme", header: "bearer good-token", status: http.StatusOK},
		{name: "missing header", header: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good-token", status: http.StatusUnauthorized},
		{name: "no token", header: "Bearer ", status: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer bad-token", status: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/favorites", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			require.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				require.Equal(t, "a@x.com", rec.Body.String())
				return
			}

			var body response.ErrorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.False(t, body.Success)
			require.Equal(t, UnauthenticatedMessage, body.Message)
			require.Equal(t, http.StatusUnauthorized, body.StatusCode)
		})
	}
}

func TestAuthenticate_StoreFailureIsStillUnauthorized(t *testing.T) {
	var logs bytes.Buffer
	logger := zerolog.New(&logs)
	authUsecase := &fakeAuthUsecase{err: errors.New("connection reset")}
	handler := Authenticate(authUsecase, &logger)(http.HandlerFunc(echoUser))

	req := httptest.NewRequest(http.MethodGet, "/favorites", nil)
	req.Header.Set("Authorization", "Bearer any")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, logs.String(), "connection reset")
}

func TestUserFromContext_Empty(t *testing.T) {
	_, ok := UserFromContext(context.Background())
	require.False(t, ok)

	_, ok = UserFromContext(WithUser(context.Background(), nil))
	require.False(t, ok)
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = chimiddleware.GetReqID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, seen)
	require.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "client-id")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, "client-id", seen)
	require.Equal(t, "client-id", rec.Header().Get(RequestIDHeader))
}

func TestLogger(t *testing.T) {
	var logs bytes.Buffer
	logger := zerolog.New(&logs)
	handler := RequestID(Logger(&logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/properties", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(logs.Bytes(), &entry))
	require.Equal(t, "req-1", entry["request_id"])
	require.Equal(t, "POST", entry["method"])
	require.Equal(t, "/api/v1/properties", entry["path"])
	require.EqualValues(t, http.StatusTeapot, entry["status"])
	require.EqualValues(t, len("short and stout"), entry["bytes"])
}

func TestLogger_AttachesLoggerToRequest(t *testing.T) {
	var logs bytes.Buffer
	logger := zerolog.New(&logs)
	handler := Logger(&logger)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		hlog.FromRequest(r).Info().Msg("inside handler")
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Contains(t, logs.String(), "inside handler")
	require.Contains(t, logs.String(), `"status":200`)
}

func TestRecoverer(t *testing.T) {
	var logs bytes.Buffer
	logger := zerolog.New(&logs)
	handler := Recoverer(&logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body response.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Something went wrong", body.Message)
	require.Contains(t, logs.String(), "boom")
}
