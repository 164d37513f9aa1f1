package handler

import (
	"errors"
	"net/http"

	"github.com/vasapolrittideah/property-listing-api/services/listing-service/internal/middleware"
	"github.com/vasapolrittideah/property-listing-api/services/listing-service/internal/usecase"
	"github.com/vasapolrittideah/property-listing-api/shared/response"
	"github.com/vasapolrittideah/property-listing-api/shared/validator"
)

// requestError is a problem with the request itself, detected before any usecase runs.
type requestError struct {
	status  int
	message string
	err     error
}

func (e *requestError) Error() string {
	return e.message + ": " + e.err.Error()
}

func (e *requestError) Unwrap() error {
	return e.err
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *validator.ValidationError
		reqErr        *requestError
	)

	status, message := http.StatusInternalServerError, "Something went wrong"

	switch {
	case errors.As(err, &validationErr):
		status, message = http.StatusBadRequest, validationErr.Error()
	case errors.As(err, &reqErr):
		status, message = reqErr.status, reqErr.message
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		status, message = http.StatusBadRequest, "Email already in use"
	case errors.Is(err, usecase.ErrInvalidCredentials):
		status, message = http.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, usecase.ErrUnauthenticated):
		status, message = http.StatusUnauthorized, middleware.UnauthenticatedMessage
	case errors.Is(err, usecase.ErrPropertyNotFound):
		status, message = http.StatusNotFound, "Property not found"
	case errors.Is(err, usecase.ErrPropertyNotFoundOrUnauthorized):
		status, message = http.StatusNotFound, "Property not found or unauthorized"
	case errors.Is(err, usecase.ErrRecipientNotFound):
		status, message = http.StatusNotFound, "Recipient not found"
	default:
		h.logger.Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
	}

	detail := ""
	if h.exposeErrorDetail {
		detail = err.Error()
	}

	response.Error(w, status, message, detail)
}
