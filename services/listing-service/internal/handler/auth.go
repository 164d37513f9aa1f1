package handler

import (
	"net/http"

	"github.com/vasapolrittideah/property-listing-api/services/listing-service/internal/payload"
	"github.com/vasapolrittideah/property-listing-api/services/listing-service/internal/usecase"
	"github.com/vasapolrittideah/property-listing-api/shared/response"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req payload.RegisterRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.authUsecase.Register(r.Context(), usecase.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, payload.AuthResponse{
		Token: result.Token,
		User:  payload.NewUserResponse(result.User),
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	result, err := h.authUsecase.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, payload.AuthResponse{
		Token: result.Token,
		User:  payload.NewUserResponse(result.User),
	})
}
