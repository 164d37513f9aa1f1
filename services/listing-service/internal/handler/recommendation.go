package handler

import (
	"net/http"

	"github.com/vasapolrittideah/property-listing-api/services/listing-service/internal/payload"
	"github.com/vasapolrittideah/property-listing-api/shared/response"
)

func (h *Handler) RecommendProperty(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req payload.RecommendRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	err = h.recommendationUsecase.RecommendProperty(r.Context(), user, req.PropertyID, req.RecipientEmail)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Message(w, http.StatusOK, "Property recommended successfully")
}

func (h *Handler) ListRecommendations(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	details, err := h.recommendationUsecase.ListRecommendations(r.Context(), user)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, payload.NewRecommendationResponses(details))
}
