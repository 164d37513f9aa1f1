package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vasapolrittideah/property-listing-api/services/listing-service/internal/payload"
	"github.com/vasapolrittideah/property-listing-api/shared/response"
)

func (h *Handler) ListProperties(w http.ResponseWriter, r *http.Request) {
	properties, err := h.propertyUsecase.ListProperties(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, payload.ListPropertiesResponse{Properties: properties})
}

func (h *Handler) GetProperty(w http.ResponseWriter, r *http.Request) {
	property, err := h.propertyUsecase.GetProperty(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, property)
}

func (h *Handler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req payload.CreatePropertyRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	property, err := h.propertyUsecase.CreateProperty(r.Context(), user.ID, req.Params())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, property)
}

func (h *Handler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req payload.UpdatePropertyRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	property, err := h.propertyUsecase.UpdateProperty(r.Context(), chi.URLParam(r, "id"), user.ID.Hex(), req.Params())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, property)
}

func (h *Handler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.propertyUsecase.DeleteProperty(r.Context(), chi.URLParam(r, "id"), user.ID.Hex()); err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Message(w, http.StatusOK, "Property deleted successfully")
}
