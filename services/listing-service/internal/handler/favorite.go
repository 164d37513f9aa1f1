package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vasapolrittideah/property-listing-api/shared/response"
)

func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	favorites, err := h.favoriteUsecase.ListFavorites(r.Context(), user)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, favorites)
}

func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.favoriteUsecase.AddFavorite(r.Context(), user.ID.Hex(), chi.URLParam(r, "propertyId")); err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Message(w, http.StatusOK, "Added to favorites")
}

func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	user, err := h.currentUser(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.favoriteUsecase.RemoveFavorite(r.Context(), user.ID.Hex(), chi.URLParam(r, "propertyId")); err != nil {
		h.writeError(w, r, err)
		return
	}

	response.Message(w, http.StatusOK, "Removed from favorites")
}
