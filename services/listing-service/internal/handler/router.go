package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/vasapolrittideah/property-listing-api/services/listing-service/internal/middleware"
	"github.com/vasapolrittideah/property-listing-api/shared/response"
)

const healthCheckTimeout = 2 * time.Second

// Routes builds the HTTP router. Everything except /health lives under /api/v1.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(h.logger))
	r.Use(middleware.Recoverer(h.logger))
	r.Use(chimiddleware.RequestSize(maxBodyBytes))

	// Must be set before any sub-router is mounted so that they inherit it.
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.NotFound)

	r.Get("/health", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)

		r.Get("/properties", h.ListProperties)
		r.Get("/properties/{id}", h.GetProperty)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(h.authUsecase, h.logger))

			r.Post("/properties", h.CreateProperty)
			r.Put("/properties/{id}", h.UpdateProperty)
			r.Delete("/properties/{id}", h.DeleteProperty)

			r.Get("/favorites", h.ListFavorites)
			r.Post("/favorites/{propertyId}", h.AddFavorite)
			r.Delete("/favorites/{propertyId}", h.RemoveFavorite)

			r.Post("/recommend", h.RecommendProperty)
			r.Get("/recommendations", h.ListRecommendations)
		})
	})

	return r
}

func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	response.Error(w, http.StatusNotFound, fmt.Sprintf("Can't find %s on this server!", r.URL.RequestURI()), "")
}

type healthResponse struct {
	Status string `json:"status"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	if err := h.healthChecker.Ping(ctx); err != nil {
		h.logger.Warn().Err(err).Msg("health check failed")
		response.JSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unhealthy"})
		return
	}

	response.JSON(w, http.StatusOK, healthResponse{Status: "healthy"})
}
