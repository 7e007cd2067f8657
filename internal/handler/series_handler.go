package handler

import (
	"encoding/json"
	"net/http"

	"ott-admin/internal/domain"
	"ott-admin/internal/service"
	"ott-admin/pkg/logger"

	"github.com/go-chi/chi/v5"
)

// SeriesHandler manages the series catalog endpoints
type SeriesHandler struct {
	series service.SeriesService
	logger *logger.Logger
}

// NewSeriesHandler creates a new series handler
func NewSeriesHandler(series service.SeriesService, log *logger.Logger) *SeriesHandler {
	return &SeriesHandler{series: series, logger: log}
}

// List handles GET /api/series
func (h *SeriesHandler) List(w http.ResponseWriter, r *http.Request) {
	series, err := h.series.List(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list series")
		sendServiceError(w, err, h.logger)
		return
	}

	sendJSONResponse(w, http.StatusOK, map[string]interface{}{
		"series": series,
		"count":  len(series),
	}, h.logger)
}

// Get handles GET /api/series/{id}
func (h *SeriesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	series, episodes, err := h.series.Get(r.Context(), id)
	if err != nil {
		sendServiceError(w, err, h.logger)
		return
	}

	sendJSONResponse(w, http.StatusOK, map[string]interface{}{
		"series":   series,
		"episodes": episodes,
	}, h.logger)
}

func decodeSeriesInput(r *http.Request) (domain.SeriesInput, error) {
	var input domain.SeriesInput
	err := json.NewDecoder(r.Body).Decode(&input)
	return input, err
}

// Publish handles POST /api/series
func (h *SeriesHandler) Publish(w http.ResponseWriter, r *http.Request) {
	input, err := decodeSeriesInput(r)
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "validation", "invalid request body", h.logger)
		return
	}

	series, err := h.series.Publish(r.Context(), input)
	if err != nil {
		sendServiceError(w, err, h.logger)
		return
	}

	sendJSONResponse(w, http.StatusCreated, series, h.logger)
}

// ComingSoon handles POST /api/series/coming-soon
func (h *SeriesHandler) ComingSoon(w http.ResponseWriter, r *http.Request) {
	input, err := decodeSeriesInput(r)
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "validation", "invalid request body", h.logger)
		return
	}

	series, err := h.series.SaveComingSoon(r.Context(), input)
	if err != nil {
		sendServiceError(w, err, h.logger)
		return
	}

	sendJSONResponse(w, http.StatusCreated, series, h.logger)
}

// Update handles PUT /api/series/{id}
func (h *SeriesHandler) Update(w http.ResponseWriter, r *http.Request) {
	input, err := decodeSeriesInput(r)
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "validation", "invalid request body", h.logger)
		return
	}

	series, err := h.series.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		sendServiceError(w, err, h.logger)
		return
	}

	sendJSONResponse(w, http.StatusOK, series, h.logger)
}

// Delete handles DELETE /api/series/{id}
func (h *SeriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.series.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		sendServiceError(w, err, h.logger)
		return
	}

	sendJSONResponse(w, http.StatusOK, map[string]interface{}{"deleted": true}, h.logger)
}

// visibilityRequest is the body for the visibility toggle
type visibilityRequest struct {
	Visible bool `json:"visible"`
}

// SetVisibility handles POST /api/series/{id}/visibility
func (h *SeriesHandler) SetVisibility(w http.ResponseWriter, r *http.Request) {
	var req visibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "validation", "invalid request body", h.logger)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.series.SetVisibility(r.Context(), id, req.Visible); err != nil {
		sendServiceError(w, err, h.logger)
		return
	}

	sendJSONResponse(w, http.StatusOK, map[string]interface{}{
		"id":      id,
		"visible": req.Visible,
	}, h.logger)
}

// featuredRequest is the body for the featured toggle. A null or empty
// series_id clears the flag everywhere.
type featuredRequest struct {
	SeriesID *string `json:"series_id"`
}

// SetFeatured handles PUT /api/series/featured
func (h *SeriesHandler) SetFeatured(w http.ResponseWriter, r *http.Request) {
	var req featuredRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "validation", "invalid request body", h.logger)
		return
	}

	if req.SeriesID == nil || *req.SeriesID == "" {
		if err := h.series.ClearFeatured(r.Context()); err != nil {
			sendServiceError(w, err, h.logger)
			return
		}
		sendJSONResponse(w, http.StatusOK, map[string]interface{}{"featured": nil}, h.logger)
		return
	}

	if err := h.series.SetFeatured(r.Context(), *req.SeriesID); err != nil {
		sendServiceError(w, err, h.logger)
		return
	}

	sendJSONResponse(w, http.StatusOK, map[string]interface{}{"featured": *req.SeriesID}, h.logger)
}

// Genres handles GET /api/genres
func (h *SeriesHandler) Genres(w http.ResponseWriter, r *http.Request) {
	sendJSONResponse(w, http.StatusOK, map[string]interface{}{
		"genres":  domain.Genres,
		"popular": domain.PopularGenres,
		"default": domain.DefaultGenre,
	}, h.logger)
}

// RegisterRoutes registers series handler routes with the router
func (h *SeriesHandler) RegisterRoutes(r chi.Router) {
	r.Route("/series", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Publish)
		r.Post("/coming-soon", h.ComingSoon)
		r.Put("/featured", h.SetFeatured)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
		r.Post("/{id}/visibility", h.SetVisibility)
	})
	r.Get("/genres", h.Genres)
}
