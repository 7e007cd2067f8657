package handler

import (
	"net/http"

	"ott-admin/internal/service"
	"ott-admin/pkg/logger"

	"github.com/go-chi/chi/v5"
)

// UserHandler serves subscriber lists, stats and activation toggles
type UserHandler struct {
	subscribers service.SubscriberService
	logger      *logger.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(subscribers service.SubscriberService, log *logger.Logger) *UserHandler {
	return &UserHandler{subscribers: subscribers, logger: log}
}

// List handles GET /api/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.subscribers.List(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list users")
		sendServiceError(w, err, h.logger)
		return
	}

	sendJSONResponse(w, http.StatusOK, map[string]interface{}{
		"users": users,
		"count": len(users),
	}, h.logger)
}

// Stats handles GET /api/users/stats
func (h *UserHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.subscribers.Stats(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to compute user stats")
		sendServiceError(w, err, h.logger)
		return
	}

	sendJSONResponse(w, http.StatusOK, stats, h.logger)
}

// Activate handles POST /api/users/{id}/activate
func (h *UserHandler) Activate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

// Deactivate handles POST /api/users/{id}/deactivate
func (h *UserHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

func (h *UserHandler) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	id := chi.URLParam(r, "id")
	if id == "" {
		sendErrorResponse(w, http.StatusBadRequest, "validation", "user id is required", h.logger)
		return
	}

	user, err := h.subscribers.SetActive(r.Context(), id, active)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", id).Error("Failed to update user status")
		sendServiceError(w, err, h.logger)
		return
	}

	sendJSONResponse(w, http.StatusOK, user, h.logger)
}

// RegisterRoutes registers user handler routes with the router
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/stats", h.Stats)
		r.Post("/{id}/activate", h.Activate)
		r.Post("/{id}/deactivate", h.Deactivate)
	})
}
