package handler

import (
	"net/http"
	"strconv"

	"ott-admin/internal/repository"
	"ott-admin/internal/service"
	"ott-admin/pkg/logger"

	"github.com/go-chi/chi/v5"
)

const defaultAuthLogLimit = 100

// DashboardHandler serves the overview summary plus the raw payment and
// auth-log feeds behind it
type DashboardHandler struct {
	dashboard service.DashboardService
	payments  service.PaymentProvider
	authLogs  repository.AuthLogRepository
	logger    *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	dashboard service.DashboardService,
	payments service.PaymentProvider,
	authLogs repository.AuthLogRepository,
	log *logger.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		dashboard: dashboard,
		payments:  payments,
		authLogs:  authLogs,
		logger:    log,
	}
}

// Summary handles GET /api/dashboard/summary
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboard.Summary(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to build dashboard summary")
		sendServiceError(w, err, h.logger)
		return
	}

	sendJSONResponse(w, http.StatusOK, summary, h.logger)
}

// Payments handles GET /api/payments
func (h *DashboardHandler) Payments(w http.ResponseWriter, r *http.Request) {
	payments := h.payments.Snapshot()
	sendJSONResponse(w, http.StatusOK, map[string]interface{}{
		"payments": payments,
		"count":    len(payments),
	}, h.logger)
}

// AuthLogs handles GET /api/auth-logs
func (h *DashboardHandler) AuthLogs(w http.ResponseWriter, r *http.Request) {
	limit := defaultAuthLogLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 1000 {
			sendErrorResponse(w, http.StatusBadRequest, "validation", "limit must be between 1 and 1000", h.logger)
			return
		}
		limit = n
	}

	logs, err := h.authLogs.ListRecent(r.Context(), limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list auth logs")
		sendServiceError(w, err, h.logger)
		return
	}

	sendJSONResponse(w, http.StatusOK, map[string]interface{}{
		"logs":  logs,
		"count": len(logs),
	}, h.logger)
}

// RegisterRoutes registers dashboard handler routes with the router
func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard/summary", h.Summary)
	r.Get("/payments", h.Payments)
	r.Get("/auth-logs", h.AuthLogs)
}
