package handler

import (
	"fmt"
	"net/http"
	"time"

	"ott-admin/internal/domain"
	"ott-admin/internal/service"
	"ott-admin/pkg/logger"

	"github.com/go-chi/chi/v5"
)

const queryDateFormat = "2006-01-02"

// SubscriptionHandler serves the enriched subscription list and its CSV
// export
type SubscriptionHandler struct {
	subscriptions service.SubscriptionService
	logger        *logger.Logger
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(subscriptions service.SubscriptionService, log *logger.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions, logger: log}
}

// parseSubscriptionQuery reads the filter dimensions off the request.
// Unknown values pass through; the filter simply matches nothing.
func parseSubscriptionQuery(r *http.Request) (domain.SubscriptionQuery, error) {
	q := domain.DefaultSubscriptionQuery()
	params := r.URL.Query()

	q.Search = params.Get("search")
	if v := params.Get("status"); v != "" {
		q.Status = v
	}
	if v := params.Get("plan"); v != "" {
		q.Plan = v
	}
	if v := params.Get("auth_method"); v != "" {
		q.AuthMethod = v
	}
	if v := params.Get("payment_status"); v != "" {
		q.PaymentStatus = v
	}

	if v := params.Get("from"); v != "" {
		t, err := time.Parse(queryDateFormat, v)
		if err != nil {
			return q, fmt.Errorf("invalid from date %q, expected YYYY-MM-DD", v)
		}
		q.From = &t
	}
	if v := params.Get("to"); v != "" {
		t, err := time.Parse(queryDateFormat, v)
		if err != nil {
			return q, fmt.Errorf("invalid to date %q, expected YYYY-MM-DD", v)
		}
		q.To = &t
	}
	if q.From != nil && q.To != nil && q.To.Before(*q.From) {
		return q, fmt.Errorf("to date precedes from date")
	}

	return q, nil
}

// List handles GET /api/subscriptions
func (h *SubscriptionHandler) List(w http.ResponseWriter, r *http.Request) {
	query, err := parseSubscriptionQuery(r)
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "validation", err.Error(), h.logger)
		return
	}

	rows, err := h.subscriptions.ListEnriched(r.Context(), query)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list subscriptions")
		sendServiceError(w, err, h.logger)
		return
	}

	sendJSONResponse(w, http.StatusOK, map[string]interface{}{
		"subscriptions": rows,
		"count":         len(rows),
	}, h.logger)
}

// Export handles GET /api/subscriptions/export
func (h *SubscriptionHandler) Export(w http.ResponseWriter, r *http.Request) {
	query, err := parseSubscriptionQuery(r)
	if err != nil {
		sendErrorResponse(w, http.StatusBadRequest, "validation", err.Error(), h.logger)
		return
	}

	payload, filename, err := h.subscriptions.ExportCSV(r.Context(), query)
	if err != nil {
		h.logger.WithError(err).Error("Failed to export subscriptions")
		sendServiceError(w, err, h.logger)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(payload); err != nil {
		h.logger.WithError(err).Error("Failed to write CSV export")
	}
}

// RegisterRoutes registers subscription handler routes with the router
func (h *SubscriptionHandler) RegisterRoutes(r chi.Router) {
	r.Route("/subscriptions", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/export", h.Export)
	})
}
