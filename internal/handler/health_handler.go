package handler

import (
	"context"
	"net/http"
	"time"

	"ott-admin/pkg/database"
	"ott-admin/pkg/logger"
	"ott-admin/pkg/redis"
	"ott-admin/pkg/supabase"

	"github.com/go-chi/chi/v5"
)

// HealthHandler reports liveness of the process and its dependencies
type HealthHandler struct {
	db       *database.PostgresDB
	redis    *redis.Client
	supabase *supabase.Client
	logger   *logger.Logger
}

// NewHealthHandler creates a new health handler. redis and supabase may be
// nil when those dependencies are not configured.
func NewHealthHandler(db *database.PostgresDB, redisClient *redis.Client, supabaseClient *supabase.Client, log *logger.Logger) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient, supabase: supabaseClient, logger: log}
}

// Check handles GET /health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]string{}
	healthy := true

	if err := h.db.Health(ctx); err != nil {
		checks["database"] = "unhealthy"
		healthy = false
		h.logger.WithError(err).Error("Database health check failed")
	} else {
		checks["database"] = "healthy"
	}

	if h.redis != nil {
		if err := h.redis.Health(ctx); err != nil {
			// Cache loss degrades latency, not correctness
			checks["redis"] = "unhealthy"
			h.logger.WithError(err).Warn("Redis health check failed")
		} else {
			checks["redis"] = "healthy"
		}
	}

	if h.supabase != nil {
		if err := h.supabase.Health(ctx); err != nil {
			checks["supabase"] = "unhealthy"
			h.logger.WithError(err).Warn("Supabase health check failed")
		} else {
			checks["supabase"] = "healthy"
		}
	}

	status := http.StatusOK
	overall := "ok"
	if !healthy {
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}

	sendJSONResponse(w, status, map[string]interface{}{
		"status": overall,
		"checks": checks,
		"time":   time.Now().UTC().Format(time.RFC3339),
	}, h.logger)
}

// RegisterRoutes registers the health route with the router
func (h *HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.Check)
}
