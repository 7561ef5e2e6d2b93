package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/crisgp1/cliquealo.mx-sub002/pkg/postgres"
)

const serviceName = "credit-service"

// HealthHandler serves liveness and readiness probes over HTTP.
type HealthHandler struct {
	db     postgres.Pinger
	logger *slog.Logger
}

// NewHealthHandler creates a health check HTTP handler. Readiness pings db.
func NewHealthHandler(db postgres.Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

func (h *HealthHandler) liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": serviceName,
	})
}

func (h *HealthHandler) readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := postgres.HealthCheck(ctx, h.db); err != nil {
		h.logger.WarnContext(ctx, "readiness check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":  "unavailable",
			"service": serviceName,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ready",
		"service": serviceName,
	})
}
