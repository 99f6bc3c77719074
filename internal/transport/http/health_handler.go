package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
)

// HealthHandler handles health-related HTTP requests.
type HealthHandler struct {
	service DatasetServiceInterface
	version string
	started time.Time
	logger  *slog.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(service DatasetServiceInterface, version string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		service: service,
		version: version,
		started: time.Now(),
		logger:  logger.With(slog.String("handler", "health")),
	}
}

// HealthCheck handles GET /api/healthz. The server is healthy as soon
// as it serves requests; the payload reports whether a dataset is
// loaded so probes can distinguish cold instances.
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := map[string]any{
		"status":     "ok",
		"version":    h.version,
		"uptime":     time.Since(h.started).Round(time.Second).String(),
		"dataset":    false,
		"checked_at": time.Now().UTC().Format(time.RFC3339),
	}
	if summary, err := h.service.Summary(r.Context()); err == nil {
		status["dataset"] = true
		status["dataset_version"] = summary.Version
		status["record_count"] = summary.RowCount
	}
	render.JSON(w, r, status)
}
