package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/enterprisellm/orchestrator/internal/models"
	"github.com/enterprisellm/orchestrator/internal/store"
)

// HealthHandler serves GET /health.
type HealthHandler struct {
	store   store.Store
	version string
	started time.Time
}

func NewHealthHandler(st store.Store, version string) *HealthHandler {
	return &HealthHandler{store: st, version: version, started: time.Now()}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "healthy"
	checks := map[string]string{"store": "ok"}
	code := http.StatusOK

	if err := h.store.Ping(ctx); err != nil {
		status = "degraded"
		checks["store"] = err.Error()
		code = http.StatusServiceUnavailable
	}

	models.WriteJSON(w, code, models.HealthResponse{
		Status:    status,
		Version:   h.version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		UptimeSec: time.Since(h.started).Seconds(),
		Checks:    checks,
	})
}
