package handler

import (
	"net/http"

	"github.com/tagihin/backend/internal/repository"
)

// HealthHandler handles the health check endpoint.
type HealthHandler struct {
	store repository.ProfileStore
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(store repository.ProfileStore) *HealthHandler {
	return &HealthHandler{store: store}
}

// Check handles GET /health.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status": "ok",
	}

	code := http.StatusOK
	if err := h.store.Ping(r.Context()); err != nil {
		status["store"] = "error"
		status["status"] = "degraded"
		code = http.StatusServiceUnavailable
	} else {
		status["store"] = "ok"
	}

	JSON(w, code, status)
}
