package handler

import (
	"net/http"

	"github.com/tagihin/backend/internal/domain"
)

// PlansHandler handles the subscription item catalog.
type PlansHandler struct{}

// NewPlansHandler creates a new PlansHandler.
func NewPlansHandler() *PlansHandler {
	return &PlansHandler{}
}

// List handles GET /api/plans.
func (h *PlansHandler) List(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, domain.AvailableItems())
}
