package handlers

import (
	"net/http"

	"github.com/shaONme/padel-admin/services"
)

type StatusHandler struct {
	statusService *services.StatusService
}

func NewStatusHandler(statusService *services.StatusService) *StatusHandler {
	return &StatusHandler{statusService: statusService}
}

// HealthHandler обрабатывает GET /health.
func (h *StatusHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	status := h.statusService.Check(r.Context())
	if err := writeJSON(w, http.StatusOK, status, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
