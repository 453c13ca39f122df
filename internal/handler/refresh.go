package handler

import (
	"net/http"

	"github.com/actuallystonmai/stylist-kiosk/internal/logging"
)

// POST /ai/refresh
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Refresh(r.Context())
	if err != nil {
		logging.Error().Err(err).Msg("catalog refresh failed")
		writeError(w, http.StatusInternalServerError, "refresh_failed", "Catalog refresh failed")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
