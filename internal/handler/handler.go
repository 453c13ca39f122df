package handler

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/actuallystonmai/stylist-kiosk/internal/service"
)

type Handler struct {
	service *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{service: svc}
}

// GET /
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Welcome to Evol Jewels Stylist Kiosk API"})
}

// GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	cat := h.service.Catalog()
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:         "ok",
		CatalogItems:   cat.Len(),
		CatalogVersion: cat.Version(),
	})
}

// write JSON response
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writes JSON error response.
func writeError(w http.ResponseWriter, status int, errCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:   errCode,
		Message: message,
	})
}
