package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/actuallystonmai/stylist-kiosk/internal/domain"
)

const maxBodyBytes = 1 << 20

// POST /recommend
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	var req SurveyResponse
	if !decodeBody(w, r, &req) {
		return
	}
	if msg := validateRequest(&req); msg != "" {
		writeError(w, http.StatusBadRequest, "invalid_parameter", msg)
		return
	}

	result, err := h.service.Recommend(r.Context(), req.Query())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toJewelryItems(result.Items))
}

// POST /recommend/batch
func (h *Handler) GetBatchRecommendations(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if msg := validateRequest(&req); msg != "" {
		writeError(w, http.StatusBadRequest, "invalid_parameter", msg)
		return
	}

	queries := make([]domain.Query, len(req.Queries))
	for i, q := range req.Queries {
		queries[i] = q.Query()
	}

	result, err := h.service.RecommendBatch(r.Context(), queries)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := BatchResponse{
		Results:     make([]BatchItemResponse, len(result.Results)),
		Summary:     result.Summary,
		GeneratedAt: result.GeneratedAt,
	}
	for i, res := range result.Results {
		resp.Results[i] = BatchItemResponse{
			Index:   res.Index,
			Status:  string(res.Status),
			Error:   res.Error,
			Message: res.Message,
		}
		if res.Status == domain.StatusSuccess {
			resp.Results[i].Recommendations = toJewelryItems(res.Recommendations)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Request body must be valid JSON")
		return false
	}
	return true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrCatalogUnavailable):
		writeError(w, http.StatusServiceUnavailable, "catalog_unavailable",
			"Jewelry database not available")
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		writeError(w, http.StatusServiceUnavailable, "request_timeout",
			"Request timed out, please try again")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
