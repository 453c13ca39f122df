package domain

import "time"

type RecommendationResult struct {
	Items    []Item
	Pool     int
	Fallback bool
	CacheHit bool
}

type BatchStatus string

const (
	StatusSuccess BatchStatus = "success"
	StatusFailed  BatchStatus = "failed"
)

type BatchItemResult struct {
	Index           int         `json:"index"`
	Recommendations []Item      `json:"recommendations,omitempty"`
	Status          BatchStatus `json:"status"`
	Error           string      `json:"error,omitempty"`
	Message         string      `json:"message,omitempty"`
}

type BatchSummary struct {
	SuccessCount     int   `json:"success_count"`
	FailedCount      int   `json:"failed_count"`
	ProcessingTimeMs int64 `json:"processing_time_ms"`
}

type BatchResponse struct {
	Results     []BatchItemResult `json:"results"`
	Summary     BatchSummary      `json:"summary"`
	GeneratedAt string            `json:"generated_at"`
}

type RefreshStatus string

const (
	RefreshOK     RefreshStatus = "ok"
	RefreshNoData RefreshStatus = "no_data"
)

type RefreshResult struct {
	Status   RefreshStatus `json:"status"`
	Count    int           `json:"count"`
	Mirrored bool          `json:"mirrored"`
	Version  string        `json:"version,omitempty"`
	LoadedAt time.Time     `json:"loaded_at"`
}
