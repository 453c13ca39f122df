package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kiosk_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kiosk_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "route"},
	)

	// RecommendationsTotal counts recommendation requests by outcome:
	// "ok", "empty" or "catalog_unavailable".
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kiosk_recommendations_total",
			Help: "Total number of recommendation requests by outcome",
		},
		[]string{"outcome"},
	)

	RecommendationFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kiosk_recommendation_fallbacks_total",
			Help: "Requests where no item matched style and the budget-only fallback was used",
		},
	)

	RankingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "kiosk_ranking_duration_seconds",
			Help:    "Time spent filtering and scoring the catalog",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	PoolCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kiosk_pool_cache_hits_total",
			Help: "Ranked pool cache hits",
		},
	)

	PoolCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kiosk_pool_cache_misses_total",
			Help: "Ranked pool cache misses",
		},
	)

	CatalogItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "kiosk_catalog_items",
			Help: "Number of items in the active catalog",
		},
	)

	CatalogSkippedRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "kiosk_catalog_skipped_rows",
			Help: "Rows dropped while normalizing the active catalog",
		},
	)
)

// RecordHTTPRequest records one finished HTTP request.
func RecordHTTPRequest(method, route string, status int, elapsed time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
