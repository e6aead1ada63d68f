package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stylo_http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stylo_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"method", "route"},
	)

	// RecommendationFallbacks counts responses served from the deterministic fallback payload.
	RecommendationFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stylo_recommendation_fallbacks_total",
			Help: "Total number of recommendations answered with the fallback payload",
		},
		[]string{"reason"},
	)

	RecommendationStreams = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stylo_recommendation_streams_total",
			Help: "Total number of recommendation streams by outcome",
		},
		[]string{"outcome"},
	)

	ImageAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stylo_image_attempts_total",
			Help: "Total number of image generation calls per candidate model",
		},
		[]string{"model", "outcome"},
	)

	ImageBackoffs = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stylo_image_backoffs_total",
			Help: "Total number of backoff waits between image generation attempts",
		},
	)

	ImageResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stylo_image_results_total",
			Help: "Total number of image generation requests by final outcome",
		},
		[]string{"outcome"},
	)
)

// StatusClass buckets an HTTP status code ("2xx", "5xx", ...).
func StatusClass(code int) string {
	switch {
	case code >= 100 && code < 200:
		return "1xx"
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500 && code < 600:
		return "5xx"
	default:
		return "0"
	}
}
