// Package metrics defines the Prometheus metrics exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "holocron_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "holocron_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Favorites Metrics
	FavoritesAdded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "holocron_favorites_added_total",
			Help: "Total number of favorites created",
		},
		[]string{"kind"}, // "people", "planet"
	)

	FavoritesRemoved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "holocron_favorites_removed_total",
			Help: "Total number of favorites deleted",
		},
		[]string{"kind"},
	)

	FavoriteConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "holocron_favorite_conflicts_total",
			Help: "Total number of rejected duplicate favorites",
		},
		[]string{"kind"},
	)
)

// RecordHTTPRequest records one served request. route is the matched route
// pattern, not the raw path, to keep cardinality bounded.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
