// Package metrics exposes the Prometheus collectors of the API.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Related-content tag sources
const (
	TagSourceQuery  = "query"
	TagSourceStored = "stored"
	TagSourceNone   = "none"
)

var (
	// HTTPRequestsTotal counts handled requests by method, route and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blogify_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration tracks request latency by method and route
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "blogify_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// RelatedRequestsTotal counts related-content lookups by where the
	// source tags came from
	RelatedRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blogify_related_requests_total",
			Help: "Total number of related-content lookups by tag source",
		},
		[]string{"category", "tag_source"},
	)

	// ContentMutationsTotal counts create, update and delete operations
	ContentMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blogify_content_mutations_total",
			Help: "Total number of content mutations",
		},
		[]string{"kind", "operation"},
	)

	// ImagesStoredTotal counts image files written to the upload directory
	ImagesStoredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blogify_images_stored_total",
			Help: "Total number of images written to disk",
		},
		[]string{"kind"},
	)
)

// RecordRequest records one handled HTTP request
func RecordRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordRelated records the tag source used by a related-content lookup
func RecordRelated(category, tagSource string) {
	RelatedRequestsTotal.WithLabelValues(category, tagSource).Inc()
}

// RecordMutation records a create, update or delete on a resource kind
func RecordMutation(kind, operation string) {
	ContentMutationsTotal.WithLabelValues(kind, operation).Inc()
}

// RecordImageStored records an image written for a kind such as "post" or "profile"
func RecordImageStored(kind string) {
	ImagesStoredTotal.WithLabelValues(kind).Inc()
}
