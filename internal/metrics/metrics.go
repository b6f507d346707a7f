// Package metrics defines Prometheus collectors for the calculator server.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Calculator metrics
	CalcRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calc_requests_total",
			Help: "Total number of dispatched calculator requests",
		},
		[]string{"action", "status"},
	)

	CalcConnectionsGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "calc_connections",
			Help: "Current number of open calculator WebSocket connections",
		},
	)

	TracksRenderedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracks_rendered_total",
			Help: "Total number of rendered track images",
		},
		[]string{"format"},
	)

	TrackRenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "track_render_duration_seconds",
			Help:    "Track image render duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// RecordHTTPRequest records one served HTTP request.
func RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordCalcRequest records one dispatched calculator request.
func RecordCalcRequest(action string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	CalcRequestsTotal.WithLabelValues(action, status).Inc()
}

// RecordTrackRender records one rendered track image.
func RecordTrackRender(format string, duration time.Duration) {
	TracksRenderedTotal.WithLabelValues(format).Inc()
	TrackRenderDuration.Observe(duration.Seconds())
}
