package pkgmetrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "structlog"

// Failure kinds recorded by RequestFailuresTotal.
const (
	FailurePanic = "panic"
	FailureError = "error"
)

var (
	// HTTPRequestsTotal counts routed requests by method, route pattern and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of routed HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration measures routed request latency in seconds.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// RequestFailuresTotal counts failures logged by the request context
	// boundary, split by how they surfaced.
	RequestFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "request_failures_total",
			Help:      "Total number of requests that ended with an unhandled failure",
		},
		[]string{"kind"},
	)

	// EmitterStepsTotal counts entries written by the background emitter.
	EmitterStepsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emitter_steps_total",
			Help:      "Total number of background log steps emitted",
		},
	)
)

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
