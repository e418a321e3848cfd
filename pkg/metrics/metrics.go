package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ReqCount counts HTTP requests by method, path and status.
	ReqCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// ReqDuration tracks request latency by method and path.
	ReqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "app_request_duration_seconds",
			Help: "Request duration seconds",
		},
		[]string{"method", "path"},
	)

	// IntegrityViolations counts stored observations found outside their
	// metric type bounds by the nightly scan.
	IntegrityViolations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "app_observation_integrity_violations_total",
			Help: "Observations stored outside their metric type bounds",
		},
		[]string{"metric_type"},
	)
)

func InitMetrics() {
	prometheus.MustRegister(ReqCount, ReqDuration, IntegrityViolations)
}
