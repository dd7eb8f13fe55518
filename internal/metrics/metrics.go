// Package metrics exposes the Prometheus collectors for the service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "meetingd",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "meetingd",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "meetingd",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	toolInvocations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "meetingd",
			Subsystem: "tools",
			Name:      "invocations_total",
			Help:      "Total number of tool invocations.",
		},
		[]string{"tool", "status"},
	)

	toolDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "meetingd",
			Subsystem: "tools",
			Name:      "invocation_duration_seconds",
			Help:      "Duration of tool invocations.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"tool"},
	)

	serviceResolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "meetingd",
			Subsystem: "mesh",
			Name:      "resolutions_total",
			Help:      "Total number of service resolutions through the mesh.",
		},
		[]string{"kind", "outcome"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		toolInvocations,
		toolDuration,
		serviceResolutions,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// IncrementInFlight bumps the in-flight HTTP request gauge.
func IncrementInFlight() { httpInFlight.Inc() }

// DecrementInFlight drops the in-flight HTTP request gauge.
func DecrementInFlight() { httpInFlight.Dec() }

// RecordHTTPRequest records one handled HTTP request.
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequests.WithLabelValues(method, path, status).Inc()
	httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordToolInvocation records one tool invocation by qualified name.
func RecordToolInvocation(tool string, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	if duration <= 0 {
		duration = time.Millisecond
	}
	toolInvocations.WithLabelValues(tool, status).Inc()
	toolDuration.WithLabelValues(tool).Observe(duration.Seconds())
}

// RecordServiceResolution records one mesh resolution outcome.
func RecordServiceResolution(kind string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	serviceResolutions.WithLabelValues(kind, outcome).Inc()
}
