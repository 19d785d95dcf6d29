package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// SweepRunsTotal counts completed overdue sweep runs.
	SweepRunsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "maintenance_sweep_runs_total",
			Help: "Total number of completed overdue sweep runs",
		},
	)

	// OverdueEvents is the overdue event count as of the last sweep.
	OverdueEvents = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "maintenance_overdue_events",
			Help: "Number of overdue maintenance events found by the last sweep",
		},
	)

	// NotificationsTotal counts outbound notifications by status (sent, failed).
	NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "maintenance_notifications_total",
			Help: "Total number of outbound maintenance notifications by status",
		},
		[]string{"status"},
	)
)

var (
	numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)
	initOnce           sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, SweepRunsTotal, OverdueEvents, NotificationsTotal)
	})
}

// NormalizePath reduces cardinality by replacing numeric path segments with {id}.
// E.g. /assets/123/archive -> /assets/{id}/archive.
func NormalizePath(path string) string {
	return numericPathSegment.ReplaceAllString(path, "/{id}$1")
}

// RecordRequest records duration and count for an HTTP request. Call from
// middleware with method, path, statusCode, duration.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// IncSweepRuns increments the sweep run counter (call once per completed run).
func IncSweepRuns() {
	SweepRunsTotal.Inc()
}

// SetOverdueEvents records the overdue count found by a sweep.
func SetOverdueEvents(n int) {
	OverdueEvents.Set(float64(n))
}

// IncNotifications increments the notification counter for the given status (sent, failed).
func IncNotifications(status string) {
	NotificationsTotal.WithLabelValues(status).Inc()
}
