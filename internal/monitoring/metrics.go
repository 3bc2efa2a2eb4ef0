package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Remote-store call metrics
var (
	storeRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shelflyfe_store_requests_total",
			Help: "Remote ingredient store requests by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	storeRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shelflyfe_store_request_duration_seconds",
			Help:    "Remote ingredient store request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)

// Outcome labels for store requests
const (
	OutcomeOK        = "ok"
	OutcomeHTTPError = "http_error"
	OutcomeTransport = "transport_error"
)

// Registry holds this process's collectors.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(storeRequests, storeRequestDuration)
}

// ObserveStoreRequest records one completed remote-store call.
func ObserveStoreRequest(endpoint, outcome string, elapsed time.Duration) {
	storeRequests.WithLabelValues(endpoint, outcome).Inc()
	storeRequestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}
