package metrics

import (
	"time"

	"whalecopy/whalegate/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// RequestMetrics tracks inbound proxy requests.
//
// Metrics:
//   - whalegate_requests_total: Request count by endpoint and status code
//   - whalegate_request_duration_seconds: Request duration histogram by endpoint
//   - whalegate_rejections_total: Requests refused by origin, auth or validation
type RequestMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	rejectionsTotal *prometheus.CounterVec
}

// NewRequestMetrics creates and registers request metrics with the provided registry.
func NewRequestMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *RequestMetrics {
	rm := &RequestMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "requests_total",
				Help:      "Total number of proxy requests processed",
			},
			[]string{"endpoint", "status"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "request_duration_seconds",
				Help:      "Duration of proxy requests in seconds",
				Buckets:   cfg.DurationBuckets,
			},
			[]string{"endpoint"},
		),

		rejectionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "rejections_total",
				Help:      "Total number of requests rejected before an upstream call",
			},
			[]string{"reason"},
		),
	}

	registry.MustRegister(
		rm.requestsTotal,
		rm.requestDuration,
		rm.rejectionsTotal,
	)

	return rm
}

// RecordRequest records metrics for a completed request.
func (rm *RequestMetrics) RecordRequest(endpoint, status string, duration time.Duration) {
	rm.requestsTotal.WithLabelValues(endpoint, status).Inc()
	rm.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// RecordRejection increments the rejection counter for reason.
func (rm *RequestMetrics) RecordRejection(reason string) {
	rm.rejectionsTotal.WithLabelValues(reason).Inc()
}
