package metrics

import (
	"time"

	"whalecopy/whalegate/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// UpstreamMetrics tracks calls to the Polymarket APIs.
//
// Metrics:
//   - whalegate_upstream_requests_total: Upstream call count by upstream and outcome
//   - whalegate_upstream_duration_seconds: Upstream call latency
//   - whalegate_upstream_up: Upstream reachability (1=reachable, 0=unreachable)
type UpstreamMetrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	health   *prometheus.GaugeVec
}

// NewUpstreamMetrics creates and registers upstream metrics with the provided registry.
func NewUpstreamMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *UpstreamMetrics {
	um := &UpstreamMetrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "upstream_requests_total",
				Help:      "Total number of upstream API calls by outcome",
			},
			[]string{"upstream", "outcome"},
		),

		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "upstream_duration_seconds",
				Help:      "Upstream API call latency in seconds",
				Buckets:   cfg.DurationBuckets,
			},
			[]string{"upstream"},
		),

		health: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Name:      "upstream_up",
				Help:      "Upstream reachability (1=reachable, 0=unreachable)",
			},
			[]string{"upstream"},
		),
	}

	registry.MustRegister(
		um.requests,
		um.latency,
		um.health,
	)

	return um
}

// Record records a single upstream call.
func (um *UpstreamMetrics) Record(upstream, outcome string, duration time.Duration) {
	um.requests.WithLabelValues(upstream, outcome).Inc()
	um.latency.WithLabelValues(upstream).Observe(duration.Seconds())
}

// UpdateHealth sets the reachability gauge.
func (um *UpstreamMetrics) UpdateHealth(upstream string, healthy bool) {
	value := 0.0
	if healthy {
		value = 1.0
	}
	um.health.WithLabelValues(upstream).Set(value)
}
