package metrics

import (
	"strconv"
	"sync"
	"time"

	"whalecopy/whalegate/pkg/config"
	"whalecopy/whalegate/pkg/polymarket"

	"github.com/prometheus/client_golang/prometheus"
)

// otherLabel replaces label values once the cardinality limit is reached.
const otherLabel = "other"

// Collector is the main orchestrator for all Prometheus metrics in whalegate.
// It manages metric registration and provides a single interface for
// recording metrics across components. A disabled collector records nothing.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	// Inbound request metrics
	requestMetrics *RequestMetrics

	// Upstream API metrics
	upstreamMetrics *UpstreamMetrics

	// Cardinality tracking for endpoint labels
	cardinalityLimiter *CardinalityLimiter
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{Enabled: true, Namespace: "whalegate"}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if len(cfg.DurationBuckets) == 0 {
		cfg.DurationBuckets = append([]float64(nil), config.DefaultDurationBuckets...)
	}

	return &Collector{
		config:             cfg,
		registry:           registry,
		requestMetrics:     NewRequestMetrics(cfg, registry),
		upstreamMetrics:    NewUpstreamMetrics(cfg, registry),
		cardinalityLimiter: NewCardinalityLimiter(64),
	}
}

// RecordRequest records metrics for a completed inbound request.
//
// Parameters:
//   - endpoint: logical endpoint requested ("" when none was resolved)
//   - status: HTTP status code written
//   - duration: total time spent serving the request
func (c *Collector) RecordRequest(endpoint string, status int, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	if endpoint == "" {
		endpoint = "none"
	} else if !c.cardinalityLimiter.Allow(endpoint) {
		endpoint = otherLabel
	}

	c.requestMetrics.RecordRequest(endpoint, strconv.Itoa(status), duration)
}

// RecordRejection records a request refused before reaching an upstream.
//
// Parameters:
//   - reason: "origin", "auth" or "validation"
func (c *Collector) RecordRejection(reason string) {
	if !c.config.Enabled {
		return
	}

	c.requestMetrics.RecordRejection(reason)
}

// ObserveUpstream records the outcome of one upstream call. It implements
// polymarket.Observer.
func (c *Collector) ObserveUpstream(upstream polymarket.Upstream, outcome string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.upstreamMetrics.Record(string(upstream), outcome, duration)
}

// UpdateUpstreamHealth updates the reachability gauge of an upstream API.
//
// The health metric is a gauge where 1=reachable, 0=unreachable.
func (c *Collector) UpdateUpstreamHealth(upstream polymarket.Upstream, healthy bool) {
	if !c.config.Enabled {
		return
	}

	c.upstreamMetrics.UpdateHealth(string(upstream), healthy)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label values.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the specified
// maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow checks if a label set is allowed. Returns true if the label set
// already exists or if we haven't reached the cardinality limit yet.
// Returns false if adding this label set would exceed the limit.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	// Double-check after acquiring write lock
	if _, exists := cl.current[labelSet]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
