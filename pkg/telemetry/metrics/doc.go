// Package metrics provides Prometheus metrics collection for whalegate.
//
// # Metrics
//
//	whalegate_requests_total{endpoint,status}          counter
//	whalegate_request_duration_seconds{endpoint}       histogram
//	whalegate_rejections_total{reason}                 counter
//	whalegate_upstream_requests_total{upstream,outcome} counter
//	whalegate_upstream_duration_seconds{upstream}      histogram
//	whalegate_upstream_up{upstream}                    gauge
//
// Rejection reasons are "origin", "auth" and "validation". Upstream outcomes
// are "success", "status_error", "transport_error" and "malformed".
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	client := polymarket.NewClient(cfg.Upstreams, polymarket.WithObserver(collector))
//	mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
//
// # Cardinality Management
//
// The endpoint label comes from caller input before validation. The
// collector admits a bounded number of distinct values and records the rest
// as "other".
package metrics
