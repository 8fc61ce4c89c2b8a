// Package tracing provides OpenTelemetry distributed tracing for whalegate.
//
// # Overview
//
// New installs an SDK tracer provider that exports spans over OTLP gRPC and
// sets W3C Trace Context and Baggage as the global propagator. Packages that
// create spans call otel.Tracer directly and so pick up whatever provider is
// installed; with tracing disabled they get the default noop provider.
//
// Two layers emit spans:
//   - the gateway opens "gateway.<endpoint>" for each dispatched call
//   - the Polymarket client opens a client span per upstream request
//
// # Trace Context Propagation
//
// HTTPMiddleware extracts traceparent from incoming requests so that gateway
// spans join the frontend's trace, and returns the trace ID in X-Trace-ID.
//
//	traceparent: 00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01
//
// # Sampling Strategies
//
// Three sampling strategies are supported:
//   - always: sample all traces
//   - never: sample no traces
//   - ratio: sample a fraction of traces by trace ID
//
// Every strategy is wrapped in ParentBased, so an incoming sampled trace is
// always continued.
//
// # Configuration
//
//	telemetry:
//	  tracing:
//	    enabled: true
//	    endpoint: "localhost:4317"
//	    sampler: ratio
//	    sample_ratio: 0.1
//	    insecure: true
//
// # Attributes
//
// Gateway specific attributes use the "whalegate.*" namespace:
//   - whalegate.endpoint, whalegate.upstream
//   - whalegate.request_id, whalegate.user_id
//   - whalegate.upstream.status, whalegate.upstream.outcome
//
// Bearer tokens are never recorded on spans.
package tracing
