// Package telemetry groups the observability packages of whalegate.
//
// # Components
//
//   - logging: slog setup with context fields and credential redaction
//   - metrics: Prometheus request, rejection and upstream metrics
//   - tracing: OpenTelemetry tracing exported over OTLP
//   - health: liveness, readiness and version endpoints
//
// # Usage
//
//	logger, _ := logging.Setup(&cfg.Telemetry.Logging, os.Stdout)
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, prometheus.NewRegistry())
//	tracer, _ := tracing.New(&cfg.Telemetry.Tracing, version)
//	defer tracer.Shutdown(context.Background())
//
// The server package wires these together; see server.New.
package telemetry
