// Package server provides the whalegate HTTP server.
//
// The server ties the proxy components together (gateway, origin check,
// bearer check, middleware) and manages the listener lifecycle including
// graceful shutdown and configuration reload.
//
// # Basic Usage
//
//	cfg, err := config.LoadConfigWithEnvOverrides("whalegate.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	srv, err := server.New(cfg, server.WithLogger(logger))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Routes
//
//   - proxy.path (default "/") - the gateway, GET/POST with an endpoint parameter
//   - GET /health - liveness
//   - GET /ready - readiness, optionally checking the upstream APIs
//   - GET /version - build information
//   - GET /metrics - Prometheus metrics
//
// Operational routes are not subject to the origin or bearer checks.
//
// # Middleware Chain
//
// Outermost first:
//  1. Recovery: recovers from panics and returns a 500 envelope
//  2. RequestID: assigns X-Request-ID
//  3. Trace extraction: continues an incoming W3C trace context
//  4. Logging and Metrics (proxy path only)
//  5. CORS: enforces the origin allowlist
//  6. Auth: verifies the bearer token
//  7. RateLimit: per-caller request rate and concurrency, when configured
//
// # Reload
//
// The origin allowlist, bearer verifier, rate limiter, upstream client and
// normalizer form a pipeline that Reload rebuilds from a new configuration
// and swaps atomically. Requests in flight complete on the pipeline they
// started on, and per-caller rate limit state starts fresh. Listener
// settings are read once at Start.
//
// # Graceful Shutdown
//
// Start returns after SIGINT, SIGTERM, context cancellation or Stop. The
// server stops accepting connections and waits up to
// proxy.shutdown_timeout for active requests.
package server
