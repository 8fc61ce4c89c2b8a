// Package health provides the liveness, readiness and version endpoints.
//
// Liveness (/health) answers 200 whenever the process is serving. Readiness
// (/ready) runs the registered checks concurrently, each bounded by
// telemetry.health.check_timeout, and answers 503 if any fails. With
// telemetry.health.check_upstreams enabled the server registers one check
// per Polymarket API; each run also updates the upstream_up gauge.
//
// These endpoints are mounted outside the origin and bearer checks so that
// orchestrators can reach them.
package health
