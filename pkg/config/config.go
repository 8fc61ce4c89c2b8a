package config

import "time"

// Config is the root configuration structure for whalegate.
// A loaded Config is treated as an immutable snapshot: components receive it
// at construction time and a reload produces a fresh instance.
type Config struct {
	// Proxy contains HTTP server configuration including listen address,
	// timeouts, and request limits.
	Proxy ProxyConfig `yaml:"proxy"`

	// Upstreams contains the Polymarket API base URLs and outbound client
	// settings.
	Upstreams UpstreamsConfig `yaml:"upstreams"`

	// Normalize controls how upstream payloads are reshaped before being
	// returned to callers.
	Normalize NormalizeConfig `yaml:"normalize"`

	// Telemetry contains configuration for observability including logging,
	// metrics, tracing, and health endpoints.
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Security contains origin allowlisting and bearer authentication.
	Security SecurityConfig `yaml:"security"`
}

// ProxyConfig contains configuration for the HTTP server.
type ProxyConfig struct {
	// ListenAddress is the address and port for the server to listen on.
	// Format: "host:port" (e.g., "127.0.0.1:8080", "0.0.0.0:8080").
	// Default: "127.0.0.1:8080"
	ListenAddress string `yaml:"listen_address"`

	// Path is the URL path of the single proxy entry point.
	// Default: "/"
	Path string `yaml:"path"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body.
	// Default: 15s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the
	// response. It must exceed the upstream timeout.
	// Default: 30s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request
	// when keep-alives are enabled.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes limits request header size.
	// Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`

	// MaxBodyBytes limits the JSON body accepted on POST.
	// Default: 65536
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

// UpstreamsConfig describes the three Polymarket APIs and the shared
// outbound HTTP client.
type UpstreamsConfig struct {
	// DataURL is the base URL of the data API (leaderboard, positions,
	// profile, activity).
	// Default: "https://data-api.polymarket.com"
	DataURL string `yaml:"data_url"`

	// GammaURL is the base URL of the gamma API (search, events).
	// Default: "https://gamma-api.polymarket.com"
	GammaURL string `yaml:"gamma_url"`

	// ClobURL is the base URL of the CLOB API (order books).
	// Default: "https://clob.polymarket.com"
	ClobURL string `yaml:"clob_url"`

	// Timeout bounds a single upstream call. A timeout is reported as an
	// upstream failure.
	// Default: 15s
	Timeout time.Duration `yaml:"timeout"`

	// UserAgent is sent on every outbound request.
	// Default: "whalegate"
	UserAgent string `yaml:"user_agent"`

	// RateLimit is the sustained number of requests per second allowed
	// towards each upstream. Zero disables pacing.
	// Default: 0
	RateLimit float64 `yaml:"rate_limit"`

	// Burst is the token bucket size used with RateLimit.
	// Default: 10
	Burst int `yaml:"burst"`
}

// NormalizeConfig toggles canonical record output.
type NormalizeConfig struct {
	// CanonicalTraders re-encodes leaderboard and search results as
	// canonical trader records.
	// Default: false
	CanonicalTraders bool `yaml:"canonical_traders"`

	// CanonicalMarkets re-encodes markets, trending, and event results as
	// canonical event records.
	// Default: false
	CanonicalMarkets bool `yaml:"canonical_markets"`
}

// SecurityConfig contains access control configuration.
type SecurityConfig struct {
	// Origin contains the origin allowlist.
	Origin OriginConfig `yaml:"origin"`

	// Auth contains bearer token verification settings.
	Auth AuthConfig `yaml:"auth"`

	// RateLimit bounds how fast a single caller may use the gateway.
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig configures per-caller limits. Callers are identified by
// user ID, or by client address when authentication is disabled. A zero
// RequestsPerSecond and MaxConcurrent disables limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained request rate per caller.
	// Default: 0 (unlimited)
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	// Burst is the number of requests a caller may make at once.
	// Default: twice RequestsPerSecond, at least 1
	Burst int `yaml:"burst"`

	// MaxConcurrent limits a caller's simultaneous in-flight requests.
	// Default: 0 (unlimited)
	MaxConcurrent int `yaml:"max_concurrent"`

	// IdleTTL is how long an idle caller's state is kept.
	// Default: 10m
	IdleTTL time.Duration `yaml:"idle_ttl"`
}

// OriginConfig contains the CORS origin allowlist.
type OriginConfig struct {
	// AllowedOrigins lists exact origins ("https://app.example.com") and
	// wildcard-suffix rules ("https://*.lovable.app"). The first entry is
	// used as the default Access-Control-Allow-Origin value.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// AllowMissing admits requests that carry no Origin header at all.
	// Default: false
	AllowMissing bool `yaml:"allow_missing"`

	// MaxAge is the preflight cache duration in seconds. Zero omits the header.
	// Default: 0
	MaxAge int `yaml:"max_age"`
}

// AuthConfig configures the identity verifier.
type AuthConfig struct {
	// Mode selects the verifier.
	// Options: "gotrue", "static", "disabled"
	// Default: "gotrue"
	Mode string `yaml:"mode"`

	// URL is the identity provider base URL. The verifier calls
	// {URL}/auth/v1/user.
	URL string `yaml:"url"`

	// AnonKey is the public project key sent as the apikey header.
	AnonKey string `yaml:"anon_key"`

	// Timeout bounds a single verification call.
	// Default: 5s
	Timeout time.Duration `yaml:"timeout"`

	// Tokens maps bearer tokens to identities when Mode is "static".
	Tokens []StaticToken `yaml:"tokens"`

	// AllowDisabled must be set for Mode "disabled" to pass validation.
	// Intended for local development only.
	// Default: false
	AllowDisabled bool `yaml:"allow_disabled"`
}

// StaticToken is a preconfigured bearer token and the identity it maps to.
type StaticToken struct {
	Token  string `yaml:"token"`
	UserID string `yaml:"user_id"`
	Email  string `yaml:"email"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`

	// Tracing contains distributed tracing configuration.
	Tracing TracingConfig `yaml:"tracing"`

	// Health contains health check configuration.
	Health HealthConfig `yaml:"health"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text"
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`

	// Redact masks bearer tokens, JWTs, and API keys in log output.
	// Default: true
	Redact bool `yaml:"redact"`

	// MaxBodyLog is the number of upstream error body bytes kept in logs.
	// Default: 512
	MaxBodyLog int `yaml:"max_body_log"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path for the Prometheus metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "whalegate"
	Namespace string `yaml:"namespace"`

	// DurationBuckets defines histogram buckets in seconds.
	// Default: [0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10]
	DurationBuckets []float64 `yaml:"duration_buckets"`
}

// TracingConfig contains distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether distributed tracing is active.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Sampler determines the sampling strategy.
	// Options: "always", "never", "ratio"
	// Default: "ratio"
	Sampler string `yaml:"sampler"`

	// SampleRatio is the fraction of traces to sample (0.0 to 1.0).
	// Default: 0.1
	SampleRatio float64 `yaml:"sample_ratio"`

	// Endpoint is the OTLP gRPC collector endpoint.
	// Default: "localhost:4317"
	Endpoint string `yaml:"endpoint"`

	// ServiceName is the service name in traces.
	// Default: "whalegate"
	ServiceName string `yaml:"service_name"`

	// Insecure disables TLS for the OTLP connection.
	// Default: true
	Insecure bool `yaml:"insecure"`

	// Timeout is the export timeout.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}

// HealthConfig contains health check endpoint configuration.
type HealthConfig struct {
	// Enabled controls whether health check endpoints are enabled.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// LivenessPath is the path for the liveness endpoint.
	// Default: "/health"
	LivenessPath string `yaml:"liveness_path"`

	// ReadinessPath is the path for the readiness endpoint.
	// Default: "/ready"
	ReadinessPath string `yaml:"readiness_path"`

	// VersionPath is the path for the version information endpoint.
	// Default: "/version"
	VersionPath string `yaml:"version_path"`

	// CheckTimeout is the timeout for individual readiness checks.
	// Default: 5s
	CheckTimeout time.Duration `yaml:"check_timeout"`

	// CheckUpstreams makes readiness issue a lightweight request to each
	// upstream.
	// Default: false
	CheckUpstreams bool `yaml:"check_upstreams"`
}
