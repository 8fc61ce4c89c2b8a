package config

import "time"

// Default values for configuration fields.
const (
	// Proxy defaults
	DefaultListenAddress   = "127.0.0.1:8080"
	DefaultProxyPath       = "/"
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMaxHeaderBytes  = 1048576 // 1MB
	DefaultMaxBodyBytes    = 64 << 10

	// Upstream defaults
	DefaultDataURL         = "https://data-api.polymarket.com"
	DefaultGammaURL        = "https://gamma-api.polymarket.com"
	DefaultClobURL         = "https://clob.polymarket.com"
	DefaultUpstreamTimeout = 15 * time.Second
	DefaultUserAgent       = "whalegate"
	DefaultUpstreamBurst   = 10

	// Security defaults
	DefaultAuthMode     = AuthModeGoTrue
	DefaultAuthTimeout  = 5 * time.Second
	DefaultRateLimitTTL = 10 * time.Minute

	// Telemetry defaults
	DefaultLoggingLevel       = "info"
	DefaultLoggingFormat      = "json"
	DefaultLoggingRedact      = true
	DefaultLoggingMaxBodyLog  = 512
	DefaultMetricsEnabled     = true
	DefaultMetricsPath        = "/metrics"
	DefaultMetricsNamespace   = "whalegate"
	DefaultTracingEnabled     = false
	DefaultTracingSampler     = "ratio"
	DefaultTracingSampleRatio = 0.1
	DefaultTracingEndpoint    = "localhost:4317"
	DefaultTracingServiceName = "whalegate"
	DefaultTracingInsecure    = true
	DefaultTracingTimeout     = 10 * time.Second
	DefaultHealthEnabled      = true
	DefaultLivenessPath       = "/health"
	DefaultReadinessPath      = "/ready"
	DefaultVersionPath        = "/version"
	DefaultHealthCheckTimeout = 5 * time.Second
)

// Authentication modes.
const (
	AuthModeGoTrue   = "gotrue"
	AuthModeStatic   = "static"
	AuthModeDisabled = "disabled"
)

// DefaultDurationBuckets are the histogram buckets used for request and
// upstream latency when none are configured.
var DefaultDurationBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// DefaultAllowedOrigins is the origin allowlist used when none is configured:
// the local development server and the hosted preview domains.
var DefaultAllowedOrigins = []string{
	"http://localhost:5173",
	"http://localhost:8080",
	"https://*.lovable.app",
	"https://*.lovableproject.com",
}

// Default returns a Config populated with default values. Loading starts from
// this value so that boolean options defaulting to true survive a YAML file
// that does not mention them.
func Default() *Config {
	cfg := &Config{
		Telemetry: TelemetryConfig{
			Logging: LoggingConfig{Redact: DefaultLoggingRedact},
			Metrics: MetricsConfig{Enabled: DefaultMetricsEnabled},
			Tracing: TracingConfig{
				Enabled:  DefaultTracingEnabled,
				Insecure: DefaultTracingInsecure,
			},
			Health: HealthConfig{Enabled: DefaultHealthEnabled},
		},
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Proxy defaults
	if cfg.Proxy.ListenAddress == "" {
		cfg.Proxy.ListenAddress = DefaultListenAddress
	}
	if cfg.Proxy.Path == "" {
		cfg.Proxy.Path = DefaultProxyPath
	}
	if cfg.Proxy.ReadTimeout == 0 {
		cfg.Proxy.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Proxy.WriteTimeout == 0 {
		cfg.Proxy.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Proxy.IdleTimeout == 0 {
		cfg.Proxy.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Proxy.ShutdownTimeout == 0 {
		cfg.Proxy.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Proxy.MaxHeaderBytes == 0 {
		cfg.Proxy.MaxHeaderBytes = DefaultMaxHeaderBytes
	}
	if cfg.Proxy.MaxBodyBytes == 0 {
		cfg.Proxy.MaxBodyBytes = DefaultMaxBodyBytes
	}

	// Upstream defaults
	if cfg.Upstreams.DataURL == "" {
		cfg.Upstreams.DataURL = DefaultDataURL
	}
	if cfg.Upstreams.GammaURL == "" {
		cfg.Upstreams.GammaURL = DefaultGammaURL
	}
	if cfg.Upstreams.ClobURL == "" {
		cfg.Upstreams.ClobURL = DefaultClobURL
	}
	if cfg.Upstreams.Timeout == 0 {
		cfg.Upstreams.Timeout = DefaultUpstreamTimeout
	}
	if cfg.Upstreams.UserAgent == "" {
		cfg.Upstreams.UserAgent = DefaultUserAgent
	}
	if cfg.Upstreams.Burst == 0 {
		cfg.Upstreams.Burst = DefaultUpstreamBurst
	}

	// Security defaults
	if len(cfg.Security.Origin.AllowedOrigins) == 0 {
		cfg.Security.Origin.AllowedOrigins = append([]string(nil), DefaultAllowedOrigins...)
	}
	if cfg.Security.Auth.Mode == "" {
		cfg.Security.Auth.Mode = DefaultAuthMode
	}
	if cfg.Security.Auth.Timeout == 0 {
		cfg.Security.Auth.Timeout = DefaultAuthTimeout
	}
	if cfg.Security.RateLimit.RequestsPerSecond > 0 && cfg.Security.RateLimit.Burst == 0 {
		cfg.Security.RateLimit.Burst = max(1, int(cfg.Security.RateLimit.RequestsPerSecond*2))
	}
	if cfg.Security.RateLimit.IdleTTL == 0 {
		cfg.Security.RateLimit.IdleTTL = DefaultRateLimitTTL
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Logging.MaxBodyLog == 0 {
		cfg.Telemetry.Logging.MaxBodyLog = DefaultLoggingMaxBodyLog
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if len(cfg.Telemetry.Metrics.DurationBuckets) == 0 {
		cfg.Telemetry.Metrics.DurationBuckets = append([]float64(nil), DefaultDurationBuckets...)
	}
	if cfg.Telemetry.Tracing.Sampler == "" {
		cfg.Telemetry.Tracing.Sampler = DefaultTracingSampler
	}
	if cfg.Telemetry.Tracing.SampleRatio == 0 {
		cfg.Telemetry.Tracing.SampleRatio = DefaultTracingSampleRatio
	}
	if cfg.Telemetry.Tracing.Endpoint == "" {
		cfg.Telemetry.Tracing.Endpoint = DefaultTracingEndpoint
	}
	if cfg.Telemetry.Tracing.ServiceName == "" {
		cfg.Telemetry.Tracing.ServiceName = DefaultTracingServiceName
	}
	if cfg.Telemetry.Tracing.Timeout == 0 {
		cfg.Telemetry.Tracing.Timeout = DefaultTracingTimeout
	}
	if cfg.Telemetry.Health.LivenessPath == "" {
		cfg.Telemetry.Health.LivenessPath = DefaultLivenessPath
	}
	if cfg.Telemetry.Health.ReadinessPath == "" {
		cfg.Telemetry.Health.ReadinessPath = DefaultReadinessPath
	}
	if cfg.Telemetry.Health.VersionPath == "" {
		cfg.Telemetry.Health.VersionPath = DefaultVersionPath
	}
	if cfg.Telemetry.Health.CheckTimeout == 0 {
		cfg.Telemetry.Health.CheckTimeout = DefaultHealthCheckTimeout
	}
}
