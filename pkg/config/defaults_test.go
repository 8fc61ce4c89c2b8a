package config

import (
	"testing"
	"time"
)

func TestApplyDefaults(t *testing.T) {
	tests := []struct {
		name  string
		input Config
		check func(*testing.T, *Config)
	}{
		{
			name:  "empty config gets all defaults",
			input: Config{},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Proxy.ListenAddress != DefaultListenAddress {
					t.Errorf("expected listen address %q, got %q", DefaultListenAddress, cfg.Proxy.ListenAddress)
				}
				if cfg.Proxy.Path != DefaultProxyPath {
					t.Errorf("expected path %q, got %q", DefaultProxyPath, cfg.Proxy.Path)
				}
				if cfg.Proxy.MaxBodyBytes != DefaultMaxBodyBytes {
					t.Errorf("expected max body bytes %d, got %d", DefaultMaxBodyBytes, cfg.Proxy.MaxBodyBytes)
				}
				if cfg.Upstreams.DataURL != DefaultDataURL {
					t.Errorf("expected data url %q, got %q", DefaultDataURL, cfg.Upstreams.DataURL)
				}
				if cfg.Upstreams.GammaURL != DefaultGammaURL {
					t.Errorf("expected gamma url %q, got %q", DefaultGammaURL, cfg.Upstreams.GammaURL)
				}
				if cfg.Upstreams.ClobURL != DefaultClobURL {
					t.Errorf("expected clob url %q, got %q", DefaultClobURL, cfg.Upstreams.ClobURL)
				}
				if cfg.Upstreams.Timeout != DefaultUpstreamTimeout {
					t.Errorf("expected upstream timeout %v, got %v", DefaultUpstreamTimeout, cfg.Upstreams.Timeout)
				}
				if cfg.Security.Auth.Mode != AuthModeGoTrue {
					t.Errorf("expected auth mode %q, got %q", AuthModeGoTrue, cfg.Security.Auth.Mode)
				}
				if len(cfg.Security.Origin.AllowedOrigins) != len(DefaultAllowedOrigins) {
					t.Errorf("expected %d default origins, got %v", len(DefaultAllowedOrigins), cfg.Security.Origin.AllowedOrigins)
				}
				if cfg.Telemetry.Logging.Level != DefaultLoggingLevel {
					t.Errorf("expected logging level %q, got %q", DefaultLoggingLevel, cfg.Telemetry.Logging.Level)
				}
				if cfg.Telemetry.Metrics.Namespace != DefaultMetricsNamespace {
					t.Errorf("expected namespace %q, got %q", DefaultMetricsNamespace, cfg.Telemetry.Metrics.Namespace)
				}
				if len(cfg.Telemetry.Metrics.DurationBuckets) != len(DefaultDurationBuckets) {
					t.Errorf("expected default buckets, got %v", cfg.Telemetry.Metrics.DurationBuckets)
				}
				if cfg.Security.RateLimit.RequestsPerSecond != 0 || cfg.Security.RateLimit.Burst != 0 {
					t.Errorf("expected rate limiting disabled, got %+v", cfg.Security.RateLimit)
				}
			},
		},
		{
			name: "existing values are preserved",
			input: Config{
				Proxy:     ProxyConfig{ListenAddress: "0.0.0.0:9000", Path: "/polymarket-proxy"},
				Upstreams: UpstreamsConfig{GammaURL: "http://gamma.test", Timeout: 3 * time.Second},
				Security: SecurityConfig{
					Origin: OriginConfig{AllowedOrigins: []string{"https://copy.example"}},
					Auth:   AuthConfig{Mode: AuthModeDisabled},
				},
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Proxy.ListenAddress != "0.0.0.0:9000" {
					t.Errorf("listen address overwritten: %q", cfg.Proxy.ListenAddress)
				}
				if cfg.Proxy.Path != "/polymarket-proxy" {
					t.Errorf("path overwritten: %q", cfg.Proxy.Path)
				}
				if cfg.Upstreams.GammaURL != "http://gamma.test" {
					t.Errorf("gamma url overwritten: %q", cfg.Upstreams.GammaURL)
				}
				if cfg.Upstreams.Timeout != 3*time.Second {
					t.Errorf("timeout overwritten: %v", cfg.Upstreams.Timeout)
				}
				if got := cfg.Security.Origin.AllowedOrigins; len(got) != 1 || got[0] != "https://copy.example" {
					t.Errorf("origins overwritten: %v", got)
				}
				if cfg.Security.Auth.Mode != AuthModeDisabled {
					t.Errorf("auth mode overwritten: %q", cfg.Security.Auth.Mode)
				}
			},
		},
		{
			name: "rate limit burst derived from rate",
			input: Config{
				Security: SecurityConfig{RateLimit: RateLimitConfig{RequestsPerSecond: 2.5}},
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Security.RateLimit.Burst != 5 {
					t.Errorf("expected burst 5, got %d", cfg.Security.RateLimit.Burst)
				}
				if cfg.Security.RateLimit.IdleTTL != DefaultRateLimitTTL {
					t.Errorf("expected idle ttl %v, got %v", DefaultRateLimitTTL, cfg.Security.RateLimit.IdleTTL)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.input
			ApplyDefaults(&cfg)
			tt.check(t, &cfg)
		})
	}
}

func TestApplyDefaults_Idempotent(t *testing.T) {
	cfg1 := Config{}
	ApplyDefaults(&cfg1)

	cfg2 := cfg1
	ApplyDefaults(&cfg2)

	if cfg1.Proxy != cfg2.Proxy {
		t.Errorf("proxy config changed on second application: %+v vs %+v", cfg1.Proxy, cfg2.Proxy)
	}
	if cfg1.Upstreams != cfg2.Upstreams {
		t.Errorf("upstream config changed on second application: %+v vs %+v", cfg1.Upstreams, cfg2.Upstreams)
	}
}

func TestDefault_BooleanDefaults(t *testing.T) {
	cfg := Default()

	if !cfg.Telemetry.Metrics.Enabled {
		t.Error("expected metrics to be enabled by default")
	}
	if !cfg.Telemetry.Health.Enabled {
		t.Error("expected health endpoints to be enabled by default")
	}
	if !cfg.Telemetry.Logging.Redact {
		t.Error("expected log redaction to be enabled by default")
	}
	if cfg.Telemetry.Tracing.Enabled {
		t.Error("expected tracing to be disabled by default")
	}
	if cfg.Normalize.CanonicalTraders || cfg.Normalize.CanonicalMarkets {
		t.Error("expected pass-through normalization by default")
	}
}
