package config

import "time"

// ConfigBuilder provides a fluent API for building Config instances in tests.
// It starts with default values and allows selective overrides.
type ConfigBuilder struct {
	cfg Config
}

// NewTestConfig creates a new ConfigBuilder with sensible defaults for testing.
// The resulting configuration is valid and can be used immediately.
func NewTestConfig() *ConfigBuilder {
	cfg := Default()
	cfg.Security.Origin.AllowedOrigins = []string{"https://app.example.com", "https://*.lovable.app"}
	cfg.Security.Auth.Mode = AuthModeStatic
	cfg.Security.Auth.Tokens = []StaticToken{{Token: "test-token", UserID: "user-1"}}
	return &ConfigBuilder{cfg: *cfg}
}

// Build returns the built Config instance.
func (b *ConfigBuilder) Build() *Config {
	return &b.cfg
}

// WithListenAddress sets the proxy listen address.
func (b *ConfigBuilder) WithListenAddress(addr string) *ConfigBuilder {
	b.cfg.Proxy.ListenAddress = addr
	return b
}

// WithUpstreamTimeout sets the upstream client timeout.
func (b *ConfigBuilder) WithUpstreamTimeout(d time.Duration) *ConfigBuilder {
	b.cfg.Upstreams.Timeout = d
	return b
}

// WithAllowedOrigins replaces the origin allowlist.
func (b *ConfigBuilder) WithAllowedOrigins(origins ...string) *ConfigBuilder {
	b.cfg.Security.Origin.AllowedOrigins = origins
	return b
}

// WithGoTrue switches authentication to the GoTrue verifier.
func (b *ConfigBuilder) WithGoTrue(url, anonKey string) *ConfigBuilder {
	b.cfg.Security.Auth.Mode = AuthModeGoTrue
	b.cfg.Security.Auth.URL = url
	b.cfg.Security.Auth.AnonKey = anonKey
	return b
}

// MinimalConfig returns a minimal valid configuration for testing.
func MinimalConfig() *Config {
	return NewTestConfig().Build()
}
