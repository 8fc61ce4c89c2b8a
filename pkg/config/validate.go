package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "proxy.listen_address").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateProxy(&cfg.Proxy)...)
	errs = append(errs, validateUpstreams(&cfg.Upstreams)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)
	errs = append(errs, validateSecurity(&cfg.Security)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

// validateProxy validates proxy configuration.
func validateProxy(cfg *ProxyConfig) []FieldError {
	var errs []FieldError

	if cfg.ListenAddress == "" {
		errs = append(errs, FieldError{
			Field:   "proxy.listen_address",
			Message: "listen address is required",
		})
	}
	if cfg.Path == "" || cfg.Path[0] != '/' {
		errs = append(errs, FieldError{
			Field:   "proxy.path",
			Message: "path must start with /",
		})
	}

	if cfg.ReadTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "proxy.read_timeout",
			Message: "read timeout must be positive",
		})
	}
	if cfg.WriteTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "proxy.write_timeout",
			Message: "write timeout must be positive",
		})
	}
	if cfg.IdleTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "proxy.idle_timeout",
			Message: "idle timeout must be positive",
		})
	}
	if cfg.ShutdownTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "proxy.shutdown_timeout",
			Message: "shutdown timeout must be positive",
		})
	}

	if cfg.MaxHeaderBytes < 0 {
		errs = append(errs, FieldError{
			Field:   "proxy.max_header_bytes",
			Message: "max header bytes must be non-negative",
		})
	}
	if cfg.MaxBodyBytes < 0 {
		errs = append(errs, FieldError{
			Field:   "proxy.max_body_bytes",
			Message: "max body bytes must be non-negative",
		})
	}

	return errs
}

// validateUpstreams validates the upstream base URLs and client settings.
func validateUpstreams(cfg *UpstreamsConfig) []FieldError {
	var errs []FieldError

	bases := []struct {
		field string
		value string
	}{
		{"upstreams.data_url", cfg.DataURL},
		{"upstreams.gamma_url", cfg.GammaURL},
		{"upstreams.clob_url", cfg.ClobURL},
	}
	for _, b := range bases {
		if msg := checkBaseURL(b.value); msg != "" {
			errs = append(errs, FieldError{Field: b.field, Message: msg})
		}
	}

	if cfg.Timeout <= 0 {
		errs = append(errs, FieldError{
			Field:   "upstreams.timeout",
			Message: "timeout must be positive",
		})
	}
	if cfg.RateLimit < 0 {
		errs = append(errs, FieldError{
			Field:   "upstreams.rate_limit",
			Message: "rate limit must be non-negative",
		})
	}
	if cfg.RateLimit > 0 && cfg.Burst < 1 {
		errs = append(errs, FieldError{
			Field:   "upstreams.burst",
			Message: "burst must be at least 1 when rate limiting is enabled",
		})
	}

	return errs
}

// checkBaseURL returns a message describing why raw is not a usable base URL,
// or the empty string when it is.
func checkBaseURL(raw string) string {
	if raw == "" {
		return "base URL is required"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Sprintf("invalid URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Sprintf("invalid URL scheme %q: must be http or https", u.Scheme)
	}
	if u.Host == "" {
		return "URL host is required"
	}
	return ""
}

// validateTelemetry validates telemetry configuration.
func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("invalid logging level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.Logging.Level),
		})
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[cfg.Logging.Format] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("invalid logging format %q: must be 'json' or 'text'", cfg.Logging.Format),
		})
	}

	if cfg.Metrics.Enabled && (cfg.Metrics.Path == "" || cfg.Metrics.Path[0] != '/') {
		errs = append(errs, FieldError{
			Field:   "telemetry.metrics.path",
			Message: "metrics path must start with / when metrics are enabled",
		})
	}

	if cfg.Tracing.Enabled && cfg.Tracing.Endpoint == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.tracing.endpoint",
			Message: "tracing endpoint is required when tracing is enabled",
		})
	}
	validSamplers := map[string]bool{"always": true, "never": true, "ratio": true}
	if !validSamplers[cfg.Tracing.Sampler] {
		errs = append(errs, FieldError{
			Field:   "telemetry.tracing.sampler",
			Message: fmt.Sprintf("invalid sampler %q: must be 'always', 'never', or 'ratio'", cfg.Tracing.Sampler),
		})
	}
	if cfg.Tracing.SampleRatio < 0 || cfg.Tracing.SampleRatio > 1.0 {
		errs = append(errs, FieldError{
			Field:   "telemetry.tracing.sample_ratio",
			Message: "sample ratio must be between 0.0 and 1.0",
		})
	}

	if cfg.Health.Enabled {
		paths := []struct {
			field string
			value string
		}{
			{"telemetry.health.liveness_path", cfg.Health.LivenessPath},
			{"telemetry.health.readiness_path", cfg.Health.ReadinessPath},
			{"telemetry.health.version_path", cfg.Health.VersionPath},
		}
		for _, p := range paths {
			if p.value == "" || p.value[0] != '/' {
				errs = append(errs, FieldError{
					Field:   p.field,
					Message: "path must start with /",
				})
			}
		}

		if cfg.Health.CheckTimeout < 0 {
			errs = append(errs, FieldError{
				Field:   "telemetry.health.check_timeout",
				Message: "check timeout must be positive",
			})
		}
		if cfg.Health.CheckTimeout > 60*time.Second {
			errs = append(errs, FieldError{
				Field:   "telemetry.health.check_timeout",
				Message: "check timeout exceeds reasonable limit (60s)",
			})
		}
	}

	return errs
}

// validateSecurity validates origin and authentication configuration.
func validateSecurity(cfg *SecurityConfig) []FieldError {
	var errs []FieldError

	if len(cfg.Origin.AllowedOrigins) == 0 {
		errs = append(errs, FieldError{
			Field:   "security.origin.allowed_origins",
			Message: "at least one allowed origin is required",
		})
	}
	for i, origin := range cfg.Origin.AllowedOrigins {
		if msg := checkOrigin(origin); msg != "" {
			errs = append(errs, FieldError{
				Field:   fmt.Sprintf("security.origin.allowed_origins[%d]", i),
				Message: msg,
			})
		}
	}
	if cfg.Origin.MaxAge < 0 {
		errs = append(errs, FieldError{
			Field:   "security.origin.max_age",
			Message: "max age must be non-negative",
		})
	}

	if cfg.RateLimit.RequestsPerSecond < 0 {
		errs = append(errs, FieldError{
			Field:   "security.rate_limit.requests_per_second",
			Message: "requests per second must be non-negative",
		})
	}
	if cfg.RateLimit.RequestsPerSecond > 0 && cfg.RateLimit.Burst < 1 {
		errs = append(errs, FieldError{
			Field:   "security.rate_limit.burst",
			Message: "burst must be at least 1 when rate limiting is enabled",
		})
	}
	if cfg.RateLimit.MaxConcurrent < 0 {
		errs = append(errs, FieldError{
			Field:   "security.rate_limit.max_concurrent",
			Message: "max concurrent must be non-negative",
		})
	}

	switch cfg.Auth.Mode {
	case AuthModeGoTrue:
		if msg := checkBaseURL(cfg.Auth.URL); msg != "" {
			errs = append(errs, FieldError{
				Field:   "security.auth.url",
				Message: msg,
			})
		}
		if cfg.Auth.Timeout <= 0 {
			errs = append(errs, FieldError{
				Field:   "security.auth.timeout",
				Message: "timeout must be positive",
			})
		}
	case AuthModeStatic:
		if len(cfg.Auth.Tokens) == 0 {
			errs = append(errs, FieldError{
				Field:   "security.auth.tokens",
				Message: "at least one token is required in static mode",
			})
		}
		for i, tok := range cfg.Auth.Tokens {
			if tok.Token == "" || tok.UserID == "" {
				errs = append(errs, FieldError{
					Field:   fmt.Sprintf("security.auth.tokens[%d]", i),
					Message: "token and user_id are required",
				})
			}
		}
	case AuthModeDisabled:
		if !cfg.Auth.AllowDisabled {
			errs = append(errs, FieldError{
				Field:   "security.auth.mode",
				Message: "mode 'disabled' admits unauthenticated callers and requires security.auth.allow_disabled",
			})
		}
	default:
		errs = append(errs, FieldError{
			Field:   "security.auth.mode",
			Message: fmt.Sprintf("invalid auth mode %q: must be 'gotrue', 'static', or 'disabled'", cfg.Auth.Mode),
		})
	}

	return errs
}

// checkOrigin validates a single allowlist entry. Entries are either an exact
// origin ("https://app.example.com") or carry a single leading wildcard label
// ("https://*.example.com").
func checkOrigin(origin string) string {
	scheme, host, ok := strings.Cut(origin, "://")
	if !ok || (scheme != "http" && scheme != "https") {
		return fmt.Sprintf("origin %q must start with http:// or https://", origin)
	}
	if host == "" || strings.ContainsAny(host, "/?#") {
		return fmt.Sprintf("origin %q must not contain a path", origin)
	}
	if n := strings.Count(host, "*"); n > 0 {
		if n > 1 || !strings.HasPrefix(host, "*.") || len(host) < 3 {
			return fmt.Sprintf("origin %q: wildcard must be a single leading '*.' label", origin)
		}
	}
	return ""
}
