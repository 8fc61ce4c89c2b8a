package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment variable override.
const EnvPrefix = "WHALEGATE_"

// LoadConfig loads configuration from a YAML file at the specified path.
// It starts from Default, applies the file, fills remaining defaults, and
// validates the result. An empty path yields the validated defaults.
// The configuration is not modified by environment variables; use
// LoadConfigWithEnvOverrides for that functionality.
func LoadConfig(path string) (*Config, error) {
	cfg, err := readConfig(path)
	if err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention WHALEGATE_SECTION_FIELD (e.g., WHALEGATE_PROXY_LISTEN_ADDRESS).
// Environment variables always take precedence over file-based configuration.
//
// The loading sequence is:
// 1. Load YAML from file (if path is not empty)
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := readConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadClientConfig loads configuration like LoadConfigWithEnvOverrides but
// skips the security section. It serves command line tools that call the
// upstream APIs directly and never accept inbound requests.
func LoadClientConfig(path string) (*Config, error) {
	cfg, err := readConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	var errs []FieldError
	errs = append(errs, validateUpstreams(&cfg.Upstreams)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)
	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %w", ValidationError{Errors: errs})
	}

	return cfg, nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment without overriding variables that are already set. Missing
// files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load env file %q: %w", p, err)
		}
	}
	return nil
}

// readConfig reads and parses path on top of the defaults without validating.
func readConfig(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(cfg)
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Values that fail to parse are ignored.
func applyEnvOverrides(cfg *Config) {
	// Proxy overrides
	envString("PROXY_LISTEN_ADDRESS", &cfg.Proxy.ListenAddress)
	envString("PROXY_PATH", &cfg.Proxy.Path)
	envDuration("PROXY_READ_TIMEOUT", &cfg.Proxy.ReadTimeout)
	envDuration("PROXY_WRITE_TIMEOUT", &cfg.Proxy.WriteTimeout)
	envDuration("PROXY_IDLE_TIMEOUT", &cfg.Proxy.IdleTimeout)
	envDuration("PROXY_SHUTDOWN_TIMEOUT", &cfg.Proxy.ShutdownTimeout)
	envInt("PROXY_MAX_HEADER_BYTES", &cfg.Proxy.MaxHeaderBytes)
	if val := os.Getenv(EnvPrefix + "PROXY_MAX_BODY_BYTES"); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Proxy.MaxBodyBytes = i
		}
	}

	// Upstream overrides
	envString("UPSTREAMS_DATA_URL", &cfg.Upstreams.DataURL)
	envString("UPSTREAMS_GAMMA_URL", &cfg.Upstreams.GammaURL)
	envString("UPSTREAMS_CLOB_URL", &cfg.Upstreams.ClobURL)
	envDuration("UPSTREAMS_TIMEOUT", &cfg.Upstreams.Timeout)
	envString("UPSTREAMS_USER_AGENT", &cfg.Upstreams.UserAgent)
	envFloat("UPSTREAMS_RATE_LIMIT", &cfg.Upstreams.RateLimit)
	envInt("UPSTREAMS_BURST", &cfg.Upstreams.Burst)

	// Normalize overrides
	envBool("NORMALIZE_CANONICAL_TRADERS", &cfg.Normalize.CanonicalTraders)
	envBool("NORMALIZE_CANONICAL_MARKETS", &cfg.Normalize.CanonicalMarkets)

	// Security overrides
	if val := os.Getenv(EnvPrefix + "SECURITY_ORIGIN_ALLOWED_ORIGINS"); val != "" {
		cfg.Security.Origin.AllowedOrigins = splitList(val)
	}
	envBool("SECURITY_ORIGIN_ALLOW_MISSING", &cfg.Security.Origin.AllowMissing)
	envInt("SECURITY_ORIGIN_MAX_AGE", &cfg.Security.Origin.MaxAge)
	envString("SECURITY_AUTH_MODE", &cfg.Security.Auth.Mode)
	envBool("SECURITY_AUTH_ALLOW_DISABLED", &cfg.Security.Auth.AllowDisabled)
	envString("SECURITY_AUTH_URL", &cfg.Security.Auth.URL)
	envString("SECURITY_AUTH_ANON_KEY", &cfg.Security.Auth.AnonKey)
	envDuration("SECURITY_AUTH_TIMEOUT", &cfg.Security.Auth.Timeout)
	envFloat("SECURITY_RATE_LIMIT_REQUESTS_PER_SECOND", &cfg.Security.RateLimit.RequestsPerSecond)
	envInt("SECURITY_RATE_LIMIT_BURST", &cfg.Security.RateLimit.Burst)
	envInt("SECURITY_RATE_LIMIT_MAX_CONCURRENT", &cfg.Security.RateLimit.MaxConcurrent)

	// The identity provider is usually deployed alongside Supabase, whose
	// tooling exports these names.
	if cfg.Security.Auth.URL == "" {
		cfg.Security.Auth.URL = os.Getenv("SUPABASE_URL")
	}
	if cfg.Security.Auth.AnonKey == "" {
		cfg.Security.Auth.AnonKey = os.Getenv("SUPABASE_ANON_KEY")
	}

	// Telemetry overrides
	envString("TELEMETRY_LOGGING_LEVEL", &cfg.Telemetry.Logging.Level)
	envString("TELEMETRY_LOGGING_FORMAT", &cfg.Telemetry.Logging.Format)
	envBool("TELEMETRY_LOGGING_REDACT", &cfg.Telemetry.Logging.Redact)
	envBool("TELEMETRY_METRICS_ENABLED", &cfg.Telemetry.Metrics.Enabled)
	envString("TELEMETRY_METRICS_PATH", &cfg.Telemetry.Metrics.Path)
	envBool("TELEMETRY_TRACING_ENABLED", &cfg.Telemetry.Tracing.Enabled)
	envString("TELEMETRY_TRACING_ENDPOINT", &cfg.Telemetry.Tracing.Endpoint)
	envString("TELEMETRY_TRACING_SAMPLER", &cfg.Telemetry.Tracing.Sampler)
	envFloat("TELEMETRY_TRACING_SAMPLE_RATIO", &cfg.Telemetry.Tracing.SampleRatio)
	envBool("TELEMETRY_HEALTH_ENABLED", &cfg.Telemetry.Health.Enabled)
	envBool("TELEMETRY_HEALTH_CHECK_UPSTREAMS", &cfg.Telemetry.Health.CheckUpstreams)
}

func envString(key string, dst *string) {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		*dst = val
	}
}

func envDuration(key string, dst *time.Duration) {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			*dst = d
		}
	}
}

func envInt(key string, dst *int) {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			*dst = i
		}
	}
}

func envFloat(key string, dst *float64) {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			*dst = f
		}
	}
}

func envBool(key string, dst *bool) {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			*dst = b
		}
	}
}

// splitList splits a comma separated list, dropping empty items.
func splitList(val string) []string {
	var out []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
