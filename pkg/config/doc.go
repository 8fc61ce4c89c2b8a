// Package config provides configuration management for whalegate.
//
// This package handles loading, validating, and watching configuration from
// YAML files with environment variable overrides. A loaded *Config is an
// immutable snapshot that is passed explicitly to the components that need
// it; there is no package-level global.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("whalegate.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("whalegate.yaml")
//
// An empty path loads the defaults, which lets a deployment be configured
// entirely through the environment.
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention WHALEGATE_SECTION_FIELD.
// For example:
//
//   - WHALEGATE_PROXY_LISTEN_ADDRESS overrides proxy.listen_address
//   - WHALEGATE_UPSTREAMS_GAMMA_URL overrides upstreams.gamma_url
//   - WHALEGATE_SECURITY_ORIGIN_ALLOWED_ORIGINS overrides security.origin.allowed_origins (comma separated)
//
// SUPABASE_URL and SUPABASE_ANON_KEY are used for security.auth when those
// fields are otherwise empty. LoadDotEnv reads .env files into the process
// environment before loading.
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later overrides earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Hot Reload
//
// Watcher observes the configuration file with fsnotify and delivers each
// successfully validated snapshot to a callback. The server uses this to
// rebuild its request pipeline and swap it atomically.
package config
