// Package logging configures structured logging for whalegate on top of
// log/slog.
//
// # Usage
//
//	logger, err := logging.Setup(&cfg.Telemetry.Logging, os.Stdout)
//	if err != nil {
//	    return err
//	}
//	logger.InfoContext(ctx, "fetching from polymarket", "endpoint", "leaderboard")
//
// Setup also installs the logger as slog.Default, which the HTTP middleware
// uses.
//
// # Context Fields
//
// The handler adds request_id, user_id, trace_id and span_id from the
// context given to the *Context methods. A field passed explicitly in the
// call takes precedence.
//
// # Redaction
//
// With telemetry.logging.redact enabled (the default), credentials never
// reach the output:
//
//   - Bearer tokens: "Bearer eyJ..." becomes "Bearer ***"
//   - JWTs anywhere in a string
//   - apikey / anon_key values in query strings and JSON
//   - any value logged under a credential-like key such as authorization
//
// Wallet addresses, user IDs and CLOB token IDs are public and kept.
package logging
