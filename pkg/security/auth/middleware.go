package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"whalecopy/whalegate/pkg/config"
	"whalecopy/whalegate/pkg/telemetry/logging"
)

// AuthorizationHeader carries the bearer credential.
const AuthorizationHeader = "Authorization"

// ErrorHandler writes the response for a rejected request.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Middleware rejects requests that do not carry a bearer token belonging to
// a known user. Preflight requests pass through untouched.
type Middleware struct {
	verifier Verifier
	onError  ErrorHandler
	logger   *slog.Logger
}

// NewMiddleware creates the bearer authentication middleware. Rejections are
// reported through onError; a nil onError writes a plain 401.
func NewMiddleware(verifier Verifier, onError ErrorHandler, logger *slog.Logger) *Middleware {
	if onError == nil {
		onError = func(w http.ResponseWriter, _ *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusUnauthorized)
		}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Middleware{verifier: verifier, onError: onError, logger: logger}
}

// Handle wraps an HTTP handler with bearer authentication.
func (m *Middleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get(AuthorizationHeader)
		if strings.TrimSpace(header) == "" {
			m.logger.WarnContext(r.Context(), "missing authorization header",
				"remote_addr", r.RemoteAddr,
				"path", r.URL.Path,
			)
			m.onError(w, r, errMissingCredential())
			return
		}

		token, ok := ExtractBearer(header)
		if !ok {
			m.logger.WarnContext(r.Context(), "malformed authorization header",
				"remote_addr", r.RemoteAddr,
				"path", r.URL.Path,
			)
			m.onError(w, r, errUnauthorized(fmt.Errorf("authorization scheme is not bearer")))
			return
		}

		id, err := m.verifier.Verify(r.Context(), token)
		if err != nil {
			m.logger.ErrorContext(r.Context(), "identity verification failed",
				"error", err,
				"path", r.URL.Path,
			)
			m.onError(w, r, errUnauthorized(err))
			return
		}
		if id == nil {
			m.logger.WarnContext(r.Context(), "unknown bearer token",
				"remote_addr", r.RemoteAddr,
				"path", r.URL.Path,
			)
			m.onError(w, r, errUnauthorized(nil))
			return
		}

		m.logger.InfoContext(r.Context(), "request authenticated",
			"user_id", id.UserID,
			"path", r.URL.Path,
		)

		ctx := logging.WithUserID(WithIdentity(r.Context(), id), id.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ExtractBearer returns the token of a "Bearer <token>" header value. The
// scheme is matched case-insensitively.
func ExtractBearer(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// NewVerifier builds the Verifier selected by cfg.Mode. Disabled mode
// returns a nil Verifier, meaning no authentication middleware is installed.
func NewVerifier(cfg config.AuthConfig) (Verifier, error) {
	switch cfg.Mode {
	case config.AuthModeGoTrue:
		return NewGoTrueVerifier(cfg.URL, cfg.AnonKey, cfg.Timeout), nil
	case config.AuthModeStatic:
		return NewStaticVerifier(cfg.Tokens), nil
	case config.AuthModeDisabled:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.Mode)
	}
}

// Context key for the authenticated identity
type contextKey string

const identityKey contextKey = "identity"

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// GetIdentity retrieves the authenticated identity from ctx.
func GetIdentity(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey).(*Identity)
	return id, ok && id != nil
}

// UserID returns the authenticated user id in ctx, or "".
func UserID(ctx context.Context) string {
	if id, ok := GetIdentity(ctx); ok {
		return id.UserID
	}
	return ""
}
