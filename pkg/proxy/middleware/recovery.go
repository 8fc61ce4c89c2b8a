package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"whalecopy/whalegate/pkg/proxy"
	"whalecopy/whalegate/pkg/proxy/types"
)

// RecoveryMiddleware recovers from panics in HTTP handlers and returns a 500
// response with the generic error envelope. It logs the panic with stack
// trace but does not expose internal details to clients.
//
// Example usage:
//
//	handler = RecoveryMiddleware(handler)
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				slog.ErrorContext(r.Context(), "panic in handler",
					"error", err,
					"request_id", GetRequestID(r.Context()),
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)

				// Ignore write errors; the connection may already be gone.
				_ = proxy.WriteErrorResponse(w, types.NewServerError())
			}
		}()

		next.ServeHTTP(w, r)
	})
}
