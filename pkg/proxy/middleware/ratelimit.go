package middleware

import (
	"errors"
	"math"
	"net"
	"net/http"
	"strconv"

	"whalecopy/whalegate/pkg/limits"
	"whalecopy/whalegate/pkg/telemetry/logging"
)

// RateLimitMiddleware admits requests through m, keyed by the authenticated
// user ID or, when there is none, by client address. It must run after
// authentication. Rejected requests get a Retry-After header and are passed
// to onReject with the *limits.Error.
func RateLimitMiddleware(m *limits.Manager, onReject func(http.ResponseWriter, *http.Request, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			release, err := m.Acquire(CallerKey(r))
			if err != nil {
				var limErr *limits.Error
				if errors.As(err, &limErr) && limErr.RetryAfter > 0 {
					secs := int(math.Ceil(limErr.RetryAfter.Seconds()))
					w.Header().Set("Retry-After", strconv.Itoa(secs))
				}
				onReject(w, r, err)
				return
			}
			defer release()

			next.ServeHTTP(w, r)
		})
	}
}

// CallerKey identifies the caller of r for rate limiting.
func CallerKey(r *http.Request) string {
	if id := logging.GetUserID(r.Context()); id != "" {
		return "user:" + id
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "addr:" + host
}
