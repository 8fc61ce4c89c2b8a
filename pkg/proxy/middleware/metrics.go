package middleware

import (
	"net/http"
	"time"
)

// Rejection reasons reported to a Recorder.
const (
	RejectOrigin     = "origin"
	RejectAuth       = "auth"
	RejectValidation = "validation"
	RejectRateLimit  = "rate_limit"
)

// Recorder receives per-request measurements.
type Recorder interface {
	RecordRequest(endpoint string, status int, duration time.Duration)
	RecordRejection(reason string)
}

// MetricsMiddleware reports every request to rec. Requests answered with 400,
// 401, 403 or 429 are additionally counted as rejections.
func MetricsMiddleware(rec Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx, state := withState(r.Context())
			rw := newResponseWriter(w)

			next.ServeHTTP(rw, r.WithContext(ctx))

			rec.RecordRequest(state.Endpoint, rw.statusCode, time.Since(start))
			switch rw.statusCode {
			case http.StatusForbidden:
				rec.RecordRejection(RejectOrigin)
			case http.StatusUnauthorized:
				rec.RecordRejection(RejectAuth)
			case http.StatusBadRequest:
				rec.RecordRejection(RejectValidation)
			case http.StatusTooManyRequests:
				rec.RecordRejection(RejectRateLimit)
			}
		})
	}
}
