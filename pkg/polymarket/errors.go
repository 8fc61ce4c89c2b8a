package polymarket

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse reports a 2xx upstream response whose body is not JSON.
var ErrMalformedResponse = errors.New("malformed upstream response")

// UpstreamError describes a failed upstream call: a non-2xx status, a
// transport failure (StatusCode 0), or a body that is not valid JSON.
// Body is kept for server-side logging and must never be sent to a caller.
type UpstreamError struct {
	// Upstream is the API that was called.
	Upstream Upstream

	// Endpoint is the logical endpoint being served.
	Endpoint Endpoint

	// StatusCode is the HTTP status code (0 if no response was received).
	StatusCode int

	// Body is the (possibly truncated) response body.
	Body string

	// Cause is the underlying error (if any).
	Cause error
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	switch {
	case e.StatusCode > 0 && e.Cause != nil:
		return fmt.Sprintf("polymarket %s %s (status %d): %v", e.Upstream, e.Endpoint, e.StatusCode, e.Cause)
	case e.StatusCode > 0:
		return fmt.Sprintf("polymarket %s %s: unexpected status %d", e.Upstream, e.Endpoint, e.StatusCode)
	default:
		return fmt.Sprintf("polymarket %s %s: %v", e.Upstream, e.Endpoint, e.Cause)
	}
}

// Unwrap returns the underlying error for error chain support.
func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// Outcome classifies the failure with the same labels reported to an Observer.
func (e *UpstreamError) Outcome() string {
	switch {
	case errors.Is(e.Cause, ErrMalformedResponse):
		return OutcomeMalformed
	case e.StatusCode > 0:
		return OutcomeStatus
	default:
		return OutcomeTransport
	}
}
