package types

import "net/http"

// ErrorResponse is the envelope returned for every failed request:
//
//	{"error": "<message>"}
type ErrorResponse struct {
	// Error is a caller-safe, human-readable message.
	Error string `json:"error"`

	// Status is the HTTP status code. It is not serialized.
	Status int `json:"-"`
}

// Caller-facing messages that do not depend on the failing input.
const (
	MessageOriginNotAllowed = "Origin not allowed"
	MessageRateLimited      = "Rate limit exceeded"
	MessageUpstreamFailed   = "Upstream request failed"
	MessageInternalError    = "Internal server error"
)

// NewErrorResponse creates an error response with the given status.
func NewErrorResponse(status int, message string) *ErrorResponse {
	return &ErrorResponse{Error: message, Status: status}
}

// NewBadRequestError creates a 400 response for invalid input.
func NewBadRequestError(message string) *ErrorResponse {
	return NewErrorResponse(http.StatusBadRequest, message)
}

// NewUnauthorizedError creates a 401 response for a missing or rejected credential.
func NewUnauthorizedError(message string) *ErrorResponse {
	return NewErrorResponse(http.StatusUnauthorized, message)
}

// NewForbiddenError creates a 403 response for a disallowed origin.
func NewForbiddenError() *ErrorResponse {
	return NewErrorResponse(http.StatusForbidden, MessageOriginNotAllowed)
}

// NewRateLimitError creates a 429 response for a caller over its limit.
func NewRateLimitError() *ErrorResponse {
	return NewErrorResponse(http.StatusTooManyRequests, MessageRateLimited)
}

// NewUpstreamError creates the generic 500 response for upstream failures.
// Upstream detail is never passed through.
func NewUpstreamError() *ErrorResponse {
	return NewErrorResponse(http.StatusInternalServerError, MessageUpstreamFailed)
}

// NewServerError creates the generic 500 response for unexpected failures.
func NewServerError() *ErrorResponse {
	return NewErrorResponse(http.StatusInternalServerError, MessageInternalError)
}

// HTTPStatusCode returns the status to write, defaulting to 500.
func (e *ErrorResponse) HTTPStatusCode() int {
	if e.Status == 0 {
		return http.StatusInternalServerError
	}
	return e.Status
}
