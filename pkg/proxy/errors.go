package proxy

import (
	"errors"
	"log/slog"
	"net/http"

	"whalecopy/whalegate/pkg/limits"
	"whalecopy/whalegate/pkg/polymarket"
	"whalecopy/whalegate/pkg/proxy/types"
	"whalecopy/whalegate/pkg/security/auth"
	"whalecopy/whalegate/pkg/validation"
)

// ErrOriginNotAllowed is reported when a request's Origin is not allowlisted.
var ErrOriginNotAllowed = errors.New("origin not allowed")

// HandleError converts any error raised while serving a request into the
// error envelope. It is the single place where errors are classified:
//
//	*validation.Error           -> 400, message passed through
//	*auth.Error                 -> 401, message passed through
//	ErrOriginNotAllowed         -> 403
//	*limits.Error               -> 429
//	*polymarket.UpstreamError   -> 500, generic message
//	anything else               -> 500, generic message
func HandleError(err error) *types.ErrorResponse {
	var valErr *validation.Error
	if errors.As(err, &valErr) {
		return types.NewBadRequestError(valErr.Message)
	}

	var authErr *auth.Error
	if errors.As(err, &authErr) {
		return types.NewUnauthorizedError(authErr.Message)
	}

	if errors.Is(err, ErrOriginNotAllowed) {
		return types.NewForbiddenError()
	}

	var limErr *limits.Error
	if errors.As(err, &limErr) {
		return types.NewRateLimitError()
	}

	var upErr *polymarket.UpstreamError
	if errors.As(err, &upErr) {
		return types.NewUpstreamError()
	}

	return types.NewServerError()
}

// WriteError classifies err and writes the envelope. It is the only place a
// failed request is logged: server errors at error level with their full
// detail, which never reaches the caller, and upstream failures with the
// status and truncated body the upstream returned.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	errResp := HandleError(err)
	if errResp.HTTPStatusCode() >= http.StatusInternalServerError {
		attrs := []any{
			"error", err,
			"status", errResp.HTTPStatusCode(),
		}
		var upErr *polymarket.UpstreamError
		if errors.As(err, &upErr) {
			attrs = append(attrs,
				"upstream", upErr.Upstream,
				"endpoint", upErr.Endpoint,
				"upstream_status", upErr.StatusCode,
				"upstream_body", upErr.Body,
			)
		}
		slog.ErrorContext(r.Context(), "request failed", attrs...)
	}
	if werr := WriteErrorResponse(w, errResp); werr != nil {
		slog.DebugContext(r.Context(), "failed to write error response", "error", werr)
	}
}
