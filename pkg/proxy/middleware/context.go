package middleware

import "context"

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// Context keys for storing values in request context.
const (
	// StartTimeKey stores the request start time for latency calculation.
	StartTimeKey contextKey = "start_time"

	// StateKey stores the *RequestState shared with inner handlers.
	StateKey contextKey = "request_state"
)

// RequestState collects facts learned by inner handlers so that the outer
// logging and metrics middleware can report them after the request is served.
// It is owned by a single request and must not be shared.
type RequestState struct {
	// Endpoint is the resolved endpoint, or "invalid" if it was rejected.
	Endpoint string

	// UserID is the authenticated user.
	UserID string
}

// withState returns ctx carrying st, reusing an existing state if present.
func withState(ctx context.Context) (context.Context, *RequestState) {
	if st, ok := ctx.Value(StateKey).(*RequestState); ok {
		return ctx, st
	}
	st := &RequestState{}
	return context.WithValue(ctx, StateKey, st), st
}

// GetState returns the request state, or nil outside the middleware chain.
func GetState(ctx context.Context) *RequestState {
	st, _ := ctx.Value(StateKey).(*RequestState)
	return st
}

// SetEndpoint records the endpoint being served.
func SetEndpoint(ctx context.Context, endpoint string) {
	if st := GetState(ctx); st != nil {
		st.Endpoint = endpoint
	}
}

// SetUserID records the authenticated user.
func SetUserID(ctx context.Context, userID string) {
	if st := GetState(ctx); st != nil {
		st.UserID = userID
	}
}
