package auth

// Caller-facing messages for rejected requests.
const (
	MessageMissingCredential = "Missing authorization header"
	MessageUnauthorized      = "Unauthorized"
)

// Error is an authentication failure. Message is safe to return to the
// caller; Cause is for server-side logs only.
type Error struct {
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

func errMissingCredential() *Error {
	return &Error{Message: MessageMissingCredential}
}

func errUnauthorized(cause error) *Error {
	return &Error{Message: MessageUnauthorized, Cause: cause}
}
