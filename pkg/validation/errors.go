package validation

// Error reports a rejected endpoint or parameter. Message is safe to return
// to the caller verbatim.
type Error struct {
	// Field is the offending parameter, or "endpoint".
	Field string

	// Message is a human-readable description of the problem.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

func newError(field, msg string) *Error {
	return &Error{Field: field, Message: msg}
}
