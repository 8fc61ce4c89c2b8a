package auth

import "context"

// Identity is the authenticated caller. Identities carry no roles or
// permissions; a request is either authenticated or it is not.
type Identity struct {
	UserID string
	Email  string
}

// Verifier maps a bearer token to an Identity.
//
// Verify returns (nil, nil) when the token is well formed but does not belong
// to any user, and a non-nil error when verification itself failed. The
// middleware rejects both with 401.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// VerifierFunc adapts a function to the Verifier interface.
type VerifierFunc func(ctx context.Context, token string) (*Identity, error)

// Verify calls f.
func (f VerifierFunc) Verify(ctx context.Context, token string) (*Identity, error) {
	return f(ctx, token)
}
