// Package middleware provides HTTP middleware for cross-cutting concerns.
//
// # Middleware Chain
//
// The server assembles the proxy route as
//
//	Recovery(RequestID(Logging(Metrics(CORS(Auth(gateway))))))
//
// Order (outermost to innermost):
//  1. Recovery: Recover from panics, return the generic 500 envelope
//  2. RequestID: Generate or propagate X-Request-ID
//  3. Logging: One structured line per request, level by status
//  4. Metrics: Request counts, latency and rejection reasons
//  5. CORS: Origin allowlist, CORS headers, preflight short-circuit
//  6. Auth: Bearer credential check (pkg/security/auth)
//
// The origin check runs before authentication, so a preflight never needs a
// credential and a disallowed origin is refused with 403 before a token is
// looked at.
//
// # Request State
//
// Logging and Metrics place a *RequestState in the context. Inner handlers
// record the resolved endpoint and user with SetEndpoint and SetUserID, and
// the outer middleware reports them once the response is written.
package middleware
