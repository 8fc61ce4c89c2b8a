// Package types defines the wire types shared by the proxy server and its
// middleware.
//
// Every failure, whatever its origin, is reported to the caller as
//
//	{"error": "<message>"}
//
// with status 400 (invalid input), 401 (missing or rejected credential),
// 403 (origin not allowed) or 500 (upstream or unexpected failure). The
// constructors in this package fix the status for each kind so that callers
// cannot pair a message with the wrong code.
package types
