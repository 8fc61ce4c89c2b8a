// Package validation checks inbound endpoint names and parameters before any
// upstream call is made.
//
// Validation is a pure function of (endpoint, raw parameters). Every
// rejection is an *Error whose message is specific enough to show the caller,
// and maps to HTTP 400 at the gateway boundary.
package validation
