// Package handlers provides the HTTP handler behind the proxy route.
//
// Gateway runs one request through
//
//	parameter extraction -> endpoint check -> validation -> upstream call -> normalization
//
// and writes either the normalized JSON with status 200 or the error
// envelope. Origin and credential checks happen in middleware before the
// Gateway is reached.
//
// Parameters are read from the query string, then from a JSON object body,
// whose fields win per key. A request that names no endpoint is served as
// leaderboard.
package handlers
