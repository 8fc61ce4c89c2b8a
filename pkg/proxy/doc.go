// Package proxy holds the request and response plumbing shared by the
// gateway handler and its middleware.
//
// # Request Model
//
// Every request names one operation with the "endpoint" parameter and
// supplies its inputs as flat string parameters. ParseCall reads them from
// the query string first and then from a JSON object body, whose fields
// override query values key by key. A request that names no endpoint at all
// is a leaderboard request.
//
//	POST / {"endpoint": "orderbook", "tokenId": "7132104567..."}
//	GET  /?endpoint=search&query=whale
//
// # Errors
//
// HandleError is the only place where failures are mapped to statuses:
//
//	*validation.Error           400  message passed through
//	*auth.Error                 401  message passed through
//	ErrOriginNotAllowed         403  "Origin not allowed"
//	*limits.Error               429  "Rate limit exceeded"
//	*polymarket.UpstreamError   500  "Upstream request failed"
//	anything else               500  "Internal server error"
//
// Every failure is written as {"error": "<message>"}. Upstream response
// bodies are logged server side and never returned.
//
// # Subpackages
//
//   - handlers: the gateway http.Handler
//   - middleware: recovery, request ID, logging, metrics and CORS
//   - types: the error envelope
package proxy
