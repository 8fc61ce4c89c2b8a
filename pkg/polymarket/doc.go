// Package polymarket is the upstream adapter for the three read-only
// Polymarket HTTP APIs.
//
// Build turns a logical Endpoint and its validated Params into a Request
// descriptor (upstream, path, ordered query). Client.Do executes a descriptor
// as a single GET with an Accept: application/json header and returns the raw
// JSON body. Non-2xx statuses, transport failures, timeouts and bodies that
// are not JSON are all reported as *UpstreamError; the error body is retained
// for logging only.
//
// Endpoint mapping:
//
//	leaderboard  data   /v1/leaderboard?limit=<n>
//	search       gamma  /public-search?q=<q>&search_profiles=true&limit_per_type=50&optimized=true
//	markets      gamma  /public-search?q=<q>&limit_per_type=30&optimized=true
//	trending     gamma  /events?active=true&closed=false&limit=20&order=volume&ascending=false
//	event        gamma  /events/<id> or /events/slug/<slug>
//	orderbook    clob   /book?token_id=<id>
//	positions    data   /positions?user=<addr>
//	profile      data   /profile?user=<addr>
//	activity     data   /activity?user=<addr>&limit=50
package polymarket
