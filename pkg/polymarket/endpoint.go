package polymarket

import "sort"

// Endpoint is a logical operation exposed by the gateway. The set is closed;
// anything not listed here is rejected before an upstream call is attempted.
type Endpoint string

// Supported endpoints.
const (
	Leaderboard Endpoint = "leaderboard"
	Search      Endpoint = "search"
	Markets     Endpoint = "markets"
	Trending    Endpoint = "trending"
	Event       Endpoint = "event"
	OrderBook   Endpoint = "orderbook"
	Positions   Endpoint = "positions"
	Profile     Endpoint = "profile"
	Activity    Endpoint = "activity"
)

// DefaultEndpoint is used when a request does not name an endpoint at all.
const DefaultEndpoint = Leaderboard

// Upstream identifies one of the Polymarket HTTP APIs.
type Upstream string

// Upstream APIs.
const (
	// DataAPI serves leaderboards, positions, profiles and activity.
	DataAPI Upstream = "data"
	// GammaAPI serves search and events.
	GammaAPI Upstream = "gamma"
	// ClobAPI serves order books.
	ClobAPI Upstream = "clob"
)

var endpointUpstreams = map[Endpoint]Upstream{
	Leaderboard: DataAPI,
	Search:      GammaAPI,
	Markets:     GammaAPI,
	Trending:    GammaAPI,
	Event:       GammaAPI,
	OrderBook:   ClobAPI,
	Positions:   DataAPI,
	Profile:     DataAPI,
	Activity:    DataAPI,
}

// ParseEndpoint returns the Endpoint named by s. Matching is exact.
func ParseEndpoint(s string) (Endpoint, bool) {
	e := Endpoint(s)
	_, ok := endpointUpstreams[e]
	return e, ok
}

// Upstream returns the API that serves e.
func (e Endpoint) Upstream() Upstream {
	return endpointUpstreams[e]
}

// Endpoints returns every supported endpoint in lexical order.
func Endpoints() []Endpoint {
	out := make([]Endpoint, 0, len(endpointUpstreams))
	for e := range endpointUpstreams {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Upstreams returns the three Polymarket APIs.
func Upstreams() []Upstream {
	return []Upstream{DataAPI, GammaAPI, ClobAPI}
}
