package polymarket

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Params carries the validated inputs of a single call. Only the fields
// relevant to the endpoint are read.
type Params struct {
	Limit   int
	Query   string
	ID      string
	Slug    string
	TokenID string
	User    string
}

// QueryParam is one key/value pair of an upstream query string.
type QueryParam struct {
	Key   string
	Value string
}

// Request describes a single upstream GET. Query parameters keep their order
// so the outbound URL is stable.
type Request struct {
	Endpoint Endpoint
	Upstream Upstream
	Path     string
	Query    []QueryParam
}

// Fixed upstream page sizes.
const (
	searchProfilesPerType = 50
	searchMarketsPerType  = 30
	trendingLimit         = 20
	activityLimit         = 50
)

// ErrUnknownEndpoint is returned by Build for endpoints outside the closed set.
var ErrUnknownEndpoint = errors.New("unknown endpoint")

// Build maps a logical endpoint and its validated parameters onto the
// upstream request that serves it.
func Build(e Endpoint, p Params) (Request, error) {
	req := Request{Endpoint: e, Upstream: e.Upstream()}

	switch e {
	case Leaderboard:
		req.Path = "/v1/leaderboard"
		req.Query = []QueryParam{{"limit", strconv.Itoa(p.Limit)}}

	case Search:
		req.Path = "/public-search"
		req.Query = []QueryParam{
			{"q", p.Query},
			{"search_profiles", "true"},
			{"limit_per_type", strconv.Itoa(searchProfilesPerType)},
			{"optimized", "true"},
		}

	case Markets:
		req.Path = "/public-search"
		req.Query = []QueryParam{
			{"q", p.Query},
			{"limit_per_type", strconv.Itoa(searchMarketsPerType)},
			{"optimized", "true"},
		}

	case Trending:
		req.Path = "/events"
		req.Query = []QueryParam{
			{"active", "true"},
			{"closed", "false"},
			{"limit", strconv.Itoa(trendingLimit)},
			{"order", "volume"},
			{"ascending", "false"},
		}

	case Event:
		switch {
		case p.ID != "":
			req.Path = "/events/" + url.PathEscape(p.ID)
		case p.Slug != "":
			req.Path = "/events/slug/" + url.PathEscape(p.Slug)
		default:
			return Request{}, fmt.Errorf("%s: id or slug is required", e)
		}

	case OrderBook:
		req.Path = "/book"
		req.Query = []QueryParam{{"token_id", p.TokenID}}

	case Positions:
		req.Path = "/positions"
		req.Query = []QueryParam{{"user", p.User}}

	case Profile:
		req.Path = "/profile"
		req.Query = []QueryParam{{"user", p.User}}

	case Activity:
		req.Path = "/activity"
		req.Query = []QueryParam{
			{"user", p.User},
			{"limit", strconv.Itoa(activityLimit)},
		}

	default:
		return Request{}, fmt.Errorf("%w: %q", ErrUnknownEndpoint, string(e))
	}

	return req, nil
}

// RawQuery encodes the query parameters in order.
func (r Request) RawQuery() string {
	var sb strings.Builder
	for i, q := range r.Query {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(q.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(q.Value))
	}
	return sb.String()
}

// URL joins the request onto the given base URL.
func (r Request) URL(base string) string {
	u := strings.TrimRight(base, "/") + r.Path
	if len(r.Query) > 0 {
		u += "?" + r.RawQuery()
	}
	return u
}
