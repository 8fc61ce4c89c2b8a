package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"whalecopy/whalegate/pkg/polymarket"

	"github.com/ethereum/go-ethereum/common"
)

// Parameter limits.
const (
	DefaultLimit   = 100
	MinLimit       = 1
	MaxLimit       = 100
	MaxQueryLength = 200
)

// Params are the raw string parameters of an inbound call, keyed by name.
// A key that is present with an empty value is distinct from an absent key.
type Params map[string]string

var (
	locatorPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	digitsPattern  = regexp.MustCompile(`^[0-9]+$`)
)

// aliases lists the accepted names of each parameter in priority order.
var aliases = map[string][]string{
	"query":   {"query", "q"},
	"tokenId": {"tokenId", "token_id"},
}

// lookup returns the first non-blank value among the names of param,
// unmodified. Blank values count as absent so that a lower-priority alias
// can supply the parameter.
func lookup(raw Params, param string) string {
	names, ok := aliases[param]
	if !ok {
		names = []string{param}
	}
	for _, name := range names {
		if v := raw[name]; strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// ParseEndpoint checks raw against the closed endpoint set.
func ParseEndpoint(raw string) (polymarket.Endpoint, error) {
	e, ok := polymarket.ParseEndpoint(raw)
	if !ok {
		return "", newError("endpoint", "Invalid endpoint")
	}
	return e, nil
}

// Validate checks the parameters required by e and returns them in typed,
// normalized form. Parameters that e does not use are ignored.
func Validate(e polymarket.Endpoint, raw Params) (polymarket.Params, error) {
	var p polymarket.Params
	var err error

	switch e {
	case polymarket.Leaderboard:
		p.Limit, err = limit(raw)

	case polymarket.Search, polymarket.Markets:
		p.Query, err = query(e, raw)

	case polymarket.Event:
		p.ID, p.Slug, err = eventLocator(raw)

	case polymarket.OrderBook:
		p.TokenID, err = tokenID(raw)

	case polymarket.Positions, polymarket.Profile, polymarket.Activity:
		p.User, err = wallet(e, raw)

	case polymarket.Trending:

	default:
		return p, newError("endpoint", "Invalid endpoint")
	}

	if err != nil {
		return polymarket.Params{}, err
	}
	return p, nil
}

func limit(raw Params) (int, error) {
	v, ok := raw["limit"]
	if !ok {
		return DefaultLimit, nil
	}
	// Only bare digits: no sign, no surrounding whitespace.
	n, err := strconv.Atoi(v)
	if !digitsPattern.MatchString(v) || err != nil || n < MinLimit || n > MaxLimit {
		return 0, newError("limit", fmt.Sprintf("Limit must be an integer between %d and %d", MinLimit, MaxLimit))
	}
	return n, nil
}

// query reads "query", falling back to its short alias "q".
func query(e polymarket.Endpoint, raw Params) (string, error) {
	v := strings.TrimSpace(lookup(raw, "query"))
	if v == "" {
		return "", newError("query", fmt.Sprintf("Query parameter required for %s endpoint", e))
	}
	if utf8.RuneCountInString(v) > MaxQueryLength {
		return "", newError("query", fmt.Sprintf("Query must be at most %d characters", MaxQueryLength))
	}
	return v, nil
}

// eventLocator returns either an id or a slug; id wins when both are given.
func eventLocator(raw Params) (id, slug string, err error) {
	if v := raw["id"]; v != "" {
		if !locatorPattern.MatchString(v) {
			return "", "", newError("id", "Invalid id format")
		}
		return v, "", nil
	}
	if v := raw["slug"]; v != "" {
		if !locatorPattern.MatchString(v) {
			return "", "", newError("slug", "Invalid slug format")
		}
		return "", v, nil
	}
	return "", "", newError("slug", "id or slug parameter required for event endpoint")
}

func tokenID(raw Params) (string, error) {
	v := lookup(raw, "tokenId")
	if v == "" {
		return "", newError("tokenId", "tokenId parameter required for orderbook endpoint")
	}
	if !digitsPattern.MatchString(v) {
		return "", newError("tokenId", "Invalid tokenId format")
	}
	return v, nil
}

// wallet accepts 0x-prefixed 20-byte hex addresses in any letter case and
// returns them lowercased.
func wallet(e polymarket.Endpoint, raw Params) (string, error) {
	v, ok := raw["user"]
	if !ok || v == "" {
		return "", newError("user", fmt.Sprintf("User parameter required for %s endpoint", e))
	}
	if !IsWalletAddress(v) {
		return "", newError("user", "Invalid wallet address")
	}
	return strings.ToLower(v), nil
}

// IsWalletAddress reports whether s is "0x" followed by exactly 40 hex digits.
func IsWalletAddress(s string) bool {
	return strings.HasPrefix(s, "0x") && common.IsHexAddress(s)
}
