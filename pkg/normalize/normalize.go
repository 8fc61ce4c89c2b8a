package normalize

import (
	"bytes"
	"encoding/json"

	"whalecopy/whalegate/pkg/polymarket"
)

// emptyArray is returned whenever an expected collection is missing.
var emptyArray = json.RawMessage("[]")

// Options selects optional canonical re-encoding.
type Options struct {
	// CanonicalTraders re-encodes leaderboard and search output as []Trader.
	CanonicalTraders bool

	// CanonicalMarkets re-encodes markets and trending output as []Event and
	// event output as a single Event.
	CanonicalMarkets bool
}

// Normalizer reshapes upstream payloads into the per-endpoint response shape.
// It never fails: missing or unexpected structure degrades to an empty
// collection or to the unmodified payload.
type Normalizer struct {
	opts    Options
	aliases TraderAliases
}

// New creates a Normalizer.
func New(opts Options) *Normalizer {
	return &Normalizer{opts: opts, aliases: DefaultTraderAliases}
}

// Normalize reshapes raw for endpoint e using pass-through rules only.
func Normalize(e polymarket.Endpoint, raw json.RawMessage) json.RawMessage {
	return shape(e, raw)
}

// Normalize reshapes raw for endpoint e.
func (n *Normalizer) Normalize(e polymarket.Endpoint, raw json.RawMessage) json.RawMessage {
	out := shape(e, raw)

	switch e {
	case polymarket.Leaderboard, polymarket.Search:
		if n.opts.CanonicalTraders {
			if traders, ok := n.traders(out); ok {
				return traders
			}
		}
	case polymarket.Markets, polymarket.Trending:
		if n.opts.CanonicalMarkets {
			if events, ok := canonicalEvents(out); ok {
				return events
			}
		}
	case polymarket.Event:
		if n.opts.CanonicalMarkets {
			if event, ok := canonicalEvent(out); ok {
				return event
			}
		}
	}
	return out
}

// shape applies the structural rules:
//
//	search    -> profiles array, or []
//	markets   -> events array, or []
//	trending  -> the array itself, else the events array, or []
//	otherwise -> unchanged
func shape(e polymarket.Endpoint, raw json.RawMessage) json.RawMessage {
	switch e {
	case polymarket.Search:
		return field(raw, "profiles")
	case polymarket.Markets:
		return field(raw, "events")
	case polymarket.Trending:
		if isArray(raw) {
			return raw
		}
		return field(raw, "events")
	default:
		return raw
	}
}

// field extracts an array-valued member of a JSON object.
func field(raw json.RawMessage, name string) json.RawMessage {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return emptyArray
	}
	v, ok := obj[name]
	if !ok || !isArray(v) {
		return emptyArray
	}
	return v
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}
