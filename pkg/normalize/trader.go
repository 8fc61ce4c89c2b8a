package normalize

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Trader is the canonical trader record produced from leaderboard and
// profile-search results.
type Trader struct {
	Address         string          `json:"address"`
	Name            string          `json:"name,omitempty"`
	ProfileImage    string          `json:"profileImage,omitempty"`
	XUsername       string          `json:"xUsername,omitempty"`
	Verified        bool            `json:"verified"`
	Volume          decimal.Decimal `json:"volume"`
	PnL             decimal.Decimal `json:"pnl"`
	Value           decimal.Decimal `json:"value"`
	Rank            int             `json:"rank,omitempty"`
	OpenPositions   int             `json:"openPositions"`
	ClosedPositions int             `json:"closedPositions"`
	TotalPositions  int             `json:"totalPositions"`
}

// TraderAliases lists, per canonical field, the upstream keys that may carry
// it in priority order. The first key that is present and non-empty wins.
// Supporting a new upstream shape means adding a key here.
type TraderAliases struct {
	Address         []string
	Name            []string
	ProfileImage    []string
	XUsername       []string
	Verified        []string
	Volume          []string
	PnL             []string
	Value           []string
	Rank            []string
	OpenPositions   []string
	ClosedPositions []string
	TotalPositions  []string
}

// DefaultTraderAliases covers the data API leaderboard and the gamma profile
// search shapes.
var DefaultTraderAliases = TraderAliases{
	Address:         []string{"proxyWallet", "address", "wallet"},
	Name:            []string{"name", "userName", "pseudonym", "displayUsername"},
	ProfileImage:    []string{"profileImage", "profileImageOptimized"},
	XUsername:       []string{"xUsername"},
	Verified:        []string{"verifiedBadge", "verified"},
	Volume:          []string{"vol", "volume_amount", "profile_volume", "volume"},
	PnL:             []string{"pnl", "profile_profit", "profit"},
	Value:           []string{"profile_value", "value"},
	Rank:            []string{"rank"},
	OpenPositions:   []string{"openPositionCount"},
	ClosedPositions: []string{"closedPositionCount"},
	TotalPositions:  []string{"totalPositions", "marketsTraded"},
}

// resolve builds a Trader from an upstream record.
func (a TraderAliases) resolve(r record) Trader {
	t := Trader{
		Address:      r.str(a.Address...),
		Name:         r.str(a.Name...),
		ProfileImage: r.str(a.ProfileImage...),
		XUsername:    r.str(a.XUsername...),
		Verified:     r.boolean(a.Verified...),
		Volume:       r.decimal(a.Volume...),
		PnL:          r.decimal(a.PnL...),
		Value:        r.decimal(a.Value...),
	}
	t.Rank, _ = r.integer(a.Rank...)
	t.OpenPositions, _ = r.integer(a.OpenPositions...)
	t.ClosedPositions, _ = r.integer(a.ClosedPositions...)

	if total, ok := r.integer(a.TotalPositions...); ok {
		t.TotalPositions = total
	} else {
		t.TotalPositions = t.OpenPositions + t.ClosedPositions
	}
	return t
}

// ResolveTraders decodes a JSON array of upstream trader objects.
func ResolveTraders(raw json.RawMessage) ([]Trader, bool) {
	return DefaultTraderAliases.resolveAll(raw)
}

func (a TraderAliases) resolveAll(raw json.RawMessage) ([]Trader, bool) {
	recs, ok := decodeRecords(raw)
	if !ok {
		return nil, false
	}
	out := make([]Trader, 0, len(recs))
	for _, r := range recs {
		out = append(out, a.resolve(r))
	}
	return out, true
}

func (n *Normalizer) traders(raw json.RawMessage) (json.RawMessage, bool) {
	traders, ok := n.aliases.resolveAll(raw)
	if !ok {
		return nil, false
	}
	b, err := json.Marshal(traders)
	if err != nil {
		return nil, false
	}
	return b, true
}
