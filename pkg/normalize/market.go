package normalize

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Event is the canonical gamma event with its sub-markets.
type Event struct {
	ID           string          `json:"id"`
	Slug         string          `json:"slug"`
	Title        string          `json:"title"`
	Image        string          `json:"image,omitempty"`
	Active       bool            `json:"active"`
	Closed       bool            `json:"closed"`
	Volume       decimal.Decimal `json:"volume"`
	Liquidity    decimal.Decimal `json:"liquidity"`
	OpenInterest decimal.Decimal `json:"openInterest"`
	EndDate      string          `json:"endDate,omitempty"`
	Markets      []Market        `json:"markets"`
}

// Market is a single binary or categorical market within an Event.
type Market struct {
	ID            string              `json:"id"`
	Question      string              `json:"question"`
	Slug          string              `json:"slug,omitempty"`
	ConditionID   string              `json:"conditionId,omitempty"`
	Outcomes      []string            `json:"outcomes"`
	OutcomePrices []decimal.Decimal   `json:"outcomePrices"`
	ClobTokenIDs  []string            `json:"clobTokenIds"`
	BestBid       decimal.NullDecimal `json:"bestBid"`
	BestAsk       decimal.NullDecimal `json:"bestAsk"`
	Spread        decimal.NullDecimal `json:"spread"`
	Volume        decimal.Decimal     `json:"volume"`
	Liquidity     decimal.Decimal     `json:"liquidity"`
	OpenInterest  decimal.Decimal     `json:"openInterest"`
	Active        bool                `json:"active"`
	Closed        bool                `json:"closed"`
}

func resolveEvent(r record) Event {
	e := Event{
		ID:           r.str("id"),
		Slug:         r.str("slug"),
		Title:        r.str("title", "question"),
		Image:        r.str("image", "icon"),
		Active:       r.boolean("active"),
		Closed:       r.boolean("closed"),
		Volume:       r.decimal("volume", "volumeNum"),
		Liquidity:    r.decimal("liquidity", "liquidityNum"),
		OpenInterest: r.decimal("openInterest"),
		EndDate:      r.str("endDate"),
		Markets:      []Market{},
	}

	if v, ok := r.first([]string{"markets"}); ok {
		if recs, ok := decodeRecords(v); ok {
			for _, m := range recs {
				e.Markets = append(e.Markets, resolveMarket(m))
			}
		}
	}
	return e
}

func resolveMarket(r record) Market {
	m := Market{
		ID:           r.str("id"),
		Question:     r.str("question", "title"),
		Slug:         r.str("slug"),
		ConditionID:  r.str("conditionId"),
		Outcomes:     r.list("outcomes"),
		ClobTokenIDs: r.list("clobTokenIds"),
		BestBid:      r.nullDecimal("bestBid"),
		BestAsk:      r.nullDecimal("bestAsk"),
		Spread:       r.nullDecimal("spread"),
		Volume:       r.decimal("volumeNum", "volume"),
		Liquidity:    r.decimal("liquidityNum", "liquidity"),
		OpenInterest: r.decimal("openInterest"),
		Active:       r.boolean("active"),
		Closed:       r.boolean("closed"),
	}

	prices := r.list("outcomePrices")
	m.OutcomePrices = make([]decimal.Decimal, 0, len(prices))
	for _, p := range prices {
		d, err := decimal.NewFromString(p)
		if err != nil {
			d = decimal.Zero
		}
		m.OutcomePrices = append(m.OutcomePrices, d)
	}
	if m.Outcomes == nil {
		m.Outcomes = []string{}
	}
	if m.ClobTokenIDs == nil {
		m.ClobTokenIDs = []string{}
	}
	return m
}

// ResolveEvents decodes a JSON array of gamma events.
func ResolveEvents(raw json.RawMessage) ([]Event, bool) {
	recs, ok := decodeRecords(raw)
	if !ok {
		return nil, false
	}
	out := make([]Event, 0, len(recs))
	for _, r := range recs {
		out = append(out, resolveEvent(r))
	}
	return out, true
}

// ResolveEvent decodes a single gamma event object.
func ResolveEvent(raw json.RawMessage) (Event, bool) {
	var r record
	if err := json.Unmarshal(raw, &r); err != nil || r == nil {
		return Event{}, false
	}
	return resolveEvent(r), true
}

func canonicalEvents(raw json.RawMessage) (json.RawMessage, bool) {
	events, ok := ResolveEvents(raw)
	if !ok {
		return nil, false
	}
	b, err := json.Marshal(events)
	if err != nil {
		return nil, false
	}
	return b, true
}

func canonicalEvent(raw json.RawMessage) (json.RawMessage, bool) {
	event, ok := ResolveEvent(raw)
	if !ok {
		return nil, false
	}
	b, err := json.Marshal(event)
	if err != nil {
		return nil, false
	}
	return b, true
}
