package normalize

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// ErrInvalidOrderBook is returned by ParseOrderBook when the payload is not
// a clob order book.
var ErrInvalidOrderBook = errors.New("invalid order book")

var one = decimal.NewFromInt(1)

// Level is a single price level.
type Level struct {
	Price decimal.Decimal `json:"price"`
	Size  decimal.Decimal `json:"size"`
}

// OrderBook is a parsed clob order book. Bids are sorted by descending price
// and asks by ascending price, so the best level of each side comes first.
type OrderBook struct {
	Market    string  `json:"market"`
	AssetID   string  `json:"assetId"`
	Timestamp string  `json:"timestamp"`
	Hash      string  `json:"hash,omitempty"`
	Bids      []Level `json:"bids"`
	Asks      []Level `json:"asks"`
}

// ParseOrderBook decodes a clob /book payload. Prices must lie in [0, 1] and
// sizes must be non-negative.
func ParseOrderBook(raw json.RawMessage) (*OrderBook, error) {
	var r record
	if err := json.Unmarshal(raw, &r); err != nil || r == nil {
		return nil, fmt.Errorf("%w: not a JSON object", ErrInvalidOrderBook)
	}

	book := &OrderBook{
		Market:    r.str("market"),
		AssetID:   r.str("asset_id", "assetId"),
		Timestamp: r.str("timestamp"),
		Hash:      r.str("hash"),
	}

	var err error
	if book.Bids, err = parseLevels(r, "bids"); err != nil {
		return nil, err
	}
	if book.Asks, err = parseLevels(r, "asks"); err != nil {
		return nil, err
	}

	sort.SliceStable(book.Bids, func(i, j int) bool {
		return book.Bids[i].Price.GreaterThan(book.Bids[j].Price)
	})
	sort.SliceStable(book.Asks, func(i, j int) bool {
		return book.Asks[i].Price.LessThan(book.Asks[j].Price)
	})
	return book, nil
}

func parseLevels(r record, side string) ([]Level, error) {
	levels := []Level{}
	v, ok := r.first([]string{side})
	if !ok {
		return levels, nil
	}
	recs, ok := decodeRecords(v)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not an array of levels", ErrInvalidOrderBook, side)
	}
	for i, lr := range recs {
		pv, ok := lr.first([]string{"price"})
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d] has no price", ErrInvalidOrderBook, side, i)
		}
		price, ok := asDecimal(pv)
		if !ok || price.IsNegative() || price.GreaterThan(one) {
			return nil, fmt.Errorf("%w: %s[%d] price %s outside [0, 1]", ErrInvalidOrderBook, side, i, asString(pv))
		}
		size := lr.decimal("size")
		if size.IsNegative() {
			return nil, fmt.Errorf("%w: %s[%d] has negative size", ErrInvalidOrderBook, side, i)
		}
		levels = append(levels, Level{Price: price, Size: size})
	}
	return levels, nil
}

// BestBid returns the highest bid.
func (b *OrderBook) BestBid() (Level, bool) {
	if len(b.Bids) == 0 {
		return Level{}, false
	}
	return b.Bids[0], true
}

// BestAsk returns the lowest ask.
func (b *OrderBook) BestAsk() (Level, bool) {
	if len(b.Asks) == 0 {
		return Level{}, false
	}
	return b.Asks[0], true
}

// Spread is BestAsk minus BestBid. It reports false when either side is empty.
func (b *OrderBook) Spread() (decimal.Decimal, bool) {
	bid, ok := b.BestBid()
	if !ok {
		return decimal.Zero, false
	}
	ask, ok := b.BestAsk()
	if !ok {
		return decimal.Zero, false
	}
	return ask.Price.Sub(bid.Price), true
}

// Midpoint is the average of the best bid and ask.
func (b *OrderBook) Midpoint() (decimal.Decimal, bool) {
	bid, ok := b.BestBid()
	if !ok {
		return decimal.Zero, false
	}
	ask, ok := b.BestAsk()
	if !ok {
		return decimal.Zero, false
	}
	return bid.Price.Add(ask.Price).Div(decimal.NewFromInt(2)), true
}

// Depth sums the size on one side of the book.
func Depth(levels []Level) decimal.Decimal {
	total := decimal.Zero
	for _, l := range levels {
		total = total.Add(l.Size)
	}
	return total
}
