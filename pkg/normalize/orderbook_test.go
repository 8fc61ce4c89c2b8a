package normalize

import (
	"encoding/json"
	"errors"
	"testing"
)

const sampleBook = `{
	"market":"0xmarket",
	"asset_id":"123",
	"timestamp":"1717000000000",
	"hash":"abc",
	"bids":[{"price":"0.45","size":"100"},{"price":"0.48","size":"20.5"},{"price":"0.40","size":"1"}],
	"asks":[{"price":"0.55","size":"10"},{"price":"0.52","size":"5"}]
}`

func TestParseOrderBook(t *testing.T) {
	book, err := ParseOrderBook(json.RawMessage(sampleBook))
	if err != nil {
		t.Fatalf("ParseOrderBook() error = %v", err)
	}
	if book.AssetID != "123" || book.Timestamp != "1717000000000" {
		t.Errorf("unexpected header %+v", book)
	}

	bid, ok := book.BestBid()
	if !ok || bid.Price.String() != "0.48" {
		t.Errorf("BestBid() = %v, %v", bid, ok)
	}
	ask, ok := book.BestAsk()
	if !ok || ask.Price.String() != "0.52" {
		t.Errorf("BestAsk() = %v, %v", ask, ok)
	}
	spread, ok := book.Spread()
	if !ok || spread.String() != "0.04" {
		t.Errorf("Spread() = %s, %v", spread, ok)
	}
	mid, ok := book.Midpoint()
	if !ok || mid.String() != "0.5" {
		t.Errorf("Midpoint() = %s, %v", mid, ok)
	}
	if d := Depth(book.Bids); d.String() != "121.5" {
		t.Errorf("Depth(bids) = %s", d)
	}
}

func TestParseOrderBook_Empty(t *testing.T) {
	book, err := ParseOrderBook(json.RawMessage(`{"asset_id":"1","timestamp":1717000000000}`))
	if err != nil {
		t.Fatalf("ParseOrderBook() error = %v", err)
	}
	if book.Timestamp != "1717000000000" {
		t.Errorf("numeric timestamp = %q", book.Timestamp)
	}
	if _, ok := book.BestBid(); ok {
		t.Error("expected no best bid")
	}
	if _, ok := book.Spread(); ok {
		t.Error("expected no spread")
	}
}

func TestParseOrderBook_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not an object", `[]`},
		{"bids not array", `{"bids":"x"}`},
		{"price above one", `{"bids":[{"price":"1.2","size":"1"}]}`},
		{"negative price", `{"asks":[{"price":"-0.1","size":"1"}]}`},
		{"missing price", `{"asks":[{"size":"1"}]}`},
		{"negative size", `{"bids":[{"price":"0.5","size":"-1"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOrderBook(json.RawMessage(tt.raw))
			if !errors.Is(err, ErrInvalidOrderBook) {
				t.Errorf("expected ErrInvalidOrderBook, got %v", err)
			}
		})
	}
}
