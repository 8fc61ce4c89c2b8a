package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"whalecopy/whalegate/pkg/polymarket"
)

func TestParseFetchArgs(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantErr    bool
		wantParams map[string]string
	}{
		{
			name:       "endpoint only",
			args:       []string{"leaderboard"},
			wantParams: map[string]string{},
		},
		{
			name:       "parameters",
			args:       []string{"search", "query=trump", "limit=5"},
			wantParams: map[string]string{"query": "trump", "limit": "5"},
		},
		{
			name:       "value containing equals",
			args:       []string{"event", "slug=a=b"},
			wantParams: map[string]string{"slug": "a=b"},
		},
		{
			name:    "missing equals",
			args:    []string{"search", "trump"},
			wantErr: true,
		},
		{
			name:    "empty key",
			args:    []string{"search", "=trump"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call, err := parseFetchArgs(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseFetchArgs() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if call.Endpoint != tt.args[0] {
				t.Errorf("Endpoint = %q, want %q", call.Endpoint, tt.args[0])
			}
			if len(call.Params) != len(tt.wantParams) {
				t.Fatalf("Params = %v, want %v", call.Params, tt.wantParams)
			}
			for k, v := range tt.wantParams {
				if call.Params[k] != v {
					t.Errorf("Params[%q] = %q, want %q", k, call.Params[k], v)
				}
			}
		})
	}
}

func TestRenderText(t *testing.T) {
	tests := []struct {
		name     string
		endpoint polymarket.Endpoint
		raw      string
		contains []string
		wantErr  bool
	}{
		{
			name:     "order book",
			endpoint: polymarket.OrderBook,
			raw: `{"market":"0xmarket","asset_id":"123","timestamp":"1700000000",
				"bids":[{"price":"0.48","size":"100"},{"price":"0.50","size":"20"}],
				"asks":[{"price":"0.55","size":"40"}]}`,
			contains: []string{
				"Best bid: 0.5 x 20",
				"Best ask: 0.55 x 40",
				"Spread:   0.05",
				"BID SIZE",
				"Depth: 120 bid / 40 ask",
			},
		},
		{
			name:     "invalid order book",
			endpoint: polymarket.OrderBook,
			raw:      `[1,2,3]`,
			wantErr:  true,
		},
		{
			name:     "leaderboard",
			endpoint: polymarket.Leaderboard,
			raw:      `[{"proxyWallet":"0xabc","userName":"whale","pnl":1234.5,"vol":99}]`,
			contains: []string{"ADDRESS", "0xabc", "whale", "1234.50", "99.00"},
		},
		{
			name:     "events",
			endpoint: polymarket.Trending,
			raw:      `[{"slug":"fed-cut","title":"Fed cut?","volume":"1500.4","liquidity":"300","markets":[{"id":"1"}]}]`,
			contains: []string{"SLUG", "fed-cut", "1500", "Fed cut?"},
		},
		{
			name:     "fallback to JSON",
			endpoint: polymarket.Profile,
			raw:      `{"name":"whale"}`,
			contains: []string{"\"name\": \"whale\""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			err := renderText(buf, tt.endpoint, json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("renderText() error = %v, wantErr %v", err, tt.wantErr)
			}
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}
