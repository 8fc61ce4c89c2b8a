package proxy

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"whalecopy/whalegate/pkg/validation"
)

func TestParseCall(t *testing.T) {
	tests := []struct {
		name         string
		method       string
		target       string
		body         string
		wantEndpoint string
		wantParams   validation.Params
		wantErr      string
	}{
		{
			name:         "no endpoint defaults to leaderboard",
			method:       http.MethodPost,
			target:       "/",
			wantEndpoint: "leaderboard",
			wantParams:   validation.Params{},
		},
		{
			name:         "query string only",
			method:       http.MethodGet,
			target:       "/?endpoint=search&query=whale&ignored=1",
			wantEndpoint: "search",
			wantParams:   validation.Params{"query": "whale"},
		},
		{
			name:         "explicit empty endpoint kept",
			method:       http.MethodGet,
			target:       "/?endpoint=",
			wantEndpoint: "",
			wantParams:   validation.Params{},
		},
		{
			name:         "body overrides query key by key",
			method:       http.MethodPost,
			target:       "/?endpoint=markets&query=a&limit=5",
			body:         `{"query":"b"}`,
			wantEndpoint: "markets",
			wantParams:   validation.Params{"query": "b", "limit": "5"},
		},
		{
			name:         "numbers and booleans stringified",
			method:       http.MethodPost,
			target:       "/",
			body:         `{"limit":25,"tokenId":71321045679252212594626385532706912750332728571942532289631379312455583992563,"slug":true}`,
			wantEndpoint: "leaderboard",
			wantParams: validation.Params{
				"limit":   "25",
				"tokenId": "71321045679252212594626385532706912750332728571942532289631379312455583992563",
				"slug":    "true",
			},
		},
		{
			name:         "snake case token id kept",
			method:       http.MethodPost,
			target:       "/",
			body:         `{"endpoint":"orderbook","token_id":"123"}`,
			wantEndpoint: "orderbook",
			wantParams:   validation.Params{"token_id": "123"},
		},
		{
			name:         "null skipped",
			method:       http.MethodPost,
			target:       "/?limit=7",
			body:         `{"limit":null}`,
			wantEndpoint: "leaderboard",
			wantParams:   validation.Params{"limit": "7"},
		},
		{
			name:         "non object body ignored",
			method:       http.MethodPost,
			target:       "/?endpoint=trending",
			body:         `["endpoint","search"]`,
			wantEndpoint: "trending",
			wantParams:   validation.Params{},
		},
		{
			name:         "GET body not read",
			method:       http.MethodGet,
			target:       "/",
			body:         `{"endpoint":"search"}`,
			wantEndpoint: "leaderboard",
			wantParams:   validation.Params{},
		},
		{
			name:    "object parameter rejected",
			method:  http.MethodPost,
			target:  "/",
			body:    `{"user":{"id":1}}`,
			wantErr: "Invalid user parameter",
		},
		{
			name:    "array endpoint rejected",
			method:  http.MethodPost,
			target:  "/",
			body:    `{"endpoint":["search"]}`,
			wantErr: "Invalid endpoint",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r *http.Request
			if tt.body != "" {
				r = httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			} else {
				r = httptest.NewRequest(tt.method, tt.target, nil)
			}

			call, err := ParseCall(r, 0)
			if tt.wantErr != "" {
				var valErr *validation.Error
				if !errors.As(err, &valErr) {
					t.Fatalf("ParseCall() error = %v, want *validation.Error", err)
				}
				if valErr.Message != tt.wantErr {
					t.Errorf("Message = %q, want %q", valErr.Message, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCall() error = %v", err)
			}
			if call.Endpoint != tt.wantEndpoint {
				t.Errorf("Endpoint = %q, want %q", call.Endpoint, tt.wantEndpoint)
			}
			if !reflect.DeepEqual(call.Params, tt.wantParams) {
				t.Errorf("Params = %v, want %v", call.Params, tt.wantParams)
			}
		})
	}
}

func TestParseCall_BodyLimit(t *testing.T) {
	body := `{"query":"` + strings.Repeat("x", 64) + `"}`

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if _, err := ParseCall(r, int64(len(body))); err != nil {
		t.Fatalf("body at the limit rejected: %v", err)
	}

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	_, err := ParseCall(r, int64(len(body)-1))
	var valErr *validation.Error
	if !errors.As(err, &valErr) {
		t.Fatalf("ParseCall() error = %v, want *validation.Error", err)
	}
}
