package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"whalecopy/whalegate/pkg/telemetry/logging"
)

func TestRequestIDMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		wantSame bool
	}{
		{"generated when absent", "", false},
		{"caller id reused", "web-7f3a2c", true},
		{"oversized caller id replaced", strings.Repeat("a", maxRequestIDLength+1), false},
		{"id at the length bound kept", strings.Repeat("b", maxRequestIDLength), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var inContext string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				inContext = logging.GetRequestID(r.Context())
			})

			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			w := httptest.NewRecorder()
			RequestIDMiddleware(next).ServeHTTP(w, req)

			got := w.Header().Get(RequestIDHeader)
			if got != inContext {
				t.Errorf("header %q differs from logging context %q", got, inContext)
			}
			if tt.wantSame {
				if got != tt.incoming {
					t.Errorf("X-Request-ID = %q, want caller value", got)
				}
				return
			}
			if _, err := uuid.Parse(got); err != nil {
				t.Errorf("X-Request-ID = %q, want a generated UUID: %v", got, err)
			}
		})
	}
}

func TestRequestIDMiddleware_OnRejectedRequests(t *testing.T) {
	cors := CORSMiddleware(&CORSConfig{AllowedOrigins: []string{"https://app.example.com"}}, nil)
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("rejected request reached the gateway")
	})
	chain := RequestIDMiddleware(cors(next))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"endpoint":"trending"}`))
	req.Header.Set("Origin", "https://evil.example.net")
	req.Header.Set(RequestIDHeader, "trace-me")
	w := httptest.NewRecorder()
	chain.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	if got := w.Header().Get(RequestIDHeader); got != "trace-me" {
		t.Errorf("X-Request-ID on error envelope = %q, want %q", got, "trace-me")
	}
	if got := w.Header().Get("Access-Control-Expose-Headers"); !strings.Contains(got, RequestIDHeader) {
		t.Errorf("Access-Control-Expose-Headers = %q, want it to expose %s", got, RequestIDHeader)
	}
}

func TestGetRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetRequestID(req.Context()); got != "" {
		t.Errorf("GetRequestID() outside the chain = %q, want empty", got)
	}

	ctx := logging.WithRequestID(req.Context(), "req-42")
	if got := GetRequestID(ctx); got != "req-42" {
		t.Errorf("GetRequestID() = %q, want %q", got, "req-42")
	}
}
