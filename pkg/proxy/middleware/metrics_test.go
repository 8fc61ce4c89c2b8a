package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

type fakeRecorder struct {
	mu         sync.Mutex
	endpoints  []string
	statuses   []int
	rejections []string
}

func (f *fakeRecorder) RecordRequest(endpoint string, status int, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.endpoints = append(f.endpoints, endpoint)
	f.statuses = append(f.statuses, status)
}

func (f *fakeRecorder) RecordRejection(reason string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rejections = append(f.rejections, reason)
}

func TestMetricsMiddleware(t *testing.T) {
	tests := []struct {
		status        int
		wantRejection string
	}{
		{http.StatusOK, ""},
		{http.StatusBadRequest, RejectValidation},
		{http.StatusUnauthorized, RejectAuth},
		{http.StatusForbidden, RejectOrigin},
		{http.StatusTooManyRequests, RejectRateLimit},
		{http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			rec := &fakeRecorder{}
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				SetEndpoint(r.Context(), "orderbook")
				w.WriteHeader(tt.status)
			})

			MetricsMiddleware(rec)(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil))

			if len(rec.statuses) != 1 || rec.statuses[0] != tt.status {
				t.Fatalf("recorded statuses = %v, want [%d]", rec.statuses, tt.status)
			}
			if rec.endpoints[0] != "orderbook" {
				t.Errorf("endpoint = %q, want %q", rec.endpoints[0], "orderbook")
			}
			switch {
			case tt.wantRejection == "" && len(rec.rejections) != 0:
				t.Errorf("unexpected rejections %v", rec.rejections)
			case tt.wantRejection != "" && (len(rec.rejections) != 1 || rec.rejections[0] != tt.wantRejection):
				t.Errorf("rejections = %v, want [%s]", rec.rejections, tt.wantRejection)
			}
		})
	}
}
