package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"whalecopy/whalegate/pkg/config"
	"whalecopy/whalegate/pkg/telemetry/health"
)

const testOrigin = "http://localhost:5173"

// upstreamStub serves every Polymarket path with a fixed status and body and
// counts the calls it receives.
type upstreamStub struct {
	srv    *httptest.Server
	status int
	body   string
	hits   atomic.Int64
}

func newUpstreamStub(t *testing.T, status int, body string) *upstreamStub {
	t.Helper()
	u := &upstreamStub{status: status, body: body}
	u.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(u.status)
		_, _ = io.WriteString(w, u.body)
	}))
	t.Cleanup(u.srv.Close)
	return u
}

func testConfig(upstreamURL string) *config.Config {
	cfg := config.Default()
	cfg.Upstreams.DataURL = upstreamURL
	cfg.Upstreams.GammaURL = upstreamURL
	cfg.Upstreams.ClobURL = upstreamURL
	cfg.Upstreams.Timeout = 2 * time.Second
	cfg.Security.Auth.Mode = config.AuthModeStatic
	cfg.Security.Auth.Tokens = []config.StaticToken{
		{Token: "token-alice", UserID: "alice"},
	}
	return cfg
}

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	srv, err := New(cfg,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithVersion(health.NewVersionInfo("1.2.3", "abc123", "today")),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return srv
}

func do(h http.Handler, method, target, origin, token, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	if origin != "" {
		r.Header.Set("Origin", origin)
	}
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not an error envelope: %v (%s)", err, w.Body.String())
	}
	return body.Error
}

func TestNew_NilConfig(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("New(nil) should fail")
	}
}

func TestNew_InvalidAuthConfig(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.Security.Auth.Mode = "bogus"
	if _, err := New(cfg); err == nil {
		t.Fatal("New() should reject an unknown auth mode")
	}
}

func TestHandler_ProxyPath(t *testing.T) {
	upstream := newUpstreamStub(t, http.StatusOK, `[{"proxyWallet":"0xabc","pnl":12.5}]`)
	srv := newTestServer(t, testConfig(upstream.srv.URL))
	h := srv.Handler()

	tests := []struct {
		name       string
		method     string
		target     string
		origin     string
		token      string
		body       string
		wantStatus int
		wantError  string
		wantHits   int64
	}{
		{
			name:       "allowed preflight",
			method:     http.MethodOptions,
			target:     "/",
			origin:     testOrigin,
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "disallowed preflight",
			method:     http.MethodOptions,
			target:     "/",
			origin:     "https://evil.example.com",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "disallowed origin",
			method:     http.MethodGet,
			target:     "/?endpoint=leaderboard",
			origin:     "https://evil.example.com",
			token:      "token-alice",
			wantStatus: http.StatusForbidden,
			wantError:  "Origin not allowed",
		},
		{
			name:       "missing bearer",
			method:     http.MethodGet,
			target:     "/?endpoint=leaderboard",
			origin:     testOrigin,
			wantStatus: http.StatusUnauthorized,
			wantError:  "Missing authorization header",
		},
		{
			name:       "unknown bearer",
			method:     http.MethodGet,
			target:     "/?endpoint=leaderboard",
			origin:     testOrigin,
			token:      "token-mallory",
			wantStatus: http.StatusUnauthorized,
			wantError:  "Unauthorized",
		},
		{
			name:       "invalid endpoint",
			method:     http.MethodPost,
			target:     "/",
			origin:     testOrigin,
			token:      "token-alice",
			body:       `{"endpoint":"nope"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid endpoint",
		},
		{
			name:       "leaderboard",
			method:     http.MethodPost,
			target:     "/",
			origin:     testOrigin,
			token:      "token-alice",
			body:       `{"endpoint":"leaderboard","limit":5}`,
			wantStatus: http.StatusOK,
			wantHits:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := upstream.hits.Load()
			w := do(h, tt.method, tt.target, tt.origin, tt.token, tt.body)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantError != "" {
				if got := errorMessage(t, w); got != tt.wantError {
					t.Errorf("error = %q, want %q", got, tt.wantError)
				}
			}
			if got := upstream.hits.Load() - before; got != tt.wantHits {
				t.Errorf("upstream hits = %d, want %d", got, tt.wantHits)
			}
			if w.Header().Get("X-Request-ID") == "" {
				t.Error("X-Request-ID header not set")
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got == "" {
				t.Error("Access-Control-Allow-Origin header not set")
			}
		})
	}
}

func TestHandler_LeaderboardPassthrough(t *testing.T) {
	const payload = `[{"proxyWallet":"0xabc","pnl":12.5,"vol":100}]`
	upstream := newUpstreamStub(t, http.StatusOK, payload)
	srv := newTestServer(t, testConfig(upstream.srv.URL))

	w := do(srv.Handler(), http.MethodGet, "/?endpoint=leaderboard", testOrigin, "token-alice", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != testOrigin {
		t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, testOrigin)
	}

	var got, want any
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	_ = json.Unmarshal([]byte(payload), &want)
	gotJSON, _ := json.Marshal(got)
	wantJSON, _ := json.Marshal(want)
	if string(gotJSON) != string(wantJSON) {
		t.Errorf("body = %s, want %s", gotJSON, wantJSON)
	}
}

func TestHandler_UpstreamFailureNotLeaked(t *testing.T) {
	upstream := newUpstreamStub(t, http.StatusInternalServerError, `{"detail":"db password=hunter2"}`)
	srv := newTestServer(t, testConfig(upstream.srv.URL))

	w := do(srv.Handler(), http.MethodGet, "/?endpoint=trending", testOrigin, "token-alice", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if got := errorMessage(t, w); got != "Upstream request failed" {
		t.Errorf("error = %q, want %q", got, "Upstream request failed")
	}
	if strings.Contains(w.Body.String(), "hunter2") {
		t.Errorf("upstream body leaked to caller: %s", w.Body.String())
	}
}

func TestHandler_OperationalEndpoints(t *testing.T) {
	upstream := newUpstreamStub(t, http.StatusOK, `[]`)
	srv := newTestServer(t, testConfig(upstream.srv.URL))
	h := srv.Handler()

	// Generate at least one request sample.
	do(h, http.MethodGet, "/?endpoint=leaderboard", testOrigin, "token-alice", "")

	tests := []struct {
		name     string
		target   string
		wantCode int
		contains string
	}{
		{"liveness", "/health", http.StatusOK, `"status":"ok"`},
		{"readiness", "/ready", http.StatusOK, `"status":"ready"`},
		{"version", "/version", http.StatusOK, `"version":"1.2.3"`},
		{"metrics", "/metrics", http.StatusOK, "whalegate_requests_total"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(h, http.MethodGet, tt.target, "", "", "")
			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.wantCode, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), tt.contains) {
				t.Errorf("body does not contain %q:\n%s", tt.contains, w.Body.String())
			}
		})
	}
}

func TestReload(t *testing.T) {
	upstream := newUpstreamStub(t, http.StatusOK, `[]`)
	cfg := testConfig(upstream.srv.URL)
	srv := newTestServer(t, cfg)
	h := srv.Handler()

	if w := do(h, http.MethodGet, "/", testOrigin, "token-alice", ""); w.Code != http.StatusOK {
		t.Fatalf("before reload: status = %d, want 200", w.Code)
	}

	next := testConfig(upstream.srv.URL)
	next.Security.Auth.Tokens = []config.StaticToken{{Token: "token-bob", UserID: "bob"}}
	if err := srv.Reload(next); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	if w := do(h, http.MethodGet, "/", testOrigin, "token-alice", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("revoked token: status = %d, want 401", w.Code)
	}
	if w := do(h, http.MethodGet, "/", testOrigin, "token-bob", ""); w.Code != http.StatusOK {
		t.Errorf("new token: status = %d, want 200", w.Code)
	}
}

func TestReload_RejectsInvalidConfig(t *testing.T) {
	upstream := newUpstreamStub(t, http.StatusOK, `[]`)
	srv := newTestServer(t, testConfig(upstream.srv.URL))
	h := srv.Handler()

	bad := testConfig(upstream.srv.URL)
	bad.Security.Auth.Mode = "bogus"
	if err := srv.Reload(bad); err == nil {
		t.Fatal("Reload() should fail for an unknown auth mode")
	}

	if w := do(h, http.MethodGet, "/", testOrigin, "token-alice", ""); w.Code != http.StatusOK {
		t.Errorf("previous pipeline should stay active: status = %d, want 200", w.Code)
	}
}

func TestReload_UpstreamChecks(t *testing.T) {
	upstream := newUpstreamStub(t, http.StatusOK, `[]`)
	cfg := testConfig(upstream.srv.URL)
	cfg.Telemetry.Health.CheckUpstreams = true
	srv := newTestServer(t, cfg)

	steps := []struct {
		name    string
		enabled bool
		want    string
	}{
		{"disabled on reload", false, ""},
		{"enabled again", true, "upstream:clob,upstream:data,upstream:gamma"},
		{"disabled again", false, ""},
	}

	if got := strings.Join(srv.checker.ListChecks(), ","); got != "upstream:clob,upstream:data,upstream:gamma" {
		t.Fatalf("checks after New = %q", got)
	}
	for _, tt := range steps {
		t.Run(tt.name, func(t *testing.T) {
			next := testConfig(upstream.srv.URL)
			next.Telemetry.Health.CheckUpstreams = tt.enabled
			if err := srv.Reload(next); err != nil {
				t.Fatalf("Reload() error = %v", err)
			}
			if got := strings.Join(srv.checker.ListChecks(), ","); got != tt.want {
				t.Errorf("checks = %q, want %q", got, tt.want)
			}
			if srv.Config() != next {
				t.Error("Config() does not return the reloaded configuration")
			}
		})
	}

	w := do(srv.Handler(), http.MethodGet, "/ready", "", "", "")
	if w.Code != http.StatusOK || strings.Contains(w.Body.String(), "upstream:") {
		t.Errorf("readiness = %d %s, want 200 without upstream checks", w.Code, w.Body.String())
	}
}

func TestReload_ListenerWarningComparesLastConfig(t *testing.T) {
	upstream := newUpstreamStub(t, http.StatusOK, `[]`)
	var logs bytes.Buffer
	srv, err := New(testConfig(upstream.srv.URL),
		WithLogger(slog.New(slog.NewJSONHandler(&logs, nil))),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	moved := func() *config.Config {
		cfg := testConfig(upstream.srv.URL)
		cfg.Proxy.Path = "/api/polymarket"
		return cfg
	}

	tests := []struct {
		name     string
		next     *config.Config
		wantWarn bool
	}{
		{"path changed", moved(), true},
		{"same change loaded again", moved(), false},
		{"unrelated change", func() *config.Config {
			cfg := moved()
			cfg.Security.Auth.Tokens = []config.StaticToken{{Token: "token-bob", UserID: "bob"}}
			return cfg
		}(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs.Reset()
			if err := srv.Reload(tt.next); err != nil {
				t.Fatalf("Reload() error = %v", err)
			}
			warned := strings.Contains(logs.String(), "listener changes require a restart")
			if warned != tt.wantWarn {
				t.Errorf("restart warning = %v, want %v; logs: %s", warned, tt.wantWarn, logs.String())
			}
		})
	}

	// The listener keeps serving the boot path until restart.
	if w := do(srv.Handler(), http.MethodGet, "/", testOrigin, "token-bob", ""); w.Code != http.StatusOK {
		t.Errorf("boot path after reload: status = %d, want 200", w.Code)
	}
}

func TestServe_Lifecycle(t *testing.T) {
	upstream := newUpstreamStub(t, http.StatusOK, `[]`)
	srv := newTestServer(t, testConfig(upstream.srv.URL))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/health"
	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("liveness status = %d, want 200", resp.StatusCode)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("server did not become reachable: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	if !srv.IsRunning() {
		t.Error("IsRunning() = false while serving")
	}

	srv.Stop()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	if srv.IsRunning() {
		t.Error("IsRunning() = true after stop")
	}
}

func TestHandler_RateLimit(t *testing.T) {
	upstream := newUpstreamStub(t, http.StatusOK, `[]`)
	cfg := testConfig(upstream.srv.URL)
	cfg.Security.RateLimit.RequestsPerSecond = 0.01
	cfg.Security.RateLimit.Burst = 1
	srv := newTestServer(t, cfg)
	h := srv.Handler()

	if w := do(h, http.MethodGet, "/", testOrigin, "token-alice", ""); w.Code != http.StatusOK {
		t.Fatalf("first request: status = %d, want 200", w.Code)
	}

	w := do(h, http.MethodGet, "/", testOrigin, "token-alice", "")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: status = %d, want 429", w.Code)
	}
	if got := errorMessage(t, w); got != "Rate limit exceeded" {
		t.Errorf("error = %q, want %q", got, "Rate limit exceeded")
	}
	if upstream.hits.Load() != 1 {
		t.Errorf("upstream hits = %d, want 1", upstream.hits.Load())
	}

	// Unauthenticated callers are rejected before they consume a slot.
	if w := do(h, http.MethodGet, "/", testOrigin, "", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous request: status = %d, want 401", w.Code)
	}
}
