package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"whalecopy/whalegate/pkg/config"
	"whalecopy/whalegate/pkg/proxy"
)

// Fixed CORS response headers.
const (
	AllowedHeaders = "authorization, x-client-info, apikey, content-type"
	AllowedMethods = "GET, POST, OPTIONS"
	ExposedHeaders = RequestIDHeader
)

// CORSConfig contains configuration for the origin allowlist.
type CORSConfig struct {
	// AllowedOrigins lists exact origins ("https://app.example.com") and
	// wildcard-suffix rules ("https://*.example.com"). The first entry is
	// advertised to callers whose origin is not allowed.
	AllowedOrigins []string

	// AllowMissing admits requests that send no Origin header at all.
	AllowMissing bool

	// MaxAge is the maximum age (in seconds) for preflight cache.
	MaxAge int
}

// NewCORSConfig builds a CORSConfig from the origin settings.
func NewCORSConfig(cfg config.OriginConfig) *CORSConfig {
	return &CORSConfig{
		AllowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
		AllowMissing:   cfg.AllowMissing,
		MaxAge:         cfg.MaxAge,
	}
}

// CORSMiddleware enforces the origin allowlist and adds Cross-Origin Resource
// Sharing headers to every response.
//
// Access-Control-Allow-Origin reflects the caller's origin when it is
// allowed and the first allowlisted origin otherwise, so that a browser can
// see the rejection. Preflight OPTIONS requests are answered here with
// headers only: 204 when the origin is allowed, 403 when it is not. Any
// other request from a disallowed origin is passed to onReject with
// proxy.ErrOriginNotAllowed.
//
// Example usage:
//
//	handler = CORSMiddleware(NewCORSConfig(cfg.Security.Origin), proxy.WriteError)(handler)
func CORSMiddleware(cfg *CORSConfig, onReject func(http.ResponseWriter, *http.Request, error)) func(http.Handler) http.Handler {
	if onReject == nil {
		onReject = proxy.WriteError
	}
	matcher := newOriginMatcher(cfg.AllowedOrigins)
	fallback := ""
	if len(cfg.AllowedOrigins) > 0 {
		fallback = cfg.AllowedOrigins[0]
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			allowed := matcher.match(origin) || (origin == "" && cfg.AllowMissing)

			h := w.Header()
			if allowed && origin != "" {
				h.Set("Access-Control-Allow-Origin", origin)
			} else {
				h.Set("Access-Control-Allow-Origin", fallback)
			}
			h.Set("Access-Control-Allow-Headers", AllowedHeaders)
			h.Set("Access-Control-Allow-Methods", AllowedMethods)
			h.Set("Access-Control-Expose-Headers", ExposedHeaders)
			h.Add("Vary", "Origin")

			if r.Method == http.MethodOptions {
				if !allowed {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				if cfg.MaxAge > 0 {
					h.Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			if !allowed {
				onReject(w, r, proxy.ErrOriginNotAllowed)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// originMatcher holds a compiled allowlist.
type originMatcher struct {
	exact    map[string]struct{}
	suffixes []wildcardOrigin
}

// wildcardOrigin is a "scheme://*.domain" rule.
type wildcardOrigin struct {
	scheme string
	suffix string // ".domain"
}

func newOriginMatcher(origins []string) *originMatcher {
	m := &originMatcher{exact: make(map[string]struct{}, len(origins))}
	for _, o := range origins {
		scheme, host, ok := strings.Cut(o, "://")
		if ok && strings.HasPrefix(host, "*.") {
			m.suffixes = append(m.suffixes, wildcardOrigin{scheme: scheme, suffix: host[1:]})
			continue
		}
		m.exact[o] = struct{}{}
	}
	return m
}

// match reports whether origin is allowlisted. A wildcard rule matches any
// non-empty subdomain label sequence but never the bare domain.
func (m *originMatcher) match(origin string) bool {
	if origin == "" {
		return false
	}
	if _, ok := m.exact[origin]; ok {
		return true
	}

	scheme, host, ok := strings.Cut(origin, "://")
	if !ok || host == "" || strings.ContainsAny(host, "/?#@") {
		return false
	}
	for _, w := range m.suffixes {
		if scheme == w.scheme && strings.HasSuffix(host, w.suffix) && len(host) > len(w.suffix) {
			label := host[:len(host)-len(w.suffix)]
			if !strings.HasPrefix(label, ".") && !strings.HasSuffix(label, ".") {
				return true
			}
		}
	}
	return false
}
