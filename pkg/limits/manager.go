package limits

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"whalecopy/whalegate/pkg/config"
)

// Rejection reasons.
const (
	ReasonRate       = "rate"
	ReasonConcurrent = "concurrent"
)

// Error is returned by Acquire when a caller is over its limit.
type Error struct {
	// Reason is ReasonRate or ReasonConcurrent.
	Reason string

	// RetryAfter is how long the caller should wait. It is zero for
	// concurrency rejections.
	RetryAfter time.Duration
}

func (e *Error) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limit exceeded (%s), retry after %s", e.Reason, e.RetryAfter)
	}
	return fmt.Sprintf("rate limit exceeded (%s)", e.Reason)
}

// Manager tracks limits per caller key.
type Manager struct {
	cfg config.RateLimitConfig
	now func() time.Time

	mu        sync.Mutex
	callers   map[string]*caller
	lastSweep time.Time
}

type caller struct {
	limiter    *rate.Limiter
	concurrent *ConcurrentLimiter
	lastSeen   time.Time
}

// NewManager creates a manager for cfg. It returns nil when cfg sets neither
// a request rate nor a concurrency cap.
func NewManager(cfg config.RateLimitConfig) *Manager {
	if cfg.RequestsPerSecond <= 0 && cfg.MaxConcurrent <= 0 {
		return nil
	}
	if cfg.RequestsPerSecond > 0 && cfg.Burst < 1 {
		cfg.Burst = 1
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = config.DefaultRateLimitTTL
	}
	return &Manager{
		cfg:       cfg,
		now:       time.Now,
		callers:   make(map[string]*caller),
		lastSweep: time.Now(),
	}
}

// Acquire admits one request for key. On success the returned release
// function must be called when the request completes.
func (m *Manager) Acquire(key string) (release func(), err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if now.Sub(m.lastSweep) >= m.cfg.IdleTTL {
		m.sweepLocked(now)
	}

	c := m.callerLocked(key, now)
	c.lastSeen = now

	if c.concurrent != nil && !c.concurrent.Acquire() {
		return nil, &Error{Reason: ReasonConcurrent}
	}

	if c.limiter != nil {
		r := c.limiter.ReserveN(now, 1)
		if delay := r.DelayFrom(now); delay > 0 {
			r.CancelAt(now)
			if c.concurrent != nil {
				c.concurrent.Release()
			}
			return nil, &Error{Reason: ReasonRate, RetryAfter: delay}
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			if c.concurrent != nil {
				c.concurrent.Release()
			}
		})
	}, nil
}

// Len returns the number of callers currently tracked.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.callers)
}

// Sweep discards callers idle for longer than the TTL and returns how many
// were removed.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sweepLocked(m.now())
}

func (m *Manager) callerLocked(key string, now time.Time) *caller {
	if c, ok := m.callers[key]; ok {
		return c
	}
	c := &caller{lastSeen: now}
	if m.cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(m.cfg.RequestsPerSecond), m.cfg.Burst)
	}
	if m.cfg.MaxConcurrent > 0 {
		c.concurrent = NewConcurrentLimiter(m.cfg.MaxConcurrent)
	}
	m.callers[key] = c
	return c
}

// sweepLocked removes idle callers. Callers with requests in flight are
// kept. Caller must hold m.mu.
func (m *Manager) sweepLocked(now time.Time) int {
	removed := 0
	for key, c := range m.callers {
		if now.Sub(c.lastSeen) < m.cfg.IdleTTL {
			continue
		}
		if c.concurrent != nil && c.concurrent.Current() > 0 {
			continue
		}
		delete(m.callers, key)
		removed++
	}
	m.lastSweep = now
	return removed
}
