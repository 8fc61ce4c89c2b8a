// Package limits provides per-caller rate limiting for the gateway.
//
// # Overview
//
// Each caller, identified by user ID or client address, gets its own token
// bucket (golang.org/x/time/rate) and, optionally, a cap on simultaneous
// in-flight requests. State for callers that stay idle longer than the
// configured TTL is discarded.
//
// # Usage
//
//	manager := limits.NewManager(cfg.Security.RateLimit)
//	if manager == nil {
//	    // limiting disabled
//	}
//
//	release, err := manager.Acquire(callerKey)
//	if err != nil {
//	    // *limits.Error carrying RetryAfter
//	}
//	defer release()
//
// # Thread Safety
//
// Manager and ConcurrentLimiter are safe for concurrent use.
package limits
