package health

import (
	"context"

	"whalecopy/whalegate/pkg/polymarket"
)

// Pinger checks that an upstream API is reachable.
type Pinger interface {
	Ping(ctx context.Context, u polymarket.Upstream) error
}

// UpstreamReporter receives the outcome of each upstream check, typically
// to drive an up/down gauge.
type UpstreamReporter interface {
	UpdateUpstreamHealth(upstream polymarket.Upstream, healthy bool)
}

// UpstreamCheck returns a readiness check that pings u. A nil reporter is
// allowed.
func UpstreamCheck(p Pinger, u polymarket.Upstream, reporter UpstreamReporter) CheckFunc {
	return func(ctx context.Context) error {
		err := p.Ping(ctx, u)
		if reporter != nil {
			reporter.UpdateUpstreamHealth(u, err == nil)
		}
		return err
	}
}

// RegisterUpstreams registers an "upstream:<name>" check for every
// Polymarket API.
func (c *Checker) RegisterUpstreams(p Pinger, reporter UpstreamReporter) {
	for _, u := range polymarket.Upstreams() {
		c.RegisterCheck("upstream:"+string(u), UpstreamCheck(p, u, reporter))
	}
}

// UnregisterUpstreams removes the checks added by RegisterUpstreams.
func (c *Checker) UnregisterUpstreams() {
	for _, u := range polymarket.Upstreams() {
		c.UnregisterCheck("upstream:" + string(u))
	}
}
