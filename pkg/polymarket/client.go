package polymarket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"whalecopy/whalegate/pkg/config"
	"whalecopy/whalegate/pkg/telemetry/tracing"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

// Outcome labels passed to an Observer.
const (
	OutcomeSuccess   = "success"
	OutcomeStatus    = "status_error"
	OutcomeTransport = "transport_error"
	OutcomeMalformed = "malformed"
)

// Observer receives one notification per upstream call.
type Observer interface {
	ObserveUpstream(upstream Upstream, outcome string, duration time.Duration)
}

// Client executes upstream requests against the three Polymarket APIs.
// It issues exactly one GET per call; retries are left to callers.
// A Client is safe for concurrent use.
type Client struct {
	http       *resty.Client
	bases      map[Upstream]string
	limiters   map[Upstream]*rate.Limiter
	observer   Observer
	logger     *slog.Logger
	tracer     trace.Tracer
	maxBodyLog int
}

// Option configures a Client.
type Option func(*Client)

// WithObserver registers an observer for upstream call outcomes.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// WithLogger sets the logger used for upstream call diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithMaxBodyLog bounds how much of an error body is kept on UpstreamError.
func WithMaxBodyLog(n int) Option {
	return func(c *Client) { c.maxBodyLog = n }
}

// NewClient creates a Client from the upstream configuration.
func NewClient(cfg config.UpstreamsConfig, opts ...Option) *Client {
	c := &Client{
		bases: map[Upstream]string{
			DataAPI:  cfg.DataURL,
			GammaAPI: cfg.GammaURL,
			ClobAPI:  cfg.ClobURL,
		},
		logger:     slog.Default(),
		tracer:     otel.Tracer(tracing.ScopePolymarket),
		maxBodyLog: config.DefaultLoggingMaxBodyLog,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.http = resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", cfg.UserAgent).
		SetLogger(restyLogger{c.logger})

	if cfg.RateLimit > 0 {
		c.limiters = make(map[Upstream]*rate.Limiter, len(c.bases))
		for u := range c.bases {
			c.limiters[u] = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst)
		}
	}

	return c
}

// BaseURL returns the configured base URL for u.
func (c *Client) BaseURL(u Upstream) string {
	return c.bases[u]
}

// Do executes req and returns the raw JSON body of a 2xx response.
// Every failure is returned as an *UpstreamError.
func (c *Client) Do(ctx context.Context, req Request) (json.RawMessage, error) {
	target := req.URL(c.bases[req.Upstream])

	ctx, span := c.tracer.Start(ctx, "polymarket."+string(req.Endpoint),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("polymarket.upstream", string(req.Upstream)),
			attribute.String("http.request.method", "GET"),
			attribute.String("url.path", req.Path),
		),
	)
	defer span.End()

	body, err := c.do(ctx, req, target)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetStatus(codes.Ok, "")
	return body, nil
}

func (c *Client) do(ctx context.Context, req Request, target string) (json.RawMessage, error) {
	if l := c.limiters[req.Upstream]; l != nil {
		if err := l.Wait(ctx); err != nil {
			return nil, c.fail(req, OutcomeTransport, 0, &UpstreamError{
				Upstream: req.Upstream,
				Endpoint: req.Endpoint,
				Cause:    fmt.Errorf("rate limiter: %w", err),
			})
		}
	}

	c.logger.DebugContext(ctx, "fetching from polymarket",
		"upstream", req.Upstream,
		"endpoint", req.Endpoint,
		"path", req.Path,
	)

	start := time.Now()
	resp, err := c.http.R().SetContext(ctx).Get(target)
	elapsed := time.Since(start)

	if err != nil {
		return nil, c.fail(req, OutcomeTransport, elapsed, &UpstreamError{
			Upstream: req.Upstream,
			Endpoint: req.Endpoint,
			Cause:    err,
		})
	}

	body := resp.Body()
	if !resp.IsSuccess() {
		return nil, c.fail(req, OutcomeStatus, elapsed, &UpstreamError{
			Upstream:   req.Upstream,
			Endpoint:   req.Endpoint,
			StatusCode: resp.StatusCode(),
			Body:       truncate(body, c.maxBodyLog),
		})
	}

	if !json.Valid(body) {
		return nil, c.fail(req, OutcomeMalformed, elapsed, &UpstreamError{
			Upstream:   req.Upstream,
			Endpoint:   req.Endpoint,
			StatusCode: resp.StatusCode(),
			Body:       truncate(body, c.maxBodyLog),
			Cause:      ErrMalformedResponse,
		})
	}

	c.observe(req.Upstream, OutcomeSuccess, elapsed)
	c.logger.DebugContext(ctx, "polymarket response received",
		"upstream", req.Upstream,
		"endpoint", req.Endpoint,
		"status", resp.StatusCode(),
		"bytes", len(body),
		"duration_ms", elapsed.Milliseconds(),
	)
	return json.RawMessage(body), nil
}

func (c *Client) fail(req Request, outcome string, elapsed time.Duration, err *UpstreamError) error {
	c.observe(req.Upstream, outcome, elapsed)
	return err
}

func (c *Client) observe(u Upstream, outcome string, d time.Duration) {
	if c.observer != nil {
		c.observer.ObserveUpstream(u, outcome, d)
	}
}

// Ping checks that u answers HTTP at its base URL. Any status below 500
// counts as reachable.
func (c *Client) Ping(ctx context.Context, u Upstream) error {
	resp, err := c.http.R().SetContext(ctx).Get(c.bases[u])
	if err != nil {
		return &UpstreamError{Upstream: u, Endpoint: "ping", Cause: err}
	}
	if resp.StatusCode() >= 500 {
		return &UpstreamError{Upstream: u, Endpoint: "ping", StatusCode: resp.StatusCode()}
	}
	return nil
}

func truncate(b []byte, n int) string {
	if n <= 0 || len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "...(truncated)"
}

// restyLogger routes resty's internal messages through slog.
type restyLogger struct {
	l *slog.Logger
}

func (r restyLogger) Errorf(format string, v ...interface{}) {
	r.l.Error(fmt.Sprintf(format, v...), "component", "resty")
}

func (r restyLogger) Warnf(format string, v ...interface{}) {
	r.l.Warn(fmt.Sprintf(format, v...), "component", "resty")
}

func (r restyLogger) Debugf(format string, v ...interface{}) {
	r.l.Debug(fmt.Sprintf(format, v...), "component", "resty")
}
