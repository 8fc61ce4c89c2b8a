package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"whalecopy/whalegate/pkg/normalize"
	"whalecopy/whalegate/pkg/polymarket"
	"whalecopy/whalegate/pkg/proxy"
	"whalecopy/whalegate/pkg/proxy/middleware"
	"whalecopy/whalegate/pkg/security/auth"
	"whalecopy/whalegate/pkg/telemetry/tracing"
	"whalecopy/whalegate/pkg/validation"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// invalidEndpoint labels requests whose endpoint was rejected.
const invalidEndpoint = "invalid"

// Upstream executes a built upstream request.
type Upstream interface {
	Do(ctx context.Context, req polymarket.Request) (json.RawMessage, error)
}

// Gateway is the proxy entry point. For each request it extracts the
// endpoint and parameters, validates them, performs the single upstream call
// and writes the normalized result. Every failure is written through
// proxy.WriteError; nothing is written before the pipeline has succeeded.
type Gateway struct {
	upstream     Upstream
	normalizer   *normalize.Normalizer
	maxBodyBytes int64
	logger       *slog.Logger
	tracer       trace.Tracer
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithMaxBodyBytes bounds the request body.
func WithMaxBodyBytes(n int64) GatewayOption {
	return func(g *Gateway) { g.maxBodyBytes = n }
}

// WithLogger sets the logger used for response write failures.
func WithLogger(logger *slog.Logger) GatewayOption {
	return func(g *Gateway) { g.logger = logger }
}

// NewGateway creates the proxy handler.
func NewGateway(upstream Upstream, normalizer *normalize.Normalizer, opts ...GatewayOption) *Gateway {
	if normalizer == nil {
		normalizer = normalize.New(normalize.Options{})
	}
	g := &Gateway{
		upstream:     upstream,
		normalizer:   normalizer,
		maxBodyBytes: proxy.DefaultMaxBodyBytes,
		logger:       slog.Default(),
		tracer:       otel.Tracer(tracing.ScopeGateway),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ServeHTTP implements http.Handler.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	middleware.SetUserID(ctx, auth.UserID(ctx))

	call, err := proxy.ParseCall(r, g.maxBodyBytes)
	if err != nil {
		middleware.SetEndpoint(ctx, invalidEndpoint)
		proxy.WriteError(w, r, err)
		return
	}

	body, err := g.Serve(ctx, call)
	if err != nil {
		proxy.WriteError(w, r, err)
		return
	}

	if err := proxy.WriteRawJSON(w, body); err != nil {
		g.logger.DebugContext(ctx, "failed to write response", "error", err)
	}
}

// Serve runs validation, the upstream call and normalization for call. It is
// independent of HTTP so that command line tools can reuse it.
func (g *Gateway) Serve(ctx context.Context, call *proxy.Call) (json.RawMessage, error) {
	endpoint, err := validation.ParseEndpoint(call.Endpoint)
	if err != nil {
		middleware.SetEndpoint(ctx, invalidEndpoint)
		return nil, err
	}
	middleware.SetEndpoint(ctx, string(endpoint))

	ctx, span := g.tracer.Start(ctx, "gateway."+string(endpoint), trace.WithSpanKind(trace.SpanKindServer))
	defer span.End()
	tracing.SetGatewayAttributes(span, string(endpoint), string(endpoint.Upstream()), middleware.GetRequestID(ctx), auth.UserID(ctx))

	params, err := validation.Validate(endpoint, call.Params)
	if err != nil {
		tracing.SetErrorAttributes(span, err, "validation")
		return nil, err
	}

	req, err := polymarket.Build(endpoint, params)
	if err != nil {
		tracing.SetErrorAttributes(span, err, "internal")
		return nil, err
	}

	raw, err := g.upstream.Do(ctx, req)
	if err != nil {
		var upErr *polymarket.UpstreamError
		if errors.As(err, &upErr) {
			tracing.SetUpstreamAttributes(span, upErr.StatusCode, upErr.Outcome())
		}
		tracing.SetErrorAttributes(span, err, "upstream")
		return nil, err
	}

	tracing.SetStatus(span, nil)
	return g.normalizer.Normalize(endpoint, raw), nil
}
