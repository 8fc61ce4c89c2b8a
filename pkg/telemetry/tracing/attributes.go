package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attributes specific to the gateway live under the "whalegate.*"
// namespace. Standard HTTP attributes use the OpenTelemetry semantic
// conventions and are not repeated here.
const (
	AttrEndpoint  = "whalegate.endpoint"
	AttrUpstream  = "whalegate.upstream"
	AttrRequestID = "whalegate.request_id"
	AttrUserID    = "whalegate.user_id"

	AttrUpstreamStatus  = "whalegate.upstream.status"
	AttrUpstreamOutcome = "whalegate.upstream.outcome"

	AttrErrorType    = "whalegate.error.type"
	AttrErrorMessage = "error.message"
)

// SetGatewayAttributes tags a gateway span with the dispatched endpoint,
// the upstream it maps to, and the caller. Empty values are omitted.
func SetGatewayAttributes(span trace.Span, endpoint, upstream, requestID, userID string) {
	NewAttributeBuilder().
		WithEndpoint(endpoint, upstream).
		WithCaller(requestID, userID).
		Apply(span)
}

// SetUpstreamAttributes records the HTTP status and classified outcome of an
// upstream call.
func SetUpstreamAttributes(span trace.Span, status int, outcome string) {
	attrs := []attribute.KeyValue{attribute.String(AttrUpstreamOutcome, outcome)}
	if status > 0 {
		attrs = append(attrs, attribute.Int(AttrUpstreamStatus, status))
	}
	span.SetAttributes(attrs...)
}

// SetErrorAttributes records err on span with a short classification such as
// "validation" or "upstream".
func SetErrorAttributes(span trace.Span, err error, errorType string) {
	if err == nil {
		return
	}
	span.SetAttributes(
		attribute.Bool("error", true),
		attribute.String(AttrErrorType, errorType),
		attribute.String(AttrErrorMessage, err.Error()),
	)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// AddEvent adds a named event to span.
func AddEvent(span trace.Span, name string, attrs ...attribute.KeyValue) {
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// AttributeBuilder accumulates span attributes, skipping empty strings.
type AttributeBuilder struct {
	attrs []attribute.KeyValue
}

// NewAttributeBuilder creates an empty builder.
func NewAttributeBuilder() *AttributeBuilder {
	return &AttributeBuilder{attrs: make([]attribute.KeyValue, 0, 4)}
}

func (ab *AttributeBuilder) add(key, value string) {
	if value != "" {
		ab.attrs = append(ab.attrs, attribute.String(key, value))
	}
}

// WithEndpoint adds the endpoint and upstream names.
func (ab *AttributeBuilder) WithEndpoint(endpoint, upstream string) *AttributeBuilder {
	ab.add(AttrEndpoint, endpoint)
	ab.add(AttrUpstream, upstream)
	return ab
}

// WithCaller adds the request ID and the authenticated user.
func (ab *AttributeBuilder) WithCaller(requestID, userID string) *AttributeBuilder {
	ab.add(AttrRequestID, requestID)
	ab.add(AttrUserID, userID)
	return ab
}

// WithString adds an arbitrary string attribute.
func (ab *AttributeBuilder) WithString(key, value string) *AttributeBuilder {
	ab.add(key, value)
	return ab
}

// Build returns the attributes as a span start option.
func (ab *AttributeBuilder) Build() trace.SpanStartOption {
	return trace.WithAttributes(ab.attrs...)
}

// Apply sets the accumulated attributes on span.
func (ab *AttributeBuilder) Apply(span trace.Span) {
	if len(ab.attrs) > 0 {
		span.SetAttributes(ab.attrs...)
	}
}

// Attributes returns the accumulated attributes.
func (ab *AttributeBuilder) Attributes() []attribute.KeyValue {
	return ab.attrs
}
