package tracing

import (
	"errors"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

func attrMap(kvs []attribute.KeyValue) map[string]attribute.Value {
	m := make(map[string]attribute.Value, len(kvs))
	for _, kv := range kvs {
		m[string(kv.Key)] = kv.Value
	}
	return m
}

func TestSetGatewayAttributes(t *testing.T) {
	tests := []struct {
		name      string
		requestID string
		userID    string
		wantKeys  []string
		absent    []string
	}{
		{
			name:      "all values",
			requestID: "req-1",
			userID:    "user-1",
			wantKeys:  []string{AttrEndpoint, AttrUpstream, AttrRequestID, AttrUserID},
		},
		{
			name:     "anonymous caller",
			wantKeys: []string{AttrEndpoint, AttrUpstream},
			absent:   []string{AttrRequestID, AttrUserID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span, recorder := newRecordedSpan(t)
			SetGatewayAttributes(span, "orderbook", "clob", tt.requestID, tt.userID)
			span.End()

			attrs := attrMap(recorder.Ended()[0].Attributes())
			for _, key := range tt.wantKeys {
				if _, ok := attrs[key]; !ok {
					t.Errorf("missing attribute %s", key)
				}
			}
			for _, key := range tt.absent {
				if _, ok := attrs[key]; ok {
					t.Errorf("unexpected attribute %s", key)
				}
			}
			if got := attrs[AttrUpstream].AsString(); got != "clob" {
				t.Errorf("%s = %q, want clob", AttrUpstream, got)
			}
		})
	}
}

func TestSetUpstreamAttributes(t *testing.T) {
	span, recorder := newRecordedSpan(t)
	SetUpstreamAttributes(span, 502, "status_error")
	span.End()

	attrs := attrMap(recorder.Ended()[0].Attributes())
	if got := attrs[AttrUpstreamStatus].AsInt64(); got != 502 {
		t.Errorf("%s = %d, want 502", AttrUpstreamStatus, got)
	}
	if got := attrs[AttrUpstreamOutcome].AsString(); got != "status_error" {
		t.Errorf("%s = %q, want status_error", AttrUpstreamOutcome, got)
	}
}

func TestSetErrorAttributes(t *testing.T) {
	span, recorder := newRecordedSpan(t)
	SetErrorAttributes(span, nil, "validation")
	SetErrorAttributes(span, errors.New("Invalid limit parameter"), "validation")
	span.End()

	ended := recorder.Ended()[0]
	if ended.Status().Code != codes.Error {
		t.Errorf("status = %v, want Error", ended.Status().Code)
	}
	attrs := attrMap(ended.Attributes())
	if got := attrs[AttrErrorType].AsString(); got != "validation" {
		t.Errorf("%s = %q, want validation", AttrErrorType, got)
	}
	if len(ended.Events()) != 1 {
		t.Errorf("got %d events, want 1 recorded exception", len(ended.Events()))
	}
}

func TestAttributeBuilder(t *testing.T) {
	ab := NewAttributeBuilder().
		WithEndpoint("search", "gamma").
		WithCaller("", "user-1").
		WithString("custom", "")

	attrs := attrMap(ab.Attributes())
	if len(attrs) != 3 {
		t.Fatalf("got %d attributes, want 3: %v", len(attrs), attrs)
	}
	if _, ok := attrs[AttrRequestID]; ok {
		t.Error("empty request ID should be skipped")
	}

	span, recorder := newRecordedSpan(t)
	AddEvent(span, "normalized", attribute.Int("items", 2))
	span.End()
	if events := recorder.Ended()[0].Events(); len(events) != 1 || events[0].Name != "normalized" {
		t.Errorf("events = %v, want one normalized event", events)
	}
}
