package logging

import (
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestRedactor_RedactString(t *testing.T) {
	r := NewRedactor()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bearer token",
			input: "header was Bearer abc.def-123",
			want:  "header was Bearer ***",
		},
		{
			name:  "lowercase bearer",
			input: "bearer xyz",
			want:  "Bearer ***",
		},
		{
			name:  "bare jwt",
			input: "token eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxIn0.sig_part",
			want:  "token ***",
		},
		{
			name:  "apikey query parameter",
			input: "GET /auth/v1/user?apikey=secret123&x=1",
			want:  "GET /auth/v1/user?apikey=***&x=1",
		},
		{
			name:  "json anon key",
			input: `{"anon_key": "secret123"}`,
			want:  `{"anon_key": "***"}`,
		},
		{
			name:  "wallet address untouched",
			input: "user 0x56687bf447db6ffa42ffe2204a05edaa20f55839",
			want:  "user 0x56687bf447db6ffa42ffe2204a05edaa20f55839",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.RedactString(tt.input); got != tt.want {
				t.Errorf("RedactString(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRedactor_RedactAttr(t *testing.T) {
	r := NewRedactor()

	tests := []struct {
		name string
		attr slog.Attr
		want string
	}{
		{"sensitive key", slog.String("Authorization", "Bearer x"), Redacted},
		{"sensitive key non string", slog.Int("password", 1234), Redacted},
		{"empty sensitive value kept", slog.String("token", ""), ""},
		{"public key", slog.String("tokenId", "71321045679252212594626385532706912750332728571942532289631379312455583992563"), "71321045679252212594626385532706912750332728571942532289631379312455583992563"},
		{"embedded bearer", slog.String("detail", "sent Bearer abc"), "sent Bearer ***"},
		{"error value", slog.Any("error", errors.New("verify Bearer abc failed")), "verify Bearer *** failed"},
		{"number untouched", slog.Int("status", 401), "401"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.RedactAttr(tt.attr)
			if got.Key != tt.attr.Key {
				t.Errorf("key changed to %q", got.Key)
			}
			if got.Value.String() != tt.want {
				t.Errorf("value = %q, want %q", got.Value.String(), tt.want)
			}
		})
	}

	t.Run("group", func(t *testing.T) {
		got := r.RedactAttr(slog.Group("headers", slog.String("apikey", "k"), slog.String("origin", "http://localhost:5173")))
		out := got.Value.String()
		if strings.Contains(out, "apikey=k") || !strings.Contains(out, "localhost") {
			t.Errorf("group redaction wrong: %s", out)
		}
	})
}

func TestIsSensitiveKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"authorization", true},
		{"X-Api_Key", true},
		{"anon_key", true},
		{"token", true},
		{"access_token", true},
		{"refresh.token", true},
		{"tokenId", false},
		{"user_id", false},
		{"endpoint", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := IsSensitiveKey(tt.key); got != tt.want {
				t.Errorf("IsSensitiveKey(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}
