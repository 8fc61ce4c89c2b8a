package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// userPath is the GoTrue endpoint that resolves an access token to its user.
const userPath = "/auth/v1/user"

// GoTrueVerifier resolves bearer tokens with a GoTrue (Supabase Auth)
// server.
type GoTrueVerifier struct {
	http    *resty.Client
	anonKey string
}

// NewGoTrueVerifier creates a verifier for the GoTrue server at baseURL.
// anonKey is sent as the apikey header that the server requires.
func NewGoTrueVerifier(baseURL, anonKey string, timeout time.Duration) *GoTrueVerifier {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")

	return &GoTrueVerifier{http: client, anonKey: anonKey}
}

type gotrueUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Verify asks the server who owns token. 401 and 403 mean no user; any other
// non-2xx status or transport failure is returned as an error.
func (v *GoTrueVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	req := v.http.R().
		SetContext(ctx).
		SetAuthToken(token)
	if v.anonKey != "" {
		req.SetHeader("apikey", v.anonKey)
	}

	resp, err := req.Get(userPath)
	if err != nil {
		return nil, fmt.Errorf("identity request failed: %w", err)
	}

	switch code := resp.StatusCode(); {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return nil, nil
	case code < 200 || code > 299:
		return nil, fmt.Errorf("identity provider returned status %d", code)
	}

	var user gotrueUser
	if err := json.Unmarshal(resp.Body(), &user); err != nil {
		return nil, fmt.Errorf("failed to decode identity response: %w", err)
	}
	if user.ID == "" {
		return nil, nil
	}
	return &Identity{UserID: user.ID, Email: user.Email}, nil
}
