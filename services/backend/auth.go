package backendsvc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/DrumilPatell/sms-system/core/session"
)

// Identity providers supported by the backend's OAuth login endpoints.
const (
	ProviderGoogle    = "google"
	ProviderMicrosoft = "microsoft"
	ProviderGithub    = "github"
)

var (
	Providers = []string{ProviderGoogle, ProviderMicrosoft, ProviderGithub}

	ErrUnknownProvider = errors.New("unknown identity provider")
)

// TokenInfo is the introspection result for a bearer token.
type TokenInfo struct {
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

type providerLogin struct {
	AuthURL string `json:"auth_url"`
}

// DebugToken asks the backend whether the given token is currently valid.
// The token travels as a query parameter, not as a credential; a non-2xx
// status is reported as an *APIError with any `detail` the payload carried.
func (c *Client) DebugToken(ctx context.Context, token string) (TokenInfo, error) {
	q := url.Values{"token": {token}}

	var info TokenInfo
	if err := c.do(ctx, http.MethodGet, "/auth/debug-token", q, nil, &info, "" /* no bearer */); err != nil {
		if apiErr, ok := errors.Cause(err).(*APIError); ok {
			// surface the backend's detail field when the error body carries one
			if detail := decodeDetail(apiErr.Body); detail != "" {
				apiErr.Body = detail
			}
		}
		return TokenInfo{}, err
	}
	return info, nil
}

// Me fetches the authenticated user's profile using token as the bearer
// credential. The profile is returned as-is; callers own validation.
func (c *Client) Me(ctx context.Context, token string) (session.User, error) {
	var usr session.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &usr, token); err != nil {
		return session.User{}, err
	}
	return usr, nil
}

// ProviderLoginURL resolves the identity provider's authorization URL for a
// manual (re)login. A fresh state nonce is appended for request correlation.
func (c *Client) ProviderLoginURL(ctx context.Context, provider string) (string, error) {
	if !validProvider(provider) {
		return "", errors.Wrapf(ErrUnknownProvider, "%q", provider)
	}

	var login providerLogin
	if err := c.get(ctx, "/auth/"+provider+"/login", nil, &login); err != nil {
		return "", err
	}

	authURL, err := url.Parse(login.AuthURL)
	if err != nil {
		return "", errors.Wrap(err, "parsing auth_url")
	}
	q := authURL.Query()
	q.Set("state", uuid.New().String())
	authURL.RawQuery = q.Encode()
	return authURL.String(), nil
}

// Logout notifies the backend that the session is over. Best-effort: the
// session is cleared client-side regardless of the response.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/auth/logout", nil, nil)
}

// decodeDetail extracts the `detail` field from an error payload, the shape
// the backend uses for both introspection rejections and HTTP errors.
func decodeDetail(body string) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return ""
	}
	return payload.Detail
}

func validProvider(provider string) bool {
	for _, p := range Providers {
		if p == provider {
			return true
		}
	}
	return false
}
