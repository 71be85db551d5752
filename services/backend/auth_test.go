package backendsvc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/DrumilPatell/sms-system/core/session"
)

func TestClient_DebugToken(t *testing.T) {
	var gotToken, gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.URL.Query().Get("token")
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(TokenInfo{OK: true})
	}), "stale-session-token")

	info, err := client.DebugToken(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("DebugToken() failed: %v", err)
	}
	assert.True(t, info.OK)
	// the candidate token travels as a query param, never as a credential
	assert.Equal(t, "abc123", gotToken)
	assert.Empty(t, gotAuth)
}

func TestClient_DebugToken_rejected(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(TokenInfo{OK: false, Detail: "Signature has expired"})
	}), "")

	info, err := client.DebugToken(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("DebugToken() failed: %v", err)
	}
	assert.False(t, info.OK)
	assert.Equal(t, "Signature has expired", info.Detail)
}

func TestClient_DebugToken_httpErrorDetail(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Could not validate credentials"}`))
	}), "")

	_, err := client.DebugToken(context.Background(), "abc123")
	apiErr, ok := errors.Cause(err).(*APIError)
	if !ok {
		t.Fatalf("DebugToken() error = %T; want *APIError", errors.Cause(err))
	}
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Could not validate credentials", apiErr.Body)
}

func TestClient_Me(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(session.User{ID: 1, Email: "a@b.com", FullName: "A B", Role: session.RoleStudent})
	}), "stale-session-token")

	usr, err := client.Me(context.Background(), "abc123")
	if err != nil {
		t.Fatalf("Me() failed: %v", err)
	}
	// the freshly received token wins over whatever the store still holds
	assert.Equal(t, "Bearer abc123", gotAuth)
	assert.Equal(t, "a@b.com", usr.Email)
	assert.Equal(t, session.RoleStudent, usr.Role)
}

func TestClient_ProviderLoginURL(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/google/login", r.URL.Path)
		_ = json.NewEncoder(w).Encode(providerLogin{AuthURL: "https://accounts.google.com/o/oauth2/v2/auth?client_id=x"})
	}), "")

	authURL, err := client.ProviderLoginURL(context.Background(), ProviderGoogle)
	if err != nil {
		t.Fatalf("ProviderLoginURL() failed: %v", err)
	}

	u, err := url.Parse(authURL)
	if err != nil {
		t.Fatalf("url.Parse() failed: %v", err)
	}
	assert.Equal(t, "x", u.Query().Get("client_id"))
	assert.NotEmpty(t, u.Query().Get("state"))
}

func TestClient_ProviderLoginURL_unknownProvider(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an unknown provider")
	}), "")

	_, err := client.ProviderLoginURL(context.Background(), "yahoo")
	if errors.Cause(err) != ErrUnknownProvider {
		t.Errorf("ProviderLoginURL() error = %v; want %v", err, ErrUnknownProvider)
	}
}

func TestClient_Logout(t *testing.T) {
	var gotMethod, gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusOK)
	}), "abc123")

	if err := client.Logout(context.Background()); err != nil {
		t.Fatalf("Logout() failed: %v", err)
	}
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/auth/logout", gotPath)
}
