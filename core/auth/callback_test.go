package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DrumilPatell/sms-system/core/session"
	backendsvc "github.com/DrumilPatell/sms-system/services/backend"
	logsvc "github.com/DrumilPatell/sms-system/services/logger"
	"github.com/DrumilPatell/sms-system/storage/sessionmem"
)

// fakeBackend scripts the two callback endpoints and counts calls.
type fakeBackend struct {
	info    backendsvc.TokenInfo
	infoErr error
	usr     session.User
	usrErr  error

	debugCalls int
	meCalls    int
}

func (b *fakeBackend) DebugToken(ctx context.Context, token string) (backendsvc.TokenInfo, error) {
	b.debugCalls++
	return b.info, b.infoErr
}

func (b *fakeBackend) Me(ctx context.Context, token string) (session.User, error) {
	b.meCalls++
	return b.usr, b.usrErr
}

func studentProfile() session.User {
	return session.User{ID: 1, Email: "a@b.com", FullName: "A B", Role: session.RoleStudent, IsActive: true}
}

func setup(t *testing.T, backend *fakeBackend) (*Handler, *session.Store) {
	store := session.NewStore(sessionmem.NewRepository(), logsvc.NewNopLogger())
	return NewHandler(backend, store, logsvc.NewNopLogger()), store
}

func TestHandler_missingToken(t *testing.T) {
	backend := new(fakeBackend)
	h, store := setup(t, backend)

	res := h.Handle(context.Background(), "", "a@b.com")

	assert.Equal(t, StateFailed, res.State)
	assert.Equal(t, "No token received from authentication", res.Reason)
	// no network call is attempted
	assert.Equal(t, 0, backend.debugCalls)
	assert.Equal(t, 0, backend.meCalls)
	assert.False(t, store.Read().IsAuthenticated())
}

func TestHandler_validationFailures(t *testing.T) {
	tests := []struct {
		name       string
		backend    *fakeBackend
		wantReason string
		wantMe     int
	}{
		{
			name:       "introspection rejects token",
			backend:    &fakeBackend{info: backendsvc.TokenInfo{OK: false, Detail: "Signature has expired"}},
			wantReason: "Token validation failed: Signature has expired",
		},
		{
			name:       "introspection rejects without detail",
			backend:    &fakeBackend{info: backendsvc.TokenInfo{OK: false}},
			wantReason: "Token validation failed: token rejected",
		},
		{
			name:       "introspection endpoint error",
			backend:    &fakeBackend{infoErr: &backendsvc.APIError{StatusCode: 500, Body: "internal error"}},
			wantReason: "Token validation failed: 500 - internal error",
		},
		{
			name:       "profile fetch error",
			backend:    &fakeBackend{info: backendsvc.TokenInfo{OK: true}, usrErr: &backendsvc.APIError{StatusCode: 401, Body: "Could not validate credentials"}},
			wantReason: "Failed to fetch user details: 401 - Could not validate credentials",
			wantMe:     1,
		},
		{
			name:       "profile with unknown role",
			backend:    &fakeBackend{info: backendsvc.TokenInfo{OK: true}, usr: session.User{ID: 1, Email: "a@b.com", FullName: "A B", Role: "registrar"}},
			wantReason: "Failed to fetch user details: invalid profile",
			wantMe:     1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, store := setup(t, tt.backend)

			// an existing valid session must survive a failed handshake
			if err := store.SetAuth(studentProfile(), "old-token"); err != nil {
				t.Fatalf("SetAuth() failed: %v", err)
			}

			res := h.Handle(context.Background(), "bad-token", "")

			assert.Equal(t, StateFailed, res.State)
			assert.Contains(t, res.Reason, tt.wantReason)
			assert.Equal(t, 1, tt.backend.debugCalls)
			assert.Equal(t, tt.wantMe, tt.backend.meCalls)

			sess := store.Read()
			assert.True(t, sess.IsAuthenticated())
			assert.Equal(t, "old-token", sess.Token)
		})
	}
}

func TestHandler_profileFetchWaitsForIntrospection(t *testing.T) {
	backend := &fakeBackend{info: backendsvc.TokenInfo{OK: false, Detail: "nope"}}
	h, _ := setup(t, backend)

	h.Handle(context.Background(), "abc123", "")

	// an invalid token must never reach the profile endpoint
	assert.Equal(t, 1, backend.debugCalls)
	assert.Equal(t, 0, backend.meCalls)
}

func TestHandler_success(t *testing.T) {
	backend := &fakeBackend{info: backendsvc.TokenInfo{OK: true}, usr: studentProfile()}
	h, store := setup(t, backend)

	res := h.Handle(context.Background(), "abc123", "a@b.com")

	assert.Equal(t, StateSucceeded, res.State)
	assert.Empty(t, res.Reason)
	assert.Equal(t, 1, backend.debugCalls)
	assert.Equal(t, 1, backend.meCalls)

	// the session is readable immediately, no delay
	sess := store.Read()
	assert.True(t, sess.IsAuthenticated())
	assert.Equal(t, "abc123", sess.Token)
	assert.Equal(t, session.RoleStudent, sess.User.Role)
	assert.Equal(t, "a@b.com", sess.User.Email)
}

func TestHandler_emailHintIsNotTrusted(t *testing.T) {
	backend := &fakeBackend{info: backendsvc.TokenInfo{OK: true}, usr: studentProfile()}
	h, store := setup(t, backend)

	// a mismatching hint is informational only; login still succeeds
	res := h.Handle(context.Background(), "abc123", "attacker@evil.com")

	assert.Equal(t, StateSucceeded, res.State)
	assert.Equal(t, "a@b.com", store.Read().User.Email)
}

func TestPeekToken(t *testing.T) {
	// no panic and a usable summary for tokens the backend would reject
	assert.Empty(t, peekToken(""))
	assert.Contains(t, peekToken("garbage"), "opaque token (len=7)")
}
