package main

import (
	"context"
	"testing"

	"github.com/DrumilPatell/sms-system/core/auth"
	"github.com/DrumilPatell/sms-system/core/session"
	backendsvc "github.com/DrumilPatell/sms-system/services/backend"
	logsvc "github.com/DrumilPatell/sms-system/services/logger"
	"github.com/DrumilPatell/sms-system/storage/sessionmem"
)

// fakeBackend implements both authBackend and the callback handler's
// Backend so one stub drives the whole login flow.
type fakeBackend struct {
	validToken string
	profile    session.User
}

func (b *fakeBackend) ProviderLoginURL(_ context.Context, provider string) (string, error) {
	for _, p := range backendsvc.Providers {
		if p == provider {
			return "https://idp.test/authorize?provider=" + provider, nil
		}
	}
	return "", backendsvc.ErrUnknownProvider
}

func (b *fakeBackend) Logout(context.Context) error { return nil }

func (b *fakeBackend) DebugToken(_ context.Context, token string) (backendsvc.TokenInfo, error) {
	if token == b.validToken {
		return backendsvc.TokenInfo{OK: true}, nil
	}
	return backendsvc.TokenInfo{OK: false, Detail: "Signature verification failed"}, nil
}

func (b *fakeBackend) Me(_ context.Context, token string) (session.User, error) {
	return b.profile, nil
}

func setup(t *testing.T) (*commandLine, *session.Store) {
	logger := logsvc.NewNopLogger()
	store := session.NewStore(sessionmem.NewRepository(), logger)
	backend := &fakeBackend{
		validToken: "abc123",
		profile:    session.User{ID: 1, Email: "awe@test.cd", FullName: "Awe Test", Role: session.RoleFaculty, IsActive: true},
	}
	return &commandLine{
		store:   store,
		backend: backend,
		auth:    auth.NewHandler(backend, store, logger),
	}, store
}

type cliTest struct {
	name    string
	args    []string // without program name
	wantErr error
	extra   interface{}
}

func Test_commandLine_session(t *testing.T) {
	cli, store := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "session when signed out", args: []string{"session"}},
		{name: "clearsession when signed out", args: []string{"clearsession"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	// clearsession drops a live session
	if err := store.SetAuth(session.User{ID: 2, Email: "a@b.com", FullName: "A B", Role: session.RoleStudent, IsActive: true}, "tok"); err != nil {
		t.Fatalf("SetAuth() failed, %v", err)
	}
	if err := cli.run([]string{"admin", "clearsession"}); err != nil {
		t.Fatalf("cli.run() unexpected error = %v", err)
	}
	if store.Read().IsAuthenticated() {
		t.Error("failed to clear session")
	}
}

func Test_commandLine_login(t *testing.T) {
	cli, store := setup(t)

	type extra struct {
		token string
	}
	tests := []cliTest{
		{name: "no provider", args: []string{"login"}, wantErr: errHelp},
		{name: "unknown provider", args: []string{"login", "-provider", "yahoo"}, extra: extra{token: "abc123"}, wantErr: backendsvc.ErrUnknownProvider},
		{name: "empty token", args: []string{"login", "-provider", "google"}, wantErr: errHelp},
		{name: "rejected token", args: []string{"login", "-provider", "google"}, extra: extra{token: "forged"}, wantErr: errLoginFailed},
		{name: "login with google", args: []string{"login", "-provider", "google"}, extra: extra{token: "abc123"}},
		{name: "login with github", args: []string{"login", "-provider", "github"}, extra: extra{token: "abc123"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readTokenFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.token), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				sess := store.Read()
				if !sess.IsAuthenticated() {
					t.Fatal("login left no session behind")
				}
				if sess.Token != "abc123" {
					t.Errorf("session token = %q; want %q", sess.Token, "abc123")
				}
				if sess.User.Role != session.RoleFaculty {
					t.Errorf("session role = %v; want %v", sess.User.Role, session.RoleFaculty)
				}
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
