package auth

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/DrumilPatell/sms-system/core"
	"github.com/DrumilPatell/sms-system/core/session"
	backendsvc "github.com/DrumilPatell/sms-system/services/backend"
)

// State of the callback handshake. Awaiting is the initial state; Succeeded
// and Failed are terminal.
type State string

const (
	StateAwaiting        State = "awaiting"
	StateValidating      State = "validating"
	StateFetchingProfile State = "fetching-profile"
	StateSucceeded       State = "succeeded"
	StateFailed          State = "failed"
)

const reasonNoToken = "No token received from authentication"

// Backend is the slice of the API client the callback handler needs.
type Backend interface {
	DebugToken(ctx context.Context, token string) (backendsvc.TokenInfo, error)
	Me(ctx context.Context, token string) (session.User, error)
}

// Result is the terminal outcome of one callback landing.
type Result struct {
	State  State
	Reason string // set when State == StateFailed
	User   session.User

	// TokenDetail carries best-effort diagnostics about the rejected token
	// for the failure panel. Never used for authorization.
	TokenDetail string
}

func (r Result) Failed() bool { return r.State == StateFailed }

// Handler completes the login handshake after an identity provider redirect:
// it validates the received token against the backend, fetches the profile
// and populates the session store. It runs once per redirect landing; the
// two backend calls are strictly sequential so an invalid token can never
// populate a session. A failed handshake leaves any previously persisted
// session untouched.
type Handler struct {
	backend Backend
	store   *session.Store
	logger  core.Logger
}

func NewHandler(backend Backend, store *session.Store, logger core.Logger) *Handler {
	return &Handler{backend: backend, store: store, logger: logger}
}

// Handle drives the state machine to a terminal state. emailHint is the
// informational `user` query parameter; it is never trusted, a mismatch with
// the fetched profile is only logged.
func (h *Handler) Handle(ctx context.Context, token, emailHint string) Result {
	// Awaiting: a redirect without a token fails before any network call.
	if token == "" {
		return Result{State: StateFailed, Reason: reasonNoToken}
	}

	// Validating
	info, err := h.backend.DebugToken(ctx, token)
	if err != nil {
		return h.fail(token, "Token validation failed: %s", reasonText(err))
	}
	if !info.OK {
		detail := info.Detail
		if detail == "" {
			detail = "token rejected"
		}
		return h.fail(token, "Token validation failed: %s", detail)
	}

	// FetchingProfile
	usr, err := h.backend.Me(ctx, token)
	if err != nil {
		return h.fail(token, "Failed to fetch user details: %s", reasonText(err))
	}
	if err = usr.Validate(); err != nil {
		return h.fail(token, "Failed to fetch user details: invalid profile: %v", err)
	}

	if emailHint != "" && core.CleanString(emailHint, true) != usr.Email {
		h.logger.Warn(fmt.Sprintf("callback email hint %q does not match profile email %q", emailHint, usr.Email))
	}

	if err = h.store.SetAuth(usr, token); err != nil {
		return h.fail(token, "Failed to store session: %v", err)
	}
	return Result{State: StateSucceeded, User: usr}
}

func (h *Handler) fail(token, format string, args ...interface{}) Result {
	res := Result{
		State:       StateFailed,
		Reason:      fmt.Sprintf(format, args...),
		TokenDetail: peekToken(token),
	}
	h.logger.Warn("auth callback failed: " + res.Reason)
	return res
}

// reasonText renders an error for the failure panel: API errors keep their
// "<status> - <body>" form, field errors name the offending field, anything
// else (transport, cancellation) its text.
func reasonText(err error) string {
	switch cause := errors.Cause(err).(type) {
	case *backendsvc.APIError:
		return cause.Error()
	case *core.ValidationError:
		if len(cause.Fields) > 0 {
			return cause.Fields[0].Field + ": " + cause.Fields[0].Error
		}
	}
	return err.Error()
}
