package echoweb

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	backendsvc "github.com/DrumilPatell/sms-system/services/backend"
)

type loginData struct {
	Title     string
	Providers []string
}

type callbackErrorData struct {
	Title         string
	Reason        string
	TokenDetail   string
	RedirectDelay int // seconds before the page refreshes to /login
	Providers     []string
}

func (s *server) loginPage(ctx echo.Context) error {
	if s.deps.Store.Read().IsAuthenticated() {
		return ctx.Redirect(http.StatusFound, dashboardPath)
	}
	return ctx.Render(http.StatusOK, "login", loginData{
		Title:     "Sign in",
		Providers: backendsvc.Providers,
	})
}

// providerStart resolves the identity provider's authorization URL and sends
// the user there. The provider owns the rest until the callback lands.
func (s *server) providerStart(ctx echo.Context) error {
	provider := ctx.Param("provider")

	authURL, err := s.deps.Backend.ProviderLoginURL(ctx.Request().Context(), provider)
	if err != nil {
		if errors.Cause(err) == backendsvc.ErrUnknownProvider {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown identity provider")
		}
		return errors.Wrap(err, "resolving provider login URL")
	}
	return ctx.Redirect(http.StatusFound, authURL)
}

// authCallback finishes the handshake. Success replaces the callback in
// history with the dashboard; failure renders the error panel which sends
// the user back to the login page after the configured delay.
func (s *server) authCallback(ctx echo.Context) error {
	res := s.auth.Handle(ctx.Request().Context(), ctx.QueryParam("token"), ctx.QueryParam("user"))
	if res.Failed() {
		return ctx.Render(http.StatusUnauthorized, "callback_error", callbackErrorData{
			Title:         "Authentication Error",
			Reason:        res.Reason,
			TokenDetail:   res.TokenDetail,
			RedirectDelay: int(s.deps.Conf.Auth.FailureRedirectDelay.Seconds()),
			Providers:     backendsvc.Providers,
		})
	}
	return ctx.Redirect(http.StatusSeeOther, dashboardPath)
}

// clearSession is the manual "Clear & Retry" recovery action.
func (s *server) clearSession(ctx echo.Context) error {
	if err := s.deps.Store.ClearAuth(); err != nil {
		return errors.Wrap(err, "clearing session")
	}
	return ctx.Redirect(http.StatusSeeOther, loginPath)
}

func (s *server) logout(ctx echo.Context) error {
	// best-effort: the session is cleared client-side regardless
	if err := s.deps.Backend.Logout(ctx.Request().Context()); err != nil {
		s.deps.Logger.Warn("backend logout failed", err)
	}
	if err := s.deps.Store.ClearAuth(); err != nil {
		return errors.Wrap(err, "clearing session")
	}
	return ctx.Redirect(http.StatusSeeOther, loginPath)
}
