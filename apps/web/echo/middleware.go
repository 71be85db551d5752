package echoweb

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/DrumilPatell/sms-system/core/session"
)

const contextSessionKey = "session"

// authorize gates a route behind the current session. No roles means any
// authenticated role. The snapshot is read fresh on every request so a
// session cleared elsewhere is honored on the next navigation.
func (s *server) authorize(roles ...session.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			sess := s.deps.Store.Read()
			if !sess.IsAuthenticated() {
				return ctx.Redirect(http.StatusFound, loginPath)
			}
			if len(roles) > 0 && !roleAllowed(sess.User.Role, roles) {
				return ctx.Redirect(http.StatusFound, unauthorizedPath)
			}
			ctx.Set(contextSessionKey, sess)
			return next(ctx)
		}
	}
}

func roleAllowed(role session.Role, allowed []session.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// contextSession returns the snapshot placed by authorize. Falls back to a
// fresh read for handlers mounted outside the guard.
func (s *server) contextSession(ctx echo.Context) session.Session {
	if sess, ok := ctx.Get(contextSessionKey).(session.Session); ok {
		return sess
	}
	return s.deps.Store.Read()
}
