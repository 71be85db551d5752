package echoweb

import (
	"fmt"
	"net/http"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/DrumilPatell/sms-system/core"
)

type errorData struct {
	pageData
	Code    int
	Message string
}

// appHTTPErrorHandler renders application errors as HTML pages.
// Whenever a core.shutdown error is caught the server is signaled to stop.
func (s *server) appHTTPErrorHandler() echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message string

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = fmt.Sprintf("%v", origErr.Message)
		case validator.ValidationErrors:
			code = http.StatusBadRequest
			for _, vErr := range origErr {
				message = vErr.Translate(core.Translator)
				break
			}
		case *core.ValidationError:
			code = http.StatusBadRequest
			message = origErr.Error()
			if message == "" && len(origErr.Fields) > 0 {
				message = origErr.Fields[0].Error
			}
		default: // any other error is a server error
			code = http.StatusInternalServerError
			message = http.StatusText(code)

			args := []interface{}{errors.Wrap(err, message)}
			if sess := s.deps.Store.Read(); sess.User != nil {
				args = append(args, *sess.User)
			}
			s.deps.Logger.Error(message, args...)

			// shutting down...
			if core.IsShutdown(err) {
				s.shutdown <- os.Interrupt
			}
		}

		if ctx.Echo().Debug && code == http.StatusInternalServerError {
			message = err.Error()
		}

		if ctx.Response().Committed {
			return
		}

		var rErr error
		if ctx.Request().Method == http.MethodHead {
			rErr = ctx.NoContent(code)
		} else if code == http.StatusNotFound {
			rErr = ctx.Render(code, "notfound", s.page(ctx, "404"))
		} else {
			rErr = ctx.Render(code, "error", errorData{
				pageData: s.page(ctx, http.StatusText(code)),
				Code:     code,
				Message:  message,
			})
		}
		if rErr != nil {
			ctx.Echo().Logger.Error(rErr)
		}
	}
}
