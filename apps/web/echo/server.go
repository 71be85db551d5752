package echoweb

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/DrumilPatell/sms-system/core"
	"github.com/DrumilPatell/sms-system/core/auth"
	"github.com/DrumilPatell/sms-system/core/session"
	backendsvc "github.com/DrumilPatell/sms-system/services/backend"
)

const (
	landingPath      = "/"
	loginPath        = "/login"
	callbackPath     = "/auth/callback"
	dashboardPath    = "/dashboard"
	unauthorizedPath = "/unauthorized"
)

type (
	Deps struct {
		Conf    *core.Config
		Logger  core.Logger
		Store   *session.Store
		Backend *backendsvc.Client
	}

	Server interface {
		http.Handler
		Start()
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
		Shutdown(context.Context) error
		Close() error
	}

	server struct {
		deps     Deps
		auth     *auth.Handler
		app      *echo.Echo
		errs     chan error
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps Deps) Server {
	s := &server{
		deps:     deps,
		auth:     auth.NewHandler(deps.Backend, deps.Store, deps.Logger),
		app:      echo.New(),
		errs:     make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = s.appHTTPErrorHandler()
	s.app.Debug = conf.Debug
	s.app.HideBanner = true
	s.app.Renderer = newRenderer()

	s.app.GET(landingPath, s.landing)
	s.app.GET(loginPath, s.loginPage)
	s.app.GET("/auth/:provider/start", s.providerStart)
	s.app.GET(callbackPath, s.authCallback)
	s.app.POST("/auth/clear", s.clearSession)
	s.app.POST("/logout", s.logout)
	s.app.GET(unauthorizedPath, s.unauthorizedPage)

	// every protected route re-checks the session on each request
	d := s.app.Group(dashboardPath, s.authorize())
	d.GET("", s.dashboard)
	d.GET("/users", s.usersPage, s.authorize(session.RoleAdmin))
	d.GET("/students", s.studentsPage, s.authorize(session.RoleAdmin, session.RoleFaculty))
	d.GET("/courses", s.coursesPage, s.authorize(session.AllRoles...))
	d.GET("/enrollments", s.enrollmentsPage, s.authorize(session.RoleAdmin))
	d.GET("/attendance", s.attendancePage, s.authorize(session.RoleAdmin, session.RoleFaculty))
	d.GET("/grades", s.gradesPage, s.authorize(session.AllRoles...))
}

func (s *server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Addr); err != nil && err != http.ErrServerClosed {
		s.errs <- err
	}
}

func (s *server) Errors() <-chan error { return s.errs }

func (s *server) ShutdownSignal() <-chan os.Signal { return s.shutdown }

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}
