package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/kat-co/vala"
	"github.com/labstack/echo/v4"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/assignment"
	"github.com/trezcool/shule/core/homework"
	"github.com/trezcool/shule/core/student"
	"github.com/trezcool/shule/core/task"
	"github.com/trezcool/shule/core/user"
)

type (
	ServerDeps struct {
		Conf          *core.Config
		Logger        core.Logger
		UserSvc       user.Service
		StudentSvc    student.Service
		HomeworkSvc   homework.Service
		TaskSvc       task.Service
		AssignmentSvc assignment.Service
	}

	Server struct {
		deps     ServerDeps
		app      *echo.Echo
		errors   chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps ServerDeps) *Server {
	vala.BeginValidation().Validate(
		vala.IsNotNil(deps.Conf, "deps.Conf"),
		vala.IsNotNil(deps.Logger, "deps.Logger"),
		vala.IsNotNil(deps.UserSvc, "deps.UserSvc"),
		vala.IsNotNil(deps.StudentSvc, "deps.StudentSvc"),
		vala.IsNotNil(deps.HomeworkSvc, "deps.HomeworkSvc"),
		vala.IsNotNil(deps.TaskSvc, "deps.TaskSvc"),
		vala.IsNotNil(deps.AssignmentSvc, "deps.AssignmentSvc"),
	).CheckAndPanic()

	s := &Server{
		deps:     deps,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	s.app.HideBanner = true
	s.app.Debug = s.deps.Conf.Debug
	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger)
	setupMiddleware(s.app, s.deps.Conf)

	s.app.GET("/", s.home)

	v1 := s.app.Group("/v1")
	registerUserAPI(v1, s.deps.UserSvc)
	registerStudentAPI(v1, s.deps.StudentSvc)
	registerHomeworkAPI(v1, s.deps.HomeworkSvc)
	registerTaskAPI(v1, s.deps.TaskSvc)
	registerAssignmentAPI(v1, s.deps.AssignmentSvc)
}

// Start listens on the configured address. Listening errors are sent to Errors().
func (s *Server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

// Shutdown stops the server gracefully, waiting for in-flight requests until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *Server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.deps.Conf.AppName+" API!")
}
