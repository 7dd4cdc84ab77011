// Package httpserver exposes the users and notes services over a JSON REST
// API built on gin.
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/technotes/internal/logging"
	"github.com/dmitrijs2005/technotes/internal/server/auth"
	"github.com/dmitrijs2005/technotes/internal/server/models"
	"github.com/dmitrijs2005/technotes/internal/server/services"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, in services.CreateUserInput) (*models.User, error)
	Update(ctx context.Context, in services.UpdateUserInput) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

type NoteService interface {
	List(ctx context.Context) ([]models.NoteWithUser, error)
	Create(ctx context.Context, in services.CreateNoteInput) (*models.Note, error)
	Update(ctx context.Context, in services.UpdateNoteInput) (*models.Note, error)
	Delete(ctx context.Context, in services.DeleteNoteInput) (*models.Note, error)
}

type AuthService interface {
	Login(ctx context.Context, in auth.LoginInput) (string, error)
	Verify(token string) (*auth.Claims, error)
}

// EventLogger appends a line to a named log file.
type EventLogger interface {
	Log(message, fileName string) error
}

// Options tunes the transport.
type Options struct {
	AllowedOrigins  []string
	RateLimit       float64
	RateBurst       int
	ShutdownTimeout time.Duration
}

type HTTPServer struct {
	address string
	users   UserService
	notes   NoteService
	auth    AuthService
	logger  logging.Logger
	events  EventLogger
	metrics *metrics
	limiter *rate.Limiter
	opts    Options
	engine  *gin.Engine
}

// NewHTTPServer builds the router. A nil AuthService leaves every route
// open and does not mount /auth.
func NewHTTPServer(address string, l logging.Logger, ev EventLogger, us UserService, ns NoteService, as AuthService, opts Options) *HTTPServer {
	s := &HTTPServer{
		address: address,
		users:   us,
		notes:   ns,
		auth:    as,
		logger:  l.With("module", "http_server"),
		events:  ev,
		metrics: newMetrics(),
		opts:    opts,
	}
	if opts.RateLimit > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), opts.RateBurst)
	}
	s.engine = s.newRouter()
	return s
}

// Handler returns the configured gin engine.
func (s *HTTPServer) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then drains in-flight requests for up
// to Options.ShutdownTimeout.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
