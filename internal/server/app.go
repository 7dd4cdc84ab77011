// Package server wires configuration, storage, services and the HTTP
// transport together and runs them until the process is signalled.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/dmitrijs2005/technotes/internal/logging"
	"github.com/dmitrijs2005/technotes/internal/server/auth"
	"github.com/dmitrijs2005/technotes/internal/server/config"
	"github.com/dmitrijs2005/technotes/internal/server/httpserver"
	"github.com/dmitrijs2005/technotes/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/technotes/internal/server/services"
	"github.com/dmitrijs2005/technotes/internal/validation"
)

// Replaced in tests.
var (
	openStore = repomanager.New
	pingDelay = 500 * time.Millisecond
)

type App struct {
	config *config.Config
	logger logging.Logger
	events *logging.EventLog
	repos  repomanager.RepositoryManager
	server *httpserver.HTTPServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	h, err := logging.NewHandler(os.Stdout, c.LogLevel, c.LogPretty)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}
	logger := logging.NewSlogLogger(slog.New(h))
	events := logging.NewEventLog(c.LogsDir)

	repos, err := openStore(ctx, c.DatabaseURI, c.DatabaseName)
	if err != nil {
		_ = events.Log(err.Error(), logging.DBErrorLogFile)
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app := &App{config: c, logger: logger, events: events, repos: repos}

	if err := app.connect(ctx); err != nil {
		_ = repos.Close(context.Background())
		return nil, err
	}

	v := validation.New()
	us := services.NewUserService(repos.Users(), v)
	ns := services.NewNoteService(repos.Notes(), repos.Users(), v)

	// A nil AuthService keeps every route open.
	var as httpserver.AuthService
	if c.AuthEnabled() {
		as = auth.NewService(repos.Users(), v, c.SecretKey, c.AccessTokenValidityDuration)
	} else {
		logger.Warn(ctx, "SECRET_KEY is empty, authentication disabled")
	}

	app.server = httpserver.NewHTTPServer(c.EndpointAddrHTTP, logger, events, us, ns, as, httpserver.Options{
		AllowedOrigins:  c.AllowedOrigins,
		RateLimit:       c.RateLimit,
		RateBurst:       c.RateBurst,
		ShutdownTimeout: c.ShutdownTimeout,
	})

	return app, nil
}

// connect pings the store until it answers, recording every failure in
// dbErrLog.log, then prepares the schema.
func (app *App) connect(ctx context.Context) error {
	err := retry.Do(
		func() error { return app.repos.Ping(ctx) },
		retry.Context(ctx),
		retry.Delay(pingDelay),
		retry.Attempts(app.config.DBConnectAttempts),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			app.logDBError(ctx, err, attempt+1)
		}),
	)
	if err != nil {
		return fmt.Errorf("ping to database: %w", err)
	}
	app.logger.Info(ctx, "Connected to database")

	if err := app.repos.RunMigrations(ctx); err != nil {
		app.logDBError(ctx, err, 0)
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

func (app *App) logDBError(ctx context.Context, err error, attempt uint) {
	app.logger.Warn(ctx, "database error", "error", err, "attempt", attempt)
	if logErr := app.events.Log(err.Error(), logging.DBErrorLogFile); logErr != nil {
		app.logger.Warn(ctx, "db error log write failed", "error", logErr)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the store.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	runErr := app.server.Run(ctx)
	if runErr != nil {
		app.logger.Error(ctx, "http server stopped", "error", runErr)
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()
	if err := app.repos.Close(closeCtx); err != nil {
		app.logger.Error(ctx, "closing database", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
	return runErr
}
