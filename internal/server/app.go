// Package server wires configuration, storage, services and the HTTP API
// together and runs them until the process is asked to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/labsite/internal/filex"
	"github.com/dmitrijs2005/labsite/internal/logging"
	"github.com/dmitrijs2005/labsite/internal/server/auth"
	"github.com/dmitrijs2005/labsite/internal/server/config"
	"github.com/dmitrijs2005/labsite/internal/server/httpapi"
	"github.com/dmitrijs2005/labsite/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/labsite/internal/server/services"
	"github.com/juju/clock"
)

var (
	openDB     = repomanager.OpenDB
	newManager = repomanager.NewPostgresRepositoryManager
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	handler http.Handler
}

// NewApp connects to the database, applies migrations and builds the router.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	if cfg.UsesInsecureSecret() {
		logger.Warn(ctx, "JWT secret is not configured, using the built-in development secret")
	}

	db, err := openDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := newManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	clk := clock.WallClock
	tokens := auth.NewTokenService(cfg.SecretKey, cfg.TokenTTL, clk)

	deps := httpapi.Deps{
		Accounts:      services.NewAccountService(db, rm, tokens),
		HomePage:      services.NewHomePageService(db, rm, clk),
		Publications:  services.NewPublicationService(db, rm, clk),
		People:        services.NewPersonService(db, rm, clk),
		News:          services.NewNewsService(db, rm, clk),
		ResearchAreas: services.NewResearchAreaService(db, rm, clk),
		DB:            db,
		Logger:        logger,
		CORSOrigins:   cfg.CORSOrigins,
		MaxBodyBytes:  cfg.MaxBodyBytes,
	}

	if cfg.UploadsEnabled() {
		deps.Uploads = services.NewUploadService(cfg, clk)
	} else {
		logger.Info(ctx, "uploads disabled, no S3 bucket configured")
	}

	if cfg.StaticDir != "" {
		ok, err := filex.IsDir(cfg.StaticDir)
		switch {
		case err != nil:
			logger.Warn(ctx, "static directory is not readable", "dir", cfg.StaticDir, "error", err)
		case !ok:
			logger.Warn(ctx, "static directory not found, serving the API only", "dir", cfg.StaticDir)
		default:
			deps.StaticDir = cfg.StaticDir
		}
	}

	return &App{config: cfg, logger: logger, db: db, handler: httpapi.NewRouter(deps)}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	s := httpapi.NewServer(app.config.HTTPAddr, app.handler, app.logger, app.config.ShutdownTimeout)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return err
	}
	return nil
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var (
		wg     sync.WaitGroup
		runErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		runErr = app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(context.Background(), "close database", "error", err)
	}
	app.logger.Info(context.Background(), "App stopped")

	return runErr
}
