package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio/app/config"
	"portfolio/app/logger"
	"portfolio/app/metrics"
	"portfolio/app/repositories"
	"portfolio/app/routes"
	"portfolio/app/services"
)

const shutdownTimeout = 10 * time.Second

// App is a fully wired server, ready to run.
type App struct {
	Server   *http.Server
	Content  *services.ContentService
	Comments *services.CommentService

	log     logger.Logger
	closers []func() error
}

// NewApp builds the stores, services and router described by cfg.
func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	app := &App{log: log}
	m := metrics.New()

	store, closeStore, err := openCommentStore(cfg, log)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, closeStore)

	var gateway repositories.ContentGateway
	if cfg.Database.Enabled {
		db, err := repositories.ConnectPostgres(cfg.Database.DSN())
		if err != nil {
			// Content falls back to seed data, so a missing database is not fatal.
			log.Warn("Content database unavailable, serving seed content", logger.Error(err))
		} else {
			app.closers = append(app.closers, db.Close)
			gateway = repositories.NewPostgresContentGateway(db)
		}
	}

	app.Content = services.NewContentService(gateway,
		services.WithContentLogger(log),
		services.WithContentMetrics(m),
		services.WithLoadTimeout(cfg.Content.LoadTimeout),
	)
	app.Comments = services.NewCommentService(store,
		services.WithCommentLogger(log),
		services.WithCommentMetrics(m),
	)

	app.Server = &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      routes.SetupRoutes(app.Content, app.Comments, m, log),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return app, nil
}

// Run loads content and serves until ctx is cancelled, then shuts down.
func (a *App) Run(ctx context.Context) error {
	a.Content.LoadAll(ctx)

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("Starting portfolio service", logger.String("address", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("Shutting down portfolio service")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// Close flushes comments and releases every backend connection.
func (a *App) Close() error {
	var errs []error
	if err := a.Comments.Close(); err != nil {
		errs = append(errs, err)
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RunAppServer starts the HTTP service and blocks until SIGINT or SIGTERM.
func RunAppServer(args []string) int {
	path, _ := splitConfigFlag(args)
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		return 1
	}

	log, err := logger.New(cfg.Logging)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	app, err := NewApp(cfg, log)
	if err != nil {
		log.Error("Failed to start", logger.Error(err))
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := 0
	if err := app.Run(ctx); err != nil {
		log.Error("Server stopped", logger.Error(err))
		code = 1
	}
	if err := app.Close(); err != nil {
		log.Error("Failed to close cleanly", logger.Error(err))
		code = 1
	}
	return code
}
