// Package runtime wires configuration, storage, and the HTTP server into a
// runnable application.
package runtime

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	"github.com/agendalabs/meetingd/internal/config"
	"github.com/agendalabs/meetingd/internal/httpapi"
	"github.com/agendalabs/meetingd/internal/middleware"
	"github.com/agendalabs/meetingd/internal/storage"
	"github.com/agendalabs/meetingd/internal/storage/memory"
	"github.com/agendalabs/meetingd/internal/storage/postgres"
	"github.com/agendalabs/meetingd/internal/system"
	"github.com/agendalabs/meetingd/pkg/logger"
)

// Application manages the lifecycle of the HTTP server and its dependencies.
type Application struct {
	cfg     *config.Config
	log     *logger.Logger
	server  *httpapi.Server
	manager *system.Manager
	db      *sql.DB
}

// NewApplication constructs a fully wired application from the environment.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.Logging)

	stores, db, err := buildStores(cfg)
	if err != nil {
		return nil, fmt.Errorf("configure stores: %w", err)
	}

	manager := system.NewManager()

	opts := httpapi.Options{AuditLogPath: cfg.Server.AuditLogPath}
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, log)
		opts.RateLimiter = limiter
		if err := manager.Register(middleware.NewSweeper(limiter, 5*time.Minute)); err != nil {
			return nil, fmt.Errorf("register sweeper: %w", err)
		}
	}

	h, err := httpapi.New(stores, log, opts)
	if err != nil {
		return nil, fmt.Errorf("configure http handler: %w", err)
	}

	return &Application{
		cfg:     cfg,
		log:     log,
		server:  httpapi.NewServer(cfg.Server, h, log),
		manager: manager,
		db:      db,
	}, nil
}

// Run starts the background services and the HTTP server, blocking until the
// context is cancelled or the server fails.
func (a *Application) Run(ctx context.Context) error {
	if err := a.manager.Start(ctx); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Infof("HTTP server listening on %s", a.server.Addr())
		if err := a.server.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Shutdown drains the HTTP server, stops background services, and closes the
// database.
func (a *Application) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, time.Duration(a.cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := a.manager.Stop(shutdownCtx); err != nil {
		a.log.WithError(err).Warn("error stopping background services")
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.WithError(err).Warn("error closing database connection")
		}
	}
	return nil
}

func buildStores(cfg *config.Config) (storage.Stores, *sql.DB, error) {
	if cfg.Database.DSN == "" {
		return memory.New().Stores(), nil, nil
	}

	db, err := openDatabase(cfg.Database)
	if err != nil {
		return storage.Stores{}, nil, err
	}

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := postgres.Apply(migrateCtx, db); err != nil {
		db.Close()
		return storage.Stores{}, nil, fmt.Errorf("apply migrations: %w", err)
	}

	return postgres.New(db).Stores(), db, nil
}

func openDatabase(cfg config.DatabaseConfig) (*sql.DB, error) {
	if cfg.Driver == "" {
		return nil, fmt.Errorf("database driver not configured")
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
