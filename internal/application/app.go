// Package application wires configuration, storage, rendering and the HTTP
// server together. Both the server binary and the CLI's serve command use it.
package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/stickers/internal/config"
	"github.com/JonMunkholm/stickers/internal/core"
	"github.com/JonMunkholm/stickers/internal/render"
	"github.com/JonMunkholm/stickers/internal/sheet"
	"github.com/JonMunkholm/stickers/internal/store"
	"github.com/JonMunkholm/stickers/internal/web"
)

// App holds the long-lived components of a running service.
type App struct {
	Config  *config.Config
	Service *core.Service
	PDF     *render.PDFWriter
	pool    *pgxpool.Pool
}

// RenderOptions maps the sticker settings onto renderer options.
func RenderOptions(s config.StickerConfig) render.Options {
	return render.Options{
		FontSize:         s.FontSize,
		LineHeightOffset: s.LineHeightOffset,
		Margin:           s.Margin,
		Gap:              s.Gap,
		LeftOffset:       s.LeftOffset,
		TextPadding:      s.TextPadding,
		TextMargin:       s.TextMargin,
	}
}

// ServiceOptions maps upload and sticker settings onto service options.
func ServiceOptions(cfg *config.Config) core.Options {
	return core.Options{
		MaxFileSize:          cfg.Upload.MaxFileSize,
		DefaultTemplate:      cfg.Stickers.DefaultTemplate,
		DefaultMaxNameLength: cfg.Stickers.MaxNameLength,
		MaxConcurrent:        cfg.Upload.MaxConcurrent,
		MaxWait:              cfg.Upload.MaxWaitTime,
		Timeout:              cfg.Upload.Timeout,
	}
}

// New builds the service. With a database URL, run history goes to
// Postgres; otherwise it is kept in memory.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{
		Config: cfg,
		PDF:    render.NewPDFWriter(cfg.Stickers.FontPath, cfg.Stickers.FontFamily, RenderOptions(cfg.Stickers)),
	}

	var runs core.RunStore
	if cfg.Database.Enabled() {
		pool, err := connect(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		pg := store.NewPostgres(pool)
		if err := pg.Migrate(ctx); err != nil {
			pool.Close()
			return nil, err
		}
		app.pool = pool
		runs = pg
	} else {
		slog.Info("no database configured, keeping run history in memory",
			"capacity", cfg.History.MemoryCapacity)
		runs = store.NewMemory(cfg.History.MemoryCapacity)
	}

	svc, err := core.NewService(sheet.Decoder, app.PDF, runs, ServiceOptions(cfg))
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Service = svc
	return app, nil
}

// Close releases the database pool, if any.
func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}

func connect(ctx context.Context, dbCfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dbCfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	poolConfig.MaxConns = int32(dbCfg.MaxConns)
	poolConfig.MinConns = int32(dbCfg.MinConns)
	poolConfig.MaxConnLifetime = dbCfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = dbCfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if u, err := url.Parse(dbCfg.URL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	}
	return pool, nil
}

// Serve runs the HTTP server and the history retention job until ctx is
// cancelled, then drains running jobs and shuts down.
func Serve(ctx context.Context, cfg *config.Config) error {
	app, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	slog.Info("templates registered",
		"count", core.TemplateCount(),
		"default", cfg.Stickers.DefaultTemplate,
	)

	jobCtx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()
	go app.Service.StartRetentionScheduler(jobCtx, core.RetentionConfig{
		RetentionDays: cfg.History.RetentionDays,
		CheckInterval: cfg.History.CheckInterval,
	})

	server := web.NewServer(app.Service, cfg)
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Server.Addr())
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down...")
	cancelJobs()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if status := app.Service.LimiterStatus(); status.Active > 0 {
		slog.Info("waiting for sticker jobs to complete", "active", status.Active)
		if err := app.Service.WaitForJobs(shutdownCtx); err != nil {
			slog.Warn("jobs did not complete in time", "error", err)
		}
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
