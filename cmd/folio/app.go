package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rpggio/folio/internal/ai"
	"github.com/rpggio/folio/internal/config"
	"github.com/rpggio/folio/internal/github"
	"github.com/rpggio/folio/internal/metrics"
	"github.com/rpggio/folio/internal/sqlite"
	"github.com/rpggio/folio/internal/taxonomy"
	"github.com/rpggio/folio/internal/workspace"
)

// app holds what every command shares once config is loaded.
type app struct {
	cfg        config.Config
	logger     *slog.Logger
	db         *sqlite.DB
	metrics    *metrics.Metrics
	taxonomy   *taxonomy.Taxonomy
	workspaces *workspace.Set
	closers    []func() error
}

// newApp loads config and opens the database. Logs go to stderr, or to
// stdout for an HTTP server, unless a log file is configured.
func newApp(ctx context.Context, serving bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	a := &app{cfg: cfg, metrics: metrics.New()}

	// stdout carries the protocol in stdio mode and command output otherwise.
	logWriter := io.Writer(os.Stderr)
	if serving && cfg.Transport.Mode != "stdio" {
		logWriter = os.Stdout
	}
	if cfg.Log.Path != "" {
		fileWriter, file, err := newLogFileWriter(cfg.Log.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			a.closers = append(a.closers, file.Close)
			logWriter = fileWriter
		}
	}
	a.logger = slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	a.taxonomy = taxonomy.Default()
	if cfg.Taxonomy.Path != "" {
		if a.taxonomy, err = taxonomy.Load(cfg.Taxonomy.Path); err != nil {
			a.Close()
			return nil, err
		}
	}

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to prepare database path: %w", err)
	}
	if a.db, err = sqlite.New(cfg.DB.Path); err != nil {
		a.Close()
		return nil, err
	}
	a.closers = append(a.closers, a.db.Close)
	if err := a.db.RunMigrations(ctx); err != nil {
		a.Close()
		return nil, err
	}

	deps := workspace.Deps{
		Taxonomy: a.taxonomy,
		Source: github.NewClient(github.Config{
			BaseURL: cfg.GitHub.BaseURL,
			Token:   cfg.GitHub.Token,
			Timeout: cfg.GitHub.Timeout,
		}, a.metrics, a.logger),
		Logger: a.logger,
	}
	gen, err := ai.New(ctx, ai.Config{
		APIKey:            cfg.AI.APIKey,
		Model:             cfg.AI.Model,
		RequestsPerMinute: cfg.AI.RequestsPerMinute,
		Timeout:           cfg.AI.Timeout,
	}, a.metrics, a.logger)
	switch {
	case err == nil:
		deps.Generator = gen
	case errors.Is(err, ai.ErrNotConfigured):
		a.logger.Info("generative text service disabled", "reason", "no API key")
	default:
		a.Close()
		return nil, err
	}

	a.workspaces = workspace.NewSet(a.db, deps)
	return a, nil
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
	a.closers = nil
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
