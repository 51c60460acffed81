package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/folio/internal/identity"
	"github.com/rpggio/folio/internal/mcp"
	"github.com/rpggio/folio/internal/sqlite"
	"github.com/rpggio/folio/internal/transport"
	"github.com/spf13/cobra"
)

const (
	mcpSessionTimeout = 30 * time.Minute
	shutdownTimeout   = 5 * time.Second
)

func serveCmd() *cobra.Command {
	var (
		mode string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and MCP endpoint, or MCP over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			if mode != "" {
				if err := os.Setenv("FOLIO_TRANSPORT", mode); err != nil {
					return err
				}
			}
			if port != 0 {
				if err := os.Setenv("FOLIO_SERVER_PORT", fmt.Sprint(port)); err != nil {
					return err
				}
			}

			a, err := newApp(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer a.Close()

			if a.cfg.Transport.Mode == "stdio" {
				return runStdio(cmd.Context(), a)
			}
			return runHTTP(cmd.Context(), a)
		},
	}

	cmd.Flags().StringVar(&mode, "transport", "", "http or stdio (overrides FOLIO_TRANSPORT)")
	cmd.Flags().IntVar(&port, "port", 0, "HTTP port (overrides FOLIO_SERVER_PORT)")
	return cmd
}

func runStdio(ctx context.Context, a *app) error {
	a.logger.Info("starting stdio transport", "auth", "disabled")
	server := mcp.NewServer(mcp.Config{
		Workspaces:    a.workspaces,
		TransportMode: "stdio",
		Logger:        a.logger,
	})
	if err := server.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("stdio server: %w", err)
	}
	return nil
}

func runHTTP(ctx context.Context, a *app) error {
	auth := identity.NewAuthenticator(sqlite.NewAPIKeyRepository(a.db), a.cfg.Auth.Enabled, a.cfg.Auth.AllowAnonymous)

	mcpServer := mcp.NewServer(mcp.Config{
		Workspaces:    a.workspaces,
		Authenticator: auth,
		TransportMode: "http",
		Logger:        a.logger,
	})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{SessionTimeout: mcpSessionTimeout},
	)

	router := transport.NewServer(transport.Config{
		Workspaces:    a.workspaces,
		Authenticator: auth,
		MCP:           mcpHandler,
		Metrics:       a.metrics,
		Limiter:       transport.NewRateLimiter(a.cfg.RateLimit.RequestsPerSecond, a.cfg.RateLimit.Burst),
		Logger:        a.logger,
	})

	addr := fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", "addr", addr, "auth", a.cfg.Auth.Enabled)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	return shutdown(a.logger, httpServer)
}

func shutdown(logger *slog.Logger, server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		return err
	}
	return nil
}
