package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/dashboard/internal/logging"
	"github.com/JonMunkholm/dashboard/internal/web"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP dashboard",
		Long: `Serve the dashboard pages, the JSON API, /metrics and /healthz.

The server stops gracefully on SIGINT or SIGTERM, waiting up to
SERVER_SHUTDOWN_TIMEOUT for in-flight requests.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Listen port (overrides SERVER_PORT)")
	return cmd
}

func runServe(ctx context.Context, port int) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.Server.Port = port
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	service, err := newService(cfg)
	if err != nil {
		return err
	}
	for _, info := range service.ListCollections() {
		c, _ := service.Collection(info.Key)
		slog.Info("collection registered", "collection", info.Key, "group", info.Group, "items", c.Len())
	}

	server, err := web.NewServer(service, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(cfg.Server.Addr())
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if status := service.ImportStatus(); status.Active > 0 {
		slog.Info("waiting for imports to complete", "active", status.Active)
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		return err
	}
	slog.Info("server stopped")
	return nil
}
