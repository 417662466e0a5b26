// Package cmd provides the CLI commands for the dashboard.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/dashboard/internal/config"
	"github.com/JonMunkholm/dashboard/internal/core"
	"github.com/JonMunkholm/dashboard/internal/core/seed"
)

// NewRootCmd creates the root command for the dashboard CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Admin dashboard for people, library items and assets",
		Long: `dashboard serves a searchable, filterable admin dashboard over
in-memory collections, and exports any view of them from the command line.

Configuration is read from the environment and an optional .env file.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newBrowseCmd())
	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// loadConfig loads .env (overwriting existing variables) and then the
// configuration from the environment.
func loadConfig() (*config.Config, error) {
	if err := godotenv.Overload(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	} else {
		slog.Debug("loaded .env file (overwriting existing env vars)")
	}
	return config.Load()
}

// newService builds the service from the configured seed data.
func newService(cfg *config.Config) (*core.Service, error) {
	data, err := seed.Load(cfg.Data.SeedFile)
	if err != nil {
		return nil, err
	}

	service, err := core.NewService(data, core.Options{
		View: core.ViewOptions{
			PageSize:       cfg.View.PageSize,
			Threshold:      cfg.View.SearchThreshold,
			PageWindow:     cfg.View.PageWindow,
			ConfirmTTL:     cfg.View.ConfirmTTL,
			IndexCacheSize: cfg.View.IndexCacheSize,
		},
		MaxConcurrentImports: cfg.Import.MaxConcurrent,
		ImportWait:           cfg.Import.MaxWaitTime,
	})
	if err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	return service, nil
}
