package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/dashboard/internal/core"
	"github.com/JonMunkholm/dashboard/internal/logging"
	"github.com/JonMunkholm/dashboard/internal/tui"
)

func newBrowseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse [collection]",
		Short: "Browse the collections in the terminal",
		Long: `Open an interactive terminal view of the dashboard collections.

Search, filter, sort, page and select items the same way as in the web
dashboard, and run bulk actions on the selection. Destructive actions
ask for confirmation. Changes last until the program exits.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var key string
			if len(args) == 1 {
				key = args[0]
			}
			return runBrowse(cmd, key)
		},
	}
	return cmd
}

func runBrowse(cmd *cobra.Command, key string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// The terminal belongs to the browser; only errors go to stderr.
	logging.Setup("error", cfg.Logging.Format)

	service, err := newService(cfg)
	if err != nil {
		return err
	}

	ctx := core.ContextWithActor(cmd.Context(), terminalUser())

	m, err := tui.New(ctx, service, tui.Options{
		PageSizes:  cfg.View.PageSizeOptions,
		Collection: key,
	})
	if err != nil {
		return err
	}
	return tui.Run(ctx, m, cmd.InOrStdin(), cmd.OutOrStdout())
}

// terminalUser names the actor of bulk actions run from the terminal.
func terminalUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return core.SystemActor
}
