package main

import (
	"fmt"

	"edge-stats/internal/app"
	"edge-stats/internal/shared/configs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootOptions holds the flags shared by every subcommand.
type rootOptions struct {
	configPath string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "edgestats",
		Short: "Hourly edge traffic statistics",
		Long: `edgestats collects the last 24 hours of edge traffic for one zone,
one bucket per hour, and writes them as a JSON report.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// .env is optional; real environment variables win
			_ = godotenv.Load()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file (optional)")

	cmd.AddCommand(
		newRunCommand(opts),
		newServeCommand(opts),
		newWAFCommand(opts),
	)

	return cmd
}

// loadApp validates the configuration before anything touches the network
// or the report directory.
func loadApp(opts *rootOptions) (*app.App, error) {
	cfg, err := configs.LoadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}

	application, err := app.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize app: %w", err)
	}
	return application, nil
}
