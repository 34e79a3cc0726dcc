package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newRunCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Collect the last 24 hours once and write the report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := loadApp(opts)
			if err != nil {
				return err
			}

			result, err := application.RunOnce(cmd.Context(), time.Now())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Report saved to %s\n", result.LatestKey)
			return nil
		},
	}
}
