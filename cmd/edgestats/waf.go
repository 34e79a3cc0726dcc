package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newWAFCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "waf",
		Short: "Print the number of WAF-mitigated requests in the last 24 hours",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := loadApp(opts)
			if err != nil {
				return err
			}

			count, err := application.CountMitigated(cmd.Context(), time.Now())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "WAF-mitigated requests in the last 24 hours: %d\n", count)
			return nil
		},
	}
}
