package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Minute

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run snapshots on a schedule and serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := loadApp(opts)
			if err != nil {
				return err
			}

			serverErr := make(chan error, 1)
			go func() {
				if err := application.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for interrupt signal
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
			select {
			case <-quit:
			case err := <-serverErr:
				return fmt.Errorf("server failed: %w", err)
			}

			// Graceful shutdown; a running snapshot is allowed to finish
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			return application.Shutdown(ctx)
		},
	}
}
