package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/billiards-tracker/internal/observability"
)

func newWatchCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Stay running and reconnect when the network comes back",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.container.Config
			logger := c.logger.Named("watch")

			stopProfiler, err := observability.InitPyroscope(cfg, logger)
			if err != nil {
				return fmt.Errorf("init pyroscope: %w", err)
			}
			defer func() {
				if err := stopProfiler(); err != nil {
					logger.Warn("stop pyroscope failed", "error", err)
				}
			}()

			debugSrv := observability.StartDebugServer(cfg, c.container.Registry, logger)
			defer func() {
				if err := observability.StopDebugServer(debugSrv, logger, shutdownTimeout); err != nil {
					logger.Warn("stop debug server failed", "error", err)
				}
			}()

			c.container.StartWatching(ctx)
			if c.container.Sessions.InitializeConnection(ctx) {
				_, endpoint := c.container.API.Pool().Current()
				fmt.Fprintf(c.out, "connected to %s, watching network changes\n", endpoint)
			} else {
				fmt.Fprintln(c.out, "backend unreachable, waiting for the network")
			}

			<-ctx.Done()
			fmt.Fprintln(c.out, "stopped")
			return nil
		},
	}
}
