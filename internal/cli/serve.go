package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/contest-digest/internal/logger"
	"github.com/pfrederiksen/contest-digest/internal/server"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the schedule over HTTP and revalidate it in the background",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(root)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				rt.cfg.Server.Port = port
			}
			loc, _ := rt.cfg.Location()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			go rt.aggregator.Revalidate(ctx, rt.cfg.Server.Revalidate)

			srv := server.New(rt.aggregator, server.Options{
				Port:         rt.cfg.Server.Port,
				AllowOrigins: rt.cfg.Server.CORS.AllowOrigins,
				Location:     loc,
			})

			err = srv.Run(ctx)
			logger.Info("Server stopped", logger.Fields{"metrics": logger.GetMetricsSnapshot()})
			return err
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Listen port (overrides server.port)")

	return cmd
}
