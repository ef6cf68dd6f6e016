package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/ats-ui/internal/observability"
	"github.com/jonathan/ats-ui/internal/reportstore"
	"github.com/jonathan/ats-ui/internal/server"
	"github.com/jonathan/ats-ui/internal/server/ratelimit"
)

func newServeCmd(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the screening UI server",
		Long:  `Start an HTTP server that renders the upload forms and result pages and forwards uploads to the ATS backend.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port != 0 {
				a.cfg.Port = port
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			metrics := observability.NewMetrics()
			client, err := a.client(metrics)
			if err != nil {
				return fmt.Errorf("failed to create backend client: %w", err)
			}

			srv, err := server.New(server.Options{
				Port:    a.cfg.Port,
				Backend: client,
				Reports: reportstore.New(reportstore.Config{
					TTL:             a.cfg.ReportTTL,
					Capacity:        a.cfg.ReportCapacity,
					CleanupInterval: reportstore.DefaultConfig().CleanupInterval,
				}),
				RateLimiter: ratelimit.NewLimiter(ratelimit.LoadConfig()),
				Metrics:     metrics,
				Logger:      a.logger,
			})
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a.logger.Info("using backend", zap.String("url", client.BaseURL()))
			return srv.Start(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (overrides config)")
	return cmd
}
