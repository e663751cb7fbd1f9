package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/aretw0/opennormal/internal/cli"
	"github.com/aretw0/opennormal/internal/presentation/tui"
	httpAdapter "github.com/aretw0/opennormal/pkg/adapters/http"
	"github.com/aretw0/opennormal/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local HTTP bridge",
	Long:  `Exposes the extension over HTTP (POST /v1/events, POST /v1/open, GET /v1/menus) with Prometheus metrics on /metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger := setup(cmd)
		if addr, _ := cmd.Flags().GetString("listen"); addr != "" {
			cfg.Listen = addr
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		metrics := observability.NewMetrics(reg)

		ext, err := cli.NewExtension(cfg, logger, metrics.Hooks())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing opennormal: %v\n", err)
			os.Exit(1)
		}

		srv := &http.Server{
			Addr: cfg.Listen,
			Handler: httpAdapter.NewHandler(ext,
				httpAdapter.WithLogger(logger),
				httpAdapter.WithMetrics(reg),
			),
			ReadHeaderTimeout: 10 * time.Second,
		}

		sc := cli.NewSignalContext(context.Background())
		defer sc.Cancel()

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			tui.NewPrinter(os.Stderr).PrintBanner("bridge on http://" + srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		select {
		case err := <-serverErrors:
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Server error", "err", err)
				sc.Cancel()
				os.Exit(1)
			}

		case <-sc.Done():
			logger.Info("Start shutdown", "signal", sc.Signal())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
				if err := srv.Close(); err != nil {
					logger.Error("Error killing server", "err", err)
				}
			}
			logger.Info("Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("listen", "l", "", "Address to listen on (overrides configuration)")
}
