package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/clas12-ai/dctrack/internal/dc"
	"github.com/clas12-ai/dctrack/internal/monitoring"
	"github.com/clas12-ai/dctrack/internal/pipeline"
)

func newProcessCmd(opts *rootOptions) *cobra.Command {
	var configPath, metricsAddr string
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Build tracks for every stored event",
		Long: `Run the sector track builder over all events in the store and record the
per-track results under a new run id.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("log-level") && cfg.LogLevel != "" {
				if err := opts.installLogger(cfg.GetLogLevel()); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector())
			metrics := pipeline.NewMetrics(reg)
			if metricsAddr != "" {
				shutdown := serveMetrics(metricsAddr, reg)
				defer shutdown()
			}

			store, err := opts.openStore(true)
			if err != nil {
				return err
			}
			defer store.Close()

			cfgJSON, err := json.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			runID, err := store.BeginRun(cfgJSON)
			if err != nil {
				return err
			}

			p := pipeline.NewProcessor(dc.SectorConfigFromTuning(cfg),
				pipeline.WithSectors(cfg.GetSectors()...),
				pipeline.WithMetrics(metrics),
			)
			sum, err := p.Run(ctx, runID, store, store)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "run %s: %d events, %d tracks, %d best tracks\n",
				runID, sum.Events, sum.Tracks, sum.BestTracks)
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "Tuning config (.json, .yaml or .yml)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while processing")
	return cmd
}

// serveMetrics exposes reg on addr and returns a function that stops the
// server.
func serveMetrics(addr string, reg *prometheus.Registry) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			monitoring.Logf("metrics server error: %v", err)
		}
	}()
	monitoring.Logf("serving metrics on %s/metrics", addr)

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			monitoring.Logf("metrics server shutdown error: %v", err)
		}
	}
}
