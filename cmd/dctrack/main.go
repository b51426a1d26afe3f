// Command dctrack imports drift-chamber events into a sqlite store, runs
// the sector track builder over them and inspects the results.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/clas12-ai/dctrack/internal/config"
	"github.com/clas12-ai/dctrack/internal/monitoring"
	"github.com/clas12-ai/dctrack/internal/storage/sqlite"
	"github.com/clas12-ai/dctrack/internal/version"
)

type rootOptions struct {
	dbPath   string
	logLevel string
	logger   *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "dctrack",
		Short:         "Drift-chamber sector track builder",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.installLogger(opts.logLevel)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&opts.dbPath, "db", "dctrack.db", "Path to the sqlite database")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	root.AddCommand(newImportCmd(opts))
	root.AddCommand(newProcessCmd(opts))
	root.AddCommand(newMigrateCmd(opts))
	root.AddCommand(newShowCmd(opts))
	return root
}

// installLogger routes package logging through a zap logger at level.
func (o *rootOptions) installLogger(level string) error {
	l, err := monitoring.NewZapLogger(level)
	if err != nil {
		return err
	}
	if o.logger != nil {
		_ = o.logger.Sync()
	}
	o.logger = l
	monitoring.UseZap(l.Sugar())
	return nil
}

// openStore opens the database and optionally brings its schema up to date.
func (o *rootOptions) openStore(migrate bool) (*sqlite.Store, error) {
	store, err := sqlite.Open(o.dbPath)
	if err != nil {
		return nil, err
	}
	if migrate {
		if err := store.MigrateUp(); err != nil {
			store.Close()
			return nil, err
		}
	}
	return store, nil
}

// loadConfig returns the tuning config at path, or the defaults when path
// is empty.
func loadConfig(path string) (*config.TuningConfig, error) {
	if path == "" {
		return config.DefaultTuningConfig(), nil
	}
	cfg, err := config.LoadTuningConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "dctrack: %v\n", err)
		os.Exit(1)
	}
}
