package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.openStore(false)
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.MigrateUp(); err != nil {
				return err
			}
			return printVersion(cmd, store)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.openStore(false)
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.MigrateDown(); err != nil {
				return err
			}
			return printVersion(cmd, store)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := opts.openStore(false)
			if err != nil {
				return err
			}
			defer store.Close()
			return printVersion(cmd, store)
		},
	})

	return cmd
}

type versioner interface {
	MigrateVersion() (uint, bool, error)
}

func printVersion(cmd *cobra.Command, v versioner) error {
	version, dirty, err := v.MigrateVersion()
	if err != nil {
		return err
	}
	if dirty {
		fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (dirty)\n", version)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
	return nil
}
