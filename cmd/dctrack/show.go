package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/clas12-ai/dctrack/internal/bank"
	"github.com/clas12-ai/dctrack/internal/dc"
)

func newShowCmd(opts *rootOptions) *cobra.Command {
	var (
		configPath string
		eventID    int64
		sector     int
	)
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the clusters and tracks of one stored event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			store, err := opts.openStore(false)
			if err != nil {
				return err
			}
			defer store.Close()

			ev, err := store.LoadEvent(eventID)
			if err != nil {
				return err
			}
			sectors := ev.Sectors()
			if sector != 0 {
				sectors = []int{sector}
			}
			return showEvent(cmd.OutOrStdout(), dc.SectorConfigFromTuning(cfg), ev, sectors)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "Tuning config (.json, .yaml or .yml)")
	cmd.Flags().Int64Var(&eventID, "event", 0, "Event id")
	cmd.Flags().IntVar(&sector, "sector", 0, "Only this sector (1-6)")
	_ = cmd.MarkFlagRequired("event")
	return cmd
}

// showEvent rebuilds the tracks of each sector and prints them.
func showEvent(w io.Writer, cfg dc.SectorConfig, ev *bank.Event, sectors []int) error {
	fmt.Fprintf(w, "event %d: %d hits, %d track annotations\n", ev.ID, len(ev.Hits), len(ev.Tracks))
	hits := ev.HitsBank()
	tracks := ev.TracksBank()

	s := dc.NewSector(cfg)
	for _, num := range sectors {
		if err := s.Read(hits, num); err != nil {
			s.Reset()
			return fmt.Errorf("sector %d: %w", num, err)
		}
		if err := s.ReadTrackInfo(tracks); err != nil {
			s.Reset()
			return fmt.Errorf("sector %d: %w", num, err)
		}
		s.MakeTracks()
		s.Analyze()

		s.Show(w)
		s.ShowBest(w)
		s.Reset()
	}
	return nil
}
