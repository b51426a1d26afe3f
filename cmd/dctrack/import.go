package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/clas12-ai/dctrack/internal/bank"
	"github.com/clas12-ai/dctrack/internal/monitoring"
)

func newImportCmd(opts *rootOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import events from a JSON lines file",
		Long: `Import events into the store. Each line of the input is one event:

  {"event": 1, "hits": [{"sector": 1, "superlayer": 0, "layer": 0, "wire": 10, "tdc": 120}],
   "tracks": [{"id": 1, "q": -1, "sector": 1, "chi2": 1.2}]}

Re-importing an event id replaces it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if file != "" && file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			store, err := opts.openStore(true)
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := importEvents(r, store)
			if err != nil {
				return err
			}
			monitoring.Logf("[Import] imported %d events into %s", n, opts.dbPath)
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d events\n", n)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "JSON lines input (default stdin)")
	return cmd
}

type eventInserter interface {
	InsertEvent(ev *bank.Event) error
}

// importEvents decodes a stream of JSON events and stores each one.
func importEvents(r io.Reader, store eventInserter) (int, error) {
	dec := json.NewDecoder(r)
	n := 0
	for {
		var ev bank.Event
		err := dec.Decode(&ev)
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("failed to decode event %d of input: %w", n+1, err)
		}
		if err := store.InsertEvent(&ev); err != nil {
			return n, err
		}
		n++
	}
}
