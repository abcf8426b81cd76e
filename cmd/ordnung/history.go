package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ordnung/internal/history"
)

// NewHistoryCmd creates the history command
func NewHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent organization runs from the journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Settings.HistoryDB == "" {
				return fmt.Errorf("no history_db configured, journaling is disabled")
			}

			store, err := history.Open(cfg.Settings.HistoryDB)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.Recent(limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Println("No runs journaled yet.")
				return nil
			}

			for _, rec := range records {
				performed := 0
				for _, action := range rec.Actions {
					if action.Performed {
						performed++
					}
				}
				fmt.Printf("%s  %s  roots=%d  actions=%d/%d\n",
					rec.Started.Format("2006-01-02 15:04:05"),
					shortID(rec.ID), len(rec.Roots), performed, len(rec.Actions))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of runs to show")
	return cmd
}

// shortID truncates a run ID for display. Records written by other tools
// may carry IDs shorter than the display width, or none at all.
func shortID(id string) string {
	if len(id) < 8 {
		if id == "" {
			return "-"
		}
		return id
	}
	return id[:8]
}
