package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/battrack/battrack/pkg/tracker"
)

func NewRecordCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "record",
		GroupID: gTracking,
		Short:   "Collect battery metrics and append them to the store",
		Long: `Collect battery metrics and append them to the store.

Meant to be invoked by cron or launchd. Exits 0 when a record was
written or there was nothing new to write, and non-zero when the store
failed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := loadConfig()
			if err != nil {
				return err
			}
			st, err := openStore(conf)
			if err != nil {
				return err
			}
			defer st.Close()

			res := tracker.New(newExtractor(conf), st).Collect(cmd.Context(), force)
			switch res.Status {
			case tracker.StatusRecorded:
				cmd.Printf("recorded: cycle count %d (id %d)\n", *res.Record.CycleCount, res.Record.ID)
			case tracker.StatusSkippedNoData:
				cmd.Println("skipped: no battery data available")
			case tracker.StatusSkippedUnchanged:
				cmd.Println("skipped: no change since today's record")
			case tracker.StatusFailed:
				return fmt.Errorf("%w: %v", errStorage, res.Err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "append even if today's record is unchanged")

	return cmd
}
