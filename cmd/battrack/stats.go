package main

import (
	"time"

	"github.com/spf13/cobra"
)

func NewStatsCommand() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:     "stats",
		GroupID: gQuery,
		Short:   "Print aggregate statistics over recorded history",
		RunE: func(cmd *cobra.Command, _ []string) error {
			days = clampDays(days)

			conf, err := loadConfig()
			if err != nil {
				return err
			}
			st, err := openStore(conf)
			if err != nil {
				return err
			}
			defer st.Close()

			end := time.Now().UTC()
			stats, err := st.Stats(end.AddDate(0, 0, -days), end)
			if err != nil {
				return err
			}
			if stats == nil {
				cmd.Printf("no records in the last %d days\n", days)
				return nil
			}

			cmd.Println(bold("Last %d days:", days))
			cmd.Printf("  Records: %d (%s to %s)\n", stats.Records,
				stats.First.Local().Format("2006-01-02"), stats.Last.Local().Format("2006-01-02"))
			cmd.Printf("  Cycle count: %d to %d (+%d)\n", stats.MinCycleCount, stats.MaxCycleCount, stats.CycleDelta)
			if stats.CyclesPerDay > 0 {
				cmd.Printf("  Cycles per day: %.2f\n", stats.CyclesPerDay)
			}
			if stats.MinHealthPct != nil && stats.MaxHealthPct != nil && stats.AvgHealthPct != nil {
				cmd.Printf("  Health: min %.1f%%, max %.1f%%, avg %.1f%%\n",
					*stats.MinHealthPct, *stats.MaxHealthPct, *stats.AvgHealthPct)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", defaultHistoryDays, "number of days to aggregate (1-365)")

	return cmd
}
