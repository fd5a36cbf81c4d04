package main

import (
	"time"

	"github.com/spf13/cobra"
)

func NewHistoryCommand() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:     "history",
		GroupID: gQuery,
		Short:   "Print recorded battery history",
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
			records, err := st.Range(end.AddDate(0, 0, -days), end)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				cmd.Printf("no records in the last %d days\n", days)
				return nil
			}

			cmd.Println(bold("%-20s  %-8s  %-8s  %s", "TIMESTAMP", "CYCLES", "HEALTH", "CONDITION"))
			for _, r := range records {
				health := "-"
				if r.HealthPct != nil {
					health = bold("%.1f%%", *r.HealthPct)
				}
				cmd.Printf("%-20s  %-8d  %-8s  %s\n",
					r.Timestamp.Local().Format("2006-01-02 15:04:05"),
					*r.CycleCount, health, conditionText(r.Condition))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", defaultHistoryDays, "number of days to show (1-365)")

	return cmd
}
