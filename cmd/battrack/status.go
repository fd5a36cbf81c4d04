package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/battrack/battrack/pkg/battery"
)

func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		GroupID: gTracking,
		Short:   "Show current battery health without recording it",
		Long:    `Read battery health from the system and print it. Nothing is persisted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := loadConfig()
			if err != nil {
				return err
			}

			metrics, err := newExtractor(conf).Extract(cmd.Context())
			if err != nil {
				cmd.PrintErrln("Could not retrieve battery information.")
				return nil
			}
			metrics = battery.Derive(metrics)

			cmd.Println(bold("Battery health:"))
			if metrics.CycleCount != nil {
				cmd.Printf("  Cycle count: %s\n", bold("%d", *metrics.CycleCount))
			}
			if metrics.HealthPct != nil {
				cmd.Printf("  Health: %s\n", bold("%.1f%%", *metrics.HealthPct))
			}
			cmd.Printf("  Condition: %s\n", conditionText(metrics.Condition))
			if metrics.MaxCapacityMAh != nil && metrics.DesignCapacityMAh != nil {
				cmd.Printf("  Capacity: %d / %d mAh\n", *metrics.MaxCapacityMAh, *metrics.DesignCapacityMAh)
			}
			if metrics.ChargeRemainingMAh != nil {
				cmd.Printf("  Charge remaining: %d mAh\n", *metrics.ChargeRemainingMAh)
			}

			// Live charge state is nice to have; skip it quietly when the
			// OS power API has nothing for us.
			if charge, err := battery.ReadChargeState(); err == nil {
				state := charge.State
				switch state {
				case "charging":
					state = color.GreenString(state)
				case "discharging":
					state = color.RedString(state)
				}
				cmd.Printf("  Current charge: %s (%s)\n", bold("%.0f%%", charge.Percent), state)
			}

			return nil
		},
	}
}
