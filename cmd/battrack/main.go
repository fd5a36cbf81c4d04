package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	logLevel   = "info"
	configPath = defaultConfigPath()
	dbPath     = ""
)

var (
	gTracking     = "Tracking:"
	gQuery        = "Query:"
	commandGroups = []string{
		gTracking,
		gQuery,
	}
)

// Exit codes per outcome category. The external scheduler keys off
// these: 0 means the invocation did its job (even if nothing was
// recorded), 2 means the store itself is broken.
const (
	exitFailure = 1
	exitStorage = 2
)

func defaultConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "battrack", "config.json")
	}
	return "battrack.json"
}

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		if errors.Is(err, errStorage) {
			os.Exit(exitStorage)
		}
		os.Exit(exitFailure)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "battrack",
		Short: "battrack records battery health over time",
		Long: `battrack samples macOS battery health metrics (cycle count, capacity,
condition) and appends them to a local SQLite time series. Point a cron
or launchd job at 'battrack record' and query the trend with 'history',
'stats', or the HTTP API ('serve').`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogger()
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&configPath, "config", configPath, "config file path")
	globalFlags.StringVar(&dbPath, "db", "", "database file path (overrides config)")

	for _, i := range commandGroups {
		cmd.AddGroup(&cobra.Group{
			ID:    i,
			Title: i,
		})
	}

	cmd.AddCommand(
		NewStatusCommand(),
		NewRecordCommand(),
		NewHistoryCommand(),
		NewStatsCommand(),
		NewServeCommand(),
		NewVersionCommand(),
	)

	return cmd
}
