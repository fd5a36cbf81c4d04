package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"

	"github.com/battrack/battrack/pkg/battery"
	"github.com/battrack/battrack/pkg/config"
	"github.com/battrack/battrack/pkg/store"
)

const (
	defaultHistoryDays = 30
	maxHistoryDays     = 365
)

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (config.Config, error) {
	conf, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if dbPath != "" {
		conf.DBPath = dbPath
	}
	return conf, nil
}

func newExtractor(conf config.Config) *battery.Extractor {
	return battery.NewExtractor(time.Duration(conf.CommandTimeoutSeconds) * time.Second)
}

// openStore opens the record store, tagging failures as storage errors
// so main maps them to the storage exit code.
func openStore(conf config.Config) (*store.Store, error) {
	st, err := store.Open(conf.DBPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errStorage, err)
	}
	return st, nil
}

func clampDays(days int) int {
	if days < 1 {
		return 1
	}
	if days > maxHistoryDays {
		return maxHistoryDays
	}
	return days
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}

func conditionText(condition string) string {
	switch condition {
	case battery.ConditionNormal:
		return color.GreenString(condition)
	case battery.ConditionService, battery.ConditionReplaceSoon:
		return color.YellowString(condition)
	case battery.ConditionReplaceNow:
		return color.RedString(condition)
	case "":
		return battery.ConditionUnknown
	}
	return condition
}
