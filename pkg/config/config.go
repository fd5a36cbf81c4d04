package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Config holds the few knobs battrack has. Flags override file values.
type Config struct {
	DBPath                string `json:"dbPath"`
	CommandTimeoutSeconds int    `json:"commandTimeoutSeconds"`
	ListenAddress         string `json:"listenAddress"`
}

var defaultConfig = Config{
	DBPath:                "battery_cycles.db",
	CommandTimeoutSeconds: 10,
	ListenAddress:         "127.0.0.1:8080",
}

// Load reads the config file, writing the defaults there first if it
// does not exist yet.
func Load(path string) (Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		logrus.Warnf("config file %s does not exist, using default config %#v", path, defaultConfig)
		if err := Save(path, defaultConfig); err != nil {
			logrus.Warnf("could not write default config: %v", err)
		}
		return defaultConfig, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	c := defaultConfig
	if err := json.Unmarshal(b, &c); err != nil {
		return Config{}, err
	}
	if c.CommandTimeoutSeconds <= 0 {
		c.CommandTimeoutSeconds = defaultConfig.CommandTimeoutSeconds
	}
	return c, nil
}

// Save writes the config as indented JSON, creating parent directories
// as needed.
func Save(path string, c Config) error {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, b, 0644)
}
