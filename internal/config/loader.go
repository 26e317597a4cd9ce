package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"ftpprobe/pkg/logging"

	"gopkg.in/yaml.v3"
)

const (
	userConfigDir  = ".config/ftpprobe"
	configFileName = "config.yaml"
)

// osUserHomeDir is a variable so tests can redirect the home directory.
var osUserHomeDir = os.UserHomeDir

// GetDefaultConfigPath returns ~/.config/ftpprobe/config.yaml.
func GetDefaultConfigPath() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory: %w", err)
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

// LoadConfig reads the configuration file at path on top of the defaults.
// An empty path selects the default location. A missing file is not an
// error; the defaults are returned. The result is not validated, callers
// validate once their own overrides are applied.
func LoadConfig(path string) (DriverConfig, error) {
	config := GetDefaultConfig()

	if path == "" {
		defaultPath, err := GetDefaultConfigPath()
		if err != nil {
			logging.Warn("Config", "%v, using defaults", err)
			return config, nil
		}
		path = defaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Debug("Config", "No config file found at %s, using defaults", path)
			return config, nil
		}
		return DriverConfig{}, NewConfigurationError(path, "io", err.Error())
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return DriverConfig{}, NewConfigurationError(path, "parse", err.Error())
	}

	logging.Info("Config", "Loaded configuration from %s", path)
	return config, nil
}
