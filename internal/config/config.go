package config

import (
	"os"
	"path/filepath"
	"strings"

	"gitoutofhours/internal/common"
	"gitoutofhours/internal/observability"
	"gitoutofhours/internal/schedule"
	"gitoutofhours/pkg/errors"
	"gitoutofhours/pkg/models"
	"gopkg.in/yaml.v3"
)

// EnvConfigFile overrides the config file location
const EnvConfigFile = "GITOUTOFHOURS_CONFIG"

func GetConfigPath() string {
	// Check for environment variable first
	if configPath := os.Getenv(EnvConfigFile); configPath != "" {
		return filepath.Dir(configPath)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".gitoutofhours")
}

func GetConfigFile() string {
	if configFile := os.Getenv(EnvConfigFile); configFile != "" {
		cleaned, err := common.CleanPath(configFile)
		if err != nil {
			// Fall back to default if invalid
			return filepath.Join(GetConfigPath(), "config.yaml")
		}
		return cleaned
	}
	return filepath.Join(GetConfigPath(), "config.yaml")
}

// LoadFrom reads path on top of the built-in defaults. A missing file
// yields the defaults.
func LoadFrom(path string) (*models.Config, error) {
	cleanedPath, err := common.CleanPath(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "Invalid config file path").
			WithContext("path", path)
	}

	config := models.DefaultConfig()

	if _, err := os.Stat(cleanedPath); os.IsNotExist(err) {
		return &config, nil
	}

	data, err := os.ReadFile(cleanedPath) // #nosec G304 - path is validated
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigPermission, "Failed to read config file").
			WithContext("path", cleanedPath)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "Failed to parse config file").
			WithContext("path", cleanedPath)
	}

	if err := Validate(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// SaveTo writes config to path, creating its directory
func SaveTo(path string, config *models.Config) error {
	cleanedPath, err := common.CleanPath(path)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "Invalid config file path").
			WithContext("path", path)
	}

	if err := os.MkdirAll(filepath.Dir(cleanedPath), common.DirPermissionSecure); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigPermission, "failed to create config directory")
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to marshal config")
	}

	if err := os.WriteFile(cleanedPath, data, common.FilePermissionSecure); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigPermission, "failed to write config file")
	}

	return nil
}

// Exists reports whether a config file is present at path
func Exists(path string) bool {
	cleanedPath, err := common.CleanPath(path)
	if err != nil {
		return false
	}
	_, err = os.Stat(cleanedPath)
	return err == nil
}

// Validate checks the values a config file can set
func Validate(config *models.Config) error {
	if config.Scan.Days <= 0 {
		return errors.ConfigError("scan.days must be a positive number of days", "scan.days")
	}
	if _, err := models.ParseAuthorMatch(config.Scan.Match); err != nil {
		return errors.ConfigError(err.Error(), "scan.match")
	}
	if config.Scan.Concurrency < 0 {
		return errors.ConfigError("scan.concurrency must not be negative", "scan.concurrency")
	}
	switch strings.ToLower(config.Scan.Source) {
	case "", "exec", "gogit", "go-git":
	default:
		return errors.ConfigError("scan.source must be exec or gogit", "scan.source")
	}
	if _, err := schedule.ParseClock(config.Hours.Start, schedule.DefaultStart); err != nil {
		return errors.ConfigError(err.Error(), "hours.start")
	}
	if _, err := schedule.ParseClock(config.Hours.End, schedule.DefaultEnd); err != nil {
		return errors.ConfigError(err.Error(), "hours.end")
	}
	switch strings.ToLower(config.Output.Format) {
	case "", "table", "json", "yaml", "yml":
	default:
		return errors.ConfigError("output.format must be table, json or yaml", "output.format")
	}
	if _, ok := observability.EncoderFromString(config.Output.LogFormat); !ok {
		return errors.ConfigError("output.log_format must be text or json", "output.log_format")
	}
	return nil
}
