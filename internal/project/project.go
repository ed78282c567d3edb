// Package project persists settings and application configuration as
// JSON files under the user's config directory.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/gripforge/gripforge/internal/model"
)

// DefaultConfigDir returns the default directory for application
// configuration. On all platforms this is ~/.gripforge/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".gripforge")
}

// DefaultConfigPath returns the default path for the application config
// file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveSettings persists project settings to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveSettings(path string, s model.Settings) error {
	return writeJSON(path, s)
}

// LoadSettings reads project settings from the given path. If the file
// does not exist, it returns DefaultSettings with no error, so a fresh
// run works without any configuration on disk.
func LoadSettings(path string) (model.Settings, error) {
	s := model.DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return model.Settings{}, err
	}
	// Unmarshal over the defaults so missing fields keep their default
	// values instead of zeroing out.
	if err := json.Unmarshal(data, &s); err != nil {
		return model.Settings{}, err
	}
	return s, nil
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
func SaveAppConfig(path string, config model.AppConfig) error {
	return writeJSON(path, config)
}

// LoadAppConfig reads an AppConfig from the given path. If the file does
// not exist, it returns DefaultAppConfig with no error.
func LoadAppConfig(path string) (model.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultAppConfig(), nil
		}
		return model.AppConfig{}, err
	}
	var config model.AppConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, err
	}
	// Ensure RecentProjects is never nil
	if config.RecentProjects == nil {
		config.RecentProjects = []string{}
	}
	return config, nil
}

// AddRecentProject prepends a path to the recent projects list,
// de-duplicating and keeping at most 10 entries.
func AddRecentProject(config *model.AppConfig, path string) {
	recent := []string{path}
	for _, p := range config.RecentProjects {
		if p == path {
			continue
		}
		recent = append(recent, p)
		if len(recent) == 10 {
			break
		}
	}
	config.RecentProjects = recent
}

func writeJSON(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
