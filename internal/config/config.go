// Package config handles project discovery and default paths.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// SettingsFileName is the settings document that marks a project root.
const SettingsFileName = "envs.yaml"

// Config holds the stevedore project paths.
type Config struct {
	// Root is the project root directory (contains envs.yaml).
	Root string

	// SettingsFile is the path to the settings document.
	SettingsFile string

	// TemplatesDir is the directory holding manifest templates.
	TemplatesDir string

	// OutputDir is the default directory for rendered manifests.
	OutputDir string
}

// FindRoot searches upward from the current directory to find the project
// root, identified by the presence of an envs.yaml file.
func FindRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		settingsFile := filepath.Join(dir, SettingsFileName)
		if info, err := os.Stat(settingsFile); err == nil && !info.IsDir() {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("project root not found (no %s in this or any parent directory)", SettingsFileName)
}

// Load finds the project root and returns a Config.
func Load() (*Config, error) {
	root, err := FindRoot()
	if err != nil {
		return nil, err
	}

	return ForRoot(root), nil
}

// ForRoot returns a Config rooted at the given directory.
func ForRoot(root string) *Config {
	return &Config{
		Root:         root,
		SettingsFile: filepath.Join(root, SettingsFileName),
		TemplatesDir: filepath.Join(root, "templates"),
		OutputDir:    filepath.Join(root, "build"),
	}
}

// ForSettingsFile returns a Config rooted at the directory containing the
// given settings file, without requiring it to be named envs.yaml.
func ForSettingsFile(path string) *Config {
	cfg := ForRoot(filepath.Dir(path))
	cfg.SettingsFile = path
	return cfg
}

// DefaultTemplate returns the path to the default manifest template.
func (c *Config) DefaultTemplate() string {
	return filepath.Join(c.TemplatesDir, "deployment.yaml.tmpl")
}

// SnapshotsDir returns the path to the output snapshots directory.
func (c *Config) SnapshotsDir() string {
	return filepath.Join(c.Root, ".stevedore", "snapshots")
}
