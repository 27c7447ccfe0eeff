package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// ProjectConfigFile is the name of the project-level overlay file.
	ProjectConfigFile = "pixelpilot.yaml"
	// UserConfigDir is the directory for the user-level overlay.
	UserConfigDir = ".config/pixelpilot"
	// UserConfigFile is the name of the user-level overlay file.
	UserConfigFile = "config.yaml"
)

// Loader applies YAML overlay files on top of a registry's defaults.
// An overlay is a flat mapping of setting name to value; every value
// goes through Registry.Set and so obeys the same validation as a direct
// write. Entries that fail validation are logged and skipped, so a bad
// overlay cannot poison the process defaults.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new overlay loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load applies overlays to reg with layered precedence:
//  1. User overlay (~/.config/pixelpilot/config.yaml)
//  2. Project overlay (pixelpilot.yaml in current or parent directories)
//
// Missing files are not an error; the registry keeps its defaults.
func (l *Loader) Load(reg *Registry) error {
	userPath := l.userConfigPath()
	if userPath != "" {
		if err := l.Apply(reg, userPath); err == nil {
			l.logger.Debug("Applied user config overlay", slog.String("path", userPath))
		} else if !os.IsNotExist(err) {
			l.logger.Warn("Failed to apply user config overlay",
				slog.String("path", userPath), slog.String("error", err.Error()))
		}
	}

	projectPath := l.findProjectConfig()
	if projectPath == "" {
		l.logger.Debug("No project config overlay found")
		return nil
	}
	if err := l.Apply(reg, projectPath); err != nil {
		l.logger.Warn("Failed to apply project config overlay",
			slog.String("path", projectPath), slog.String("error", err.Error()))
		return err
	}
	l.logger.Debug("Applied project config overlay", slog.String("path", projectPath))
	return nil
}

// Apply reads one overlay file and writes its entries to reg. Unknown
// settings and invalid values are logged and skipped; only read and
// parse failures are returned.
func (l *Loader) Apply(reg *Registry, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	overlay := make(map[string]any)
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("failed to parse config overlay: %w", err)
	}

	for name, value := range overlay {
		if err := reg.Set(name, value); err != nil {
			l.logger.Warn("Skipping overlay entry",
				slog.String("path", path),
				slog.String("setting", name),
				slog.String("error", err.Error()))
		}
	}
	return nil
}

// userConfigPath returns the path to the user overlay file.
func (l *Loader) userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

// findProjectConfig searches for pixelpilot.yaml in the current and
// parent directories.
func (l *Loader) findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		configPath := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
