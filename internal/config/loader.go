package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// FileName is the settings file looked up in the working directory and in
// the user config directory.
const FileName = "settings.yaml"

// SourceDefaults is reported by Load when no file was used.
const SourceDefaults = "defaults"

// Parse decodes a settings document. Keys missing from data keep their
// default values.
func Parse(data []byte) (Settings, error) {
	cfg := DefaultSettings()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultSettings(), fmt.Errorf("config: invalid settings: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultSettings(), err
	}
	return cfg, nil
}

// LoadFile reads and parses the settings file at path.
func LoadFile(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultSettings(), fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return cfg, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// Load resolves the settings and returns them along with the path they were
// read from (or SourceDefaults). It never fails: configuration problems are
// logged and resolved to defaults.
//
// Search order: customPath -> ./settings.yaml -> ~/.pixelcore/settings.yaml -> embedded default
func Load(customPath string, logger *log.Logger) (Settings, string) {
	// An explicit path is authoritative: on failure use defaults instead of
	// silently picking up some other file.
	if customPath != "" {
		cfg, err := LoadFile(customPath)
		if err != nil {
			logger.Error("error loading config file", "path", customPath, "error", err)
			logger.Warn("using default settings")
			return cfg, SourceDefaults
		}
		logger.Debug("loaded config", "path", customPath)
		return cfg, customPath
	}

	for _, path := range searchPaths() {
		cfg, err := LoadFile(path)
		if err == nil {
			logger.Debug("loaded config", "path", path)
			return cfg, path
		}
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("no config file", "path", path)
			continue
		}
		logger.Error("error loading config file", "path", path, "error", err)
	}

	logger.Info("using default settings")
	return embeddedDefaults(logger), SourceDefaults
}

// searchPaths lists the implicit config locations in priority order.
func searchPaths() []string {
	paths := []string{FileName}
	if p := userConfigPath(FileName); p != "" {
		paths = append(paths, p)
	}
	return paths
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pixelcore", filename)
}

func embeddedDefaults(logger *log.Logger) Settings {
	cfg, err := Parse(defaultSettingsYAML)
	if err != nil {
		logger.Warn("embedded defaults unreadable", "error", err)
		return DefaultSettings()
	}
	return cfg
}

// LogLevel converts the configured level name, falling back to info.
func (s Settings) LogLevel() log.Level {
	lvl, err := log.ParseLevel(s.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
