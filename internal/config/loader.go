package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath returns ~/.config/zonesnap/config.yaml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "zonesnap", "config.yaml"), nil
}

// PreferencesPath returns ~/.config/zonesnap/preferences.json, where the
// per-desktop layout choices live.
func PreferencesPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "zonesnap", "preferences.json"), nil
}

// Load reads the config from the default path. A missing file yields the
// defaults without error.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads and validates the config at path. File values overlay
// the defaults; builtin layouts stay available unless redefined.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var file Config
	if err := decodeStrictYAML(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	merge(cfg, &file)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating parent directories as needed.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// decodeStrictYAML decodes with unknown-field rejection, so typos in the
// config file surface as errors instead of silently doing nothing.
func decodeStrictYAML(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// merge overlays non-zero file values onto the defaults. Layouts from the
// file add to (or replace entries of) the builtin set.
func merge(base, file *Config) {
	if file.ModifierKey != "" {
		base.ModifierKey = file.ModifierKey
	}
	if file.SnapKey != "" {
		base.SnapKey = file.SnapKey
	}
	if file.HoldDelayMS != nil {
		base.HoldDelayMS = file.HoldDelayMS
	}
	if file.RightClickToggle != nil {
		base.RightClickToggle = file.RightClickToggle
	}
	if file.PerDesktopLayouts != nil {
		base.PerDesktopLayouts = file.PerDesktopLayouts
	}
	if file.AutoAssociation != nil {
		base.AutoAssociation = file.AutoAssociation
	}
	if file.QuickSnapHotkey != "" {
		base.QuickSnapHotkey = file.QuickSnapHotkey
	}
	if file.UnsnapHotkey != "" {
		base.UnsnapHotkey = file.UnsnapHotkey
	}
	if file.DefaultLayout != "" {
		base.DefaultLayout = file.DefaultLayout
	}
	for name, layout := range file.Layouts {
		base.Layouts[name] = layout
	}
	if file.LogLevel != "" {
		base.LogLevel = file.LogLevel
	}
}
