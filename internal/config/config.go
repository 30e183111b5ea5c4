// Package config defines the daemon's on-disk configuration.
package config

import (
	"fmt"
	"time"

	"github.com/1broseidon/zonesnap/internal/zone"
)

// ValidationError reports a config problem with the YAML path that caused it.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ZoneSpec is one zone of a layout, with the rectangle expressed as
// fractions of the target screen.
type ZoneSpec struct {
	Number int     `yaml:"number"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// LayoutSpec is a named zone set. Zone order is significant: auto
// association picks the first matching zone.
type LayoutSpec struct {
	Zones []ZoneSpec `yaml:"zones"`
}

// Config is the full daemon configuration.
type Config struct {
	// ModifierKey held for HoldDelayMS shows the active layout's zones.
	ModifierKey string `yaml:"modifier_key"`

	// SnapKey pressed during a window drag shows zones immediately.
	SnapKey string `yaml:"snap_key"`

	// HoldDelayMS is the modifier hold delay in milliseconds (0-2000).
	// Zero is valid and means "show immediately".
	HoldDelayMS *int `yaml:"hold_delay_ms"`

	// RightClickToggle enables the right-click-during-drag zone toggle.
	RightClickToggle *bool `yaml:"right_click_toggle"`

	// PerDesktopLayouts remembers a layout per (screen, desktop) pair.
	PerDesktopLayouts *bool `yaml:"per_desktop_layouts"`

	// AutoAssociation adopts windows already sitting in a zone frame.
	AutoAssociation *bool `yaml:"auto_association"`

	QuickSnapHotkey string `yaml:"quick_snap_hotkey"`
	UnsnapHotkey    string `yaml:"unsnap_hotkey"`

	DefaultLayout string                `yaml:"default_layout"`
	Layouts       map[string]LayoutSpec `yaml:"layouts"`

	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		ModifierKey:     "Super_L",
		SnapKey:         "Shift_L",
		QuickSnapHotkey: "Control-Shift-space",
		UnsnapHotkey:    "Control-Shift-u",
		DefaultLayout:   "halves",
		Layouts:         builtinLayouts(),
		LogLevel:        "info",
	}
}

// HoldDelay returns the modifier hold delay, defaulting to one second.
func (c *Config) HoldDelay() time.Duration {
	if c.HoldDelayMS == nil {
		return 1000 * time.Millisecond
	}
	return time.Duration(*c.HoldDelayMS) * time.Millisecond
}

// RightClickToggleEnabled defaults to true when unset.
func (c *Config) RightClickToggleEnabled() bool {
	return c.RightClickToggle == nil || *c.RightClickToggle
}

// PerDesktopLayoutsEnabled defaults to true when unset.
func (c *Config) PerDesktopLayoutsEnabled() bool {
	return c.PerDesktopLayouts == nil || *c.PerDesktopLayouts
}

// AutoAssociationEnabled defaults to true when unset.
func (c *Config) AutoAssociationEnabled() bool {
	return c.AutoAssociation == nil || *c.AutoAssociation
}

// ZoneLayouts converts the configured layouts into engine layout values.
func (c *Config) ZoneLayouts() map[string]zone.Layout {
	out := make(map[string]zone.Layout, len(c.Layouts))
	for name, spec := range c.Layouts {
		layout := zone.Layout{Name: name, Zones: make([]zone.Config, 0, len(spec.Zones))}
		for _, z := range spec.Zones {
			layout.Zones = append(layout.Zones, zone.Config{
				Number: z.Number,
				X:      z.X,
				Y:      z.Y,
				Width:  z.Width,
				Height: z.Height,
			})
		}
		out[name] = layout
	}
	return out
}

// Validate checks the full configuration.
func (c *Config) Validate() error {
	if c.ModifierKey == "" {
		return &ValidationError{Path: "modifier_key", Err: fmt.Errorf("modifier_key is required")}
	}
	if c.HoldDelayMS != nil && (*c.HoldDelayMS < 0 || *c.HoldDelayMS > 2000) {
		return &ValidationError{Path: "hold_delay_ms", Err: fmt.Errorf("hold_delay_ms must be between 0 and 2000")}
	}
	switch c.LogLevel {
	case "", "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}

	if len(c.Layouts) == 0 {
		return &ValidationError{Path: "layouts", Err: fmt.Errorf("layouts must not be empty")}
	}
	if c.DefaultLayout == "" {
		return &ValidationError{Path: "default_layout", Err: fmt.Errorf("default_layout is required")}
	}
	if _, ok := c.Layouts[c.DefaultLayout]; !ok {
		return &ValidationError{Path: "default_layout", Err: fmt.Errorf("default_layout %q not found in layouts", c.DefaultLayout)}
	}

	for name, layout := range c.ZoneLayouts() {
		if err := layout.Validate(); err != nil {
			return &ValidationError{Path: "layouts." + name, Err: err}
		}
	}

	return nil
}
