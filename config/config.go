// Package config loads and validates the arch-audit-notify configuration.
//
// The config file lives in the XDG config directory as config.toml, with
// config.yml accepted as an alternative. All fields are optional; an absent
// file yields the defaults.
package config

import (
	"fmt"
	"time"

	"github.com/mingue/arch-audit-notify/errors"
	"github.com/mingue/arch-audit-notify/logging"
)

// Config is the fully resolved daemon configuration.
type Config struct {
	// IconTheme is the validated icon theme. Populated from the raw
	// icon_theme value by Load; falls back to the default theme when the
	// raw value is absent or invalid.
	IconTheme Theme `toml:"-" yaml:"-"`

	Checker CheckerConfig  `toml:"checker" yaml:"checker"`
	Watch   WatchConfig    `toml:"watch" yaml:"watch"`
	Tray    TrayConfig     `toml:"tray" yaml:"tray"`
	Log     logging.Config `toml:"log" yaml:"log"`
}

// CheckerConfig configures the external advisory-check command.
type CheckerConfig struct {
	// Command is the checker binary. Default "arch-audit".
	Command string `toml:"command" yaml:"command"`
	// Args are the arguments passed to the command. Default ["-u"].
	Args []string `toml:"args" yaml:"args"`
	// TimeoutSeconds bounds a single checker invocation. Zero means the
	// default of 300 seconds.
	TimeoutSeconds int `toml:"timeout_seconds" yaml:"timeout_seconds"`
}

// Timeout returns the checker timeout as a duration.
func (c CheckerConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// WatchConfig configures the package database watcher.
type WatchConfig struct {
	// Path is the directory watched for package database changes.
	// Default "/var/lib/pacman/local".
	Path string `toml:"path" yaml:"path"`
	// DebounceMs collapses rapid filesystem events. Default 500.
	DebounceMs int `toml:"debounce_ms" yaml:"debounce_ms"`
}

// Debounce returns the watcher debounce window as a duration.
func (w WatchConfig) Debounce() time.Duration {
	if w.DebounceMs <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(w.DebounceMs) * time.Millisecond
}

// TrayConfig configures the system tray display.
type TrayConfig struct {
	// Enabled controls whether the daemon shows a tray icon. Disabled
	// daemons still serve the socket API. Default true.
	Enabled *bool `toml:"enabled" yaml:"enabled"`
}

// TrayEnabled reports whether the tray display should run.
func (c *Config) TrayEnabled() bool {
	if c.Tray.Enabled == nil {
		return true
	}
	return *c.Tray.Enabled
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		IconTheme: DefaultTheme(),
		Checker: CheckerConfig{
			Command: "arch-audit",
			Args:    []string{"-u"},
		},
		Watch: WatchConfig{
			Path: "/var/lib/pacman/local",
		},
	}
}

// applyDefaults fills zero-valued fields after decoding a config file.
func (c *Config) applyDefaults() {
	if c.Checker.Command == "" {
		c.Checker.Command = "arch-audit"
	}
	if c.Checker.Args == nil {
		c.Checker.Args = []string{"-u"}
	}
	if c.Watch.Path == "" {
		c.Watch.Path = "/var/lib/pacman/local"
	}
}

// Validate checks the configuration for values that cannot be defaulted
// away. It returns a CONFIG_INVALID error describing the first problem.
func (c *Config) Validate() error {
	if c.Checker.Command == "" {
		return errors.ConfigInvalid("checker.command must not be empty")
	}
	if c.Checker.TimeoutSeconds < 0 {
		return errors.ConfigInvalid(fmt.Sprintf("checker.timeout_seconds must not be negative: %d", c.Checker.TimeoutSeconds))
	}
	if c.Watch.Path == "" {
		return errors.ConfigInvalid("watch.path must not be empty")
	}
	if c.Watch.DebounceMs < 0 {
		return errors.ConfigInvalid(fmt.Sprintf("watch.debounce_ms must not be negative: %d", c.Watch.DebounceMs))
	}
	if c.IconTheme.IsZero() {
		return errors.ConfigInvalid("icon theme was not resolved")
	}
	return nil
}
