package config

import (
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/mingue/arch-audit-notify/errors"
	"github.com/mingue/arch-audit-notify/logging"
	"github.com/mingue/arch-audit-notify/pkg/paths"
)

// rawConfig mirrors Config but carries the icon theme as an unvalidated
// string. The theme only becomes a Theme value through ParseTheme.
type rawConfig struct {
	IconTheme string         `toml:"icon_theme" yaml:"icon_theme"`
	Checker   CheckerConfig  `toml:"checker" yaml:"checker"`
	Watch     WatchConfig    `toml:"watch" yaml:"watch"`
	Tray      TrayConfig     `toml:"tray" yaml:"tray"`
	Log       logging.Config `toml:"log" yaml:"log"`
}

// FindConfigFile returns the path of the first config file that exists, or
// an empty string when none does. config.toml wins over config.yml.
func FindConfigFile() string {
	dir := paths.ConfigDir()
	if dir == "" {
		return ""
	}
	for _, name := range []string{"config.toml", "config.yml", "config.yaml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Load resolves the configuration: the explicit path if given, otherwise
// the first file found in the config directory, otherwise defaults. An
// invalid icon theme is downgraded to the default theme with a warning;
// a malformed file is a hard CONFIG_INVALID error.
func Load(path string, logger *logrus.Entry) (*Config, error) {
	if path == "" {
		path = FindConfigFile()
	}
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file")
	}

	var raw rawConfig
	switch {
	case strings.HasSuffix(path, ".toml"):
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse "+filepath.Base(path))
		}
	case strings.HasSuffix(path, ".yml"), strings.HasSuffix(path, ".yaml"):
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse "+filepath.Base(path))
		}
	default:
		return nil, errors.ConfigInvalid("unsupported config file format: " + filepath.Base(path))
	}

	cfg := &Config{
		Checker: raw.Checker,
		Watch:   raw.Watch,
		Tray:    raw.Tray,
		Log:     raw.Log,
	}
	cfg.applyDefaults()

	// Theme validation happens here, at the boundary, before the value can
	// ever reach icon path construction. Invalid input falls back to the
	// default theme rather than failing startup.
	if raw.IconTheme == "" {
		cfg.IconTheme = DefaultTheme()
	} else {
		theme, err := ParseTheme(raw.IconTheme)
		if err != nil {
			if logger != nil {
				logger.WithError(err).Warnf("Invalid icon_theme %q, using %q", raw.IconTheme, DefaultTheme())
			}
			theme = DefaultTheme()
		}
		cfg.IconTheme = theme
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
