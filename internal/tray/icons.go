package tray

import (
	"embed"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/mingue/arch-audit-notify/config"
	"github.com/mingue/arch-audit-notify/internal/notifier"
	"github.com/mingue/arch-audit-notify/pkg/paths"
)

//go:embed assets/*.png
var embeddedIcons embed.FS

// IconSet holds the raw PNG bytes for each tray icon.
type IconSet struct {
	Check []byte
	Alert []byte
	Cross []byte
}

// For returns the bytes matching an icon identifier.
func (s *IconSet) For(icon notifier.Icon) []byte {
	switch icon {
	case notifier.IconAlert:
		return s.Alert
	case notifier.IconCross:
		return s.Cross
	default:
		return s.Check
	}
}

// LoadIcons resolves the icon set for the given theme. Icon directories are
// probed in order; within each, the requested theme is tried before the
// default theme. A directory counts as usable when its check.png exists.
// When no directory provides the theme, the embedded default set is used.
func LoadIcons(theme config.Theme, logger *logrus.Entry) *IconSet {
	themes := []string{theme.String()}
	if theme != config.DefaultTheme() {
		themes = append(themes, config.DefaultTheme().String())
	}

	for _, dir := range paths.IconDirs() {
		for _, name := range themes {
			themeDir := filepath.Join(dir, name)
			if _, err := os.Stat(filepath.Join(themeDir, "check.png")); err != nil {
				continue
			}
			set, err := loadIconDir(themeDir)
			if err != nil {
				logger.WithError(err).WithField("dir", themeDir).Warn("Failed to load icon theme directory")
				continue
			}
			logger.WithField("dir", themeDir).Debug("Loaded icon theme")
			return set
		}
	}

	logger.WithField("theme", theme.String()).Debug("Using embedded icons")
	return embeddedIconSet()
}

func loadIconDir(dir string) (*IconSet, error) {
	check, err := os.ReadFile(filepath.Join(dir, "check.png"))
	if err != nil {
		return nil, err
	}
	alert, err := os.ReadFile(filepath.Join(dir, "alert.png"))
	if err != nil {
		return nil, err
	}
	cross, err := os.ReadFile(filepath.Join(dir, "cross.png"))
	if err != nil {
		return nil, err
	}
	return &IconSet{Check: check, Alert: alert, Cross: cross}, nil
}

func embeddedIconSet() *IconSet {
	check, _ := embeddedIcons.ReadFile("assets/check.png")
	alert, _ := embeddedIcons.ReadFile("assets/alert.png")
	cross, _ := embeddedIcons.ReadFile("assets/cross.png")
	return &IconSet{Check: check, Alert: alert, Cross: cross}
}
