package tray

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/mingue/arch-audit-notify/config"
	"github.com/mingue/arch-audit-notify/internal/notifier"
)

func testLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger.WithField("component", "tray-test")
}

// chdir mirrors testing.T.Chdir, which is unavailable before Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(prev))
	})
}

func writeIconTheme(t *testing.T, root, theme string, marker byte) {
	t.Helper()
	dir := filepath.Join(root, "icons", theme)
	require.NoError(t, os.MkdirAll(dir, 0755))
	for _, name := range []string{"check.png", "alert.png", "cross.png"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte{marker}, 0644))
	}
}

func TestLoadIconsFallsBackToEmbedded(t *testing.T) {
	chdir(t, t.TempDir())

	set := LoadIcons(config.DefaultTheme(), testLogger())
	require.NotEmpty(t, set.Check)
	require.NotEmpty(t, set.Alert)
	require.NotEmpty(t, set.Cross)
}

func TestLoadIconsFromThemeDir(t *testing.T) {
	root := t.TempDir()
	writeIconTheme(t, root, "dark", 'd')
	chdir(t, root)

	theme, err := config.ParseTheme("dark")
	require.NoError(t, err)

	set := LoadIcons(theme, testLogger())
	require.Equal(t, []byte{'d'}, set.Check)
	require.Equal(t, []byte{'d'}, set.Alert)
	require.Equal(t, []byte{'d'}, set.Cross)
}

func TestLoadIconsFallsBackToDefaultTheme(t *testing.T) {
	root := t.TempDir()
	writeIconTheme(t, root, "default", 'D')
	chdir(t, root)

	theme, err := config.ParseTheme("missing")
	require.NoError(t, err)

	set := LoadIcons(theme, testLogger())
	require.Equal(t, []byte{'D'}, set.Check)
}

func TestLoadIconsSkipsIncompleteThemeDir(t *testing.T) {
	root := t.TempDir()
	// check.png present but the other icons missing: the directory is
	// rejected and the embedded set is used instead.
	dir := filepath.Join(root, "icons", "broken")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "check.png"), []byte{'b'}, 0644))
	chdir(t, root)

	theme, err := config.ParseTheme("broken")
	require.NoError(t, err)

	set := LoadIcons(theme, testLogger())
	require.NotEqual(t, []byte{'b'}, set.Check)
	require.NotEmpty(t, set.Cross)
}

func TestIconSetFor(t *testing.T) {
	set := &IconSet{Check: []byte{1}, Alert: []byte{2}, Cross: []byte{3}}

	require.Equal(t, []byte{1}, set.For(notifier.IconCheck))
	require.Equal(t, []byte{2}, set.For(notifier.IconAlert))
	require.Equal(t, []byte{3}, set.For(notifier.IconCross))
}
