package checker

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/mingue/arch-audit-notify/config"
	"github.com/mingue/arch-audit-notify/errors"
)

func testLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger.WithField("component", "checker-test")
}

// writeScript drops an executable shell script into a temp dir and returns
// its path, so tests can stand in for the arch-audit binary.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-arch-audit")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755))
	return path
}

func newChecker(command string, timeoutSeconds int) *ArchAudit {
	return New(config.CheckerConfig{
		Command:        command,
		TimeoutSeconds: timeoutSeconds,
	}, testLogger())
}

func TestCheckReportsUpdatesInOutputOrder(t *testing.T) {
	script := writeScript(t, `printf 'openssl 3.0.0-1 -> 3.0.0-2\ncurl 8.0.0-1 -> 8.0.0-2\n'`)

	updates, err := newChecker(script, 30).Check(context.Background())
	require.NoError(t, err)
	require.Len(t, updates, 2)
	require.Equal(t, "openssl 3.0.0-1 -> 3.0.0-2", updates[0].Text)
	require.Equal(t, "https://security.archlinux.org/package/openssl", updates[0].Link)
	require.Equal(t, "curl 8.0.0-1 -> 8.0.0-2", updates[1].Text)
	require.Equal(t, "https://security.archlinux.org/package/curl", updates[1].Link)
}

func TestCheckEmptyOutputMeansUpToDate(t *testing.T) {
	script := writeScript(t, `exit 0`)

	updates, err := newChecker(script, 30).Check(context.Background())
	require.NoError(t, err)
	require.Empty(t, updates)
}

func TestCheckExitOneWithFindingsIsSuccess(t *testing.T) {
	// arch-audit signals "vulnerable packages installed" with exit code 1.
	script := writeScript(t, `printf 'linux 6.1.0-1 -> 6.1.0-2\n'; exit 1`)

	updates, err := newChecker(script, 30).Check(context.Background())
	require.NoError(t, err)
	require.Len(t, updates, 1)
	require.Equal(t, "https://security.archlinux.org/package/linux", updates[0].Link)
}

func TestCheckNonZeroExitIsFailure(t *testing.T) {
	script := writeScript(t, `echo 'could not open database' >&2; exit 2`)

	_, err := newChecker(script, 30).Check(context.Background())
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ErrCodeCheckerFailed))

	auditErr := err.(*errors.AuditError)
	require.Equal(t, "could not open database", auditErr.Details["stderr"])
	require.Equal(t, 2, auditErr.Details["exitCode"])
}

func TestCheckMissingBinary(t *testing.T) {
	_, err := newChecker(filepath.Join(t.TempDir(), "does-not-exist"), 30).Check(context.Background())
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ErrCodeCheckerNotFound))
}

func TestCheckTimeout(t *testing.T) {
	script := writeScript(t, `sleep 5`)

	_, err := newChecker(script, 1).Check(context.Background())
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ErrCodeCheckerTimeout))
}

func TestParseOutput(t *testing.T) {
	tests := []struct {
		name    string
		out     string
		want    int
		wantErr bool
	}{
		{"empty", "", 0, false},
		{"blank lines only", "\n\n  \n", 0, false},
		{"single line", "zlib 1.2-1 -> 1.2-2\n", 1, false},
		{"no trailing newline", "zlib 1.2-1 -> 1.2-2", 1, false},
		{"plus and dot in name", "gtk+3.0 1-1\n", 1, false},
		{"uppercase package name", "OpenSSL 1-1\n", 0, true},
		{"path in package name", "../etc 1-1\n", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updates, err := parseOutput(tt.out)
			if tt.wantErr {
				require.Error(t, err)
				require.True(t, errors.Is(err, errors.ErrCodeCheckerOutputInvalid))
				return
			}
			require.NoError(t, err)
			require.Len(t, updates, tt.want)
		})
	}
}
