package errors

import (
	"fmt"
	"os/exec"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *AuditError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *AuditError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// ThemeInvalid creates an invalid icon theme error. The raw value is
// carried in the details so callers can report what was rejected.
func ThemeInvalid(raw string) *AuditError {
	return New(ErrCodeThemeInvalid, fmt.Sprintf("theme contains invalid characters: %q", raw)).
		WithDetail("theme", raw)
}

// CheckerNotFound creates an error for a missing checker binary
func CheckerNotFound(command string, err error) *AuditError {
	return Wrap(err, ErrCodeCheckerNotFound, fmt.Sprintf("checker command not found: %s", command)).
		WithDetail("command", command)
}

// CheckerFailed creates a checker execution failure error
func CheckerFailed(command string, err error, stderr string) *AuditError {
	auditErr := Wrap(err, ErrCodeCheckerFailed, fmt.Sprintf("checker failed: %s", command)).
		WithDetail("command", command)

	// Extract exit code if available
	if exitErr, ok := err.(*exec.ExitError); ok {
		auditErr = auditErr.WithDetail("exitCode", exitErr.ExitCode())
	}
	if stderr != "" {
		auditErr = auditErr.WithDetail("stderr", stderr)
	}

	return auditErr
}

// CheckerOutputInvalid creates an error for unparseable checker output
func CheckerOutputInvalid(reason string) *AuditError {
	return New(ErrCodeCheckerOutputInvalid, fmt.Sprintf("unparseable checker output: %s", reason))
}

// DaemonAlreadyRunning creates an error for a duplicate daemon instance
func DaemonAlreadyRunning(pid int) *AuditError {
	return New(ErrCodeDaemonAlreadyRunning, fmt.Sprintf("daemon already running with PID %d", pid)).
		WithDetail("pid", pid)
}

// DaemonNotRunning creates an error for client commands that need a daemon
func DaemonNotRunning(socket string) *AuditError {
	return New(ErrCodeDaemonNotRunning, "daemon is not running").
		WithDetail("socket", socket)
}

// WatcherInit creates a watcher initialization error
func WatcherInit(path string, err error) *AuditError {
	return Wrap(err, ErrCodeWatcherInit, fmt.Sprintf("failed to watch %s", path)).
		WithDetail("path", path)
}
