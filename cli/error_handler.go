package cli

import (
	"fmt"
	"os"

	"github.com/mingue/arch-audit-notify/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
	}
}

// Handle provides user-friendly error messages based on error type
func (h *ErrorHandler) Handle(err error) error {
	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(os.Stderr, "❌ Configuration file not found. The daemon runs with defaults when no config exists; check the --config path.\n")
		return err

	case errors.ErrCodeConfigInvalid:
		fmt.Fprintf(os.Stderr, "❌ Invalid configuration: %v\n", err)
		return err

	case errors.ErrCodeDaemonAlreadyRunning:
		if auditErr, ok := err.(*errors.AuditError); ok {
			fmt.Fprintf(os.Stderr, "❌ Daemon already running (PID %v)\n", auditErr.Details["pid"])
			fmt.Fprintf(os.Stderr, "Run 'arch-audit-notify daemon stop' first.\n")
		}
		return err

	case errors.ErrCodeDaemonNotRunning:
		fmt.Fprintf(os.Stderr, "❌ Daemon is not running.\n")
		fmt.Fprintf(os.Stderr, "Start it with 'arch-audit-notify daemon start'.\n")
		return err

	case errors.ErrCodeCheckerNotFound:
		if auditErr, ok := err.(*errors.AuditError); ok {
			fmt.Fprintf(os.Stderr, "❌ Checker command '%v' not found.\n", auditErr.Details["command"])
		}
		fmt.Fprintf(os.Stderr, "Install arch-audit or point checker.command at another tool.\n")
		return err

	case errors.ErrCodeWatcherInit:
		if auditErr, ok := err.(*errors.AuditError); ok {
			fmt.Fprintf(os.Stderr, "❌ Cannot watch '%v'.\n", auditErr.Details["path"])
		}
		fmt.Fprintf(os.Stderr, "Check that the package database directory exists and is readable.\n")
		return err

	default:
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)

		if h.Verbose {
			if auditErr, ok := err.(*errors.AuditError); ok {
				fmt.Fprintf(os.Stderr, "\nError details:\n%s\n", auditErr.ToJSON())
			}
		}
		return err
	}
}
