package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  ErrorCode = "CONFIG_INVALID"
	ErrCodeThemeInvalid   ErrorCode = "THEME_INVALID"

	// Checker errors. These are always recovered into a Status value
	// by the coordinator and never abort the daemon.
	ErrCodeCheckerNotFound      ErrorCode = "CHECKER_NOT_FOUND"
	ErrCodeCheckerFailed        ErrorCode = "CHECKER_FAILED"
	ErrCodeCheckerOutputInvalid ErrorCode = "CHECKER_OUTPUT_INVALID"
	ErrCodeCheckerTimeout       ErrorCode = "CHECKER_TIMEOUT"

	// Daemon lifecycle errors. Fatal at startup.
	ErrCodeDaemonAlreadyRunning ErrorCode = "DAEMON_ALREADY_RUNNING"
	ErrCodeDaemonNotRunning     ErrorCode = "DAEMON_NOT_RUNNING"
	ErrCodeWatcherInit          ErrorCode = "WATCHER_INIT_FAILED"
	ErrCodeSocketInit           ErrorCode = "SOCKET_INIT_FAILED"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// AuditError represents a structured error with context
type AuditError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *AuditError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *AuditError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *AuditError) WithDetail(key string, value interface{}) *AuditError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *AuditError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new AuditError
func New(code ErrorCode, message string) *AuditError {
	return &AuditError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an AuditError
func Wrap(err error, code ErrorCode, message string) *AuditError {
	return &AuditError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific AuditError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	auditErr, ok := err.(*AuditError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	return auditErr.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	auditErr, ok := err.(*AuditError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return auditErr.Code
}
