package errors

import (
	"fmt"
	"testing"
)

func TestAuditError(t *testing.T) {
	// Test basic error creation
	err := New(ErrCodeThemeInvalid, "theme invalid")
	if err.Code != ErrCodeThemeInvalid {
		t.Errorf("expected code %s, got %s", ErrCodeThemeInvalid, err.Code)
	}

	// Test error wrapping
	cause := fmt.Errorf("underlying error")
	wrapped := Wrap(cause, ErrCodeCheckerFailed, "checker failed")

	if wrapped.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	// Test Is function
	if !Is(wrapped, ErrCodeCheckerFailed) {
		t.Error("Is should return true for matching code")
	}

	if Is(wrapped, ErrCodeThemeInvalid) {
		t.Error("Is should return false for non-matching code")
	}

	// Test WithDetail
	detailed := err.WithDetail("theme", "../etc").WithDetail("attempt", 1)
	if detailed.Details["theme"] != "../etc" {
		t.Error("WithDetail should add details")
	}
}

func TestErrorConstructors(t *testing.T) {
	// Test ThemeInvalid
	err := ThemeInvalid("../etc")
	if err.Code != ErrCodeThemeInvalid {
		t.Errorf("expected code %s, got %s", ErrCodeThemeInvalid, err.Code)
	}
	if err.Details["theme"] != "../etc" {
		t.Error("ThemeInvalid should include theme detail")
	}

	// Test DaemonAlreadyRunning
	err = DaemonAlreadyRunning(4242)
	if err.Code != ErrCodeDaemonAlreadyRunning {
		t.Errorf("expected code %s, got %s", ErrCodeDaemonAlreadyRunning, err.Code)
	}
	if err.Details["pid"] != 4242 {
		t.Error("DaemonAlreadyRunning should include pid detail")
	}

	// Test CheckerFailed with stderr detail
	cause := fmt.Errorf("exit status 2")
	err = CheckerFailed("arch-audit", cause, "permission denied")
	if err.Code != ErrCodeCheckerFailed {
		t.Errorf("expected code %s, got %s", ErrCodeCheckerFailed, err.Code)
	}
	if err.Details["stderr"] != "permission denied" {
		t.Error("CheckerFailed should include stderr detail")
	}
}

func TestGetCode(t *testing.T) {
	if GetCode(nil) != "" {
		t.Error("GetCode(nil) should return empty code")
	}

	err := CheckerNotFound("arch-audit", fmt.Errorf("executable file not found"))
	if GetCode(err) != ErrCodeCheckerNotFound {
		t.Errorf("expected %s, got %s", ErrCodeCheckerNotFound, GetCode(err))
	}

	// A wrapped AuditError is still discoverable
	wrapped := fmt.Errorf("starting daemon: %w", DaemonAlreadyRunning(1))
	if GetCode(wrapped) != ErrCodeDaemonAlreadyRunning {
		t.Error("GetCode should unwrap nested errors")
	}
}
