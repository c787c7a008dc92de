package notifier

import (
	"fmt"
	"testing"
)

func TestClassify(t *testing.T) {
	updates := []Update{
		{Text: "openssl 3.0.0-1", Link: "https://security.archlinux.org/package/openssl"},
		{Text: "curl 8.0.0-1", Link: "https://security.archlinux.org/package/curl"},
	}

	tests := []struct {
		name     string
		updates  []Update
		err      error
		wantKind StatusKind
		wantIcon Icon
	}{
		{"empty success list", nil, nil, StatusUpToDate, IconCheck},
		{"zero-length success list", []Update{}, nil, StatusUpToDate, IconCheck},
		{"non-empty success list", updates, nil, StatusMissingUpdates, IconAlert},
		{"failure", nil, fmt.Errorf("tool not found"), StatusError, IconCross},
		{"failure with updates is still an error", updates, fmt.Errorf("boom"), StatusError, IconCross},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := Classify(tt.updates, tt.err)
			if st.Kind != tt.wantKind {
				t.Errorf("Classify kind = %s, want %s", st.Kind, tt.wantKind)
			}
			if st.Icon() != tt.wantIcon {
				t.Errorf("Icon() = %s, want %s", st.Icon(), tt.wantIcon)
			}
			if st.Text() == "" {
				t.Error("Text() must never be empty")
			}
			if st.CheckedAt.IsZero() {
				t.Error("CheckedAt must be set")
			}
		})
	}
}

func TestClassifyPreservesOrder(t *testing.T) {
	updates := []Update{
		{Text: "z-last-alphabetically", Link: "https://security.archlinux.org/package/zlib"},
		{Text: "a-first-alphabetically", Link: "https://security.archlinux.org/package/acl"},
	}

	st := Classify(updates, nil)
	if st.Updates[0].Text != "z-last-alphabetically" || st.Updates[1].Text != "a-first-alphabetically" {
		t.Error("Classify must not re-sort the checker's output order")
	}
}

func TestStatusText(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		want   string
	}{
		{"checking", Status{Kind: StatusChecking}, "Checking..."},
		{"up to date", Status{Kind: StatusUpToDate}, "No missing security updates"},
		{"one update", Status{Kind: StatusMissingUpdates, Updates: []Update{{Text: "x"}}}, "1 missing security update"},
		{"three updates", Status{Kind: StatusMissingUpdates, Updates: make([]Update, 3)}, "3 missing security updates"},
		{"empty missing reads as up to date", Status{Kind: StatusMissingUpdates}, "No missing security updates"},
		{"error", Status{Kind: StatusError, Message: "tool not found"}, "Error: tool not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStatusIconTotal(t *testing.T) {
	// Empty missing_updates is displayed as all clear, not as an alert.
	st := Status{Kind: StatusMissingUpdates}
	if st.Icon() != IconCheck {
		t.Errorf("empty missing_updates icon = %s, want check", st.Icon())
	}

	for _, kind := range []StatusKind{StatusChecking, StatusUpToDate, StatusMissingUpdates, StatusError} {
		st := Status{Kind: kind}
		icon := st.Icon().String()
		if icon != "check" && icon != "alert" && icon != "cross" {
			t.Errorf("kind %s produced invalid icon %q", kind, icon)
		}
	}
}
