package notifier

import (
	"fmt"
	"time"
)

// Icon identifies the tray icon for a status.
type Icon int

const (
	// IconCheck means all clear / idle.
	IconCheck Icon = iota
	// IconAlert means security updates are pending.
	IconAlert
	// IconCross means the last check failed.
	IconCross
)

func (i Icon) String() string {
	switch i {
	case IconCheck:
		return "check"
	case IconAlert:
		return "alert"
	case IconCross:
		return "cross"
	default:
		return "check"
	}
}

// Update is one affected-package record: a human-readable summary and a
// link to the advisory detail. Immutable once constructed; ordering within
// a Status follows the checker's output order.
type Update struct {
	Text string `json:"text"`
	Link string `json:"link"`
}

// StatusKind is the closed set of coordinator outcomes.
type StatusKind string

const (
	// StatusChecking is a transitional state used for initial display;
	// the coordinator itself only publishes terminal statuses.
	StatusChecking StatusKind = "checking"
	// StatusUpToDate means the check completed with no affected packages.
	StatusUpToDate StatusKind = "up_to_date"
	// StatusMissingUpdates means the check found affected packages.
	StatusMissingUpdates StatusKind = "missing_updates"
	// StatusError means the check failed.
	StatusError StatusKind = "error"
)

// Status is the typed result of one completed check.
type Status struct {
	Kind      StatusKind `json:"state"`
	Updates   []Update   `json:"updates,omitempty"`
	Message   string     `json:"message,omitempty"`
	CheckedAt time.Time  `json:"checked_at,omitzero"`
}

// Classify converts a checker outcome into a Status. It is total: any
// (updates, err) combination maps to exactly one of up_to_date,
// missing_updates or error.
func Classify(updates []Update, err error) Status {
	now := time.Now()
	if err != nil {
		return Status{Kind: StatusError, Message: err.Error(), CheckedAt: now}
	}
	if len(updates) == 0 {
		return Status{Kind: StatusUpToDate, CheckedAt: now}
	}
	return Status{Kind: StatusMissingUpdates, Updates: updates, CheckedAt: now}
}

// Text returns the human summary for the status. Total: every kind yields
// non-empty text. A missing_updates status that somehow carries no records
// reads like up_to_date rather than showing an empty menu.
func (s Status) Text() string {
	switch s.Kind {
	case StatusChecking:
		return "Checking..."
	case StatusMissingUpdates:
		n := len(s.Updates)
		if n == 0 {
			return "No missing security updates"
		}
		if n == 1 {
			return "1 missing security update"
		}
		return fmt.Sprintf("%d missing security updates", n)
	case StatusError:
		return fmt.Sprintf("Error: %s", s.Message)
	default:
		return "No missing security updates"
	}
}

// Icon returns the icon identifier for the status. Total and pure, like
// Text. Empty missing_updates is presented as all clear.
func (s Status) Icon() Icon {
	switch s.Kind {
	case StatusMissingUpdates:
		if len(s.Updates) == 0 {
			return IconCheck
		}
		return IconAlert
	case StatusError:
		return IconCross
	default:
		return IconCheck
	}
}
