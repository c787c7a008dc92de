// Package notifier implements the update coordination engine: trigger
// ingestion, burst collapsing, single-flight check execution and ordered
// result delivery.
package notifier

// Trigger is a zero-payload event requesting an advisory check. Triggers
// carry no identity beyond their source; they are interchangeable and
// collapse freely.
type Trigger int

const (
	// TriggerFileChanged is sent by the package database watcher.
	TriggerFileChanged Trigger = iota
	// TriggerUserClick is sent on explicit user request, from the tray
	// menu or the socket API.
	TriggerUserClick
)

func (t Trigger) String() string {
	switch t {
	case TriggerFileChanged:
		return "file-changed"
	case TriggerUserClick:
		return "user-click"
	default:
		return "unknown"
	}
}
