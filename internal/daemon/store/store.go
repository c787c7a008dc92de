// Package store holds the daemon's latest status and fans it out to
// streaming subscribers.
package store

import (
	"sync"
	"time"

	"github.com/mingue/arch-audit-notify/internal/notifier"
)

// Snapshot is the state served over the socket API.
type Snapshot struct {
	Status    notifier.Status `json:"status"`
	Text      string          `json:"text"`
	Icon      string          `json:"icon"`
	StartedAt time.Time       `json:"started_at"`
	Checks    int             `json:"checks"`
}

// Store is the in-memory state store for the daemon.
// It is thread-safe and supports pub/sub for real-time updates.
//
// Subscribers are best-effort streaming clients (the `watch` command); a
// slow client loses intermediate statuses rather than stalling the daemon.
// The primary display path does not go through here - it is fed directly
// from the ordered result queue.
type Store struct {
	mu          sync.RWMutex
	latest      notifier.Status
	checks      int
	startedAt   time.Time
	subscribers map[chan notifier.Status]struct{}
}

// New creates a Store. Until the first check completes the latest status
// is the transitional "checking" state.
func New() *Store {
	return &Store{
		latest:      notifier.Status{Kind: notifier.StatusChecking},
		startedAt:   time.Now(),
		subscribers: make(map[chan notifier.Status]struct{}),
	}
}

// Apply records a completed check's status and notifies subscribers.
func (s *Store) Apply(status notifier.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest = status
	s.checks++

	for ch := range s.subscribers {
		select {
		case ch <- status:
		default:
			// Non-blocking send to prevent slow clients from stalling the daemon
		}
	}
}

// Latest returns the most recent status.
func (s *Store) Latest() notifier.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// Get returns a snapshot of the daemon state.
func (s *Store) Get() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Status:    s.latest,
		Text:      s.latest.Text(),
		Icon:      s.latest.Icon().String(),
		StartedAt: s.startedAt,
		Checks:    s.checks,
	}
}

// Subscribe creates a new subscription channel for status updates.
func (s *Store) Subscribe() chan notifier.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan notifier.Status, 16) // Buffered
	s.subscribers[ch] = struct{}{}
	return ch
}

// Unsubscribe removes a subscription and closes its channel.
func (s *Store) Unsubscribe(ch chan notifier.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subscribers[ch]; !ok {
		return
	}
	delete(s.subscribers, ch)
	close(ch)
}
