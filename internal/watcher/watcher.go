// Package watcher turns package database changes into check triggers.
package watcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/mingue/arch-audit-notify/errors"
	"github.com/mingue/arch-audit-notify/internal/notifier"
)

// Watcher watches the pacman local database directory and sends a
// file-changed trigger whenever its contents change. pacman touches many
// entries during one transaction, so rapid events are debounced; the
// coordinator collapses whatever still gets through.
type Watcher struct {
	fsw      *fsnotify.Watcher
	path     string
	debounce time.Duration
	triggers *notifier.Queue[notifier.Trigger]
	logger   *logrus.Entry

	mu         sync.Mutex
	lastChange time.Time
}

// New creates a Watcher for the given directory. A path that cannot be
// watched is a fatal startup condition, reported as WATCHER_INIT_FAILED.
func New(path string, debounce time.Duration, triggers *notifier.Queue[notifier.Trigger], logger *logrus.Entry) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.WatcherInit(path, err)
	}

	if err := fsw.Add(path); err != nil {
		fsw.Close()
		return nil, errors.WatcherInit(path, err)
	}

	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	return &Watcher{
		fsw:      fsw,
		path:     path,
		debounce: debounce,
		triggers: triggers,
		logger:   logger,
	}, nil
}

// Start begins watching. It blocks until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	w.logger.WithField("path", w.path).Info("Watching package database")
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.logger.Debugf("fsnotify event: %s op=%v", event.Name, event.Op)

			// Installs and upgrades create, rewrite and remove entries
			// under the local DB; all of those mean the database changed.
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				w.handleChange(event.Name)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Errorf("Watcher error: %v", err)
		case <-ctx.Done():
			w.fsw.Close()
			return
		}
	}
}

// handleChange sends one trigger per debounce window.
func (w *Watcher) handleChange(file string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	elapsed := time.Since(w.lastChange)
	if elapsed < w.debounce {
		w.logger.Debugf("Debounced: %s (only %v since last change)", filepath.Base(file), elapsed)
		return
	}
	w.lastChange = time.Now()

	w.logger.WithField("file", filepath.Base(file)).Info("Package database changed")
	w.triggers.Send(notifier.TriggerFileChanged)
}

// Close stops the watcher and releases resources.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
