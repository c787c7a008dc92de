package watcher

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/mingue/arch-audit-notify/errors"
	"github.com/mingue/arch-audit-notify/internal/notifier"
)

func testLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger.WithField("component", "watcher-test")
}

func TestWatcherSendsTriggerOnChange(t *testing.T) {
	dir := t.TempDir()
	triggers := notifier.NewQueue[notifier.Trigger]()
	defer triggers.Close()

	w, err := New(dir, 50*time.Millisecond, triggers, testLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	// Give the watch loop a moment to be scheduled.
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "openssl-3.0.0-1.desc"), []byte("desc"), 0644))

	select {
	case trig := <-triggers.Out():
		require.Equal(t, notifier.TriggerFileChanged, trig)
	case <-time.After(3 * time.Second):
		t.Fatal("no trigger after a database change")
	}
}

func TestWatcherDebouncesRapidEvents(t *testing.T) {
	dir := t.TempDir()
	triggers := notifier.NewQueue[notifier.Trigger]()
	defer triggers.Close()

	w, err := New(dir, time.Second, triggers, testLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	time.Sleep(50 * time.Millisecond)

	// One pacman transaction touches many files in quick succession.
	for i := 0; i < 10; i++ {
		name := filepath.Join(dir, "pkg"+string(rune('a'+i)))
		require.NoError(t, os.WriteFile(name, []byte("x"), 0644))
	}

	// First event gets through.
	select {
	case <-triggers.Out():
	case <-time.After(3 * time.Second):
		t.Fatal("no trigger after database changes")
	}

	// The rest of the burst falls inside the debounce window.
	select {
	case <-triggers.Out():
		t.Fatal("debounce window let a second trigger through")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherInitFailsOnMissingPath(t *testing.T) {
	triggers := notifier.NewQueue[notifier.Trigger]()
	defer triggers.Close()

	_, err := New(filepath.Join(t.TempDir(), "does-not-exist"), 0, triggers, testLogger())
	require.Error(t, err)
	require.True(t, errors.Is(err, errors.ErrCodeWatcherInit))
}
