package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/mingue/arch-audit-notify/internal/daemon/store"
	"github.com/mingue/arch-audit-notify/internal/notifier"
)

func testLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger.WithField("component", "server-test")
}

func newTestServer(t *testing.T) (*httptest.Server, *store.Store, *notifier.Queue[notifier.Trigger]) {
	t.Helper()
	st := store.New()
	triggers := notifier.NewQueue[notifier.Trigger]()
	t.Cleanup(triggers.Close)

	srv := New(testLogger(), st, triggers)
	srv.SetRunningConfig(&RunningConfig{
		IconTheme:      "default",
		CheckerCommand: "arch-audit",
		WatchPath:      "/var/lib/pacman/local",
		StartedAt:      time.Now(),
	})

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, st, triggers
}

func TestHealth(t *testing.T) {
	ts, _, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetStatus(t *testing.T) {
	ts, st, _ := newTestServer(t)

	st.Apply(notifier.Classify([]notifier.Update{
		{Text: "openssl 3.0.0-1", Link: "https://security.archlinux.org/package/openssl"},
	}, nil))

	resp, err := http.Get(ts.URL + "/api/status")
	require.NoError(t, err)
	defer resp.Body.Close()

	var snap store.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	require.Equal(t, notifier.StatusMissingUpdates, snap.Status.Kind)
	require.Equal(t, "alert", snap.Icon)
	require.Equal(t, 1, snap.Checks)
}

func TestCheckEnqueuesUserClick(t *testing.T) {
	ts, _, triggers := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/check", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	select {
	case trig := <-triggers.Out():
		require.Equal(t, notifier.TriggerUserClick, trig)
	case <-time.After(time.Second):
		t.Fatal("check request did not enqueue a trigger")
	}
}

func TestCheckRejectsGet(t *testing.T) {
	ts, _, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/check")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestGetConfig(t *testing.T) {
	ts, _, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/config")
	require.NoError(t, err)
	defer resp.Body.Close()

	var cfg RunningConfig
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cfg))
	require.Equal(t, "arch-audit", cfg.CheckerCommand)
	require.Equal(t, "default", cfg.IconTheme)
}

func TestEventsStream(t *testing.T) {
	ts, st, _ := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/events"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	// The latest status arrives immediately on connect.
	var first notifier.Status
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	require.NoError(t, conn.ReadJSON(&first))
	require.Equal(t, notifier.StatusChecking, first.Kind)

	// Subsequent applies are streamed in order.
	st.Apply(notifier.Classify(nil, nil))
	st.Apply(notifier.Classify([]notifier.Update{{Text: "x", Link: "y"}}, nil))

	var second, third notifier.Status
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	require.NoError(t, conn.ReadJSON(&second))
	require.NoError(t, conn.ReadJSON(&third))
	require.Equal(t, notifier.StatusUpToDate, second.Kind)
	require.Equal(t, notifier.StatusMissingUpdates, third.Kind)
}
