// Package server provides the control API of the notifier daemon over a
// Unix socket.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/mingue/arch-audit-notify/internal/daemon/store"
	"github.com/mingue/arch-audit-notify/internal/notifier"
)

// RunningConfig holds the active configuration used by the daemon.
// Exposed via /api/config so clients can verify what config is active.
type RunningConfig struct {
	IconTheme      string    `json:"icon_theme"`
	CheckerCommand string    `json:"checker_command"`
	WatchPath      string    `json:"watch_path"`
	DebounceMs     int       `json:"debounce_ms"`
	TrayEnabled    bool      `json:"tray_enabled"`
	StartedAt      time.Time `json:"started_at"`
}

// Server manages the daemon's HTTP server over a Unix socket.
type Server struct {
	logger        *logrus.Entry
	server        *http.Server
	store         *store.Store
	triggers      *notifier.Queue[notifier.Trigger]
	runningConfig *RunningConfig
	upgrader      websocket.Upgrader
}

// New creates a new Server instance.
func New(logger *logrus.Entry, st *store.Store, triggers *notifier.Queue[notifier.Trigger]) *Server {
	return &Server{
		logger:   logger,
		store:    st,
		triggers: triggers,
		upgrader: websocket.Upgrader{
			// The socket is a local 0600 unix socket; origin checks do
			// not apply.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// SetRunningConfig sets the running configuration for the server.
func (s *Server) SetRunningConfig(cfg *RunningConfig) {
	s.runningConfig = cfg
}

// ListenAndServe starts the daemon on the given unix socket path.
// It blocks until the server stops or fails.
func (s *Server) ListenAndServe(socketPath string) error {
	// Cleanup stale socket
	if _, err := os.Stat(socketPath); err == nil {
		if err := os.Remove(socketPath); err != nil {
			return fmt.Errorf("failed to remove stale socket: %w", err)
		}
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(socketPath), 0755); err != nil {
		return fmt.Errorf("failed to create socket directory: %w", err)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return fmt.Errorf("failed to listen on socket: %w", err)
	}

	// Set restrictive permissions on socket
	if err := os.Chmod(socketPath, 0600); err != nil {
		_ = listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.server = &http.Server{Handler: s.Handler()}

	s.logger.WithField("socket", socketPath).Info("Daemon listening")
	if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Handler returns the API routes. Split out so tests can serve them
// without a real socket.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/api/status", s.handleGetStatus)
	mux.HandleFunc("/api/check", s.handleCheck)
	mux.HandleFunc("/api/config", s.handleGetConfig)
	mux.HandleFunc("/api/events", s.handleEvents)

	return mux
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// handleGetStatus returns the latest status snapshot as JSON.
func (s *Server) handleGetStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.store.Get())
}

// handleCheck enqueues a user-requested check. The request returns as soon
// as the trigger is queued; the result arrives via /api/status or
// /api/events once the check completes.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.triggers.Send(notifier.TriggerUserClick)
	s.logger.Debug("Check requested via API")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]bool{"queued": true})
}

// handleGetConfig returns the running configuration as JSON.
func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	if s.runningConfig == nil {
		http.Error(w, "config not initialized", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.runningConfig)
}

// handleEvents streams status updates over a websocket. The latest status
// is sent immediately so clients have data right away; afterwards one
// message is written per completed check.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.WithError(err).Debug("Websocket upgrade failed")
		return
	}
	defer conn.Close()

	ch := s.store.Subscribe()
	defer s.store.Unsubscribe(ch)

	s.logger.Debug("Events client connected")

	// Discard inbound frames and notice when the client goes away.
	clientGone := make(chan struct{})
	go func() {
		defer close(clientGone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := conn.WriteJSON(s.store.Latest()); err != nil {
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case <-clientGone:
			s.logger.Debug("Events client disconnected")
			return
		case status, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteJSON(status); err != nil {
				s.logger.WithError(err).Debug("Events write failed")
				return
			}
		}
	}
}
