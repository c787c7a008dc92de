// Package daemon provides a client for the notifier daemon's unix-socket
// API.
package daemon

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mingue/arch-audit-notify/errors"
	"github.com/mingue/arch-audit-notify/internal/daemon/store"
	"github.com/mingue/arch-audit-notify/internal/notifier"
	"github.com/mingue/arch-audit-notify/pkg/paths"
)

// Client talks to a running daemon over its unix socket. HTTP requests use
// a transport that dials the socket regardless of the request host.
type Client struct {
	socketPath string
	http       *http.Client
}

// New creates a client for the given socket path. An empty path uses the
// default socket location.
func New(socketPath string) *Client {
	if socketPath == "" {
		socketPath = paths.SocketPath()
	}

	transport := &http.Transport{
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "unix", socketPath)
		},
	}

	return &Client{
		socketPath: socketPath,
		http: &http.Client{
			Transport: transport,
			Timeout:   10 * time.Second,
		},
	}
}

// SocketPath returns the socket this client dials.
func (c *Client) SocketPath() string {
	return c.socketPath
}

// IsRunning returns true if the daemon is available and responding.
func (c *Client) IsRunning() bool {
	resp, err := c.http.Get("http://notifyd/health")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Status fetches the daemon's latest status snapshot.
func (c *Client) Status(ctx context.Context) (*store.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://notifyd/api/status", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.DaemonNotRunning(c.socketPath)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status response: %s", resp.Status)
	}

	var snap store.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decoding status response: %w", err)
	}
	return &snap, nil
}

// Check asks the daemon to run an advisory check. It returns once the
// trigger is queued, not when the check completes.
func (c *Client) Check(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "http://notifyd/api/check", nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.DaemonNotRunning(c.socketPath)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("unexpected check response: %s", resp.Status)
	}
	return nil
}

// Config fetches the daemon's running configuration as raw JSON fields.
func (c *Client) Config(ctx context.Context) (map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://notifyd/api/config", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.DaemonNotRunning(c.socketPath)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected config response: %s", resp.Status)
	}

	var cfg map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Events subscribes to the daemon's status stream. The returned channel
// yields the latest status immediately, then one value per completed
// check, and closes when the context is cancelled or the daemon goes away.
func (c *Client) Events(ctx context.Context) (<-chan notifier.Status, error) {
	dialer := websocket.Dialer{
		NetDialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "unix", c.socketPath)
		},
	}

	conn, resp, err := dialer.DialContext(ctx, "ws://notifyd/api/events", nil)
	if resp != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, errors.DaemonNotRunning(c.socketPath)
	}

	ch := make(chan notifier.Status, 16)
	go func() {
		defer close(ch)
		defer conn.Close()
		for {
			var status notifier.Status
			if err := conn.ReadJSON(&status); err != nil {
				return
			}
			select {
			case ch <- status:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Close the connection when the context ends so the reader unblocks.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	return ch, nil
}
