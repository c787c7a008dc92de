// Package daemon assembles the notifier pipeline: watcher and tray feed
// triggers into the coordinator, the coordinator publishes statuses, and
// the store and tray consume them.
package daemon

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mingue/arch-audit-notify/config"
	"github.com/mingue/arch-audit-notify/internal/checker"
	"github.com/mingue/arch-audit-notify/internal/daemon/pidfile"
	"github.com/mingue/arch-audit-notify/internal/daemon/server"
	"github.com/mingue/arch-audit-notify/internal/daemon/store"
	"github.com/mingue/arch-audit-notify/internal/notifier"
	"github.com/mingue/arch-audit-notify/internal/tray"
	"github.com/mingue/arch-audit-notify/internal/watcher"
	"github.com/mingue/arch-audit-notify/pkg/paths"
)

// Daemon owns every long-lived component of the notifier process.
type Daemon struct {
	cfg    *config.Config
	logger *logrus.Entry

	store    *store.Store
	triggers *notifier.Queue[notifier.Trigger]
	results  *notifier.Queue[notifier.Status]

	coordinator *notifier.Coordinator
	watcher     *watcher.Watcher
	server      *server.Server
	tray        *tray.Tray
}

// New builds a daemon from the resolved configuration. The watcher is
// created eagerly: an unwatchable package database is a startup failure,
// not something to retry silently in the background.
func New(cfg *config.Config, logger *logrus.Entry) (*Daemon, error) {
	d := &Daemon{
		cfg:      cfg,
		logger:   logger,
		store:    store.New(),
		triggers: notifier.NewQueue[notifier.Trigger](),
		results:  notifier.NewQueue[notifier.Status](),
	}

	chk := checker.New(cfg.Checker, logger)
	d.coordinator = notifier.NewCoordinator(chk, d.triggers, d.results, logger)

	w, err := watcher.New(cfg.Watch.Path, cfg.Watch.Debounce(), d.triggers, logger)
	if err != nil {
		return nil, err
	}
	d.watcher = w

	d.server = server.New(logger, d.store, d.triggers)
	d.server.SetRunningConfig(&server.RunningConfig{
		IconTheme:      cfg.IconTheme.String(),
		CheckerCommand: cfg.Checker.Command,
		WatchPath:      cfg.Watch.Path,
		DebounceMs:     cfg.Watch.DebounceMs,
		TrayEnabled:    cfg.TrayEnabled(),
		StartedAt:      time.Now(),
	})

	if cfg.TrayEnabled() {
		icons := tray.LoadIcons(cfg.IconTheme, logger)
		d.tray = tray.New(icons, d.triggers, logger, nil)
	}

	return d, nil
}

// Run starts the daemon and blocks until the context is cancelled, the
// server fails, or (with the tray enabled) the user quits from the menu.
// It must be called from the main goroutine when the tray is enabled.
func (d *Daemon) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := paths.EnsureDirs(); err != nil {
		return err
	}

	pidPath := paths.PidFilePath()
	if err := pidfile.Acquire(pidPath); err != nil {
		return err
	}
	defer func() {
		if err := pidfile.Release(pidPath); err != nil {
			d.logger.Errorf("Failed to release pidfile: %v", err)
		}
	}()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		d.coordinator.Run(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		d.watcher.Start(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		d.consumeResults()
	}()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- d.server.ListenAndServe(paths.SocketPath())
	}()

	// One check on startup, so the tray never sits on stale state.
	d.logger.Info("Queueing initial check")
	d.triggers.Send(notifier.TriggerFileChanged)

	var runErr error
	if d.tray != nil {
		// The tray loop owns the main goroutine; everything that can end
		// the daemon funnels into Quit to unblock it.
		done := make(chan struct{})
		go func() {
			defer close(done)
			select {
			case <-ctx.Done():
			case err := <-serverErr:
				if err != nil {
					d.logger.WithError(err).Error("Server failed")
					runErr = err
				}
			}
			d.tray.Quit()
		}()

		d.tray.Run()
		cancel()
		<-done
	} else {
		select {
		case <-ctx.Done():
		case err := <-serverErr:
			if err != nil {
				d.logger.WithError(err).Error("Server failed")
				runErr = err
			}
		}
		cancel()
	}

	d.shutdown()
	wg.Wait()
	return runErr
}

// consumeResults is the single consumer of the ordered result queue. Every
// completed check lands in the store (serving /api/status and /api/events)
// and on the tray, in completion order.
func (d *Daemon) consumeResults() {
	for status := range d.results.Out() {
		d.store.Apply(status)
		if d.tray != nil {
			d.tray.Render(status)
		}
		d.logger.WithFields(logrus.Fields{
			"state":   string(status.Kind),
			"updates": len(status.Updates),
		}).Debug("Status applied")
	}
}

func (d *Daemon) shutdown() {
	d.logger.Info("Shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := d.server.Shutdown(shutdownCtx); err != nil {
		d.logger.Errorf("Server shutdown error: %v", err)
	}

	if err := d.watcher.Close(); err != nil {
		d.logger.Errorf("Watcher close error: %v", err)
	}

	// Closing the trigger queue stops the coordinator if the context has
	// not already; closing results stops the consumer after it drains.
	d.triggers.Close()
	d.results.Close()
}
