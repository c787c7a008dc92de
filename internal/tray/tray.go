// Package tray renders the notifier status as a system tray icon with a
// menu of pending security updates.
package tray

import (
	"os/exec"
	"sync"

	"fyne.io/systray"
	"github.com/sirupsen/logrus"

	"github.com/mingue/arch-audit-notify/internal/notifier"
)

// maxUpdateItems caps the submenu. The tray library cannot remove menu
// items once added, so a fixed pool of slots is created up front and
// shown or hidden as statuses change.
const maxUpdateItems = 32

// Tray manages the system tray icon and menu.
type Tray struct {
	logger   *logrus.Entry
	icons    *IconSet
	triggers *notifier.Queue[notifier.Trigger]
	onQuit   func()

	mu          sync.Mutex
	checkItem   *systray.MenuItem
	statusItem  *systray.MenuItem
	updateItems []*systray.MenuItem
	links       []string
	ready       bool
	pending     *notifier.Status
}

// New creates a tray manager. onQuit is invoked when the user picks Quit
// from the menu.
func New(icons *IconSet, triggers *notifier.Queue[notifier.Trigger], logger *logrus.Entry, onQuit func()) *Tray {
	return &Tray{
		logger:   logger,
		icons:    icons,
		triggers: triggers,
		onQuit:   onQuit,
	}
}

// Run starts the tray event loop. It must be called from the main
// goroutine and blocks until Quit is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Quit stops the tray event loop and unblocks Run.
func (t *Tray) Quit() {
	systray.Quit()
}

func (t *Tray) onReady() {
	systray.SetIcon(t.icons.Check)
	systray.SetTitle("arch-audit")
	systray.SetTooltip("Arch Linux security updates")

	t.mu.Lock()
	t.checkItem = systray.AddMenuItem("Check for updates", "Run a security check now")
	t.statusItem = systray.AddMenuItem("Checking...", "")
	t.statusItem.Disable()

	t.updateItems = make([]*systray.MenuItem, maxUpdateItems)
	t.links = make([]string, maxUpdateItems)
	for i := range t.updateItems {
		item := t.statusItem.AddSubMenuItem("", "")
		item.Hide()
		t.updateItems[i] = item
		go t.watchUpdateItem(i, item)
	}

	systray.AddSeparator()
	quitItem := systray.AddMenuItem("Quit", "Stop the notifier")

	t.ready = true
	pending := t.pending
	t.pending = nil
	t.mu.Unlock()

	go func() {
		for {
			select {
			case <-t.checkItem.ClickedCh:
				t.handleCheckClicked()
			case <-quitItem.ClickedCh:
				t.logger.Info("Quit selected from tray menu")
				if t.onQuit != nil {
					t.onQuit()
				}
				systray.Quit()
				return
			}
		}
	}()

	if pending != nil {
		t.Render(*pending)
	}

	t.logger.Debug("Tray ready")
}

func (t *Tray) onExit() {
	t.logger.Debug("Tray exited")
}

// handleCheckClicked queues a user-requested check and flips the menu into
// the transitional checking state until the result arrives.
func (t *Tray) handleCheckClicked() {
	t.logger.Debug("Check requested from tray menu")

	t.mu.Lock()
	if t.ready {
		t.statusItem.SetTitle(notifier.Status{Kind: notifier.StatusChecking}.Text())
	}
	t.mu.Unlock()

	t.triggers.Send(notifier.TriggerUserClick)
}

// watchUpdateItem opens the advisory link for a submenu slot when clicked.
func (t *Tray) watchUpdateItem(idx int, item *systray.MenuItem) {
	for range item.ClickedCh {
		t.mu.Lock()
		link := t.links[idx]
		t.mu.Unlock()
		if link == "" {
			continue
		}
		t.openLink(link)
	}
}

func (t *Tray) openLink(link string) {
	t.logger.WithField("link", link).Debug("Opening advisory link")
	if err := exec.Command("xdg-open", link).Start(); err != nil {
		t.logger.WithError(err).Warn("Failed to open advisory link")
	}
}

// Render updates the icon and menu for a status. Safe to call from any
// goroutine; calls made before the tray is ready are applied once it is.
func (t *Tray) Render(st notifier.Status) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.ready {
		t.pending = &st
		return
	}

	systray.SetIcon(t.icons.For(st.Icon()))
	t.statusItem.SetTitle(st.Text())

	updates := st.Updates
	if len(updates) > maxUpdateItems {
		updates = updates[:maxUpdateItems]
	}

	for i, item := range t.updateItems {
		if i < len(updates) {
			item.SetTitle(updates[i].Text)
			t.links[i] = updates[i].Link
			item.Show()
		} else {
			t.links[i] = ""
			item.Hide()
		}
	}
}
