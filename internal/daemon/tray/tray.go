package tray

import (
	_ "embed"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/getlantern/systray"

	"github.com/tessera-shell/tessera/internal/logging"
)

const (
	maxWindowSlots = 16
	maxTitleRunes  = 48
)

//go:embed icon.png
var iconData []byte

var (
	state    DaemonState
	onStart  func()
	onExit   func()
	portItem *systray.MenuItem

	// Pre-allocated window menu slots
	windowSlots   [maxWindowSlots]*systray.MenuItem
	noWindowsItem *systray.MenuItem
	revealItem    *systray.MenuItem
	quitItem      *systray.MenuItem

	// Maps slot index → window address for focus actions
	slotMu        sync.RWMutex
	slotAddresses [maxWindowSlots]string
)

// Run starts the system tray. This blocks the calling goroutine (must be main).
// onStartFn is called when the tray is ready (launch daemon services here).
// onExitFn is called when the tray exits (cleanup here).
func Run(s DaemonState, onStartFn, onExitFn func()) {
	state = s
	onStart = onStartFn
	onExit = onExitFn
	systray.Run(onReady, onQuit)
}

// Quit signals the tray to exit.
func Quit() {
	systray.Quit()
}

func onReady() {
	systray.SetIcon(iconData)
	systray.SetTitle("tessera")
	systray.SetTooltip(formatTooltip(0))

	header := systray.AddMenuItem("Tessera Shell", "")
	header.Disable()

	portItem = systray.AddMenuItem("Starting...", "")
	portItem.Disable()

	systray.AddSeparator()

	for i := 0; i < maxWindowSlots; i++ {
		windowSlots[i] = systray.AddMenuItem("", "Focus window")
		windowSlots[i].Hide()
		go handleSlotClicks(i)
	}

	noWindowsItem = systray.AddMenuItem("No open windows", "")
	noWindowsItem.Disable()

	systray.AddSeparator()

	revealItem = systray.AddMenuItem("Reveal dock", "Finish pending removals")
	quitItem = systray.AddMenuItem("Quit", "Shut down the tessera daemon")

	if onStart != nil {
		onStart()
	}

	if state != nil {
		portItem.SetTitle(fmt.Sprintf("Running on port: %d", state.Port()))
		UpdateWindows(state.Windows())
	}

	go handleClicks()
}

func onQuit() {
	if onExit != nil {
		onExit()
	}
}

func handleClicks() {
	for {
		select {
		case <-revealItem.ClickedCh:
			if state == nil {
				continue
			}
			if err := state.Reveal(); err != nil {
				log := logging.Component("tray")
				log.Warn().Err(err).Msg("reveal failed")
			}
		case <-quitItem.ClickedCh:
			if state != nil {
				state.RequestShutdown()
			}
		}
	}
}

func handleSlotClicks(slot int) {
	for range windowSlots[slot].ClickedCh {
		focusSlot(slot)
	}
}

// focusSlot focuses the window assigned to the given menu slot.
func focusSlot(slot int) {
	slotMu.RLock()
	address := slotAddresses[slot]
	slotMu.RUnlock()

	if address == "" || state == nil {
		return
	}

	log := logging.Component("tray")
	log.Debug().Str("address", address).Int("slot", slot).Msg("focusing window")
	if err := state.Focus(address); err != nil {
		log.Warn().Err(err).Str("address", address).Msg("focus failed")
	}
}

// UpdateWindows refreshes the window menu items and tooltip. It is a no-op
// until the tray is ready.
func UpdateWindows(windows []WindowInfo) {
	if noWindowsItem == nil {
		return
	}

	slotMu.Lock()
	for i := 0; i < maxWindowSlots; i++ {
		slotAddresses[i] = ""
		if i < len(windows) {
			slotAddresses[i] = windows[i].Address
		}
	}
	slotMu.Unlock()

	for i := 0; i < maxWindowSlots; i++ {
		windowSlots[i].Hide()
	}

	if len(windows) == 0 {
		noWindowsItem.Show()
	} else {
		noWindowsItem.Hide()
		for i, w := range windows {
			if i >= maxWindowSlots {
				break
			}
			windowSlots[i].SetTitle(formatWindowTitle(w))
			windowSlots[i].Show()
		}
	}

	systray.SetTooltip(formatTooltip(len(windows)))
}

func formatTooltip(windows int) string {
	if windows == 1 {
		return "Tessera: 1 window"
	}
	return fmt.Sprintf("Tessera: %d windows", windows)
}

func formatWindowTitle(w WindowInfo) string {
	title := w.Title
	if title == "" {
		title = w.Class
	}
	if utf8.RuneCountInString(title) > maxTitleRunes {
		runes := []rune(title)
		title = string(runes[:maxTitleRunes-1]) + "…"
	}
	if w.WorkspaceID > 0 {
		return fmt.Sprintf("[%d] %s", w.WorkspaceID, title)
	}
	return title
}
