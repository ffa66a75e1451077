// Package tray implements the system tray icon and menu for the daemon.
package tray

// DaemonState provides access to daemon state for the tray.
type DaemonState interface {
	Port() int
	Windows() []WindowInfo
	Focus(address string) error
	Reveal() error
	RequestShutdown()
}

// WindowInfo describes a taskbar window for display in the tray menu.
type WindowInfo struct {
	Address     string
	Class       string
	Title       string
	WorkspaceID int
}
