package hypr

import (
	"strconv"
	"strings"
)

// Event names on the event socket that the dock reacts to.
const (
	EventOpenWindow    = "openwindow"
	EventCloseWindow   = "closewindow"
	EventWindowTitle   = "windowtitle"
	EventWindowTitleV2 = "windowtitlev2"
	EventMoveWindow    = "movewindow"
	EventMoveWindowV2  = "movewindowv2"

	EventActiveWindowV2 = "activewindowv2"
)

// Event is one line of the event socket: EVENT>>DATA.
type Event struct {
	Name string
	Data string
}

// ParseEvent splits an event line. ok is false for lines without the separator.
func ParseEvent(line string) (Event, bool) {
	name, data, found := strings.Cut(strings.TrimRight(line, "\r\n"), ">>")
	if !found || name == "" {
		return Event{}, false
	}
	return Event{Name: name, Data: data}, true
}

// OpenWindow is the payload of an openwindow event.
type OpenWindow struct {
	Address   string
	Workspace string
	Class     string
	Title     string
}

// ParseOpenWindow decodes "ADDRESS,WORKSPACENAME,CLASS,TITLE". Titles may
// contain commas, so the split is limited to four fields.
func ParseOpenWindow(data string) (OpenWindow, bool) {
	parts := strings.SplitN(data, ",", 4)
	if len(parts) != 4 {
		return OpenWindow{}, false
	}
	return OpenWindow{
		Address:   NormalizeAddress(parts[0]),
		Workspace: parts[1],
		Class:     parts[2],
		Title:     parts[3],
	}, true
}

// FirstAddress returns the normalized address leading a comma-separated payload.
func FirstAddress(data string) string {
	addr, _, _ := strings.Cut(data, ",")
	return NormalizeAddress(addr)
}

// workspaceID parses a numeric workspace name, returning 0 for named workspaces.
func workspaceID(name string) int {
	id, err := strconv.Atoi(name)
	if err != nil {
		return 0
	}
	return id
}
