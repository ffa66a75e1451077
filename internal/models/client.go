package models

// PIDUnresolved is reported by the window manager for clients it has not
// finished initializing.
const PIDUnresolved = -1

// WorkspaceRef identifies the workspace a client lives on.
type WorkspaceRef struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Client is an open window as reported by the window manager.
// This corresponds to one element of `hyprctl -j clients`.
type Client struct {
	Address      string       `json:"address" yaml:"address"`
	Class        string       `json:"class" yaml:"class"`
	Title        string       `json:"title" yaml:"title"`
	InitialClass string       `json:"initialClass,omitempty" yaml:"initial_class,omitempty"`
	InitialTitle string       `json:"initialTitle,omitempty" yaml:"initial_title,omitempty"`
	Workspace    WorkspaceRef `json:"workspace" yaml:"workspace"`
	PID          int          `json:"pid" yaml:"pid"`
	Mapped       bool         `json:"mapped" yaml:"mapped"`
	Hidden       bool         `json:"hidden" yaml:"hidden"`
	Floating     bool         `json:"floating" yaml:"floating"`
	Monitor      int          `json:"monitor" yaml:"monitor"`
	XWayland     bool         `json:"xwayland" yaml:"xwayland"`
}

// Ready reports whether the window manager has finished initializing the client.
func (c *Client) Ready() bool {
	return c.PID != PIDUnresolved
}
