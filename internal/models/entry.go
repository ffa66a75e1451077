package models

// EntryPhase is the lifecycle phase of a taskbar entry.
type EntryPhase string

const (
	EntryCreated   EntryPhase = "created"
	EntryVisible   EntryPhase = "visible"
	EntryHiding    EntryPhase = "hiding"
	EntryDestroyed EntryPhase = "destroyed"
)

// Icon is the resolved icon for an application class. Path is empty when no
// icon file matched; Name is then the best-guess themed icon name.
type Icon struct {
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Entry is the view-model for one button in the dock's running-application list.
type Entry struct {
	Address     string     `json:"address" yaml:"address"`
	Class       string     `json:"class" yaml:"class"`
	Title       string     `json:"title" yaml:"title"`
	WorkspaceID int        `json:"workspace_id" yaml:"workspace_id"`
	IconPath    string     `json:"icon_path,omitempty" yaml:"icon_path,omitempty"`
	IconName    string     `json:"icon_name,omitempty" yaml:"icon_name,omitempty"`
	Visible     bool       `json:"visible" yaml:"visible"`
	Pinned      bool       `json:"pinned,omitempty" yaml:"pinned,omitempty"`
	Phase       EntryPhase `json:"phase" yaml:"phase"`
}

// PinnedApp is a pinned launcher button. It is shown whether or not the
// application runs; Address, Title and Focused come from the first running
// client whose class contains Term.
type PinnedApp struct {
	Term     string `json:"term" yaml:"term"`
	Running  bool   `json:"running" yaml:"running"`
	Focused  bool   `json:"focused,omitempty" yaml:"focused,omitempty"`
	Address  string `json:"address,omitempty" yaml:"address,omitempty"`
	Title    string `json:"title" yaml:"title"`
	IconPath string `json:"icon_path,omitempty" yaml:"icon_path,omitempty"`
	IconName string `json:"icon_name,omitempty" yaml:"icon_name,omitempty"`
}
