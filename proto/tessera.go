package proto

import (
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/tessera-shell/tessera/internal/models"
)

// Taskbar is the dock's ordered display list.
type Taskbar struct {
	Version   uint64                 `json:"version"`
	Entries   []models.Entry         `json:"entries"`
	Pending   int32                  `json:"pending"`
	Pinned    []models.PinnedApp     `json:"pinned,omitempty"`
	Active    string                 `json:"active,omitempty"`
	UpdatedAt *timestamppb.Timestamp `json:"updated_at,omitempty"`
}

// ResolveIconRequest asks for the icons of one or more window classes.
type ResolveIconRequest struct {
	Classes []string `json:"classes"`
}

// ResolvedIcon is the icon chosen for one class.
type ResolvedIcon struct {
	Class string `json:"class"`
	Path  string `json:"path,omitempty"`
	Name  string `json:"name,omitempty"`
}

// IconList holds resolved icons and resolver statistics.
type IconList struct {
	Icons          []*ResolvedIcon `json:"icons"`
	Searches       int32           `json:"searches"`
	CachedClasses  int32           `json:"cached_classes"`
	Candidates     int32           `json:"candidates"`
	DesktopEntries int32           `json:"desktop_entries"`
}

// FocusRequest identifies the window to focus.
type FocusRequest struct {
	Address string `json:"address"`
}

// MetricsReply carries the latest bar reading.
type MetricsReply struct {
	Metrics models.Metrics `json:"metrics"`
	Ready   bool           `json:"ready"`
}

// DaemonStatus represents the current status of the daemon.
type DaemonStatus struct {
	Version    string                 `json:"version"`
	InstanceID string                 `json:"instance_id"`
	Host       string                 `json:"host"`
	Port       int32                  `json:"port"`
	Pid        int32                  `json:"pid"`
	StartedAt  *timestamppb.Timestamp `json:"started_at,omitempty"`
	Clients    int32                  `json:"clients"`
	Entries    int32                  `json:"entries"`
	Watchers   int32                  `json:"watchers"`
	RSSBytes   uint64                 `json:"rss_bytes"`
}
