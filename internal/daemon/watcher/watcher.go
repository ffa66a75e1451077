// Package watcher handles file system watching for the daemon.
package watcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/tessera-shell/tessera/internal/config"
	"github.com/tessera-shell/tessera/internal/logging"
)

// EventType represents the type of file system event.
type EventType int

// Event types for file system changes.
const (
	EventSettingsChanged EventType = iota
	EventDesktopEntriesChanged
)

func (t EventType) String() string {
	switch t {
	case EventSettingsChanged:
		return "settings_changed"
	case EventDesktopEntriesChanged:
		return "desktop_entries_changed"
	}
	return "unknown"
}

// DefaultDebounce is how long a path must stay quiet before its event fires.
const DefaultDebounce = 100 * time.Millisecond

// Event represents a file system change event.
type Event struct {
	Type EventType
	Path string
}

// Watcher watches the settings file and application directories.
type Watcher struct {
	fsWatcher    *fsnotify.Watcher
	eventsChan   chan Event
	done         chan struct{}
	stopOnce     sync.Once
	log          zerolog.Logger
	settingsDir  string
	settingsFile string
	mu           sync.RWMutex
	desktopDirs  map[string]bool
	debounce     map[string]*time.Timer
	debounceMu   sync.Mutex

	// Debounce is the quiet period per path. Set before Start.
	Debounce time.Duration
}

// New creates a watcher for the settings file in the global directory.
func New() (*Watcher, error) {
	dir, err := config.GlobalDir()
	if err != nil {
		return nil, err
	}
	return NewIn(dir)
}

// NewIn creates a watcher for the settings file in dir.
func NewIn(dir string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		fsWatcher:    fsWatcher,
		eventsChan:   make(chan Event, 100),
		done:         make(chan struct{}),
		log:          logging.Component("watcher"),
		settingsDir:  filepath.Clean(dir),
		settingsFile: config.SettingsFileName,
		desktopDirs:  make(map[string]bool),
		debounce:     make(map[string]*time.Timer),
		Debounce:     DefaultDebounce,
	}, nil
}

// Events returns the channel for receiving events.
func (w *Watcher) Events() <-chan Event {
	return w.eventsChan
}

// Start starts the watcher.
func (w *Watcher) Start() error {
	// The directory is watched, not the file: saves replace it by rename.
	if err := w.fsWatcher.Add(w.settingsDir); err != nil {
		return err
	}
	w.log.Info().Str("dir", w.settingsDir).Msg("watching settings")

	go w.processEvents()
	return nil
}

// Run starts the watcher and blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.Start(); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
	case <-w.done:
	}
	w.Stop()
	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.fsWatcher.Close()

		w.debounceMu.Lock()
		for path, timer := range w.debounce {
			timer.Stop()
			delete(w.debounce, path)
		}
		w.debounceMu.Unlock()
	})
}

// WatchDesktopDir adds an application directory whose .desktop files feed
// icon fallbacks. Missing directories are skipped.
func (w *Watcher) WatchDesktopDir(dir string) error {
	dir = filepath.Clean(dir)
	if !config.FileExists(dir) {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.desktopDirs[dir] {
		return nil
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		return err
	}
	w.desktopDirs[dir] = true
	w.log.Debug().Str("dir", dir).Msg("watching desktop entries")
	return nil
}

// processEvents processes file system events.
func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.log.Trace().Str("op", event.Op.String()).Str("path", event.Name).Msg("fsnotify")
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("watcher error")
		}
	}
}

// handleEvent processes a single file system event.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	// Atomic saves (write tmp, rename over target) surface as Create or
	// Rename on the target. Removing a .desktop file also changes the set.
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return
	}

	ev, ok := w.classify(event.Name)
	if !ok {
		return
	}

	key := ev.Path
	if ev.Type == EventDesktopEntriesChanged {
		// Coalesce a package install touching many files into one reload.
		key = filepath.Dir(ev.Path)
		ev.Path = key
	}
	w.debounceEvent(key, func() {
		w.emit(ev)
	})
}

func (w *Watcher) classify(path string) (Event, bool) {
	dir := filepath.Dir(path)
	name := filepath.Base(path)

	if dir == w.settingsDir && name == w.settingsFile {
		return Event{Type: EventSettingsChanged, Path: path}, true
	}

	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.desktopDirs[dir] && filepath.Ext(name) == ".desktop" {
		return Event{Type: EventDesktopEntriesChanged, Path: path}, true
	}
	return Event{}, false
}

// debounceEvent debounces events for the same path.
func (w *Watcher) debounceEvent(path string, fn func()) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, ok := w.debounce[path]; ok {
		timer.Stop()
	}

	w.debounce[path] = time.AfterFunc(w.Debounce, func() {
		w.debounceMu.Lock()
		delete(w.debounce, path)
		w.debounceMu.Unlock()
		fn()
	})
}

func (w *Watcher) emit(ev Event) {
	w.log.Debug().Stringer("type", ev.Type).Str("path", ev.Path).Msg("debounce fired")
	select {
	case w.eventsChan <- ev:
	case <-w.done:
	}
}
