// Package daemon assembles the tesserad components and supervises them.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/WatchBeam/clock"
	"github.com/google/uuid"
	"github.com/oklog/run"
	"github.com/rs/zerolog"

	"github.com/tessera-shell/tessera/internal/bar"
	"github.com/tessera-shell/tessera/internal/config"
	"github.com/tessera-shell/tessera/internal/daemon/server"
	"github.com/tessera-shell/tessera/internal/daemon/watcher"
	"github.com/tessera-shell/tessera/internal/dock"
	"github.com/tessera-shell/tessera/internal/hypr"
	"github.com/tessera-shell/tessera/internal/icons"
	"github.com/tessera-shell/tessera/internal/logging"
	"github.com/tessera-shell/tessera/internal/models"
)

// Options configures a Daemon.
type Options struct {
	Settings *models.Settings
	Hypr     hypr.Paths
	Port     int // 0 for dynamic allocation

	// Sources overrides the system readers behind the bar gauges.
	Sources *bar.Sources
	// Clock drives the bar poller. Defaults to the wall clock.
	Clock clock.Clock
	// OnShutdown is called by the Shutdown RPC. Defaults to SIGINT to self.
	OnShutdown func()
	// KeepLogLevel stops settings reloads from changing the global level.
	KeepLogLevel bool
}

// Daemon owns every long-running component of tesserad.
type Daemon struct {
	opts     Options
	settings *models.Settings
	log      zerolog.Logger

	hypr    *hypr.Service
	icons   *icons.Set
	dock    *dock.Dock
	poller  *bar.Poller
	watcher *watcher.Watcher
	server  *server.Server
	info    *models.DaemonInfo
}

// New builds the daemon's components. Nothing runs until Run is called, but
// the gRPC listener is already bound so the port is known.
func New(opts Options) (*Daemon, error) {
	if opts.Settings == nil {
		return nil, errors.New("daemon needs settings")
	}
	if opts.Clock == nil {
		opts.Clock = clock.C
	}
	settings := opts.Settings
	log := logging.Component("daemon")

	svc := hypr.NewService(opts.Hypr)

	iconSet, err := icons.Load(settings.Icons)
	if err != nil {
		for _, msg := range icons.Errors(err) {
			log.Warn().Str("error", msg).Msg("icon directory skipped")
		}
	}
	log.Info().
		Int("candidates", iconSet.Index.Len()).
		Int("desktop_entries", iconSet.Desktop.Len()).
		Msg("icon index built")

	dk, err := dock.New(svc, iconSet.Lookup, settings.Dock, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create dock: %w", err)
	}
	dk.Subscribe(svc)

	sources := bar.SystemSources(settings.Bar)
	if opts.Sources != nil {
		sources = *opts.Sources
	}
	sampler := bar.NewSampler(settings.Bar, sources, opts.Clock)
	poller := bar.NewPoller(sampler, opts.Clock, settings.Bar.PollInterval)

	w, err := watcher.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	for _, dir := range config.ExpandHomeAll(settings.Icons.DesktopDirs) {
		if err := w.WatchDesktopDir(dir); err != nil {
			log.Warn().Err(err).Str("dir", dir).Msg("cannot watch desktop entries")
		}
	}

	srv, err := server.New(server.Options{
		Port:       opts.Port,
		Taskbar:    dk,
		Windows:    svc,
		Icons:      iconSet.Lookup,
		Index:      iconSet.Index,
		Metrics:    poller,
		OnShutdown: opts.OnShutdown,
	})
	if err != nil {
		w.Stop()
		return nil, err
	}

	info := models.NewDaemonInfo(uuid.NewString(), srv.Host(), srv.Port(), os.Getpid())
	srv.SetInfo(info)

	return &Daemon{
		opts:     opts,
		settings: settings,
		log:      log,
		hypr:     svc,
		icons:    iconSet,
		dock:     dk,
		poller:   poller,
		watcher:  w,
		server:   srv,
		info:     info,
	}, nil
}

// Info returns the registration written to daemon.yaml.
func (d *Daemon) Info() *models.DaemonInfo {
	return d.info
}

// Dock returns the taskbar reconciler.
func (d *Daemon) Dock() *dock.Dock {
	return d.dock
}

// Server returns the gRPC server.
func (d *Daemon) Server() *server.Server {
	return d.server
}

// Run registers the daemon, runs every component until ctx is cancelled, a
// component fails or SIGINT/SIGTERM arrives, and then unregisters.
func (d *Daemon) Run(ctx context.Context) error {
	if err := config.SaveDaemonInfo(d.info); err != nil {
		d.server.Stop()
		d.watcher.Stop()
		return fmt.Errorf("failed to write daemon info: %w", err)
	}
	defer func() {
		if err := config.RemoveDaemonInfo(); err != nil {
			d.log.Warn().Err(err).Msg("failed to remove daemon info")
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Seed the client list so the dock bootstraps from a real snapshot.
	refreshCtx, refreshCancel := context.WithTimeout(ctx, 2*time.Second)
	if err := d.hypr.Refresh(refreshCtx); err != nil {
		d.log.Warn().Err(err).Msg("initial client list unavailable")
	}
	refreshCancel()

	d.log.Info().
		Str("instance", d.info.InstanceID).
		Int("port", d.info.Port).
		Int("pid", d.info.PID).
		Msg("daemon started")

	stop := func(error) { cancel() }

	var g run.Group
	g.Add(func() error { return d.hypr.Run(ctx) }, stop)
	g.Add(func() error { return d.dock.Run(ctx) }, stop)
	g.Add(func() error { return d.poller.Run(ctx) }, stop)
	g.Add(func() error { return d.watch(ctx) }, stop)
	g.Add(d.server.Serve, func(error) { d.server.Stop() })
	g.Add(run.SignalHandler(ctx, os.Interrupt, syscall.SIGTERM))

	err := g.Run()

	var sig run.SignalError
	switch {
	case errors.As(err, &sig):
		d.log.Info().Stringer("signal", sig.Signal).Msg("shutting down")
		return nil
	case err != nil && ctx.Err() == nil:
		return err
	}
	d.log.Info().Msg("daemon stopped")
	return nil
}

// watch applies settings and desktop entry changes until ctx ends.
func (d *Daemon) watch(ctx context.Context) error {
	if err := d.watcher.Start(); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer d.watcher.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-d.watcher.Events():
			d.handleChange(ctx, ev)
		}
	}
}

func (d *Daemon) handleChange(ctx context.Context, ev watcher.Event) {
	switch ev.Type {
	case watcher.EventSettingsChanged:
		d.reloadSettings(ctx)
	case watcher.EventDesktopEntriesChanged:
		d.reloadDesktopEntries()
	}
}

// reloadSettings applies a changed settings file. A file that fails to load
// or validate leaves the running policies in place.
func (d *Daemon) reloadSettings(ctx context.Context) {
	settings, err := config.LoadSettings()
	if err != nil {
		d.log.Warn().Err(err).Msg("settings reload rejected")
		return
	}

	if err := d.dock.ApplySettings(ctx, settings.Dock); err != nil {
		d.log.Warn().Err(err).Msg("failed to apply dock settings")
		return
	}
	if !d.opts.KeepLogLevel {
		if level, err := zerolog.ParseLevel(settings.LogLevel); err == nil {
			zerolog.SetGlobalLevel(level)
		}
	}
	if settings.Bar.PollInterval != d.settings.Bar.PollInterval {
		d.log.Info().Msg("bar.poll_interval changes apply after a restart")
	}
	d.settings = settings
	d.log.Info().Msg("settings reloaded")
}

func (d *Daemon) reloadDesktopEntries() {
	desktop, err := icons.LoadDesktopEntries(config.ExpandHomeAll(d.settings.Icons.DesktopDirs))
	if err != nil {
		for _, msg := range icons.Errors(err) {
			d.log.Warn().Str("error", msg).Msg("desktop directory skipped")
		}
	}
	d.icons.Lookup.SetDesktop(desktop)
	d.log.Info().Int("desktop_entries", desktop.Len()).Msg("desktop entries reloaded")
}
