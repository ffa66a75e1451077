package dock

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tessera-shell/tessera/internal/hypr"
	"github.com/tessera-shell/tessera/internal/logging"
	"github.com/tessera-shell/tessera/internal/models"
)

// ErrStopped is returned by calls made after the dock loop has exited.
var ErrStopped = errors.New("dock stopped")

// ClientSource is the live client list the dock reconciles against.
type ClientSource interface {
	Clients() []models.Client
	Client(address string) (models.Client, bool)
}

// Dock runs the taskbar reconciler on a single goroutine. Window-manager
// notifications, timer expirations and queries are all queued to it, so
// State never needs a lock.
type Dock struct {
	clients ClientSource
	state   *State
	sched   Scheduler
	bus     *broadcaster
	log     zerolog.Logger

	ops     chan func()
	done    chan struct{}
	version uint64
	pinned  []string
	active  string
}

// New creates a dock for the given settings. Call Run to start it.
func New(clients ClientSource, icons IconSource, cfg models.DockConfig, sched Scheduler) (*Dock, error) {
	exclude, err := NewExclusionPolicy(cfg.Exclude)
	if err != nil {
		return nil, err
	}
	if sched == nil {
		sched = NewClockScheduler()
	}
	return &Dock{
		clients: clients,
		state:   NewState(exclude, NewOrderPolicy(cfg.Order, cfg.Pinned), icons, cfg.RemovalDelay),
		sched:   sched,
		bus:     newBroadcaster(),
		log:     logging.Component("dock"),
		ops:     make(chan func(), 64),
		done:    make(chan struct{}),
		pinned:  cfg.Pinned,
	}, nil
}

// Subscribe wires the dock to a window-manager event source.
func (d *Dock) Subscribe(events hypr.ClientEvents) {
	events.OnClientAdded(d.ClientAdded)
	events.OnClientRemoved(d.ClientRemoved)
	events.OnClientsChanged(d.ClientsChanged)
	events.OnActiveChanged(d.ActiveChanged)
}

// Run bootstraps the taskbar from the full client list and processes queued
// operations until ctx is cancelled.
func (d *Dock) Run(ctx context.Context) error {
	defer d.bus.closeAll()
	defer close(d.done)

	d.apply(d.state.Update(d.clients.Clients()))
	d.publish()
	d.log.Info().Int("entries", d.state.Len()).Msg("dock started")

	for {
		select {
		case <-ctx.Done():
			d.log.Info().Msg("dock stopped")
			return nil
		case op := <-d.ops:
			op()
		}
	}
}

// ClientAdded queues the insertion of a newly opened window.
func (d *Dock) ClientAdded(address string) {
	address = hypr.NormalizeAddress(address)
	d.post(func() {
		c, ok := d.clients.Client(address)
		if !ok {
			d.log.Debug().Str("address", address).Msg("added client not found, skipping")
			return
		}
		if reason, excluded := d.state.exclude.Reason(&c); excluded {
			d.log.Debug().Str("address", address).Str("reason", reason).Msg("client excluded")
			return
		}
		d.mutate(d.state.upsert(&c))
	})
}

// ClientRemoved queues the removal of a closed window.
func (d *Dock) ClientRemoved(address string) {
	address = hypr.NormalizeAddress(address)
	d.post(func() {
		d.mutate(d.state.Remove(address))
	})
}

// ClientsChanged queues a full resync.
func (d *Dock) ClientsChanged() {
	d.post(func() {
		d.mutate(d.state.Update(d.clients.Clients()))
	})
}

// ActiveChanged records the focused window for the pinned group.
func (d *Dock) ActiveChanged(address string) {
	address = hypr.NormalizeAddress(address)
	d.post(func() {
		if d.active == address {
			return
		}
		d.active = address
		d.publish()
	})
}

// Reveal is called when the dock is forcibly shown. Pending removals finish
// immediately.
func (d *Dock) Reveal(ctx context.Context) error {
	return d.call(ctx, func() {
		d.mutate(d.state.Reveal())
	})
}

// ApplySettings swaps in new exclusion and ordering policies and resyncs.
func (d *Dock) ApplySettings(ctx context.Context, cfg models.DockConfig) error {
	exclude, err := NewExclusionPolicy(cfg.Exclude)
	if err != nil {
		return err
	}
	return d.call(ctx, func() {
		d.state.SetPolicies(exclude, NewOrderPolicy(cfg.Order, cfg.Pinned), cfg.RemovalDelay)
		d.pinned = cfg.Pinned
		d.mutate(d.state.Update(d.clients.Clients()))
		d.log.Info().Str("order", cfg.Order).Dur("removal_delay", cfg.RemovalDelay).Msg("dock settings applied")
	})
}

// Snapshot returns the current display list.
func (d *Dock) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := d.call(ctx, func() {
		snap = d.snapshot()
	})
	return snap, err
}

// Latest returns the last published snapshot without going through the
// loop. It stays readable after the dock stops.
func (d *Dock) Latest() Snapshot {
	return d.bus.latest()
}

// Watch streams snapshots, starting with the latest one. The channel is
// closed when cancel is called or the dock stops.
func (d *Dock) Watch() (<-chan Snapshot, func()) {
	id, ch := d.bus.subscribe()
	return ch, func() { d.bus.unsubscribe(id) }
}

// Watchers returns the number of active Watch subscriptions.
func (d *Dock) Watchers() int {
	return d.bus.count()
}

func (d *Dock) post(op func()) {
	select {
	case d.ops <- op:
	case <-d.done:
	}
}

func (d *Dock) call(ctx context.Context, op func()) error {
	finished := make(chan struct{})
	wrapped := func() {
		op()
		close(finished)
	}
	select {
	case d.ops <- wrapped:
	case <-d.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-finished:
		return nil
	case <-d.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// mutate executes effects and publishes the resulting display list.
func (d *Dock) mutate(effects []Effect) {
	d.apply(effects)
	d.publish()
}

func (d *Dock) apply(effects []Effect) {
	for _, eff := range effects {
		switch e := eff.(type) {
		case ScheduleRemoval:
			d.schedule(e.Address, e.Gen, e.After)
		case CancelRemoval:
			if e.Timer != nil {
				e.Timer.Stop()
			}
			d.log.Debug().Str("address", e.Address).Uint64("gen", e.Gen).Msg("pending removal cancelled")
		}
	}
}

func (d *Dock) schedule(address string, gen uint64, after time.Duration) {
	t := d.sched.AfterFunc(after, func() {
		d.post(func() {
			if d.state.Expire(address, gen) {
				d.publish()
			}
		})
	})
	if !d.state.AttachTimer(address, gen, t) {
		t.Stop()
	}
}

func (d *Dock) snapshot() Snapshot {
	return Snapshot{
		Version: d.version,
		Entries: d.state.Entries(),
		Pending: d.state.Pending(),
		Pinned:  PinnedApps(d.pinned, d.clients.Clients(), d.active, d.state.icons),
		Active:  d.active,
	}
}

func (d *Dock) publish() {
	d.version++
	d.bus.publish(d.snapshot())
}
