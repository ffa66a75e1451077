// Package dock keeps the dock's taskbar in sync with the window manager's
// client list.
package dock

import (
	"time"

	"github.com/tessera-shell/tessera/internal/models"
)

// IconSource resolves the icon for an application class.
type IconSource interface {
	Icon(class string) models.Icon
}

// Effect is a side effect requested by a state transition. The dock loop
// executes effects; State itself never touches timers.
type Effect interface {
	isEffect()
}

// ScheduleRemoval asks for Expire(Address, Gen) to run after the delay.
type ScheduleRemoval struct {
	Address string
	Gen     uint64
	After   time.Duration
}

// CancelRemoval asks for a pending removal timer to be stopped.
type CancelRemoval struct {
	Address string
	Gen     uint64
	Timer   Timer
}

func (ScheduleRemoval) isEffect() {}
func (CancelRemoval) isEffect()   {}

// entry is a taskbar entry plus its bookkeeping. gen identifies this
// incarnation of the address; a removal scheduled for an older gen is stale.
type entry struct {
	view  models.Entry
	seq   uint64
	gen   uint64
	timer Timer
}

// State is the taskbar: an address-keyed set of entries and the policies
// that shape it. It is not safe for concurrent use; the Dock loop owns it.
type State struct {
	entries      map[string]*entry
	nextSeq      uint64
	nextGen      uint64
	exclude      *ExclusionPolicy
	order        OrderPolicy
	icons        IconSource
	removalDelay time.Duration
}

// NewState creates an empty taskbar.
func NewState(exclude *ExclusionPolicy, order OrderPolicy, icons IconSource, removalDelay time.Duration) *State {
	return &State{
		entries:      make(map[string]*entry),
		exclude:      exclude,
		order:        order,
		icons:        icons,
		removalDelay: removalDelay,
	}
}

// SetPolicies swaps the exclusion and order policies and the removal delay.
// Existing entries are not re-evaluated until the next Update.
func (s *State) SetPolicies(exclude *ExclusionPolicy, order OrderPolicy, removalDelay time.Duration) {
	s.exclude = exclude
	s.order = order
	s.removalDelay = removalDelay
	for _, e := range s.entries {
		e.view.Pinned = order.IsPinned(e.view.Class)
	}
}

// Update resynchronizes the taskbar with the full client list. Clients whose
// PID is still unresolved are not added, but their existing entries are kept.
// Entries whose address is no longer reported, or whose client became
// excluded, start their removal.
func (s *State) Update(clients []models.Client) []Effect {
	var effects []Effect
	keep := make(map[string]bool, len(clients))

	for i := range clients {
		c := &clients[i]
		if !c.Ready() {
			if _, ok := s.entries[c.Address]; ok {
				keep[c.Address] = true
			}
			continue
		}
		if s.exclude.ShouldExclude(c) {
			continue
		}
		keep[c.Address] = true
		effects = append(effects, s.upsert(c)...)
	}

	for addr, e := range s.entries {
		if !keep[addr] && e.view.Phase == models.EntryVisible {
			effects = append(effects, s.Remove(addr)...)
		}
	}
	return effects
}

// Add inserts the entry for a newly reported client. A nil or excluded
// client is skipped.
func (s *State) Add(c *models.Client) []Effect {
	if s.exclude.ShouldExclude(c) {
		return nil
	}
	return s.upsert(c)
}

// upsert refreshes a visible entry or creates a fresh one. A hiding entry for
// the same address is replaced and its pending removal cancelled.
func (s *State) upsert(c *models.Client) []Effect {
	var effects []Effect
	if e, ok := s.entries[c.Address]; ok {
		if e.view.Phase == models.EntryVisible {
			e.view.Title = c.Title
			return nil
		}
		effects = append(effects, CancelRemoval{Address: c.Address, Gen: e.gen, Timer: e.timer})
	}

	icon := models.Icon{}
	if s.icons != nil {
		icon = s.icons.Icon(c.Class)
	}
	s.nextSeq++
	s.nextGen++
	s.entries[c.Address] = &entry{
		seq: s.nextSeq,
		gen: s.nextGen,
		view: models.Entry{
			Address:     c.Address,
			Class:       c.Class,
			Title:       c.Title,
			WorkspaceID: c.Workspace.ID,
			IconPath:    icon.Path,
			IconName:    icon.Name,
			Visible:     true,
			Pinned:      s.order.IsPinned(c.Class),
			Phase:       models.EntryVisible,
		},
	}
	return effects
}

// Remove hides the entry for address and schedules its purge after the
// removal delay. Unknown or already hiding addresses are a no-op.
func (s *State) Remove(address string) []Effect {
	e, ok := s.entries[address]
	if !ok || e.view.Phase != models.EntryVisible {
		return nil
	}
	e.view.Visible = false
	e.view.Phase = models.EntryHiding
	if s.removalDelay <= 0 {
		delete(s.entries, address)
		return nil
	}
	return []Effect{ScheduleRemoval{Address: address, Gen: e.gen, After: s.removalDelay}}
}

// AttachTimer records the timer for a scheduled removal. It returns false
// when the entry was replaced or purged in the meantime; the caller must then
// stop the timer itself.
func (s *State) AttachTimer(address string, gen uint64, t Timer) bool {
	e, ok := s.entries[address]
	if !ok || e.gen != gen || e.view.Phase != models.EntryHiding {
		return false
	}
	e.timer = t
	return true
}

// Expire purges the entry for address if it is still the hiding incarnation
// gen. It returns false for stale expirations.
func (s *State) Expire(address string, gen uint64) bool {
	e, ok := s.entries[address]
	if !ok || e.gen != gen || e.view.Phase != models.EntryHiding {
		return false
	}
	e.view.Phase = models.EntryDestroyed
	delete(s.entries, address)
	return true
}

// Reveal finishes every pending removal at once: hiding entries are purged
// and their timers cancelled. Used when the dock is forcibly shown.
func (s *State) Reveal() []Effect {
	var effects []Effect
	for addr, e := range s.entries {
		if e.view.Phase != models.EntryHiding {
			continue
		}
		effects = append(effects, CancelRemoval{Address: addr, Gen: e.gen, Timer: e.timer})
		e.view.Phase = models.EntryDestroyed
		delete(s.entries, addr)
	}
	return effects
}

// Entries returns the display list, hiding entries included so the UI can
// play their exit transition.
func (s *State) Entries() []models.Entry {
	sorted := make([]*entry, 0, len(s.entries))
	for _, e := range s.entries {
		sorted = append(sorted, e)
	}
	// Map iteration is random; establish insertion order before the policy sort.
	sortBySeq(sorted)
	s.order.sort(sorted)

	out := make([]models.Entry, len(sorted))
	for i, e := range sorted {
		out[i] = e.view
	}
	return out
}

// Get returns the entry for address.
func (s *State) Get(address string) (models.Entry, bool) {
	e, ok := s.entries[address]
	if !ok {
		return models.Entry{}, false
	}
	return e.view, true
}

// Len returns the number of entries, hiding ones included.
func (s *State) Len() int {
	return len(s.entries)
}

// Pending returns the number of entries waiting for removal.
func (s *State) Pending() int {
	n := 0
	for _, e := range s.entries {
		if e.view.Phase == models.EntryHiding {
			n++
		}
	}
	return n
}
