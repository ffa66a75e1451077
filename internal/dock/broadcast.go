package dock

import (
	"sync"

	"github.com/google/uuid"

	"github.com/tessera-shell/tessera/internal/models"
)

// Snapshot is one published version of the display list.
type Snapshot struct {
	Version uint64             `json:"version" yaml:"version"`
	Entries []models.Entry     `json:"entries" yaml:"entries"`
	Pending int                `json:"pending" yaml:"pending"`
	Pinned  []models.PinnedApp `json:"pinned,omitempty" yaml:"pinned,omitempty"`
	Active  string             `json:"active,omitempty" yaml:"active,omitempty"`
}

// broadcaster fans snapshots out to subscribers. Each subscriber channel
// holds at most one snapshot; a slow reader only ever sees the latest one.
type broadcaster struct {
	mu   sync.Mutex
	subs map[string]chan Snapshot
	last Snapshot
}

func newBroadcaster() *broadcaster {
	return &broadcaster{subs: make(map[string]chan Snapshot)}
}

// subscribe registers a subscriber primed with the latest snapshot.
func (b *broadcaster) subscribe() (string, <-chan Snapshot) {
	id := uuid.New().String()
	ch := make(chan Snapshot, 1)

	b.mu.Lock()
	defer b.mu.Unlock()
	ch <- b.last
	b.subs[id] = ch
	return id, ch
}

func (b *broadcaster) latest() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last
}

func (b *broadcaster) unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
	}
}

func (b *broadcaster) publish(s Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.last = s
	for _, ch := range b.subs {
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
}

func (b *broadcaster) closeAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}

func (b *broadcaster) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
