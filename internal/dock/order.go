package dock

import (
	"sort"
	"strings"

	"github.com/tessera-shell/tessera/internal/models"
)

// OrderPolicy sorts the display list. Pinned classes always come first in
// their configured order; the rest follow insertion order, or workspace then
// insertion order in workspace mode.
type OrderPolicy struct {
	mode   string
	pinned map[string]int
}

// NewOrderPolicy creates an OrderPolicy. Unknown modes fall back to insertion.
func NewOrderPolicy(mode string, pinned []string) OrderPolicy {
	if mode != models.OrderWorkspace {
		mode = models.OrderInsertion
	}
	ranks := make(map[string]int, len(pinned))
	for i, class := range pinned {
		class = strings.ToLower(class)
		if _, dup := ranks[class]; !dup {
			ranks[class] = i
		}
	}
	return OrderPolicy{mode: mode, pinned: ranks}
}

// Mode returns the active mode.
func (o OrderPolicy) Mode() string {
	return o.mode
}

// IsPinned reports whether class is pinned.
func (o OrderPolicy) IsPinned(class string) bool {
	_, ok := o.pinned[strings.ToLower(class)]
	return ok
}

func (o OrderPolicy) sort(entries []*entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		ra, pa := o.pinned[strings.ToLower(a.view.Class)]
		rb, pb := o.pinned[strings.ToLower(b.view.Class)]
		if pa != pb {
			return pa
		}
		if pa && ra != rb {
			return ra < rb
		}
		if o.mode == models.OrderWorkspace && a.view.WorkspaceID != b.view.WorkspaceID {
			return a.view.WorkspaceID < b.view.WorkspaceID
		}
		return a.seq < b.seq
	})
}

func sortBySeq(entries []*entry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })
}
