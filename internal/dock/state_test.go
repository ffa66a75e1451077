package dock

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessera-shell/tessera/internal/icons"
	"github.com/tessera-shell/tessera/internal/models"
)

type iconMap map[string]string

func (m iconMap) Icon(class string) models.Icon {
	return models.Icon{Path: m[class], Name: class}
}

func client(addr, class, title string, ws int) models.Client {
	return models.Client{
		Address:   addr,
		Class:     class,
		Title:     title,
		Workspace: models.WorkspaceRef{ID: ws},
		PID:       100,
	}
}

func newTestState(t *testing.T, delay time.Duration) *State {
	t.Helper()
	exclude, err := NewExclusionPolicy(models.NewSettings().Dock.Exclude)
	require.NoError(t, err)
	return NewState(exclude, NewOrderPolicy(models.OrderInsertion, nil), iconMap{}, delay)
}

func addresses(entries []models.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Address)
	}
	return out
}

func scheduled(t *testing.T, effects []Effect) ScheduleRemoval {
	t.Helper()
	require.Len(t, effects, 1)
	s, ok := effects[0].(ScheduleRemoval)
	require.True(t, ok, "expected ScheduleRemoval, got %T", effects[0])
	return s
}

func TestExclusionPolicy(t *testing.T) {
	policy, err := NewExclusionPolicy(models.ExcludeConfig{
		TitleMarkers:  []string{"- Visual Studio Code"},
		ClassPatterns: []string{"^xdg-desktop-portal"},
	})
	require.NoError(t, err)

	tests := []struct {
		name     string
		client   *models.Client
		excluded bool
		reason   string
	}{
		{"nil client", nil, true, "missing"},
		{"placeholder", &models.Client{}, true, "placeholder"},
		{"ide marker", &models.Client{Title: "main.go - Visual Studio Code", Class: "code"}, true, "title-marker"},
		{"ide without marker", &models.Client{Title: "My Project - VSCode", Class: "code"}, false, ""},
		{"class pattern", &models.Client{Title: "Portal", Class: "xdg-desktop-portal-gtk"}, true, "class-pattern"},
		{"regular window", &models.Client{Title: "Mozilla Firefox", Class: "firefox"}, false, ""},
		{"title only", &models.Client{Title: "untitled"}, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.excluded, policy.ShouldExclude(tt.client))
			reason, _ := policy.Reason(tt.client)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestDefaultExclusionPolicyHidesIDEHelpers(t *testing.T) {
	policy, err := NewExclusionPolicy(models.NewSettings().Dock.Exclude)
	require.NoError(t, err)

	reason, excluded := policy.Reason(&models.Client{Class: "jetbrains-goland", Title: "win0"})
	assert.True(t, excluded)
	assert.Equal(t, "title-marker", reason)

	assert.True(t, policy.ShouldExclude(&models.Client{Class: "code", Title: "main.go - Visual Studio Code"}))
	assert.False(t, policy.ShouldExclude(&models.Client{Class: "jetbrains-goland", Title: "tessera – dock.go"}))
}

func TestExclusionPolicyFirstMatchWins(t *testing.T) {
	calls := 0
	policy := NewExclusionPolicyFrom(
		Predicate{Name: "always", Match: func(*models.Client) bool { return true }},
		Predicate{Name: "counted", Match: func(*models.Client) bool { calls++; return true }},
	)
	reason, excluded := policy.Reason(&models.Client{Class: "x"})
	assert.True(t, excluded)
	assert.Equal(t, "always", reason)
	assert.Zero(t, calls)
}

func TestExclusionPolicyInvalidPattern(t *testing.T) {
	_, err := NewExclusionPolicy(models.ExcludeConfig{ClassPatterns: []string{"("}})
	require.Error(t, err)
}

func TestAddResolvesIconFromCandidates(t *testing.T) {
	resolver := icons.NewResolver(icons.NewCache(), icons.NewIndex([]string{
		"/usr/share/icons/hicolor/scalable/apps/kitty.svg",
		"/usr/share/pixmaps/firefox.png",
	}))
	lookup := icons.NewLookup(resolver, nil, nil)
	exclude, err := NewExclusionPolicy(models.ExcludeConfig{})
	require.NoError(t, err)
	s := NewState(exclude, NewOrderPolicy("", nil), lookup, time.Second)

	c := client("0xAAA", "firefox", "Mozilla Firefox", 1)
	assert.Empty(t, s.Add(&c))

	e, ok := s.Get("0xAAA")
	require.True(t, ok)
	assert.Equal(t, "/usr/share/pixmaps/firefox.png", e.IconPath)
	assert.True(t, e.Visible)
	assert.Equal(t, models.EntryVisible, e.Phase)
}

func TestAddSkipsExcludedClients(t *testing.T) {
	s := newTestState(t, time.Second)
	assert.Empty(t, s.Add(nil))
	placeholder := models.Client{Address: "0x1", PID: 5}
	assert.Empty(t, s.Add(&placeholder))
	assert.Zero(t, s.Len())
}

func TestAddRemoveSequences(t *testing.T) {
	// Delays never overlap: each removal expires before the next event.
	tests := []struct {
		name string
		ops  []string
		want []string
	}{
		{"empty", nil, []string{}},
		{"adds only", []string{"+a", "+b", "+c"}, []string{"a", "b", "c"}},
		{"add then remove", []string{"+a", "+b", "-a"}, []string{"b"}},
		{"remove unknown", []string{"-x", "+a"}, []string{"a"}},
		{"re-add after destroy", []string{"+a", "-a", "+a"}, []string{"a"}},
		{"duplicate add", []string{"+a", "+a"}, []string{"a"}},
		{"remove everything", []string{"+a", "+b", "-b", "-a"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState(t, time.Second)
			for _, op := range tt.ops {
				addr := op[1:]
				if op[0] == '+' {
					c := client(addr, "app-"+addr, "window "+addr, 1)
					s.Add(&c)
					continue
				}
				for _, eff := range s.Remove(addr) {
					sr := eff.(ScheduleRemoval)
					require.True(t, s.Expire(sr.Address, sr.Gen))
				}
			}
			got := addresses(s.Entries())
			sort.Strings(got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRemoveThenAddBeforeDelay(t *testing.T) {
	s := newTestState(t, time.Second)
	c := client("0xAAA", "firefox", "Mozilla Firefox", 1)
	s.Add(&c)

	removal := scheduled(t, s.Remove("0xAAA"))
	assert.Equal(t, time.Second, removal.After)
	timer := &fakeTimer{}
	require.True(t, s.AttachTimer(removal.Address, removal.Gen, timer))

	hiding, _ := s.Get("0xAAA")
	assert.False(t, hiding.Visible)
	assert.Equal(t, models.EntryHiding, hiding.Phase)

	effects := s.Add(&c)
	require.Len(t, effects, 1)
	cancel, ok := effects[0].(CancelRemoval)
	require.True(t, ok)
	assert.Equal(t, removal.Gen, cancel.Gen)
	assert.Same(t, timer, cancel.Timer)

	// The stale callback still fires if it raced the cancellation.
	assert.False(t, s.Expire(removal.Address, removal.Gen))

	e, ok := s.Get("0xAAA")
	require.True(t, ok)
	assert.True(t, e.Visible)
	assert.Equal(t, models.EntryVisible, e.Phase)
}

func TestRemoveIsIdempotentWhileHiding(t *testing.T) {
	s := newTestState(t, time.Second)
	c := client("0x1", "kitty", "kitty", 1)
	s.Add(&c)
	scheduled(t, s.Remove("0x1"))
	assert.Empty(t, s.Remove("0x1"))
	assert.Equal(t, 1, s.Pending())
}

func TestRemoveWithoutDelayPurges(t *testing.T) {
	s := newTestState(t, 0)
	c := client("0x1", "kitty", "kitty", 1)
	s.Add(&c)
	assert.Empty(t, s.Remove("0x1"))
	assert.Zero(t, s.Len())
}

func TestUpdate(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		s := newTestState(t, time.Second)
		assert.Empty(t, s.Update(nil))
		assert.Empty(t, s.Entries())
	})

	t.Run("unresolved pids are skipped", func(t *testing.T) {
		s := newTestState(t, time.Second)
		pending := client("0x2", "kitty", "kitty", 1)
		pending.PID = models.PIDUnresolved
		s.Update([]models.Client{client("0x1", "firefox", "Firefox", 1), pending})
		assert.Equal(t, []string{"0x1"}, addresses(s.Entries()))
	})

	t.Run("provisional entries survive", func(t *testing.T) {
		s := newTestState(t, time.Second)
		pending := client("0x2", "kitty", "kitty", 1)
		pending.PID = models.PIDUnresolved
		s.Add(&pending)
		assert.Empty(t, s.Update([]models.Client{pending}))
		assert.Equal(t, []string{"0x2"}, addresses(s.Entries()))
	})

	t.Run("refreshes titles and drops missing clients", func(t *testing.T) {
		s := newTestState(t, time.Second)
		s.Update([]models.Client{
			client("0x1", "firefox", "Firefox", 1),
			client("0x2", "kitty", "kitty", 2),
		})
		effects := s.Update([]models.Client{client("0x1", "firefox", "New Tab - Firefox", 3)})

		removal := scheduled(t, effects)
		assert.Equal(t, "0x2", removal.Address)
		e, _ := s.Get("0x1")
		assert.Equal(t, "New Tab - Firefox", e.Title)
		assert.Equal(t, 1, e.WorkspaceID)
	})

	t.Run("empty list hides everything", func(t *testing.T) {
		s := newTestState(t, 0)
		s.Update([]models.Client{client("0x1", "firefox", "Firefox", 1)})
		s.Update([]models.Client{})
		assert.Empty(t, s.Entries())
	})
}

func TestRevealPurgesHidingEntries(t *testing.T) {
	s := newTestState(t, time.Second)
	a := client("0x1", "firefox", "Firefox", 1)
	b := client("0x2", "kitty", "kitty", 1)
	s.Add(&a)
	s.Add(&b)
	removal := scheduled(t, s.Remove("0x1"))
	timer := &fakeTimer{}
	s.AttachTimer(removal.Address, removal.Gen, timer)

	effects := s.Reveal()
	require.Len(t, effects, 1)
	assert.Same(t, timer, effects[0].(CancelRemoval).Timer)
	assert.Equal(t, []string{"0x2"}, addresses(s.Entries()))
	assert.Zero(t, s.Pending())
	assert.False(t, s.Expire(removal.Address, removal.Gen))
}

func TestOrderPolicy(t *testing.T) {
	clients := []models.Client{
		client("0x1", "kitty", "kitty", 3),
		client("0x2", "firefox", "Firefox", 2),
		client("0x3", "thunar", "Files", 1),
		client("0x4", "Spotify", "Spotify", 2),
	}

	tests := []struct {
		name   string
		mode   string
		pinned []string
		want   []string
	}{
		{"insertion", models.OrderInsertion, nil, []string{"0x1", "0x2", "0x3", "0x4"}},
		{"workspace", models.OrderWorkspace, nil, []string{"0x3", "0x2", "0x4", "0x1"}},
		{"unknown mode falls back", "alphabetical", nil, []string{"0x1", "0x2", "0x3", "0x4"}},
		{"pinned first", models.OrderInsertion, []string{"spotify", "thunar"}, []string{"0x4", "0x3", "0x1", "0x2"}},
		{"pinned with workspace", models.OrderWorkspace, []string{"kitty"}, []string{"0x1", "0x3", "0x2", "0x4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exclude, err := NewExclusionPolicy(models.ExcludeConfig{})
			require.NoError(t, err)
			s := NewState(exclude, NewOrderPolicy(tt.mode, tt.pinned), nil, time.Second)
			s.Update(clients)
			assert.Equal(t, tt.want, addresses(s.Entries()))
		})
	}
}

func TestSetPoliciesRepins(t *testing.T) {
	s := newTestState(t, time.Second)
	c := client("0x1", "firefox", "Firefox", 1)
	s.Add(&c)

	exclude, err := NewExclusionPolicy(models.ExcludeConfig{})
	require.NoError(t, err)
	s.SetPolicies(exclude, NewOrderPolicy(models.OrderInsertion, []string{"Firefox"}), 0)

	e, _ := s.Get("0x1")
	assert.True(t, e.Pinned)
	assert.Empty(t, s.Remove("0x1"))
	assert.Zero(t, s.Len())
}
