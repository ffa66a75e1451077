package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessera-shell/tessera/internal/models"
	pb "github.com/tessera-shell/tessera/proto"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func sampleTaskbar() *pb.Taskbar {
	return &pb.Taskbar{
		Version: 3,
		Pending: 1,
		Entries: []models.Entry{
			{Address: "0x1", Class: "firefox", Title: "Mozilla Firefox", WorkspaceID: 1, Phase: models.EntryVisible},
			{Address: "0x2", Class: "kitty", Title: "~/src", WorkspaceID: 2, Phase: models.EntryVisible, Pinned: true},
			{Address: "0x3", Class: "mpv", Title: "video.mkv", WorkspaceID: 2, Phase: models.EntryHiding},
		},
	}
}

func TestModelNavigation(t *testing.T) {
	m := NewModel(&programRef{})
	m = update(t, m, TaskbarMsg{Taskbar: sampleTaskbar()})

	m = update(t, m, runes("k"))
	assert.Equal(t, 0, m.cursor)

	m = update(t, m, runes("j"))
	m = update(t, m, runes("j"))
	m = update(t, m, runes("j"))
	assert.Equal(t, 2, m.cursor)

	e, ok := m.selected()
	require.True(t, ok)
	assert.Equal(t, "0x3", e.Address)
}

func TestModelClampsCursorOnShrink(t *testing.T) {
	m := NewModel(&programRef{})
	m = update(t, m, TaskbarMsg{Taskbar: sampleTaskbar()})
	m.cursor = 2

	m = update(t, m, TaskbarMsg{Taskbar: &pb.Taskbar{Entries: []models.Entry{{Address: "0x1"}}}})
	assert.Equal(t, 0, m.cursor)

	m = update(t, m, TaskbarMsg{Taskbar: &pb.Taskbar{}})
	assert.Equal(t, 0, m.cursor)
	_, ok := m.selected()
	assert.False(t, ok)
}

func TestModelFocusWithoutConnection(t *testing.T) {
	m := NewModel(&programRef{})
	m = update(t, m, TaskbarMsg{Taskbar: sampleTaskbar()})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestModelHelpToggle(t *testing.T) {
	m := NewModel(&programRef{})
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	m = update(t, m, runes("?"))
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "Keyboard Shortcuts")

	m = update(t, m, runes("x"))
	assert.False(t, m.showHelp)
}

func TestModelView(t *testing.T) {
	m := NewModel(&programRef{})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m.connected = true
	m = update(t, m, TaskbarMsg{Taskbar: sampleTaskbar()})

	view := m.View()
	assert.Contains(t, view, "firefox")
	assert.Contains(t, view, "Mozilla Firefox")
	assert.Contains(t, view, "video.mkv (closing)")
	assert.Contains(t, view, "3 windows")
	assert.Contains(t, view, "n/a")
}

func TestModelViewPinned(t *testing.T) {
	m := NewModel(&programRef{})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m.connected = true
	tb := sampleTaskbar()
	tb.Pinned = []models.PinnedApp{
		{Term: "kitty", Running: true, Focused: true, Title: "~/src"},
		{Term: "spotify", Title: "spotify"},
	}
	m = update(t, m, TaskbarMsg{Taskbar: tb})

	view := m.View()
	assert.Contains(t, view, "spotify")
	assert.Contains(t, view, "Mozilla Firefox")
}

func TestRenderPinned(t *testing.T) {
	assert.Empty(t, renderPinned(nil, 80))
	out := renderPinned([]models.PinnedApp{{Term: "firefox"}, {Term: "kitty", Running: true}}, 80)
	assert.Contains(t, out, "firefox")
	assert.Contains(t, out, "kitty")
}

func TestModelErrorBar(t *testing.T) {
	m := NewModel(&programRef{})
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m = update(t, m, ErrorMsg{Err: errors.New("boom")})
	assert.Contains(t, m.View(), "boom")

	m = update(t, m, ClearErrorMsg{})
	assert.Nil(t, m.err)
}

func TestGaugesView(t *testing.T) {
	g := NewGauges()
	g.SetWidth(80)
	assert.Contains(t, g.View(false), "n/a")

	g.Set(models.Metrics{
		CPUUsage:  models.Gauge{Value: 42, Unit: "%", Percent: 42, Available: true},
		CPUTemp:   models.Gauge{Value: 55.5, Unit: "°C", Percent: 55.5, Available: true},
		PowerDraw: models.Gauge{Unit: "W"},
	})
	view := g.View(true)
	assert.Contains(t, view, "42%")
	assert.Contains(t, view, "55.5 °C")
	assert.Contains(t, view, "n/a")
}

func TestGaugesMarks(t *testing.T) {
	g := NewGauges()
	g.SetWidth(80)
	g.Set(models.Metrics{
		CPUTemp:   models.Gauge{Value: 91, Unit: "°C", Percent: 91, Available: true, Hot: true},
		GPUTemp:   models.Gauge{Value: 60, Unit: "°C", Percent: 60, Available: true},
		PowerDraw: models.Gauge{Value: 20, Unit: "W", Percent: 40, Available: true},
		Charging:  true,
	})
	view := g.View(true)
	assert.Equal(t, 1, strings.Count(view, "hot"))
	assert.Contains(t, view, "charging")

	g.Set(models.Metrics{PowerDraw: models.Gauge{Value: 20, Unit: "W", Available: true}})
	assert.NotContains(t, g.View(true), "charging")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", truncate("hello", 5))
	assert.Equal(t, "hel…", truncate("hello", 4))
	assert.Equal(t, "…", truncate("hello", 1))
	assert.Equal(t, "", truncate("hello", 0))
}
