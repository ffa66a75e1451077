package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"google.golang.org/grpc"

	"github.com/tessera-shell/tessera/internal/models"
	pb "github.com/tessera-shell/tessera/proto"
)

const metricsInterval = 2 * time.Second

// Model is the root Bubbletea model for the dock viewer.
type Model struct {
	// gRPC connection
	conn      *grpc.ClientConn
	connected bool

	// Daemon data
	taskbar *pb.Taskbar
	metrics *pb.MetricsReply

	// UI state
	cursor   int
	showHelp bool
	width    int
	height   int
	err      error

	spinner spinner.Model
	gauges  *Gauges

	// Program reference for goroutine Send()
	program *programRef

	streamCtx    context.Context
	streamCancel context.CancelFunc
}

// NewModel creates the initial viewer model.
func NewModel(program *programRef) Model {
	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = lipgloss.NewStyle().Foreground(colorCyan)

	return Model{
		spinner: s,
		gauges:  NewGauges(),
		program: program,
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(connectDaemonCmd(), m.spinner.Tick)
}

// Update processes messages and returns an updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.gauges.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if m.connected {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	// ── Daemon connection ──────────────────────────────────────────
	case DaemonConnectedMsg:
		m.conn = msg.Conn
		m.connected = true
		m.err = nil
		m.streamCtx, m.streamCancel = context.WithCancel(context.Background())
		return m, tea.Batch(
			watchTaskbarCmd(m.streamCtx, m.conn, m.program),
			getMetricsCmd(m.conn),
		)

	case DaemonDisconnectedMsg:
		m.disconnect()
		return m, tea.Batch(reconnectTick(), m.spinner.Tick)

	case ReconnectMsg:
		if m.connected {
			return m, nil
		}
		return m, connectDaemonCmd()

	// ── Daemon data ────────────────────────────────────────────────
	case TaskbarMsg:
		m.taskbar = msg.Taskbar
		m.clampCursor()
		return m, nil

	case MetricsMsg:
		m.metrics = msg.Reply
		if msg.Reply != nil && msg.Reply.Ready {
			m.gauges.Set(msg.Reply.Metrics)
		}
		return m, metricsTick(metricsInterval)

	case metricsTickMsg:
		if !m.connected {
			return m, nil
		}
		return m, getMetricsCmd(m.conn)

	case FocusedMsg:
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		if !m.connected {
			return m, tea.Batch(clearErrorAfter(5*time.Second), reconnectTick())
		}
		return m, clearErrorAfter(5 * time.Second)

	case ClearErrorMsg:
		m.err = nil
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		if key.Matches(msg, dockKeys.Quit) {
			return m, m.doQuit()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, dockKeys.Quit):
		return m, m.doQuit()
	case key.Matches(msg, dockKeys.Help):
		m.showHelp = true
	case key.Matches(msg, dockKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, dockKeys.Down):
		if m.cursor < len(m.entries())-1 {
			m.cursor++
		}
	case key.Matches(msg, dockKeys.Focus):
		if e, ok := m.selected(); ok && m.connected {
			return m, focusClientCmd(m.conn, e.Address)
		}
	case key.Matches(msg, dockKeys.Reveal):
		if m.connected {
			return m, revealCmd(m.conn)
		}
	}
	return m, nil
}

func (m *Model) doQuit() tea.Cmd {
	m.disconnect()
	return tea.Quit
}

func (m *Model) disconnect() {
	if m.streamCancel != nil {
		m.streamCancel()
		m.streamCancel = nil
	}
	if m.conn != nil {
		_ = m.conn.Close()
		m.conn = nil
	}
	m.connected = false
}

func (m Model) pinned() []models.PinnedApp {
	if m.taskbar == nil {
		return nil
	}
	return m.taskbar.Pinned
}

func (m Model) entries() []models.Entry {
	if m.taskbar == nil {
		return nil
	}
	return m.taskbar.Entries
}

func (m Model) selected() (models.Entry, bool) {
	entries := m.entries()
	if m.cursor < 0 || m.cursor >= len(entries) {
		return models.Entry{}, false
	}
	return entries[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.entries())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View renders the header, gauges, entry list and status bar.
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	if m.showHelp {
		return renderHelp(m.width, m.height)
	}

	header := m.renderHeader()
	status := renderStatusBar(&m, m.width)

	var body string
	if !m.connected && m.taskbar == nil {
		body = "\n  " + m.spinner.View() + " Waiting for tesserad..."
	} else {
		gauges := panelStyle.Width(m.width - 2).Render(m.gauges.View(m.metrics != nil && m.metrics.Ready))
		listHeight := m.height - lipgloss.Height(header) - lipgloss.Height(gauges) - lipgloss.Height(status)
		parts := []string{gauges}
		if pinned := renderPinned(m.pinned(), m.width); pinned != "" {
			parts = append(parts, pinned)
			listHeight -= lipgloss.Height(pinned)
		}
		parts = append(parts, renderEntries(m.entries(), m.cursor, m.width, listHeight))
		body = lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(status)
	if bodyHeight < 0 {
		bodyHeight = 0
	}
	body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, status)
}

func (m Model) renderHeader() string {
	title := headerStyle.Render(" tessera dock")
	if m.taskbar == nil {
		return title
	}
	info := hintStyle.Render(fmt.Sprintf("%d windows  %d hiding  v%d",
		len(m.taskbar.Entries), m.taskbar.Pending, m.taskbar.Version))
	gap := m.width - lipgloss.Width(title) - lipgloss.Width(info) - 1
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + info
}
