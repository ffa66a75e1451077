package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tessera-shell/tessera/internal/models"
)

// renderEntries draws the dock list, scrolled so the cursor stays in view.
func renderEntries(entries []models.Entry, cursor, width, height int) string {
	if len(entries) == 0 {
		return overlayDimStyle.Render("\n  No windows")
	}
	if height < 1 {
		height = 1
	}

	start := 0
	if cursor >= height {
		start = cursor - height + 1
	}
	end := start + height
	if end > len(entries) {
		end = len(entries)
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		line := renderEntry(entries[i], width)
		if i == cursor {
			line = selectedItemStyle.Width(width).Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func renderEntry(e models.Entry, width int) string {
	marker := "  "
	if e.Pinned {
		marker = entryPinnedStyle.Render("● ")
	}

	ws := hintStyle.Render(fmt.Sprintf("[%d]", e.WorkspaceID))
	class := entryClassStyle.Render(e.Class)
	prefix := " " + marker + ws + " " + class + "  "

	titleStyle := entryVisibleStyle
	title := e.Title
	if e.Phase == models.EntryHiding {
		titleStyle = entryHidingStyle
		title += " (closing)"
	}

	room := width - lipgloss.Width(prefix) - 1
	return prefix + titleStyle.Render(truncate(title, room))
}

// renderPinned draws the pinned group as one row of launcher chips. Running
// apps are bright, the focused one is highlighted, the rest are dimmed.
func renderPinned(apps []models.PinnedApp, width int) string {
	if len(apps) == 0 {
		return ""
	}
	chips := make([]string, 0, len(apps))
	for _, app := range apps {
		style := entryHidingStyle
		switch {
		case app.Focused:
			style = selectedItemStyle
		case app.Running:
			style = entryPinnedStyle
		}
		chips = append(chips, style.Render(app.Term))
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(" " + strings.Join(chips, "  "))
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
