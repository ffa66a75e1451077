package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func renderStatusBar(m *Model, width int) string {
	if m.err != nil {
		return renderErrorBar(m.err.Error(), width)
	}

	left := " " + keyHint("q", "quit") + "  " + keyHint("?", "help") + "  " +
		keyHint("j/k", "select") + "  " + keyHint("Enter", "focus") + "  " + keyHint("r", "reveal")

	var right string
	if m.connected {
		right = lipgloss.NewStyle().Foreground(colorGreen).Render("Connected") + " "
	} else {
		right = lipgloss.NewStyle().Foreground(colorYellow).Bold(true).Render("⚠ Disconnected") + " "
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return statusBarStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

func renderErrorBar(msg string, width int) string {
	style := lipgloss.NewStyle().
		Foreground(colorRed).
		Background(lipgloss.AdaptiveColor{Light: "235", Dark: "236"}).
		Bold(true)
	return style.Width(width).Render(" " + truncate(msg, width-2))
}
