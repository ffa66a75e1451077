package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type helpKey struct {
	key  string
	desc string
}

var helpKeys = []helpKey{
	{"j/k ↑/↓", "Select window"},
	{"Enter", "Focus selected window"},
	{"r", "Reveal dock (drop closing entries)"},
	{"?", "Toggle help"},
	{"q", "Quit"},
}

func renderHelp(width, height int) string {
	var b strings.Builder
	b.WriteString(overlayTitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, k := range helpKeys {
		b.WriteString(keyStyle.Width(10).Render(k.key))
		b.WriteString(" ")
		b.WriteString(hintStyle.Render(k.desc))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(overlayDimStyle.Render("Press any key to close"))

	box := overlayStyle.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
