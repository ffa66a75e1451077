package tray

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatWindowTitle(t *testing.T) {
	tests := []struct {
		name string
		w    WindowInfo
		want string
	}{
		{"title with workspace", WindowInfo{Title: "Mozilla Firefox", Class: "firefox", WorkspaceID: 2}, "[2] Mozilla Firefox"},
		{"falls back to class", WindowInfo{Class: "kitty", WorkspaceID: 1}, "[1] kitty"},
		{"special workspace", WindowInfo{Title: "scratch", WorkspaceID: -98}, "scratch"},
		{"truncated", WindowInfo{Title: strings.Repeat("é", 60)}, strings.Repeat("é", 47) + "…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatWindowTitle(tt.w))
		})
	}
}

func TestFormatTooltip(t *testing.T) {
	assert.Equal(t, "Tessera: 0 windows", formatTooltip(0))
	assert.Equal(t, "Tessera: 1 window", formatTooltip(1))
	assert.Equal(t, "Tessera: 3 windows", formatTooltip(3))
}

func TestUpdateWindowsBeforeReady(t *testing.T) {
	UpdateWindows([]WindowInfo{{Address: "0x1"}})
	focusSlot(0)
	slotMu.RLock()
	defer slotMu.RUnlock()
	assert.Empty(t, slotAddresses[0])
}

func TestIconEmbedded(t *testing.T) {
	assert.True(t, len(iconData) > 8)
	assert.Equal(t, "\x89PNG", string(iconData[:4]))
}
