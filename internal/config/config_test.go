package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessera-shell/tessera/internal/models"
)

func TestLoadSettings_DefaultsWhenMissing(t *testing.T) {
	t.Setenv("TESSERA_HOME", t.TempDir())

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, models.NewSettings(), s)
}

func TestLoadSettings_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TESSERA_HOME", dir)

	data := []byte("dock:\n  order: workspace\n  removal_delay: 250ms\n  pinned: [firefox]\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, SettingsFileName), data, 0644))

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, models.OrderWorkspace, s.Dock.Order)
	assert.Equal(t, 250*time.Millisecond, s.Dock.RemovalDelay)
	assert.Equal(t, []string{"firefox"}, s.Dock.Pinned)
	assert.Equal(t, "info", s.LogLevel)
	assert.NotEmpty(t, s.Icons.SearchPaths)
	assert.Equal(t, 2*time.Second, s.Bar.PollInterval)
}

func TestLoadSettings_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown order", "dock:\n  order: alphabetical\n"},
		{"bad class pattern", "dock:\n  exclude:\n    class_patterns: ['([']\n"},
		{"bad log level", "log_level: loud\n"},
		{"malformed yaml", "dock: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), SettingsFileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0644))

			_, err := LoadSettingsFrom(path)
			assert.Error(t, err)
		})
	}
}

func TestSaveSettings_RoundTrip(t *testing.T) {
	t.Setenv("TESSERA_HOME", t.TempDir())

	s := models.NewSettings()
	s.Dock.Pinned = []string{"kitty", "firefox"}
	s.Dock.RemovalDelay = 750 * time.Millisecond
	require.NoError(t, SaveSettings(s))

	loaded, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestDaemonInfo_Lifecycle(t *testing.T) {
	t.Setenv("TESSERA_HOME", t.TempDir())

	running, info, err := IsDaemonRunning()
	require.NoError(t, err)
	assert.False(t, running)
	assert.Nil(t, info)

	require.NoError(t, SaveDaemonInfo(models.NewDaemonInfo("abc", "localhost", 4242, os.Getpid())))

	running, info, err = IsDaemonRunning()
	require.NoError(t, err)
	assert.True(t, running)
	assert.Equal(t, 4242, info.Port)
	assert.Equal(t, "abc", info.InstanceID)

	require.NoError(t, RemoveDaemonInfo())
	loaded, err := LoadDaemonInfo()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestIsDaemonRunning_RemovesStaleFile(t *testing.T) {
	t.Setenv("TESSERA_HOME", t.TempDir())

	// PID 0 never belongs to a live daemon.
	require.NoError(t, SaveDaemonInfo(models.NewDaemonInfo("stale", "localhost", 1, 0)))

	running, info, err := IsDaemonRunning()
	require.NoError(t, err)
	assert.False(t, running)
	require.NotNil(t, info)

	path, err := GlobalDaemonFile()
	require.NoError(t, err)
	assert.False(t, FileExists(path))
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".local/share/icons"), ExpandHome("~/.local/share/icons"))
	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, "/usr/share/pixmaps", ExpandHome("/usr/share/pixmaps"))
	assert.Equal(t, "~user/x", ExpandHome("~user/x"))
}
