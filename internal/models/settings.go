package models

import "time"

// Order modes for the taskbar display list.
const (
	OrderInsertion = "insertion"
	OrderWorkspace = "workspace"
)

// ExcludeConfig holds the window exclusion rules.
type ExcludeConfig struct {
	TitleMarkers  []string `yaml:"title_markers"`  // substrings marking IDE helper windows
	ClassPatterns []string `yaml:"class_patterns"` // regular expressions matched against the class
}

// DockConfig holds settings for the dock's taskbar.
type DockConfig struct {
	RemovalDelay time.Duration `yaml:"removal_delay"` // large animation duration
	Order        string        `yaml:"order"`         // "insertion" | "workspace"
	Pinned       []string      `yaml:"pinned"`
	Exclude      ExcludeConfig `yaml:"exclude"`
}

// IconsConfig holds settings for icon resolution.
type IconsConfig struct {
	SearchPaths   []string          `yaml:"search_paths"`
	Extensions    []string          `yaml:"extensions"`
	DesktopDirs   []string          `yaml:"desktop_dirs"`
	Substitutions map[string]string `yaml:"substitutions"`
}

// BarConfig holds settings for bar metric polling.
type BarConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
	PowerSupply  string        `yaml:"power_supply"`
	MaxPowerDraw float64       `yaml:"max_power_draw"` // watts at a full gauge
	CPUSensors   []string      `yaml:"cpu_sensors"`
	GPUSensors   []string      `yaml:"gpu_sensors"`
	MaxTemp      float64       `yaml:"max_temp"` // °C at a full gauge
	HotTemp      float64       `yaml:"hot_temp"` // °C above which a temperature is marked hot
}

// Settings represents global application settings.
// This corresponds to ~/.tessera/settings.yaml.
type Settings struct {
	Version  int         `yaml:"version"`
	LogLevel string      `yaml:"log_level"`
	Dock     DockConfig  `yaml:"dock"`
	Icons    IconsConfig `yaml:"icons"`
	Bar      BarConfig   `yaml:"bar"`
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version:  1,
		LogLevel: "info",
		Dock: DockConfig{
			RemovalDelay: 500 * time.Millisecond,
			Order:        OrderInsertion,
			Pinned:       []string{},
			Exclude: ExcludeConfig{
				TitleMarkers:  []string{"- Visual Studio Code", "win0"},
				ClassPatterns: []string{},
			},
		},
		Icons: IconsConfig{
			SearchPaths: []string{
				"~/.local/share/icons",
				"/usr/share/icons/hicolor/scalable/apps",
				"/usr/share/icons/hicolor/256x256/apps",
				"/usr/share/icons/hicolor/48x48/apps",
				"/usr/share/pixmaps",
			},
			Extensions: []string{".svg", ".png"},
			DesktopDirs: []string{
				"~/.local/share/applications",
				"/usr/share/applications",
				"/var/lib/flatpak/exports/share/applications",
			},
			Substitutions: map[string]string{
				"code-url-handler":       "visual-studio-code",
				"code":                   "visual-studio-code",
				"gnome-tweaks":           "org.gnome.tweaks",
				"org.wezfurlong.wezterm": "wezterm",
			},
		},
		Bar: BarConfig{
			PollInterval: 2 * time.Second,
			PowerSupply:  "BAT0",
			MaxPowerDraw: 60,
			CPUSensors:   []string{"coretemp", "k10temp", "cpu_thermal"},
			GPUSensors:   []string{"amdgpu", "nouveau", "radeon"},
			MaxTemp:      100,
			HotTemp:      80,
		},
	}
}
