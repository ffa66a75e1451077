package config

import (
	"fmt"
	"regexp"
	"time"

	"github.com/rs/zerolog"

	"github.com/tessera-shell/tessera/internal/models"
)

// LoadSettings loads the global settings from ~/.tessera/settings.yaml.
// If the file doesn't exist, returns default settings.
func LoadSettings() (*models.Settings, error) {
	path, err := GlobalSettingsFile()
	if err != nil {
		return nil, err
	}
	return LoadSettingsFrom(path)
}

// LoadSettingsFrom loads settings from path, filling unset fields with defaults.
func LoadSettingsFrom(path string) (*models.Settings, error) {
	settings, err := LoadYAMLOrDefault(path, models.NewSettings)
	if err != nil {
		return nil, err
	}
	applyDefaults(settings)
	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", path, err)
	}
	return settings, nil
}

// SaveSettings saves the global settings to ~/.tessera/settings.yaml.
func SaveSettings(settings *models.Settings) error {
	path, err := GlobalSettingsFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, settings)
}

// ValidateSettings checks values that would otherwise fail later at runtime.
func ValidateSettings(s *models.Settings) error {
	switch s.Dock.Order {
	case models.OrderInsertion, models.OrderWorkspace:
	default:
		return fmt.Errorf("dock.order must be %q or %q, got %q", models.OrderInsertion, models.OrderWorkspace, s.Dock.Order)
	}
	if s.Dock.RemovalDelay < 0 {
		return fmt.Errorf("dock.removal_delay must not be negative")
	}
	for _, p := range s.Dock.Exclude.ClassPatterns {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("dock.exclude.class_patterns: %w", err)
		}
	}
	if _, err := zerolog.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// applyDefaults fills zero values left by partial settings files.
func applyDefaults(s *models.Settings) {
	d := models.NewSettings()
	if s.Version == 0 {
		s.Version = d.Version
	}
	if s.LogLevel == "" {
		s.LogLevel = d.LogLevel
	}
	if s.Dock.Order == "" {
		s.Dock.Order = d.Dock.Order
	}
	if s.Dock.RemovalDelay == 0 {
		s.Dock.RemovalDelay = d.Dock.RemovalDelay
	}
	if len(s.Icons.SearchPaths) == 0 {
		s.Icons.SearchPaths = d.Icons.SearchPaths
	}
	if len(s.Icons.Extensions) == 0 {
		s.Icons.Extensions = d.Icons.Extensions
	}
	if len(s.Icons.DesktopDirs) == 0 {
		s.Icons.DesktopDirs = d.Icons.DesktopDirs
	}
	if s.Bar.PollInterval <= 0 {
		s.Bar.PollInterval = d.Bar.PollInterval
	}
	if s.Bar.PollInterval < 100*time.Millisecond {
		s.Bar.PollInterval = 100 * time.Millisecond
	}
	if s.Bar.MaxPowerDraw <= 0 {
		s.Bar.MaxPowerDraw = d.Bar.MaxPowerDraw
	}
	if s.Bar.MaxTemp <= 0 {
		s.Bar.MaxTemp = d.Bar.MaxTemp
	}
	if s.Bar.HotTemp <= 0 {
		s.Bar.HotTemp = d.Bar.HotTemp
	}
}
