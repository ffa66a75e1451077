package icons

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/ini.v1"
)

const desktopSection = "Desktop Entry"

// DesktopEntry is the subset of a .desktop file the dock needs.
type DesktopEntry struct {
	ID             string // file name without .desktop
	Path           string
	Name           string
	Icon           string
	StartupWMClass string
	NoDisplay      bool
}

// DesktopEntries indexes .desktop files by the keys a window class may match:
// StartupWMClass, the desktop file ID, and the ID's last dotted segment.
type DesktopEntries struct {
	byKey map[string]DesktopEntry
	count int
}

// LoadDesktopEntries reads every .desktop file directly inside dirs. Earlier
// directories win, so user entries shadow system ones.
func LoadDesktopEntries(dirs []string) (*DesktopEntries, error) {
	d := &DesktopEntries{byKey: make(map[string]DesktopEntry)}
	var result *multierror.Error

	for _, dir := range dirs {
		files, err := os.ReadDir(dir)
		if err != nil {
			if !os.IsNotExist(err) {
				result = multierror.Append(result, fmt.Errorf("desktop dir %s: %w", dir, err))
			}
			continue
		}
		for _, f := range files {
			if f.IsDir() || filepath.Ext(f.Name()) != ".desktop" {
				continue
			}
			entry, err := ParseDesktopFile(filepath.Join(dir, f.Name()))
			if err != nil {
				result = multierror.Append(result, err)
				continue
			}
			d.add(entry)
		}
	}
	return d, result.ErrorOrNil()
}

// ParseDesktopFile reads the [Desktop Entry] group of a .desktop file.
func ParseDesktopFile(path string) (DesktopEntry, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		SkipUnrecognizableLines: true,
	}, path)
	if err != nil {
		return DesktopEntry{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	sec, err := cfg.GetSection(desktopSection)
	if err != nil {
		return DesktopEntry{}, fmt.Errorf("%s: missing [%s] group", path, desktopSection)
	}
	return DesktopEntry{
		ID:             strings.TrimSuffix(filepath.Base(path), ".desktop"),
		Path:           path,
		Name:           sec.Key("Name").String(),
		Icon:           sec.Key("Icon").String(),
		StartupWMClass: sec.Key("StartupWMClass").String(),
		NoDisplay:      sec.Key("NoDisplay").MustBool(false),
	}, nil
}

func (d *DesktopEntries) add(e DesktopEntry) {
	d.count++
	keys := []string{e.StartupWMClass, e.ID}
	if i := strings.LastIndex(e.ID, "."); i >= 0 {
		keys = append(keys, e.ID[i+1:])
	}
	for _, k := range keys {
		k = strings.ToLower(k)
		if k == "" {
			continue
		}
		if _, exists := d.byKey[k]; !exists {
			d.byKey[k] = e
		}
	}
}

// Lookup finds the desktop entry for a window class.
func (d *DesktopEntries) Lookup(class string) (DesktopEntry, bool) {
	if d == nil {
		return DesktopEntry{}, false
	}
	e, ok := d.byKey[strings.ToLower(class)]
	return e, ok
}

// Len returns the number of parsed desktop files.
func (d *DesktopEntries) Len() int {
	if d == nil {
		return 0
	}
	return d.count
}
