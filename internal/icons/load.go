package icons

import (
	"github.com/hashicorp/go-multierror"

	"github.com/tessera-shell/tessera/internal/config"
	"github.com/tessera-shell/tessera/internal/models"
)

// Set is everything built from the icon settings at startup.
type Set struct {
	Lookup  *Lookup
	Index   *Index
	Desktop *DesktopEntries
}

// Load scans the configured search paths and desktop directories. The
// returned Set is always usable; a non-nil error lists the directories that
// could not be read.
func Load(cfg models.IconsConfig) (*Set, error) {
	var result *multierror.Error

	index, err := BuildIndex(config.ExpandHomeAll(cfg.SearchPaths), cfg.Extensions)
	if err != nil {
		result = multierror.Append(result, err)
	}
	desktop, err := LoadDesktopEntries(config.ExpandHomeAll(cfg.DesktopDirs))
	if err != nil {
		result = multierror.Append(result, err)
	}

	resolver := NewResolver(NewCache(), index)
	return &Set{
		Lookup:  NewLookup(resolver, desktop, cfg.Substitutions),
		Index:   index,
		Desktop: desktop,
	}, result.ErrorOrNil()
}

// Errors flattens a Load error into its per-directory messages.
func Errors(err error) []string {
	if err == nil {
		return nil
	}
	merr, ok := err.(*multierror.Error)
	if !ok {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(merr.Errors))
	for _, e := range merr.Errors {
		out = append(out, e.Error())
	}
	return out
}
