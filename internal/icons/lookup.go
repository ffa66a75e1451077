package icons

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/tessera-shell/tessera/internal/models"
)

// Lookup combines the path resolver with the fallbacks used when no icon file
// matches a class: the substitution table, then the desktop entry's Icon key,
// then the class itself as a themed icon name.
type Lookup struct {
	resolver      *Resolver
	substitutions map[string]string

	mu      sync.RWMutex
	desktop *DesktopEntries
}

// NewLookup creates a Lookup. desktop may be nil.
func NewLookup(resolver *Resolver, desktop *DesktopEntries, substitutions map[string]string) *Lookup {
	subs := make(map[string]string, len(substitutions))
	for k, v := range substitutions {
		subs[strings.ToLower(k)] = v
	}
	return &Lookup{resolver: resolver, desktop: desktop, substitutions: subs}
}

// Icon returns the best icon for class.
func (l *Lookup) Icon(class string) models.Icon {
	lower := strings.ToLower(class)
	if path := l.resolver.Resolve(class); path != "" {
		return models.Icon{Path: path, Name: lower}
	}

	name := l.fallbackName(lower)
	if filepath.IsAbs(name) {
		return models.Icon{Path: name, Name: strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))}
	}
	if name != lower {
		if path := l.resolver.Resolve(name); path != "" {
			return models.Icon{Path: path, Name: name}
		}
	}
	return models.Icon{Name: name}
}

func (l *Lookup) fallbackName(lower string) string {
	if sub, ok := l.substitutions[lower]; ok && sub != "" {
		return sub
	}
	l.mu.RLock()
	desktop := l.desktop
	l.mu.RUnlock()
	if e, ok := desktop.Lookup(lower); ok && e.Icon != "" {
		return e.Icon
	}
	return lower
}

// SetDesktop replaces the desktop entries used for fallback names. Paths
// already memoized by the resolver are unaffected.
func (l *Lookup) SetDesktop(desktop *DesktopEntries) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.desktop = desktop
}

// Desktop returns the current desktop entries.
func (l *Lookup) Desktop() *DesktopEntries {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.desktop
}

// Resolver returns the underlying path resolver.
func (l *Lookup) Resolver() *Resolver {
	return l.resolver
}
