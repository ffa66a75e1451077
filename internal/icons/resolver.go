package icons

import (
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tessera-shell/tessera/internal/logging"
)

// Resolver maps an application class to an icon file path, memoizing every
// answer (including misses) in its Cache for the life of the process.
type Resolver struct {
	mu       sync.Mutex
	cache    *Cache
	searcher Searcher
	searches int
	log      zerolog.Logger
}

// NewResolver creates a Resolver over the given cache and searcher.
func NewResolver(cache *Cache, searcher Searcher) *Resolver {
	return &Resolver{
		cache:    cache,
		searcher: searcher,
		log:      logging.Component("icons"),
	}
}

// Resolve returns the icon path for class, or "" when none matched. It never
// fails: search errors are logged and cached as a miss.
func (r *Resolver) Resolve(class string) string {
	if class == "" {
		return ""
	}
	if path, ok := r.cache.Get(class); ok {
		return path
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Another caller may have filled it while we waited.
	if path, ok := r.cache.Get(class); ok {
		return path
	}

	r.searches++
	path, err := r.searcher.Search(strings.ToLower(class))
	if err != nil {
		r.log.Debug().Err(err).Str("class", class).Msg("icon search failed")
		path = ""
	}
	r.cache.Set(class, path)
	return path
}

// Searches returns how many times the underlying searcher ran.
func (r *Resolver) Searches() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.searches
}

// Cache returns the resolver's cache.
func (r *Resolver) Cache() *Cache {
	return r.cache
}
