package icons

import (
	"strings"

	"github.com/patrickmn/go-cache"
)

// Cache memoizes class → icon path. An empty path is a cached "not found".
// Entries never expire: the set of application classes seen by one session
// is small and bounded.
type Cache struct {
	c *cache.Cache
}

// NewCache creates an empty Cache with no expiration and no janitor.
func NewCache() *Cache {
	return &Cache{c: cache.New(cache.NoExpiration, 0)}
}

// Get returns the cached path for class (case-insensitive).
func (c *Cache) Get(class string) (string, bool) {
	v, found := c.c.Get(key(class))
	if !found {
		return "", false
	}
	path, _ := v.(string)
	return path, true
}

// Set stores the resolved path for class.
func (c *Cache) Set(class, path string) {
	c.c.Set(key(class), path, cache.NoExpiration)
}

// Len returns the number of cached classes.
func (c *Cache) Len() int {
	return c.c.ItemCount()
}

// Snapshot copies the cache contents.
func (c *Cache) Snapshot() map[string]string {
	items := c.c.Items()
	out := make(map[string]string, len(items))
	for k, item := range items {
		path, _ := item.Object.(string)
		out[k] = path
	}
	return out
}

func key(class string) string {
	return strings.ToLower(class)
}
