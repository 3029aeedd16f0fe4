package require

import "sync"

// Cache stores requirement check results per scope for the session lifetime.
// This avoids repeated PATH lookups when one process runs several commands.
type Cache struct {
	mu      sync.Mutex
	results map[string]map[string]CheckResult // scope -> name -> result
}

// globalCache is the package-level cache shared across all command runs.
var globalCache = NewCache()

// GlobalCache returns the shared session-level cache.
func GlobalCache() *Cache {
	return globalCache
}

// NewCache creates a new cache instance (useful for testing).
func NewCache() *Cache {
	return &Cache{
		results: make(map[string]map[string]CheckResult),
	}
}

// Get retrieves a cached result for a scope/name combination.
func (c *Cache) Get(scope, name string) (CheckResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if scoped, ok := c.results[scope]; ok {
		if result, ok := scoped[name]; ok {
			return result, true
		}
	}
	return CheckResult{}, false
}

// Set stores a result for a scope/name combination.
func (c *Cache) Set(scope, name string, result CheckResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.results[scope] == nil {
		c.results[scope] = make(map[string]CheckResult)
	}
	c.results[scope][name] = result
}
