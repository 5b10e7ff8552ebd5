package items

import "sync"

// Cache memoizes expensive one-time enumerations ("which thermal
// zones exist") for the lifetime of the manager. The scan function
// for a key runs at most once, even when first accesses race; every
// later call returns the memoized result, including a memoized
// failure. There is no invalidation: hot-plug is out of scope.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	once  sync.Once
	value any
	err   error
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]*cacheEntry)}
}

// GetOrCompute returns the memoized result for key, running scan
// exactly once on first access.
func (c *Cache) GetOrCompute(key string, scan func() (any, error)) (any, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		e = &cacheEntry{}
		c.entries[key] = e
	}
	c.mu.Unlock()

	e.once.Do(func() {
		e.value, e.err = scan()
	})

	return e.value, e.err
}

// cached is a typed wrapper over GetOrCompute.
func cached[T any](c *Cache, key string, scan func() (T, error)) (T, error) {
	v, err := c.GetOrCompute(key, func() (any, error) {
		return scan()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
