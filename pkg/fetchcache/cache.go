// Package fetchcache remembers which repository install paths have already
// been synchronized during the current run.
package fetchcache

import (
	"path/filepath"
	"sync"
)

// Cache is a process-scoped record of fetched install paths. It is safe for
// concurrent use. Records are never evicted.
type Cache struct {
	mu      sync.Mutex
	fetched map[string]bool
	locks   map[string]*sync.Mutex
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		fetched: make(map[string]bool),
		locks:   make(map[string]*sync.Mutex),
	}
}

// Normalize returns the key used for path.
func Normalize(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// MarkFetched records path as fetched.
func (c *Cache) MarkFetched(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetched[Normalize(path)] = true
}

// IsFetched reports whether path was recorded as fetched.
func (c *Cache) IsFetched(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetched[Normalize(path)]
}

// Len returns the number of recorded paths.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, ok := range c.fetched {
		if ok {
			n++
		}
	}
	return n
}

// Do runs fn for path unless path is already fetched, holding a per-path
// lock so concurrent callers for the same path run fn at most once. When
// fn succeeds the path is marked fetched; a failing fn leaves it unmarked.
// hit reports whether fn was skipped.
func (c *Cache) Do(path string, fn func() error) (hit bool, err error) {
	key := Normalize(path)

	c.mu.Lock()
	if c.fetched[key] {
		c.mu.Unlock()
		return true, nil
	}
	lock, ok := c.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[key] = lock
	}
	if _, seen := c.fetched[key]; !seen {
		c.fetched[key] = false
	}
	c.mu.Unlock()

	lock.Lock()
	defer lock.Unlock()

	// Another caller may have finished while we waited.
	if c.IsFetched(key) {
		return true, nil
	}

	if err := fn(); err != nil {
		return false, err
	}
	c.MarkFetched(key)
	return false, nil
}
