package reports

import (
	"sync"
	"time"

	"github.com/de-tools/swot-atlas/pkg/store/artifacts"
)

type cacheEntry[T any] struct {
	modTime time.Time
	size    int64
	value   T
}

// cache memoizes parsed artifacts by path. An entry is only served while the
// artifact's modification time and size are unchanged.
type cache[T any] struct {
	mu      sync.Mutex
	entries map[string]cacheEntry[T]
}

func newCache[T any]() *cache[T] {
	return &cache[T]{entries: make(map[string]cacheEntry[T])}
}

func (c *cache[T]) get(path string, info artifacts.FileInfo) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[path]
	if !ok || !entry.modTime.Equal(info.ModTime) || entry.size != info.Size {
		var zero T
		return zero, false
	}
	return entry.value, true
}

func (c *cache[T]) put(path string, info artifacts.FileInfo, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[path] = cacheEntry[T]{
		modTime: info.ModTime,
		size:    info.Size,
		value:   value,
	}
}

func (c *cache[T]) invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}

func (c *cache[T]) purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}
