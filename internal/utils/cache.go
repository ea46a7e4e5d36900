package utils

import (
	"os"
	"sync"
	"time"
)

// fileStamp identifies one version of a file on disk
type fileStamp struct {
	modTime time.Time
	size    int64
}

func stampOf(path string) (fileStamp, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return fileStamp{}, err
	}
	return fileStamp{modTime: stat.ModTime(), size: stat.Size()}, nil
}

func (s fileStamp) matches(o fileStamp) bool {
	return s.size == o.size && s.modTime.Equal(o.modTime)
}

type cacheEntry[V any] struct {
	value V
	stamp fileStamp
}

// FileCache caches values derived from files, keyed by path. An entry is
// dropped as soon as the file's modification time or size changes.
type FileCache[V any] struct {
	items map[string]cacheEntry[V]
	mutex sync.RWMutex
}

// NewFileCache creates an empty cache
func NewFileCache[V any]() *FileCache[V] {
	return &FileCache[V]{
		items: make(map[string]cacheEntry[V]),
	}
}

// Get returns the value cached for path if the file is unchanged
func (c *FileCache[V]) Get(path string) (V, bool) {
	c.mutex.RLock()
	entry, exists := c.items[path]
	c.mutex.RUnlock()

	var zero V
	if !exists {
		return zero, false
	}

	if stamp, err := stampOf(path); err == nil && stamp.matches(entry.stamp) {
		return entry.value, true
	}

	// File changed or vanished
	c.Delete(path)
	return zero, false
}

// Set caches value for the current version of path
func (c *FileCache[V]) Set(path string, value V) error {
	stamp, err := stampOf(path)
	if err != nil {
		return err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.items[path] = cacheEntry[V]{value: value, stamp: stamp}
	return nil
}

// Load returns the cached value for path or computes and caches it with
// load. Failed loads are not cached.
func (c *FileCache[V]) Load(path string, load func() (V, error)) (V, error) {
	if value, ok := c.Get(path); ok {
		return value, nil
	}
	value, err := load()
	if err != nil {
		return value, err
	}
	// A file removed after a successful load is simply not cached
	_ = c.Set(path, value)
	return value, nil
}

// Delete removes path from the cache
func (c *FileCache[V]) Delete(path string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.items, path)
}

// Clear removes all items from the cache
func (c *FileCache[V]) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items = make(map[string]cacheEntry[V])
}

// Size returns the number of items in the cache
func (c *FileCache[V]) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.items)
}
