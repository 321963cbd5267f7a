// Package assets serves resources from a stack of resource packs.
package assets

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/blockforge/pkg/resource"
	"github.com/Faultbox/blockforge/pkg/respack"
)

// Manager handles asset loading from resource packs and implements resource.Provider.
type Manager struct {
	archives []*respack.Archive
	cache    *Cache
	log      *zap.Logger
	mu       sync.RWMutex
}

// NewManager creates a new asset manager.
func NewManager(log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		cache: NewCache(),
		log:   log,
	}
}

// AddPack opens a resource pack and adds it to the manager.
// Packs are searched in reverse order (last added = highest priority).
func (m *Manager) AddPack(path string) error {
	archive, err := respack.Open(path)
	if err != nil {
		return fmt.Errorf("opening pack %s: %w", path, err)
	}

	m.mu.Lock()
	m.archives = append(m.archives, archive)
	m.mu.Unlock()

	// Lower-priority bytes may be cached under paths the new pack overrides.
	m.cache.Clear()

	m.log.Info("added resource pack", zap.String("path", path), zap.Int("files", len(archive.List())))
	return nil
}

// Packs returns the opened packs, lowest priority first.
func (m *Manager) Packs() []*respack.Archive {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*respack.Archive(nil), m.archives...)
}

// AssetPath maps a namespaced resource to its location inside a pack.
func AssetPath(r resource.Resource) string {
	return "assets/" + r.Namespace + "/" + r.Path
}

// Get implements resource.Provider.
func (m *Manager) Get(r resource.Resource) ([]byte, error) {
	return m.Load(AssetPath(r))
}

// Load loads a file from the packs.
func (m *Manager) Load(path string) ([]byte, error) {
	// Check cache first
	if data, ok := m.cache.Get(path); ok {
		return data, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	// Search packs in reverse order
	for i := len(m.archives) - 1; i >= 0; i-- {
		data, err := m.archives[i].Read(path)
		if err == nil {
			m.cache.Set(path, data)
			return data, nil
		}
		if !errors.Is(err, respack.ErrFileNotFound) {
			m.log.Warn("pack read failed",
				zap.String("pack", m.archives[i].Name()),
				zap.String("path", path),
				zap.Error(err),
			)
		}
	}

	return nil, fmt.Errorf("%w: %s", resource.ErrNotFound, path)
}

// Close closes all packs.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, archive := range m.archives {
		archive.Close()
	}
	m.archives = nil
	m.cache.Clear()
}

// Stats returns cache statistics.
func (m *Manager) Stats() (hits, misses int) {
	return m.cache.Stats()
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
