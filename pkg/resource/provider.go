package resource

import (
	"fmt"
	"sync"
)

// Provider maps a namespaced resource to its raw bytes.
// Implementations report missing resources with an error wrapping ErrNotFound.
type Provider interface {
	Get(r Resource) ([]byte, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(r Resource) ([]byte, error)

// Get calls f(r).
func (f ProviderFunc) Get(r Resource) ([]byte, error) {
	return f(r)
}

// MapProvider is an in-memory provider that records how often each resource was fetched.
type MapProvider struct {
	mu      sync.Mutex
	files   map[Resource][]byte
	fetches map[Resource]int
}

// NewMapProvider creates an empty in-memory provider.
func NewMapProvider() *MapProvider {
	return &MapProvider{
		files:   make(map[Resource][]byte),
		fetches: make(map[Resource]int),
	}
}

// Put stores data under r, replacing any previous value.
func (p *MapProvider) Put(r Resource, data []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.files[r] = data
}

// PutString is a convenience wrapper around Put.
func (p *MapProvider) PutString(r Resource, data string) {
	p.Put(r, []byte(data))
}

// Get implements Provider.
func (p *MapProvider) Get(r Resource) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.fetches[r]++
	data, ok := p.files[r]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, r)
	}
	return data, nil
}

// Fetches returns how many times r was requested, including misses.
func (p *MapProvider) Fetches(r Resource) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fetches[r]
}
