package snapshot

import (
	"path/filepath"
	"sync"
)

type registryKey struct {
	dir  string
	base string
}

// Registry numbers auto-named snapshots per directory and base name.
type Registry struct {
	mu     sync.Mutex
	counts map[registryKey]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{counts: make(map[registryKey]int)}
}

// DefaultRegistry is shared by the package-level functions.
var DefaultRegistry = NewRegistry()

// Next increments and returns the counter for (dir, base), starting at 1.
func (r *Registry) Next(dir, base string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := registryKey{dir: filepath.Clean(dir), base: base}
	r.counts[key]++
	return r.counts[key]
}

// Reset forgets all counters, so the next call reuses sequence number 1.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.counts)
}

// ResetNameCounter resets DefaultRegistry.
func ResetNameCounter() {
	DefaultRegistry.Reset()
}
