package catalog

import (
	"sort"
	"sync"

	"socialstack/internal/model"
)

// Registry holds the live index of every named catalog. Indexes are
// immutable; Replace swaps the pointer.
type Registry struct {
	mu      sync.RWMutex
	indexes map[string]*Index
}

// NewRegistry builds a registry from named item lists.
func NewRegistry(catalogs map[string][]model.CatalogItem) *Registry {
	r := &Registry{indexes: make(map[string]*Index, len(catalogs))}
	for name, items := range catalogs {
		r.indexes[name] = Build(items)
	}
	return r
}

// Get returns the index registered under name.
func (r *Registry) Get(name string) (*Index, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.indexes[name]
	return idx, ok
}

// Replace installs a freshly built index for name.
func (r *Registry) Replace(name string, items []model.CatalogItem) *Index {
	idx := Build(items)
	r.mu.Lock()
	r.indexes[name] = idx
	r.mu.Unlock()
	return idx
}

// Names lists registered catalogs alphabetically.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.indexes))
	for n := range r.indexes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
