package core

import (
	"fmt"
	"sort"
	"sync"
)

// Registry indexes collections by key and navigation group.
type Registry struct {
	mu          sync.RWMutex
	collections map[string]Collection
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{collections: make(map[string]Collection)}
}

// Register adds a collection.
// Panics if a collection with the same key is already registered.
func (r *Registry) Register(c Collection) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := c.Info().Key
	if _, exists := r.collections[key]; exists {
		panic(fmt.Sprintf("collection already registered: %s", key))
	}
	r.collections[key] = c
}

// Get returns a collection by key.
// Returns false if not found.
func (r *Registry) Get(key string) (Collection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.collections[key]
	return c, ok
}

// All returns all registered collections.
// Sorted by group then by key for consistent ordering.
func (r *Registry) All() []Collection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Collection, 0, len(r.collections))
	for _, c := range r.collections {
		result = append(result, c)
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i].Info(), result[j].Info()
		if a.Group != b.Group {
			return a.Group < b.Group
		}
		return a.Key < b.Key
	})

	return result
}

// ByGroup returns all collections in a group.
// Sorted by key for consistent ordering.
func (r *Registry) ByGroup(group string) []Collection {
	var result []Collection
	for _, c := range r.All() {
		if c.Info().Group == group {
			result = append(result, c)
		}
	}
	return result
}

// Groups returns all unique group names.
// Sorted alphabetically.
func (r *Registry) Groups() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	for _, c := range r.collections {
		seen[c.Info().Group] = true
	}

	groups := make([]string, 0, len(seen))
	for g := range seen {
		groups = append(groups, g)
	}

	sort.Strings(groups)
	return groups
}

// Len returns the number of registered collections.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.collections)
}
