package core

import (
	"slices"
	"sync"
)

// store holds one collection as a copy-on-write slice. Readers get an
// immutable snapshot and the version it belongs to; every write swaps
// in a new slice and bumps the version.
type store[T any] struct {
	mu      sync.RWMutex
	items   []T
	version uint64
	id      func(T) string
}

func newStore[T any](id func(T) string, items []T) *store[T] {
	return &store[T]{items: slices.Clone(items), version: 1, id: id}
}

// Snapshot returns the current items and their version. The slice must
// not be modified.
func (s *store[T]) Snapshot() ([]T, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items, s.version
}

func (s *store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *store[T]) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *store[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if s.id(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Add appends items, newest last.
func (s *store[T]) Add(items ...T) {
	if len(items) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]T, 0, len(s.items)+len(items))
	next = append(next, s.items...)
	next = append(next, items...)
	s.commit(next)
}

// Update applies fn to the item with the given id. If fn returns an
// error nothing changes.
func (s *store[T]) Update(id string, fn func(*T) error) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.items, func(item T) bool { return s.id(item) == id })
	if i < 0 {
		var zero T
		return zero, ErrItemNotFound
	}

	item := s.items[i]
	if err := fn(&item); err != nil {
		var zero T
		return zero, err
	}

	next := slices.Clone(s.items)
	next[i] = item
	s.commit(next)
	return item, nil
}

// UpdateMany applies fn to every item whose id is in ids and returns how
// many matched.
func (s *store[T]) UpdateMany(ids []string, fn func(*T)) int {
	want := idSet(ids)
	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.Clone(s.items)
	n := 0
	for i := range next {
		if _, ok := want[s.id(next[i])]; ok {
			fn(&next[i])
			n++
		}
	}
	if n > 0 {
		s.commit(next)
	}
	return n
}

// Delete removes the items whose id is in ids and returns how many went.
func (s *store[T]) Delete(ids []string) int {
	want := idSet(ids)
	s.mu.Lock()
	defer s.mu.Unlock()

	next := slices.DeleteFunc(slices.Clone(s.items), func(item T) bool {
		_, ok := want[s.id(item)]
		return ok
	})
	n := len(s.items) - len(next)
	if n > 0 {
		s.commit(next)
	}
	return n
}

// Select returns the items whose id is in ids, in collection order.
func (s *store[T]) Select(ids []string) []T {
	want := idSet(ids)
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []T
	for _, item := range s.items {
		if _, ok := want[s.id(item)]; ok {
			out = append(out, item)
		}
	}
	return out
}

func (s *store[T]) commit(next []T) {
	s.items = slices.Clip(next)
	s.version++
}

func idSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
