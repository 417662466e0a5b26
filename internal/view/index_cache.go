package view

import (
	"strconv"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// DefaultIndexCacheSize is the number of index snapshots kept per cache.
const DefaultIndexCacheSize = 16

// IndexCache keeps search indexes keyed by collection name and version,
// so a collection is re-indexed when it changes rather than per query.
// Concurrent requests for the same missing version share one build.
// Safe for concurrent use.
type IndexCache[T any] struct {
	cache  *lru.Cache[string, *Index[T]]
	group  singleflight.Group
	builds atomic.Uint64
}

// NewIndexCache creates a cache holding up to size indexes.
func NewIndexCache[T any](size int) (*IndexCache[T], error) {
	if size <= 0 {
		size = DefaultIndexCacheSize
	}
	c, err := lru.New[string, *Index[T]](size)
	if err != nil {
		return nil, err
	}
	return &IndexCache[T]{cache: c}, nil
}

// Get returns the index for name at version, calling build on a miss.
func (c *IndexCache[T]) Get(name string, version uint64, build func() *Index[T]) *Index[T] {
	key := name + "@" + strconv.FormatUint(version, 10)
	if ix, ok := c.cache.Get(key); ok {
		return ix
	}

	v, _, _ := c.group.Do(key, func() (any, error) {
		if ix, ok := c.cache.Get(key); ok {
			return ix, nil
		}
		ix := build()
		c.builds.Add(1)
		c.cache.Add(key, ix)
		return ix, nil
	})
	return v.(*Index[T])
}

// Builds returns how many indexes this cache has built.
func (c *IndexCache[T]) Builds() uint64 {
	return c.builds.Load()
}

// Purge drops every cached index.
func (c *IndexCache[T]) Purge() {
	c.cache.Purge()
}
