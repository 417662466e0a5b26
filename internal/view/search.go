package view

import (
	"cmp"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"
)

// DefaultThreshold is the default match strictness on a 0..1 scale:
// 0 requires an exact substring, 1 matches anything.
const DefaultThreshold = 0.3

// Index is a search index over one snapshot of a collection. Field text
// is lowercased once at build time so queries only pay for scoring.
// An Index must be rebuilt when the collection it was built from changes.
type Index[T any] struct {
	items []T
	docs  [][]string
}

// NewIndex indexes the given keys of every item. Unknown keys are skipped.
func NewIndex[T any](items []T, schema *Schema[T], keys []string) *Index[T] {
	fields := make([]Field[T], 0, len(keys))
	for _, k := range keys {
		if f, ok := schema.Field(k); ok {
			fields = append(fields, f)
		}
	}

	docs := make([][]string, len(items))
	for i, item := range items {
		var texts []string
		for _, f := range fields {
			for _, v := range f.Values(item) {
				if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
					texts = append(texts, v)
				}
			}
		}
		docs[i] = texts
	}

	return &Index[T]{items: items, docs: docs}
}

// Len returns the number of indexed items.
func (ix *Index[T]) Len() int {
	return len(ix.items)
}

// Items returns the snapshot the index was built from.
func (ix *Index[T]) Items() []T {
	return ix.items
}

type hit struct {
	pos   int
	score float64
}

// Search returns the items matching query within threshold, best match
// first. Equal scores keep collection order. An empty query returns the
// indexed collection unchanged.
func (ix *Index[T]) Search(query string, threshold float64) []T {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return ix.items
	}
	threshold = min(max(threshold, 0), 1)

	var hits []hit
	for i, texts := range ix.docs {
		best := 1.0
		for _, text := range texts {
			if s := score(q, text); s < best {
				best = s
			}
			if best == 0 {
				break
			}
		}
		if best <= threshold {
			hits = append(hits, hit{pos: i, score: best})
		}
	}

	slices.SortStableFunc(hits, func(a, b hit) int {
		return cmp.Compare(a.score, b.score)
	})

	out := make([]T, len(hits))
	for i, h := range hits {
		out[i] = ix.items[h.pos]
	}
	return out
}

// Search is the one-shot form of NewIndex followed by Index.Search.
func Search[T any](items []T, query string, keys []string, schema *Schema[T], threshold float64) []T {
	if strings.TrimSpace(query) == "" {
		return items
	}
	return NewIndex(items, schema, keys).Search(query, threshold)
}

// score is the normalized edit distance between q and the closest
// substring of text, in [0, 1]. A substring hit scores 0.
func score(q, text string) float64 {
	if strings.Contains(text, q) {
		return 0
	}

	qr := []rune(q)
	tr := []rune(text)
	n := len(qr)

	best := n
	if len(tr) <= n {
		best = levenshtein.ComputeDistance(q, text)
	} else {
		// Windows one rune shorter and longer than the query allow a
		// single insertion or deletion to align.
		for w := max(n-1, 1); w <= n+1; w++ {
			for i := 0; i+w <= len(tr); i++ {
				if d := levenshtein.ComputeDistance(q, string(tr[i:i+w])); d < best {
					best = d
				}
				if best == 1 {
					break
				}
			}
		}
	}

	return min(float64(best)/float64(n), 1)
}
