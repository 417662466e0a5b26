package view

import (
	"slices"
	"strings"
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection reads "desc" (any case) as Desc and anything else as Asc.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), string(Desc)) {
		return Desc
	}
	return Asc
}

// Opposite returns the other direction.
func (d Direction) Opposite() Direction {
	if d == Desc {
		return Asc
	}
	return Desc
}

// SortState is the active sort. The zero value means no sort: items keep
// their original order.
type SortState struct {
	Key       string    `json:"key,omitempty"`
	Direction Direction `json:"direction,omitempty"`
}

// SortBy returns the state sorting key in direction d.
func SortBy(key string, d Direction) SortState {
	if key == "" {
		return SortState{}
	}
	if d != Desc {
		d = Asc
	}
	return SortState{Key: key, Direction: d}
}

// IsNone reports whether no sort is active.
func (s SortState) IsNone() bool {
	return s.Key == ""
}

// Toggle is the sort-header click transition: the active key flips
// direction, any other key starts ascending.
func (s SortState) Toggle(key string) SortState {
	if key == "" {
		return s
	}
	if s.Key == key {
		return SortBy(key, s.Direction.Opposite())
	}
	return SortBy(key, Asc)
}

// Sort orders items by the state's field. Sorting is stable in both
// directions: descending uses the negated ascending comparison, so equal
// keys keep their input order either way. With no sort, or a key the
// schema does not know, the input is returned unchanged.
func Sort[T any](items []T, st SortState, schema *Schema[T]) []T {
	if st.IsNone() {
		return items
	}
	field, ok := schema.Field(st.Key)
	if !ok {
		return items
	}

	out := slices.Clone(items)
	if st.Direction == Desc {
		slices.SortStableFunc(out, func(a, b T) int { return -field.Compare(a, b) })
	} else {
		slices.SortStableFunc(out, field.Compare)
	}
	return out
}
