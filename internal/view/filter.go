package view

import (
	"maps"
	"slices"
	"strings"
)

// FilterType selects how a filter value constrains a field.
type FilterType string

const (
	// FilterText matches a case-insensitive substring.
	FilterText FilterType = "text"
	// FilterSelect matches one exact value.
	FilterSelect FilterType = "select"
	// FilterCheckbox matches when the field shares any value with the
	// selected options.
	FilterCheckbox FilterType = "checkbox"
	// FilterDate matches a day or an inclusive day range.
	FilterDate FilterType = "date"
)

// Option is one choice offered by a select or checkbox filter.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FilterSpec declares a filter over the field with the same key.
type FilterSpec struct {
	Key     string     `json:"key"`
	Label   string     `json:"label"`
	Type    FilterType `json:"type"`
	Options []Option   `json:"options,omitempty"`
}

// FilterValue is the user's input for one filter: a single string for
// text, select and date filters, a list of options for checkbox filters.
type FilterValue struct {
	Value  string   `json:"value,omitempty"`
	Values []string `json:"values,omitempty"`
}

// Is returns a single-valued filter value.
func Is(v string) FilterValue {
	return FilterValue{Value: v}
}

// AnyOf returns a multi-valued filter value.
func AnyOf(vs ...string) FilterValue {
	return FilterValue{Values: vs}
}

// IsEmpty reports whether the value constrains nothing.
func (v FilterValue) IsEmpty() bool {
	return len(v.options()) == 0
}

// options returns the non-blank inputs, list first.
func (v FilterValue) options() []string {
	var out []string
	for _, s := range v.Values {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		if s := strings.TrimSpace(v.Value); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// String renders the value for display, joining options with ", ".
func (v FilterValue) String() string {
	return strings.Join(v.options(), ", ")
}

// FilterState maps filter keys to values. Empty values are never stored.
// Treat it as immutable: With and Without return modified copies.
type FilterState map[string]FilterValue

// With returns a copy with key set to v, or with key removed when v is
// empty.
func (fs FilterState) With(key string, v FilterValue) FilterState {
	out := fs.Clone()
	if v.IsEmpty() {
		delete(out, key)
		return out
	}
	out[key] = v
	return out
}

// Without returns a copy with key removed.
func (fs FilterState) Without(key string) FilterState {
	out := fs.Clone()
	delete(out, key)
	return out
}

// Clone returns an independent copy. The copy of a nil state is empty.
func (fs FilterState) Clone() FilterState {
	out := make(FilterState, len(fs))
	maps.Copy(out, fs)
	return out
}

// Chip describes one active filter for display.
type Chip struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// Chips returns the active filters that the schema knows about, in schema
// order.
func (fs FilterState) Chips(specs []FilterSpec) []Chip {
	var chips []Chip
	for _, spec := range specs {
		v, ok := fs[spec.Key]
		if !ok || v.IsEmpty() {
			continue
		}
		chips = append(chips, Chip{Key: spec.Key, Label: spec.Label, Value: v.String()})
	}
	return chips
}

// predicate reports whether an item passes one filter.
type predicate[T any] func(T) bool

// Filter returns the items passing every active filter (AND across keys).
// Keys without a spec, specs without a matching field, and empty values
// are ignored. Items keep their order. With no active filters the input
// is returned unchanged.
func Filter[T any](items []T, state FilterState, specs []FilterSpec, schema *Schema[T]) []T {
	preds := compile(state, specs, schema)
	if len(preds) == 0 {
		return items
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		if matchesAll(item, preds) {
			out = append(out, item)
		}
	}
	return out
}

func matchesAll[T any](item T, preds []predicate[T]) bool {
	for _, p := range preds {
		if !p(item) {
			return false
		}
	}
	return true
}

func compile[T any](state FilterState, specs []FilterSpec, schema *Schema[T]) []predicate[T] {
	var preds []predicate[T]
	for _, spec := range specs {
		v, ok := state[spec.Key]
		if !ok {
			continue
		}
		if v.IsEmpty() {
			continue
		}
		field, ok := schema.Field(spec.Key)
		if !ok {
			continue
		}
		if p := newPredicate(spec.Type, field, v); p != nil {
			preds = append(preds, p)
		}
	}
	return preds
}

func newPredicate[T any](typ FilterType, field Field[T], v FilterValue) predicate[T] {
	opts := v.options()
	switch typ {
	case FilterText:
		needle := strings.ToLower(opts[0])
		return func(item T) bool {
			for _, v := range field.Values(item) {
				if strings.Contains(strings.ToLower(v), needle) {
					return true
				}
			}
			return false
		}

	case FilterSelect:
		want := opts[0]
		return func(item T) bool {
			return slices.Contains(field.Values(item), want)
		}

	case FilterCheckbox:
		return func(item T) bool {
			for _, v := range field.Values(item) {
				for _, o := range opts {
					if strings.EqualFold(v, o) {
						return true
					}
				}
			}
			return false
		}

	case FilterDate:
		r, ok := dateRangeOf(v)
		if !ok {
			return nil
		}
		return func(item T) bool {
			t, ok := field.Date(item)
			return ok && r.Contains(t)
		}
	}
	return nil
}

// dateRangeOf reads a date filter from either a single "from..to" value
// or a two-element [from, to] list whose blank end is open.
func dateRangeOf(v FilterValue) (DateRange, bool) {
	if len(v.Values) == 2 {
		return rangeFromParts(v.Values[0], v.Values[1])
	}
	return ParseDateRange(v.options()[0])
}
