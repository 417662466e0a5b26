package view

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Kind is the value type a field sorts and filters by.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindDate
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	case KindList:
		return "list"
	default:
		return "text"
	}
}

// DateLayout is the display and filter format for date fields.
const DateLayout = "2006-01-02"

// Field extracts one named value from an item of type T.
// Exactly one accessor matching Kind must be set.
type Field[T any] struct {
	Key   string
	Label string
	Kind  Kind

	Text   func(T) string
	Number func(T) float64
	Time   func(T) time.Time
	List   func(T) []string

	// Format overrides the string projection of Number fields.
	Format func(float64) string
}

// TextField declares a string field.
func TextField[T any](key, label string, fn func(T) string) Field[T] {
	return Field[T]{Key: key, Label: label, Kind: KindText, Text: fn}
}

// NumberField declares a numeric field.
func NumberField[T any](key, label string, fn func(T) float64) Field[T] {
	return Field[T]{Key: key, Label: label, Kind: KindNumber, Number: fn}
}

// DateField declares a date field. A zero time means "no date".
func DateField[T any](key, label string, fn func(T) time.Time) Field[T] {
	return Field[T]{Key: key, Label: label, Kind: KindDate, Time: fn}
}

// ListField declares a multi-valued field such as tags.
func ListField[T any](key, label string, fn func(T) []string) Field[T] {
	return Field[T]{Key: key, Label: label, Kind: KindList, List: fn}
}

// String projects the field to display text.
func (f Field[T]) String(item T) string {
	switch f.Kind {
	case KindNumber:
		v := f.Number(item)
		if f.Format != nil {
			return f.Format(v)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case KindDate:
		t := f.Time(item)
		if t.IsZero() {
			return ""
		}
		return t.Format(DateLayout)
	case KindList:
		return strings.Join(f.List(item), ", ")
	default:
		return f.Text(item)
	}
}

// Values returns the field as a set of discrete values. Single-valued
// fields yield one element, or none when empty.
func (f Field[T]) Values(item T) []string {
	if f.Kind == KindList {
		return f.List(item)
	}
	s := f.String(item)
	if s == "" {
		return nil
	}
	return []string{s}
}

// Date returns the field as a time, parsing text when the field is not a
// date field.
func (f Field[T]) Date(item T) (time.Time, bool) {
	if f.Kind == KindDate {
		t := f.Time(item)
		return t, !t.IsZero()
	}
	return ParseDate(f.String(item))
}

// Compare orders two items by this field in ascending natural order:
// numeric, chronological, or case-insensitive lexicographic.
func (f Field[T]) Compare(a, b T) int {
	switch f.Kind {
	case KindNumber:
		return cmp.Compare(f.Number(a), f.Number(b))
	case KindDate:
		return f.Time(a).Compare(f.Time(b))
	default:
		return strings.Compare(strings.ToLower(f.String(a)), strings.ToLower(f.String(b)))
	}
}

// Schema describes how to read an item type: its identifier and its
// named fields, in declaration order.
type Schema[T any] struct {
	id     func(T) string
	fields []Field[T]
	byKey  map[string]int
}

// NewSchema builds a schema. Panics on a duplicate or empty field key,
// since schemas are declared once at startup.
func NewSchema[T any](id func(T) string, fields ...Field[T]) *Schema[T] {
	s := &Schema[T]{
		id:     id,
		fields: fields,
		byKey:  make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		if f.Key == "" {
			panic("view: field with empty key")
		}
		if _, dup := s.byKey[f.Key]; dup {
			panic(fmt.Sprintf("view: duplicate field key %q", f.Key))
		}
		s.byKey[f.Key] = i
	}
	return s
}

// ID returns the stable identifier of item.
func (s *Schema[T]) ID(item T) string {
	return s.id(item)
}

// IDs returns the identifiers of items in order.
func (s *Schema[T]) IDs(items []T) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = s.id(item)
	}
	return ids
}

// Field looks up a field by key.
func (s *Schema[T]) Field(key string) (Field[T], bool) {
	i, ok := s.byKey[key]
	if !ok {
		return Field[T]{}, false
	}
	return s.fields[i], true
}

// Fields returns all fields in declaration order.
func (s *Schema[T]) Fields() []Field[T] {
	return s.fields
}

// Project renders the named fields of item as display strings keyed by
// field key. Unknown keys are skipped.
func (s *Schema[T]) Project(item T, keys []string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if f, ok := s.Field(k); ok {
			out[k] = f.String(item)
		}
	}
	return out
}
