// Package export renders a sequence of items as a downloadable file.
//
// Every format works from the same projection: an ordered list of columns
// and a cell function that turns an item and a column key into display
// text. Items are written in the order given; callers pass the result of
// the view pipeline so exports honour the user's query, filters and sort
// across all pages.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// Format is an export file format.
type Format string

const (
	CSV  Format = "csv"
	PDF  Format = "pdf"
	JSON Format = "json"
)

// Formats lists the supported formats in menu order.
var Formats = []Format{CSV, PDF, JSON}

// ErrUnsupportedFormat is returned for a format name that is not one of
// Formats.
var ErrUnsupportedFormat = errors.New("unsupported export format")

const (
	DefaultFilename = "export"
	DefaultTitle    = "Data Export"
)

// ParseFormat reads a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Extension returns the file extension without the dot.
func (f Format) Extension() string {
	return string(f)
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case CSV:
		return "text/csv; charset=utf-8"
	case PDF:
		return "application/pdf"
	case JSON:
		return "application/json"
	default:
		return "application/octet-stream"
	}
}

// Column is one exported column: Key selects the value, Label heads it.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Options control an export. Zero values fall back to the defaults.
type Options struct {
	Filename    string
	Title       string
	Columns     []Column
	GeneratedAt time.Time
}

func (o Options) withDefaults() Options {
	if strings.TrimSpace(o.Filename) == "" {
		o.Filename = DefaultFilename
	}
	if strings.TrimSpace(o.Title) == "" {
		o.Title = DefaultTitle
	}
	if o.GeneratedAt.IsZero() {
		o.GeneratedAt = time.Now()
	}
	return o
}

// FileName returns the download name for format f, e.g. "export.csv".
func (o Options) FileName(f Format) string {
	return o.withDefaults().Filename + "." + f.Extension()
}

// CellFunc projects one column of an item to text.
type CellFunc[T any] func(item T, key string) string

// Write renders items in format f to w.
func Write[T any](w io.Writer, f Format, items []T, opts Options, cell CellFunc[T]) error {
	opts = opts.withDefaults()
	if len(opts.Columns) == 0 {
		return errors.New("export: no columns")
	}

	rows := func(yield func([]string) bool) {
		for _, item := range items {
			record := make([]string, len(opts.Columns))
			for i, col := range opts.Columns {
				record[i] = cell(item, col.Key)
			}
			if !yield(record) {
				return
			}
		}
	}

	var err error
	switch f {
	case CSV:
		err = writeCSV(w, opts, rows)
	case PDF:
		err = writePDF(w, opts, rows)
	case JSON:
		err = writeJSON(w, opts, rows)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(f))
	}
	if err != nil {
		return fmt.Errorf("export %s: %w", f, err)
	}
	return nil
}
