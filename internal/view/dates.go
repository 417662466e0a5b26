package view

// dates.go parses user-supplied dates for date fields and date filters.
//
// Accepted inputs mirror what people type into a filter box or a CSV
// column: ISO dates, US slash dates, dotted dates, "Jan 2, 2006" and
// compact 20060102, plus RFC 3339 timestamps. Two-digit years are pivoted
// so that "1/2/06" never lands more than TwoDigitYearPivot years ahead.

import (
	"strings"
	"time"
)

// TwoDigitYearPivot bounds how far into the future a two-digit year may
// resolve before it is moved back a century.
var TwoDigitYearPivot = 20

var (
	fourDigitYearLayouts = []string{
		"2006-01-02", "2006/01/02", "2006.01.02",
		"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006", "1.2.2006", "01.02.2006",
		"Jan 2, 2006", "January 2, 2006", "2 Jan 2006",
		"20060102",
	}
	twoDigitYearLayouts = []string{
		"1/2/06", "01/02/06", "1-2-06", "1.2.06", "01.02.06",
	}
)

// ParseDate parses s in any supported layout and returns the date at
// midnight UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return truncateDay(t), true
	}

	for _, layout := range fourDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	pivotYear := time.Now().Year() + TwoDigitYearPivot
	for _, layout := range twoDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			if t.Year() > pivotYear {
				t = t.AddDate(-100, 0, 0)
			}
			return t, true
		}
	}

	return time.Time{}, false
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// rangeSeparator splits the two ends of a date range filter value.
const rangeSeparator = ".."

// DateRange is an inclusive range of calendar days. A zero end is open.
type DateRange struct {
	From time.Time
	To   time.Time
}

// ParseDateRange parses a date filter value. "2024-01-15" matches that
// day only; "2024-01-01..2024-01-31" matches both ends inclusive; either
// end may be omitted ("2024-01-01.." or "..2024-01-31"). Reversed ends
// are swapped.
func ParseDateRange(s string) (DateRange, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DateRange{}, false
	}

	from, to, isRange := strings.Cut(s, rangeSeparator)
	if !isRange {
		d, ok := ParseDate(s)
		if !ok {
			return DateRange{}, false
		}
		return DateRange{From: d, To: d}, true
	}

	return rangeFromParts(from, to)
}

func rangeFromParts(from, to string) (DateRange, bool) {
	var r DateRange
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" && to == "" {
		return DateRange{}, false
	}
	if from != "" {
		d, ok := ParseDate(from)
		if !ok {
			return DateRange{}, false
		}
		r.From = d
	}
	if to != "" {
		d, ok := ParseDate(to)
		if !ok {
			return DateRange{}, false
		}
		r.To = d
	}
	if !r.From.IsZero() && !r.To.IsZero() && r.To.Before(r.From) {
		r.From, r.To = r.To, r.From
	}
	return r, true
}

// Contains reports whether t falls on a day inside the range.
func (r DateRange) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	day := truncateDay(t)
	if !r.From.IsZero() && day.Before(truncateDay(r.From)) {
		return false
	}
	if !r.To.IsZero() && day.After(truncateDay(r.To)) {
		return false
	}
	return true
}

// String renders the range in filter-value form.
func (r DateRange) String() string {
	switch {
	case r.From.IsZero() && r.To.IsZero():
		return ""
	case r.From.Equal(r.To):
		return r.From.Format(DateLayout)
	}
	var b strings.Builder
	if !r.From.IsZero() {
		b.WriteString(r.From.Format(DateLayout))
	}
	b.WriteString(rangeSeparator)
	if !r.To.IsZero() {
		b.WriteString(r.To.Format(DateLayout))
	}
	return b.String()
}
