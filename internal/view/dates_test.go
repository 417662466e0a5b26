package view

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"2024-01-15", "2024-01-15", true},
		{"2024/01/15", "2024-01-15", true},
		{"1/15/2024", "2024-01-15", true},
		{"01-15-2024", "2024-01-15", true},
		{"15.1.2024", "", false},
		{"Jan 15, 2024", "2024-01-15", true},
		{"20240115", "2024-01-15", true},
		{"2024-01-15T13:45:00Z", "2024-01-15", true},
		{"1/15/24", "2024-01-15", true},
		{"  2024-01-15  ", "2024-01-15", true},
		{"", "", false},
		{"yesterday", "", false},
		{"2024-13-01", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseDate(tt.in)
		if ok != tt.wantOK {
			t.Errorf("ParseDate(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			continue
		}
		if ok && got.Format(DateLayout) != tt.want {
			t.Errorf("ParseDate(%q) = %s, want %s", tt.in, got.Format(DateLayout), tt.want)
		}
	}
}

func TestParseDate_TwoDigitYearPivot(t *testing.T) {
	far := (time.Now().Year() + TwoDigitYearPivot + 5) % 100
	in := "1/2/" + twoDigits(far)

	got, ok := ParseDate(in)
	if !ok {
		t.Fatalf("ParseDate(%q) failed", in)
	}
	if got.Year() > time.Now().Year()+TwoDigitYearPivot {
		t.Errorf("ParseDate(%q) year = %d, beyond pivot", in, got.Year())
	}
}

func twoDigits(n int) string {
	return string(rune('0'+n/10)) + string(rune('0'+n%10))
}

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		in       string
		from, to string
		wantOK   bool
	}{
		{"2024-01-15", "2024-01-15", "2024-01-15", true},
		{"2024-01-01..2024-01-31", "2024-01-01", "2024-01-31", true},
		{"2024-01-31..2024-01-01", "2024-01-01", "2024-01-31", true},
		{"2024-01-10..", "2024-01-10", "", true},
		{"..2024-01-10", "", "2024-01-10", true},
		{"..", "", "", false},
		{"2024-01-01..nope", "", "", false},
		{"", "", "", false},
	}

	for _, tt := range tests {
		r, ok := ParseDateRange(tt.in)
		if ok != tt.wantOK {
			t.Errorf("ParseDateRange(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if got := formatDay(r.From); got != tt.from {
			t.Errorf("ParseDateRange(%q).From = %q, want %q", tt.in, got, tt.from)
		}
		if got := formatDay(r.To); got != tt.to {
			t.Errorf("ParseDateRange(%q).To = %q, want %q", tt.in, got, tt.to)
		}
	}
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

func TestDateRange_Contains(t *testing.T) {
	r, _ := ParseDateRange("2024-01-08..2024-01-12")

	tests := []struct {
		at   time.Time
		want bool
	}{
		{day("2024-01-07"), false},
		{day("2024-01-08"), true},
		{day("2024-01-12").Add(23 * time.Hour), true},
		{day("2024-01-13"), false},
		{time.Time{}, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.at); got != tt.want {
			t.Errorf("Contains(%s) = %v, want %v", tt.at, got, tt.want)
		}
	}

	open, _ := ParseDateRange("2024-01-10..")
	if !open.Contains(day("2030-06-01")) {
		t.Error("open-ended range should contain far future")
	}
}

func TestDateRange_String(t *testing.T) {
	for _, in := range []string{"2024-01-15", "2024-01-01..2024-01-31", "2024-01-10..", "..2024-01-10"} {
		r, ok := ParseDateRange(in)
		if !ok {
			t.Fatalf("ParseDateRange(%q) failed", in)
		}
		if got := r.String(); got != in {
			t.Errorf("String() = %q, want %q", got, in)
		}
	}
}
