package core

import (
	"testing"
)

// ----------------------------------------------------------------------------
// ParseNumber Tests
// ----------------------------------------------------------------------------

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   float64
		wantOK bool
	}{
		// Plain numbers
		{name: "positive integer", input: "123", want: 123, wantOK: true},
		{name: "zero", input: "0", want: 0, wantOK: true},
		{name: "negative integer", input: "-456", want: -456, wantOK: true},
		{name: "decimal number", input: "123.45", want: 123.45, wantOK: true},
		{name: "leading decimal point", input: ".5", want: 0.5, wantOK: true},
		{name: "explicit plus", input: "+7", want: 7, wantOK: true},
		{name: "scientific notation", input: "1e3", want: 1000, wantOK: true},
		{name: "surrounding whitespace", input: "  42  ", want: 42, wantOK: true},

		// Currency and separators
		{name: "dollar with thousands", input: "$1,234.56", want: 1234.56, wantOK: true},
		{name: "euro", input: "€99", want: 99, wantOK: true},
		{name: "pound", input: "£10.50", want: 10.5, wantOK: true},
		{name: "millions", input: "1,000,000", want: 1000000, wantOK: true},

		// Accounting negatives
		{name: "parentheses negative", input: "(123.45)", want: -123.45, wantOK: true},
		{name: "parentheses with currency", input: "( $1,000 )", want: -1000, wantOK: true},

		// Invalid
		{name: "empty", input: "", wantOK: false},
		{name: "whitespace only", input: "   ", wantOK: false},
		{name: "letters", input: "abc", wantOK: false},
		{name: "two decimal points", input: "12.5.3", wantOK: false},
		{name: "lone minus", input: "-", wantOK: false},
		{name: "trailing text", input: "12 units", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseNumber(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseNumber(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParseNumber(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// Display Formatting Tests
// ----------------------------------------------------------------------------

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{0, "$0"},
		{75, "$75"},
		{1200, "$1,200"},
		{2500000, "$2,500,000"},
		{1234.5, "$1,234.50"},
		{0.99, "$0.99"},
		{999.999, "$1,000"},
		{-75, "-$75"},
		{-1234.25, "-$1,234.25"},
	}

	for _, tt := range tests {
		if got := FormatCurrency(tt.input); got != tt.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{0, "0 Bytes"},
		{-5, "0 Bytes"},
		{512, "512 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{2048000, "1.95 MB"},
		{5 * 1024 * 1024 * 1024, "5 GB"},
	}

	for _, tt := range tests {
		if got := FormatBytes(tt.input); got != tt.want {
			t.Errorf("FormatBytes(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// ----------------------------------------------------------------------------
// CleanCell Tests
// ----------------------------------------------------------------------------

func TestCleanCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple string unchanged", input: "hello", want: "hello"},
		{name: "empty string", input: "", want: ""},
		{name: "surrounded by whitespace", input: "  hello  ", want: "hello"},

		// Excel formula prefix handling
		{name: "Excel formula with quotes", input: `="hello"`, want: "hello"},
		{name: "Excel formula number as text", input: `="12345"`, want: "12345"},
		{name: "bare equals sign", input: "=SUM(A1)", want: "SUM(A1)"},

		// Quote handling
		{name: "double quotes removed", input: `"hello"`, want: "hello"},
		{name: "single quotes removed", input: "'hello'", want: "hello"},
		{name: "leading single quote (Excel text prefix)", input: "'12345", want: "12345"},

		// Combined cleaning
		{name: "whitespace and quotes", input: `  "hello"  `, want: "hello"},
		{name: "excel formula with whitespace", input: `  ="test"  `, want: "test"},
		{name: "only quotes", input: `""`, want: ""},
		{name: "equals with quoted number", input: `="0"`, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanCell(tt.input); got != tt.want {
				t.Errorf("CleanCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// MakeHeaderIndex Tests
// ----------------------------------------------------------------------------

func TestMakeHeaderIndex(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		checks map[string]int
	}{
		{
			name:   "simple headers",
			header: []string{"Name", "Status", "Purchase Date"},
			checks: map[string]int{"name": 0, "status": 1, "purchase date": 2},
		},
		{
			name:   "case insensitive lookup",
			header: []string{"NAME", "Status", "pUrChAsE dAtE"},
			checks: map[string]int{"name": 0, "status": 1, "purchase date": 2},
		},
		{
			name:   "headers with quotes and whitespace",
			header: []string{`"Name"`, "  Status ", `="Value"`},
			checks: map[string]int{"name": 0, "status": 1, "value": 2},
		},
		{
			name:   "empty header",
			header: []string{},
			checks: map[string]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx := MakeHeaderIndex(tt.header)
			if len(idx) != len(tt.checks) {
				t.Errorf("len = %d, want %d", len(idx), len(tt.checks))
			}
			for key, wantPos := range tt.checks {
				if gotPos, ok := idx[key]; !ok || gotPos != wantPos {
					t.Errorf("MakeHeaderIndex(%v)[%q] = %d, %v, want %d", tt.header, key, gotPos, ok, wantPos)
				}
			}
		})
	}
}

func TestMakeHeaderIndex_DuplicateHeaders(t *testing.T) {
	// The first occurrence wins so a trailing copy cannot shadow real data.
	idx := MakeHeaderIndex([]string{"Name", "Status", "Name"})
	if gotPos := idx["name"]; gotPos != 0 {
		t.Errorf("name index = %d, want 0", gotPos)
	}
}
