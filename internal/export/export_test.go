package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/google/go-cmp/cmp"
)

type book struct {
	Title  string
	Author string
	Pages  int
}

var books = []book{
	{"Dune", "Herbert", 412},
	{"Neuromancer, Special", "Gibson", 271},
	{"Hyperion", "", 482},
}

var bookColumns = []Column{
	{Key: "title", Label: "Title"},
	{Key: "author", Label: "Author"},
	{Key: "pages", Label: "Pages"},
}

func bookCell(b book, key string) string {
	switch key {
	case "title":
		return b.Title
	case "author":
		return b.Author
	case "pages":
		return strconv.Itoa(b.Pages)
	}
	return ""
}

// ============================================================================
// Format Tests
// ============================================================================

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"csv", "PDF", " json "} {
		if _, err := ParseFormat(in); err != nil {
			t.Errorf("ParseFormat(%q) error = %v", in, err)
		}
	}

	_, err := ParseFormat("xlsx")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("ParseFormat(xlsx) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestOptions_FileName(t *testing.T) {
	if got := (Options{}).FileName(CSV); got != "export.csv" {
		t.Errorf("default FileName = %q", got)
	}
	if got := (Options{Filename: "people"}).FileName(PDF); got != "people.pdf" {
		t.Errorf("FileName = %q", got)
	}
}

// ============================================================================
// Writer Tests
// ============================================================================

func TestWrite_CSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, CSV, books, Options{Columns: bookColumns}, bookCell); err != nil {
		t.Fatalf("Write: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	want := [][]string{
		{"Title", "Author", "Pages"},
		{"Dune", "Herbert", "412"},
		{"Neuromancer, Special", "Gibson", "271"},
		{"Hyperion", "", "482"},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("records (-want +got):\n%s", diff)
	}
}

func TestWrite_CSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, CSV, []book{}, Options{Columns: bookColumns}, bookCell); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "Title,Author,Pages" {
		t.Errorf("empty export = %q, want header only", got)
	}
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, JSON, books[:1], Options{Columns: bookColumns}, bookCell); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if !strings.Contains(buf.String(), "\n    \"author\": \"Herbert\"") {
		t.Errorf("JSON not indented with two spaces:\n%s", buf.String())
	}

	var got []map[string]string
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []map[string]string{{"title": "Dune", "author": "Herbert", "pages": "412"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("objects (-want +got):\n%s", diff)
	}
}

func TestWrite_JSONEmptyIsArray(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, JSON, nil, Options{Columns: bookColumns}, bookCell); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("empty JSON = %q, want []", got)
	}
}

func TestWrite_PDF(t *testing.T) {
	many := make([]book, 120)
	for i := range many {
		many[i] = book{Title: "A rather long title that will not fit in its column " + strconv.Itoa(i), Author: "Author", Pages: i}
	}

	var buf bytes.Buffer
	opts := Options{Title: "Books", Columns: bookColumns, GeneratedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)}
	if err := Write(&buf, PDF, many, opts, bookCell); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output does not start with a PDF header")
	}
}

func TestFit_KeepsSingleByteText(t *testing.T) {
	doc := fpdf.New("L", "mm", "A4", "")
	doc.SetFont("Helvetica", "", 8)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	s := tr("Café Café Café Café Café Café")
	got := fit(doc, s, 20)

	if !strings.HasSuffix(got, "...") {
		t.Fatalf("fit() = %q, want an ellipsis", got)
	}
	kept := strings.TrimSuffix(got, "...")
	if kept == "" || !strings.HasPrefix(s, kept) {
		t.Errorf("fit() kept %q, want a byte prefix of %q", kept, s)
	}
	if strings.Contains(got, "\uFFFD") {
		t.Errorf("fit() = %q contains a replacement character", got)
	}
	if w := doc.GetStringWidth(got); w > 20-2*pdfCellMargin {
		t.Errorf("fit() width = %v, want at most %v", w, 20-2*pdfCellMargin)
	}
}

func TestWrite_Errors(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Format("xml"), books, Options{Columns: bookColumns}, bookCell); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("unknown format error = %v", err)
	}
	if err := Write(&buf, CSV, books, Options{}, bookCell); err == nil {
		t.Error("expected error without columns")
	}
}
