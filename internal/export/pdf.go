package export

import (
	"io"
	"iter"

	"github.com/go-pdf/fpdf"
)

// Header styling for exported tables.
var (
	headerFill = [3]int{63, 81, 181}
	headerText = [3]int{255, 255, 255}
)

const (
	pdfMargin     = 14.0
	pdfRowHeight  = 7.0
	pdfCellMargin = 2.0
)

func writePDF(w io.Writer, opts Options, rows iter.Seq[[]string]) error {
	doc := fpdf.New("L", "mm", "A4", "")
	doc.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	doc.SetAutoPageBreak(true, pdfMargin)
	doc.SetCellMargin(pdfCellMargin)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	pageWidth, _ := doc.GetPageSize()
	colWidth := (pageWidth - 2*pdfMargin) / float64(len(opts.Columns))

	header := func() {
		doc.SetFont("Helvetica", "B", 8)
		doc.SetFillColor(headerFill[0], headerFill[1], headerFill[2])
		doc.SetTextColor(headerText[0], headerText[1], headerText[2])
		for _, col := range opts.Columns {
			doc.CellFormat(colWidth, pdfRowHeight, fit(doc, tr(col.Label), colWidth), "1", 0, "L", true, 0, "")
		}
		doc.Ln(-1)
		doc.SetFont("Helvetica", "", 8)
		doc.SetTextColor(0, 0, 0)
	}

	doc.AddPage()
	doc.SetFont("Helvetica", "", 16)
	doc.CellFormat(0, 10, tr(opts.Title), "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 8, "Generated on: "+opts.GeneratedAt.Format("1/2/2006"), "", 1, "L", false, 0, "")
	doc.Ln(2)
	header()

	_, pageHeight := doc.GetPageSize()
	for record := range rows {
		if doc.GetY()+pdfRowHeight > pageHeight-pdfMargin {
			doc.AddPage()
			header()
		}
		for _, cell := range record {
			doc.CellFormat(colWidth, pdfRowHeight, fit(doc, tr(cell), colWidth), "1", 0, "L", false, 0, "")
		}
		doc.Ln(-1)
	}

	if err := doc.Error(); err != nil {
		return err
	}
	return doc.Output(w)
}

// fit shortens s with an ellipsis until it fits in width. s is already
// translated to the single-byte font encoding, so it is cut by bytes.
func fit(doc *fpdf.Fpdf, s string, width float64) string {
	avail := width - 2*pdfCellMargin
	if doc.GetStringWidth(s) <= avail {
		return s
	}
	for len(s) > 0 && doc.GetStringWidth(s+"...") > avail {
		s = s[:len(s)-1]
	}
	return s + "..."
}
