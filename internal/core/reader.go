package core

import (
	"bufio"
	"bytes"
	"io"
	"unicode/utf8"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// importReader prepares uploaded CSV bytes for encoding/csv. It skips a
// leading UTF-8 BOM, which spreadsheet exports on Windows often add, and
// replaces invalid UTF-8 bytes with '?'.
type importReader struct {
	br       *bufio.Reader
	started  bool
	replaced int
}

func newImportReader(r io.Reader) *importReader {
	return &importReader{br: bufio.NewReader(r)}
}

// Read implements io.Reader. Runes never straddle two reads.
func (r *importReader) Read(p []byte) (int, error) {
	if !r.started {
		r.started = true
		if head, err := r.br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
			_, _ = r.br.Discard(len(utf8BOM))
		}
	}

	n := 0
	for n < len(p) {
		rn, size, err := r.br.ReadRune()
		if err != nil {
			if n > 0 {
				return n, nil
			}
			return 0, err
		}
		if rn == utf8.RuneError && size == 1 {
			rn = '?'
			r.replaced++
		}
		if utf8.RuneLen(rn) > len(p)-n {
			_ = r.br.UnreadRune()
			break
		}
		n += utf8.EncodeRune(p[n:], rn)
	}
	return n, nil
}

// Replaced returns how many invalid bytes have been replaced so far.
func (r *importReader) Replaced() int {
	return r.replaced
}
