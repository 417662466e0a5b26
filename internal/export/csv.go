package export

import (
	"encoding/csv"
	"io"
	"iter"
	"net/http"
)

// flushInterval is how many rows are buffered between flushes.
const flushInterval = 1000

func writeCSV(w io.Writer, opts Options, rows iter.Seq[[]string]) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(opts.Columns))
	for i, col := range opts.Columns {
		header[i] = col.Label
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	n := 0
	for record := range rows {
		if err := cw.Write(record); err != nil {
			return err
		}
		n++
		if n%flushInterval == 0 {
			cw.Flush()
			if err := cw.Error(); err != nil {
				return err
			}
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
