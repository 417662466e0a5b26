package export

import (
	"encoding/json"
	"io"
	"iter"
)

func writeJSON(w io.Writer, opts Options, rows iter.Seq[[]string]) error {
	out := []map[string]string{}
	for record := range rows {
		obj := make(map[string]string, len(record))
		for i, col := range opts.Columns {
			obj[col.Key] = record[i]
		}
		out = append(out, obj)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
