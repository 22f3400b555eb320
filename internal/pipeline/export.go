package pipeline

import (
	"encoding/csv"
	"io"

	"github.com/JonMunkholm/vaxecon/internal/core"
)

// WriteCSV writes the header row followed by every row. There is no index
// column; missing cells are empty.
func WriteCSV(w io.Writer, t *core.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}

	record := make([]string, len(t.Columns))
	for _, r := range t.Rows {
		for i := range record {
			if i < len(r) {
				record[i] = r[i].String()
			} else {
				record[i] = ""
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportFile writes the table as CSV to path. Nothing is left at path if
// the write fails.
func ExportFile(path string, t *core.Table) error {
	return core.WriteFileAtomic(path, func(w io.Writer) error {
		return WriteCSV(w, t)
	})
}
