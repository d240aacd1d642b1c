package report

import (
	"encoding/csv"
	"io"
)

// WriteCSV streams a table through encoding/csv with the given delimiter.
func WriteCSV(w io.Writer, table Table, delimiter rune) error {
	cw := csv.NewWriter(w)
	if delimiter != 0 {
		cw.Comma = delimiter
	}
	if err := cw.Write(table.Header); err != nil {
		return err
	}
	for _, row := range table.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
