package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/piwi3910/StudCode/internal/model"
)

// Row is one line of a parts list.
type Row struct {
	Key   string
	Color string
	Part  string
	Count int
}

// Rows splits the report into rows in listing order (keys descending).
func Rows(report model.Report) []Row {
	keys := report.Keys()
	rows := make([]Row, 0, len(keys))
	for _, k := range keys {
		color, part, _ := strings.Cut(k, " ")
		rows = append(rows, Row{Key: k, Color: color, Part: part, Count: report.Counts[k]})
	}
	return rows
}

// WriteListing writes `"{color} {part}": count` lines in listing order.
func WriteListing(w io.Writer, report model.Report) error {
	for _, row := range Rows(report) {
		if _, err := fmt.Fprintf(w, "%q: %d\n", row.Key, row.Count); err != nil {
			return err
		}
	}
	return nil
}
