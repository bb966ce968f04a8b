package ui

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Table renders rows of data in aligned columns.
type Table struct {
	w       *tabwriter.Writer
	headers []string
	rows    int
}

// NewTable creates a new table writer with the given column headers.
func NewTable(out io.Writer, headers ...string) *Table {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	t := &Table{w: tw, headers: headers}
	_, _ = fmt.Fprintln(tw, strings.Join(headers, "\t"))
	return t
}

// Row appends a row of values. Missing trailing cells are shown as "-",
// empty strings likewise.
func (t *Table) Row(values ...any) {
	n := len(t.headers)
	if len(values) > n {
		n = len(values)
	}
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "-"
		if i < len(values) {
			if s := fmt.Sprintf("%v", values[i]); s != "" {
				parts[i] = s
			}
		}
	}
	t.rows++
	_, _ = fmt.Fprintln(t.w, strings.Join(parts, "\t"))
}

// Rows returns the number of rows written.
func (t *Table) Rows() int { return t.rows }

// Flush writes the buffered output.
func (t *Table) Flush() error {
	return t.w.Flush()
}
