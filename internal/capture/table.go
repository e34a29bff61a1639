package capture

import (
	"math"
	"strconv"
	"strings"
)

// Table is a header plus an ordered set of rows sharing its column layout.
// Cells are kept as text; numeric coercion happens in Float.
type Table struct {
	columns []string
	rows    [][]string
}

// NewTable builds a Table from a header and rows. Rows are used as given.
func NewTable(columns []string, rows [][]string) *Table {
	return &Table{columns: columns, rows: rows}
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// NumColumns returns the header width.
func (t *Table) NumColumns() int {
	if t == nil {
		return 0
	}
	return len(t.columns)
}

// Columns returns a copy of the header names.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Row returns the raw cells of row i.
func (t *Table) Row(i int) []string {
	return t.rows[i]
}

// Head returns a table holding the first min(n, Len) rows. Negative n is
// treated as zero.
func (t *Table) Head(n int) *Table {
	if n < 0 {
		n = 0
	}
	if n > len(t.rows) {
		n = len(t.rows)
	}
	return &Table{columns: t.columns, rows: t.rows[:n:n]}
}

// Every returns a table holding rows 0, stride, 2*stride ... of t, which is
// ceil(Len/stride) rows. A stride below 1 keeps every row.
func (t *Table) Every(stride int) *Table {
	if stride < 1 {
		stride = 1
	}
	rows := make([][]string, 0, (len(t.rows)+stride-1)/stride)
	for i := 0; i < len(t.rows); i += stride {
		rows = append(rows, t.rows[i])
	}
	return &Table{columns: t.columns, rows: rows}
}

// Float returns the numeric value at (row, col). Missing, out-of-range and
// non-numeric cells yield NaN.
func (t *Table) Float(row, col int) float64 {
	if row < 0 || row >= len(t.rows) {
		return math.NaN()
	}
	cells := t.rows[row]
	if col < 0 || col >= len(cells) {
		return math.NaN()
	}
	return parseCell(cells[col])
}

// Column returns column col as numbers, one per row.
func (t *Table) Column(col int) []float64 {
	out := make([]float64, len(t.rows))
	for i := range t.rows {
		out[i] = t.Float(i, col)
	}
	return out
}

func parseCell(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
