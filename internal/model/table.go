package model

// Table is an ordered, string-typed tabular structure: the working
// representation for uploads from parse through filtering to export.
// Headers keep their source order; rows are indexed parallel to Headers.
type Table struct {
	Headers []string
	Rows    [][]string
}

// NewTable creates an empty table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{Headers: append([]string(nil), headers...)}
}

// ColumnIndex returns the index of the named header, or -1 if absent.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at (row, col), or "" when the row is ragged and
// does not reach col.
func (t *Table) Cell(row, col int) string {
	if col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// AppendRow adds one row, padding or truncating it to the header width so
// every stored row is rectangular.
func (t *Table) AppendRow(row []string) {
	r := make([]string, len(t.Headers))
	copy(r, row)
	t.Rows = append(t.Rows, r)
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// IsEmpty reports whether the table has no data rows.
func (t *Table) IsEmpty() bool {
	return len(t.Rows) == 0
}

// SelectColumns returns a new table containing only the named columns, in
// the given order. Unknown names become empty columns, preserving schema
// completeness for downstream consumers.
func (t *Table) SelectColumns(names []string) *Table {
	idx := make([]int, len(names))
	for i, n := range names {
		idx[i] = t.ColumnIndex(n)
	}
	out := NewTable(names)
	for r := range t.Rows {
		row := make([]string, len(names))
		for i, c := range idx {
			if c >= 0 {
				row[i] = t.Cell(r, c)
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}
