package models

// Sheet is a decoded spreadsheet: the header columns and the data rows in
// file order.
type Sheet struct {
	Columns []string
	Rows    []SourceRow
}

// HasColumn reports whether the header contains column.
func (s *Sheet) HasColumn(column string) bool {
	for _, c := range s.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// MissingColumns returns the required columns absent from the header, in the
// order they were given.
func (s *Sheet) MissingColumns(required ...string) []string {
	var missing []string
	for _, col := range required {
		if !s.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	return missing
}

// SourceRow is one data row of the spreadsheet.
type SourceRow struct {
	// Number is the 1-based row number in the file; the header is row 1.
	Number  int
	columns []string
	cells   map[string]string
}

// NewSourceRow builds a row over the sheet header. Cells missing from the
// map are treated as empty.
func NewSourceRow(number int, columns []string, cells map[string]string) SourceRow {
	if cells == nil {
		cells = map[string]string{}
	}
	return SourceRow{Number: number, columns: columns, cells: cells}
}

// Columns returns the header columns in sheet order.
func (r SourceRow) Columns() []string {
	return r.columns
}

// Value returns the raw cell text of column.
func (r SourceRow) Value(column string) string {
	return r.cells[column]
}

// Has reports whether column is part of the row's header.
func (r SourceRow) Has(column string) bool {
	for _, c := range r.columns {
		if c == column {
			return true
		}
	}
	return false
}
