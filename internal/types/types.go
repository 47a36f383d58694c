// =============================================================================
// CSV to XLSX Converter - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - csvparser
//   - xlsxwriter
//   - xlsxparser
//   - converter
//
// =============================================================================

package types

// =============================================================================
// TABLE TYPES
// =============================================================================

// Table is the in-memory form of one delimited-text payload.
// Every value is kept as the exact string the parser produced; nothing is
// ever converted to a number, boolean or date.
type Table struct {
	// Headers contains the column names, taken from the first input line.
	Headers []string

	// Rows contains the data rows in input order.
	// Every row has exactly len(Headers) cells.
	Rows [][]string
}

// NewTable creates a table from headers and rows, padding short rows with
// empty strings so every row matches the header width.
func NewTable(headers []string, rows [][]string) *Table {
	t := &Table{
		Headers: headers,
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, row := range rows {
		t.Rows = append(t.Rows, PadRow(row, len(headers)))
	}
	return t
}

// IsEmpty reports whether the table has neither headers nor rows.
func (t *Table) IsEmpty() bool {
	return len(t.Headers) == 0 && len(t.Rows) == 0
}

// RowCount returns the number of data rows (excluding the header).
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int {
	return len(t.Headers)
}

// Record returns row i as a column-name -> value map.
// Use Headers for the column order; maps do not keep it.
func (t *Table) Record(i int) map[string]string {
	record := make(map[string]string, len(t.Headers))
	for col, header := range t.Headers {
		record[header] = t.Rows[i][col]
	}
	return record
}

// Column returns all values of the named column, or nil if there is no such
// column.
func (t *Table) Column(header string) []string {
	idx := -1
	for i, h := range t.Headers {
		if h == header {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[idx]
	}
	return values
}

// PadRow returns row extended with empty strings up to width.
// Rows that are already wide enough are returned unchanged.
func PadRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}

// =============================================================================
// REQUEST TYPES
// =============================================================================

// ConversionRequest is one unit of work for the converter.
type ConversionRequest struct {
	// SourceText is the delimited-text payload, header line first.
	SourceText string

	// DestinationPath is where the workbook is written.
	// Its parent directory must already exist.
	DestinationPath string
}
