// =============================================================================
// CSV to XLSX Converter - XLSX Writer Module
// =============================================================================
//
// This module serializes a types.Table to a workbook with excelize.
//
// OUTPUT LAYOUT:
//   - One worksheet (default name "Sheet1")
//   - Row 1 holds the headers, each following row holds one record
//   - No index column
//   - Every cell is a string cell; used columns carry the text number
//     format "@" so values typed later are kept as text as well
//
// =============================================================================

package xlsxwriter

import (
	"fmt"

	"github.com/ginjaninja78/CSV-to-XLSX-conversion/internal/types"
	"github.com/xuri/excelize/v2"
)

// textNumFmt is the built-in number format id for "@" (text).
const textNumFmt = 49

// defaultSheetName is the sheet excelize.NewFile creates.
const defaultSheetName = "Sheet1"

// =============================================================================
// WRITE OPTIONS
// =============================================================================

// Options controls how the workbook is written.
type Options struct {
	// SheetName is the name of the single worksheet.
	// Default: "Sheet1"
	SheetName string
}

// DefaultOptions returns the default write options.
func DefaultOptions() Options {
	return Options{SheetName: defaultSheetName}
}

// =============================================================================
// WRITER FUNCTIONS
// =============================================================================

// Write serializes table to a workbook at path.
//
// PARAMETERS:
//   - table: The table to write. An empty table produces an empty sheet.
//   - path: The workbook path. The parent directory must exist.
//   - options: Write options.
//
// RETURNS:
//   - An error if the workbook cannot be built or saved. The in-memory
//     workbook is closed on every path.
func Write(table *types.Table, path string, options Options) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close workbook: %w", cerr)
		}
	}()

	sheet := options.SheetName
	if sheet == "" {
		sheet = defaultSheetName
	}
	if sheet != defaultSheetName {
		if err := f.SetSheetName(defaultSheetName, sheet); err != nil {
			return fmt.Errorf("failed to name sheet %q: %w", sheet, err)
		}
	}

	if err := writeTable(f, sheet, table); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}

// writeTable writes the header row and all data rows starting at A1.
func writeTable(f *excelize.File, sheet string, table *types.Table) error {
	if table.ColumnCount() == 0 {
		return nil
	}

	if err := writeRow(f, sheet, 1, table.Headers); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range table.Rows {
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	return applyTextStyle(f, sheet, table.ColumnCount(), table.RowCount()+1)
}

// writeRow writes values as string cells into the given 1-based row.
func writeRow(f *excelize.File, sheet string, rowNumber int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNumber)
	if err != nil {
		return err
	}

	// SetSheetRow stores Go strings as shared-string cells.
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}

	return f.SetSheetRow(sheet, cell, &row)
}

// applyTextStyle declares the used columns and the written range as text.
func applyTextStyle(f *excelize.File, sheet string, columns, rows int) error {
	styleID, err := f.NewStyle(&excelize.Style{NumFmt: textNumFmt})
	if err != nil {
		return fmt.Errorf("failed to create text style: %w", err)
	}

	lastCol, err := excelize.ColumnNumberToName(columns)
	if err != nil {
		return err
	}

	if err := f.SetColStyle(sheet, "A:"+lastCol, styleID); err != nil {
		return fmt.Errorf("failed to set column style: %w", err)
	}

	bottomRight, err := excelize.CoordinatesToCellName(columns, rows)
	if err != nil {
		return err
	}

	if err := f.SetCellStyle(sheet, "A1", bottomRight, styleID); err != nil {
		return fmt.Errorf("failed to set cell style: %w", err)
	}

	return nil
}
