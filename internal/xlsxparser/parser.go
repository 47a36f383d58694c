// =============================================================================
// CSV to XLSX Converter - XLSX Parser
// =============================================================================
//
// This module reads a worksheet back into a types.Table. The converter uses
// it to verify a freshly written workbook, and the inspect command uses it to
// print one.
//
// READING RULES:
//   - The first row is the header row
//   - Rows are padded to the widest row; excelize drops trailing empty cells
//   - Every stored row is kept, including rows whose cells are all empty
//   - Cell values are read as the raw stored text, never number-formatted
//
// =============================================================================

package xlsxparser

import (
	"fmt"

	"github.com/ginjaninja78/CSV-to-XLSX-conversion/internal/types"
	"github.com/xuri/excelize/v2"
)

// =============================================================================
// WORKBOOK
// =============================================================================

// Workbook is an open workbook file.
type Workbook struct {
	f    *excelize.File
	path string
}

// Open opens the workbook at path. The caller must Close it.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	return &Workbook{f: f, path: path}, nil
}

// Close releases the workbook.
func (w *Workbook) Close() error {
	return w.f.Close()
}

// SheetNames returns the worksheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.f.GetSheetList()
}

// resolveSheet maps "" to the first sheet and checks that the sheet exists.
func (w *Workbook) resolveSheet(sheet string) (string, error) {
	if sheet == "" {
		sheet = w.f.GetSheetName(0)
		if sheet == "" {
			return "", fmt.Errorf("workbook %s has no sheets", w.path)
		}
		return sheet, nil
	}

	idx, err := w.f.GetSheetIndex(sheet)
	if err != nil {
		return "", fmt.Errorf("invalid sheet name %q: %w", sheet, err)
	}
	if idx == -1 {
		return "", fmt.Errorf("sheet %q not found in %s", sheet, w.path)
	}
	return sheet, nil
}

// ReadTable reads a worksheet into a table. An empty sheet name selects the
// first sheet.
//
// PARAMETERS:
//   - sheet: The worksheet to read.
//
// RETURNS:
//   - A pointer to the Table. An empty sheet yields an empty table.
//   - An error if the sheet does not exist or cannot be read.
func (w *Workbook) ReadTable(sheet string) (*types.Table, error) {
	sheet, err := w.resolveSheet(sheet)
	if err != nil {
		return nil, err
	}

	raw, err := w.readRows(sheet)
	if err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		return &types.Table{}, nil
	}

	width := 0
	for _, row := range raw {
		if len(row) > width {
			width = len(row)
		}
	}

	headers := types.PadRow(raw[0], width)
	return types.NewTable(headers, raw[1:]), nil
}

// readRows iterates the sheet row by row so empty rows keep their position.
func (w *Workbook) readRows(sheet string) ([][]string, error) {
	rows, err := w.f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	defer rows.Close()

	var result [][]string
	for rows.Next() {
		cols, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(result)+1, err)
		}
		result = append(result, cols)
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	return result, nil
}

// NonTextCells returns the coordinates of non-empty cells holding anything
// other than a string. A workbook written by xlsxwriter has none.
func (w *Workbook) NonTextCells(sheet string) ([]string, error) {
	sheet, err := w.resolveSheet(sheet)
	if err != nil {
		return nil, err
	}

	raw, err := w.readRows(sheet)
	if err != nil {
		return nil, err
	}

	var cells []string
	for r, row := range raw {
		for c, value := range row {
			// Empty cells hold no value of any type.
			if value == "" {
				continue
			}

			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}

			cellType, err := w.f.GetCellType(sheet, cell)
			if err != nil {
				return nil, fmt.Errorf("failed to read type of %s: %w", cell, err)
			}

			// Numbers are stored without a type attribute and report as
			// CellTypeUnset.
			switch cellType {
			case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
			default:
				cells = append(cells, cell)
			}
		}
	}

	return cells, nil
}

// =============================================================================
// CONVENIENCE FUNCTIONS
// =============================================================================

// ReadTable opens the workbook at path and reads one sheet.
func ReadTable(path, sheet string) (*types.Table, error) {
	wb, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	return wb.ReadTable(sheet)
}
