package xlsxparser

import (
	"path/filepath"
	"testing"

	"github.com/ginjaninja78/CSV-to-XLSX-conversion/internal/types"
	"github.com/ginjaninja78/CSV-to-XLSX-conversion/internal/xlsxwriter"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeTable(t *testing.T, table *types.Table, sheet string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, xlsxwriter.Write(table, path, xlsxwriter.Options{SheetName: sheet}))
	return path
}

func TestReadTableRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		table *types.Table
	}{
		{
			name: "Leading zeros",
			table: types.NewTable(
				[]string{"id", "code"},
				[][]string{{"1", "007"}, {"2", "042"}},
			),
		},
		{
			name: "Trailing empty cells",
			table: types.NewTable(
				[]string{"a", "b", "c"},
				[][]string{{"1", "", ""}, {"", "2", ""}},
			),
		},
		{
			name: "Empty row in the middle",
			table: types.NewTable(
				[]string{"a", "b"},
				[][]string{{"1", "2"}, {"", ""}, {"3", "4"}},
			),
		},
		{
			name:  "Header only",
			table: types.NewTable([]string{"only"}, nil),
		},
		{
			name: "Whitespace and symbols",
			table: types.NewTable(
				[]string{"v"},
				[][]string{{" 12 "}, {"=1+1"}, {"1e5"}, {"TRUE"}},
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTable(t, tt.table, "Sheet1")

			got, err := ReadTable(path, "")
			require.NoError(t, err)
			if diff := cmp.Diff(tt.table, got); diff != "" {
				t.Errorf("ReadTable() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadTableEmptySheet(t *testing.T) {
	path := writeTable(t, &types.Table{}, "Sheet1")

	got, err := ReadTable(path, "Sheet1")
	require.NoError(t, err)
	require.True(t, got.IsEmpty())
}

func TestReadTableUnknownSheet(t *testing.T) {
	path := writeTable(t, types.NewTable([]string{"a"}, nil), "Data")

	_, err := ReadTable(path, "Nope")
	require.Error(t, err)

	got, err := ReadTable(path, "Data")
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, got.Headers)
}

func TestReadTableMissingFile(t *testing.T) {
	_, err := ReadTable(filepath.Join(t.TempDir(), "nope.xlsx"), "")
	require.Error(t, err)
}

func TestNonTextCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mixed.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "code"))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", "007"))
	require.NoError(t, f.SetCellValue("Sheet1", "A3", 7))
	require.NoError(t, f.SetCellValue("Sheet1", "A4", "0042"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "flag"))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", 2.5))
	require.NoError(t, f.SetCellValue("Sheet1", "B4", true))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	wb, err := Open(path)
	require.NoError(t, err)
	defer wb.Close()

	cells, err := wb.NonTextCells("")
	require.NoError(t, err)
	require.Equal(t, []string{"B2", "A3", "B4"}, cells)

	table, err := wb.ReadTable("")
	require.NoError(t, err)
	require.Equal(t, []string{"007", "7", "0042"}, table.Column("code"))
	require.Equal(t, "", table.Rows[1][1])
}

func TestNonTextCellsWrittenWorkbook(t *testing.T) {
	path := writeTable(t, types.NewTable(
		[]string{"id", "code"},
		[][]string{{"1", "007"}, {"", "042"}},
	), "Sheet1")

	wb, err := Open(path)
	require.NoError(t, err)
	defer wb.Close()

	cells, err := wb.NonTextCells("Sheet1")
	require.NoError(t, err)
	require.Empty(t, cells)
}
