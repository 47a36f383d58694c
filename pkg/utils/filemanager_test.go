package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestGenerateOutputFileName(t *testing.T) {
	now := time.Date(2024, 1, 15, 14, 30, 22, 0, time.UTC)
	id := uuid.MustParse("a1b2c3d4-e5f6-7890-abcd-ef1234567890")

	tests := []struct {
		name   string
		format string
		params map[string]string
		want   string
	}{
		{"Original", "{original}.xlsx", map[string]string{"original": "accounts"}, "accounts.xlsx"},
		{"Timestamp", "{original}_{timestamp}.xlsx", map[string]string{"original": "a"}, "a_20240115_143022.xlsx"},
		{"Date and time", "{date}-{time}", nil, "20240115-143022.xlsx"},
		{"UUID", "{uuid}.xlsx", nil, "a1b2c3d4-e5f6-7890-abcd-ef1234567890.xlsx"},
		{"Keeps xlsm", "book.xlsm", nil, "book.xlsm"},
		{"Adds extension", "report", nil, "report.xlsx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, generateOutputFileName(tt.format, tt.params, now, id))
		})
	}
}

func TestGenerateOutputFileNameUnique(t *testing.T) {
	a := GenerateOutputFileName("{uuid}", nil)
	b := GenerateOutputFileName("{uuid}", nil)
	require.NotEqual(t, a, b)
}

func TestOutputPathFor(t *testing.T) {
	got := OutputPathFor(filepath.Join("in", "accounts.2024.csv"), "out", "{original}.xlsx")
	require.Equal(t, filepath.Join("out", "accounts.2024.xlsx"), got)
}

func TestCheckParentDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, CheckParentDir(filepath.Join(dir, "out.xlsx")))

	err := CheckParentDir(filepath.Join(dir, "missing", "out.xlsx"))
	require.ErrorContains(t, err, "does not exist")

	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	err = CheckParentDir(filepath.Join(file, "out.xlsx"))
	require.ErrorContains(t, err, "not a directory")
}

func TestAbsPath(t *testing.T) {
	got := AbsPath("out.xlsx")
	require.True(t, filepath.IsAbs(got))
	require.Equal(t, "out.xlsx", filepath.Base(got))
}

func TestFileHelpers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	require.False(t, FileExists(path))

	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))
	require.True(t, FileExists(path))

	size, err := GetFileSize(path)
	require.NoError(t, err)
	require.Equal(t, int64(5), size)
}
