package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ginjaninja78/CSV-to-XLSX-conversion/internal/xlsxparser"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// runCLI executes the command tree with args and returns stdout and stderr.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "accounts.csv")
	output := filepath.Join(dir, "accounts.xlsx")
	writeFile(t, input, "id;zip\n1;02134\n2;NULL\n")

	stdout, _, err := runCLI(t,
		"--config", filepath.Join(dir, "none.yaml"),
		"convert", "-i", input, "-o", output,
		"--delimiter", "semicolon", "--sheet", "Zips", "--na-value", "NULL", "--verify",
	)
	require.NoError(t, err)
	require.Contains(t, stdout, "Reading data from the string...")
	require.Contains(t, stdout, "Conversion successful!")
	require.Contains(t, stdout, "File saved at: "+output)

	table, err := xlsxparser.ReadTable(output, "Zips")
	require.NoError(t, err)
	require.Equal(t, []string{"id", "zip"}, table.Headers)
	require.Equal(t, [][]string{{"1", "02134"}, {"2", ""}}, table.Rows)
}

func TestConvertCommandDerivedOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "codes.csv")
	writeFile(t, input, "code\n007\n")

	cfgPath := filepath.Join(dir, "config.yaml")
	writeFile(t, cfgPath, "output_dir: "+dir+"\noutput_name_format: \"{original}_out\"\n")

	stdout, _, err := runCLI(t, "--config", cfgPath, "convert", "--input", input)
	require.NoError(t, err)

	want := filepath.Join(dir, "codes_out.xlsx")
	require.Contains(t, stdout, "File saved at: "+want)
	require.FileExists(t, want)
}

func TestConvertCommandFailureIsReported(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "missing", "out.xlsx")

	stdout, stderr, err := runCLI(t,
		"--config", filepath.Join(dir, "none.yaml"),
		"convert", "-i", filepath.Join(dir, "nope.csv"), "-o", output,
	)
	require.NoError(t, err)
	require.Contains(t, stdout, "An unexpected error occurred:")
	require.NotContains(t, stdout, "Conversion successful!")
	require.Contains(t, stderr, "conversion failed")
}

func TestConvertCommandStrict(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "missing", "out.xlsx")

	_, _, err := runCLI(t,
		"--config", filepath.Join(dir, "none.yaml"), "--strict",
		"convert", "-o", output,
	)
	require.Error(t, err)
	require.Contains(t, err.Error(), "does not exist")

	cfgPath := filepath.Join(dir, "config.yaml")
	writeFile(t, cfgPath, "strict: true\n")

	_, _, err = runCLI(t, "--config", cfgPath, "convert", "-o", output)
	require.Error(t, err)
}

func TestConvertCommandBadConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	writeFile(t, cfgPath, "log_level: loud\n")

	_, _, err := runCLI(t, "--config", cfgPath, "convert")
	require.ErrorContains(t, err, "failed to load config")
}

func TestRootCommandConvertsSample(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "sample.xlsx")
	cfgPath := filepath.Join(dir, "config.yaml")
	writeFile(t, cfgPath, "output_file: "+output+"\nverify: true\n")

	stdout, _, err := runCLI(t, "--config", cfgPath)
	require.NoError(t, err)
	require.Contains(t, stdout, "Writing data to '"+output+"'...")
	require.Contains(t, stdout, "Conversion successful!")

	table, err := xlsxparser.ReadTable(output, "")
	require.NoError(t, err)
	require.Equal(t, []string{"account_id", "zip_code", "phone", "amount", "note"}, table.Headers)
	require.Equal(t, []string{"000123", "004567", "000089"}, table.Column("account_id"))
	require.Equal(t, []string{"0010.50", "12", "007"}, table.Column("amount"))
	require.Equal(t, []string{"first", "", "quoted, with comma"}, table.Column("note"))
}

func TestInspectCommand(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.xlsx")

	_, _, err := runCLI(t, "--config", filepath.Join(dir, "none.yaml"), "convert", "-o", output)
	require.NoError(t, err)

	stdout, _, err := runCLI(t, "inspect", output)
	require.NoError(t, err)
	require.Contains(t, stdout, "Sheets:  Sheet1")
	require.Contains(t, stdout, "Columns: 5")
	require.Contains(t, stdout, "Rows:    3")
	require.Contains(t, stdout, `"000123", "02134", "0044123456", "0010.50", "first"`)
	require.Contains(t, stdout, "Non-text cells: 0")

	_, _, err = runCLI(t, "inspect", output, "--sheet", "Nope")
	require.Error(t, err)

	_, _, err = runCLI(t, "inspect")
	require.Error(t, err)
}

func TestInspectCommandCountsNumberCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typed.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"zip", "count"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"02134", 12}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	stdout, _, err := runCLI(t, "inspect", path)
	require.NoError(t, err)
	require.Contains(t, stdout, `"02134", "12"`)
	require.Contains(t, stdout, "Non-text cells: 1")
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := runCLI(t, "version")
	require.NoError(t, err)
	require.Contains(t, stdout, "CSV to XLSX Converter")
	require.Contains(t, stdout, "Version:    "+Version)
	require.Contains(t, stdout, "Go Version: go")
}

func TestQuoteRow(t *testing.T) {
	require.Equal(t, `"007", "", "a\"b"`, quoteRow([]string{"007", "", `a"b`}))
}
