// =============================================================================
// CSV to XLSX Converter - Converter Module
// =============================================================================
//
// This module contains the core conversion logic. It runs the whole pipeline
// for a single payload, from delimited text to a workbook on disk.
//
// CONVERSION PIPELINE:
//   1. Validate the options (delimiter, encoding, sheet name, destination)
//   2. Parse the text; every field stays a string
//   3. Check the table fits in one worksheet
//   4. Check the destination directory exists
//   5. Write the workbook
//   6. Optionally read it back and compare every cell
//   7. Report the absolute path of the written file
//
// Every failure is returned as a *ConversionError. A file left behind by a
// failed write is not removed.
//
// =============================================================================

package converter

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ginjaninja78/CSV-to-XLSX-conversion/internal/config"
	"github.com/ginjaninja78/CSV-to-XLSX-conversion/internal/csvparser"
	"github.com/ginjaninja78/CSV-to-XLSX-conversion/internal/types"
	"github.com/ginjaninja78/CSV-to-XLSX-conversion/internal/validation"
	"github.com/ginjaninja78/CSV-to-XLSX-conversion/internal/xlsxparser"
	"github.com/ginjaninja78/CSV-to-XLSX-conversion/internal/xlsxwriter"
	"github.com/ginjaninja78/CSV-to-XLSX-conversion/pkg/utils"
	"github.com/rs/zerolog"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of one successful conversion.
type Result struct {
	// OutputFile is the absolute path of the written workbook.
	OutputFile string

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// RowsWritten is the number of data rows written (header excluded).
	RowsWritten int

	// Columns is the number of columns written.
	Columns int

	// ProcessingTime is the time taken by the conversion.
	ProcessingTime time.Duration
}

// =============================================================================
// OPTIONS
// =============================================================================

// Options controls one converter.
type Options struct {
	// CSVSettings contains the parsing settings.
	CSVSettings config.CSVSettings

	// SheetName is the worksheet name.
	SheetName string

	// Verify reads the workbook back and compares it with the input.
	Verify bool
}

// DefaultOptions returns the options of a default configuration.
func DefaultOptions() Options {
	return OptionsFromConfig(config.DefaultMainConfig())
}

// OptionsFromConfig extracts the converter options from the main configuration.
func OptionsFromConfig(cfg *config.MainConfig) Options {
	return Options{
		CSVSettings: cfg.CSVSettings,
		SheetName:   cfg.SheetName,
		Verify:      cfg.Verify,
	}
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter turns delimited text into workbooks. It holds no per-call state,
// so one Converter can be reused for any number of conversions.
type Converter struct {
	options Options

	// logger receives debug and error events.
	logger zerolog.Logger

	// progress receives the human-readable progress lines.
	progress io.Writer
}

// New creates a new Converter. Progress lines are discarded until
// WithProgress is called.
func New(options Options, logger zerolog.Logger) *Converter {
	if options.SheetName == "" {
		options.SheetName = config.DefaultSheetName
	}
	return &Converter{
		options:  options,
		logger:   logger,
		progress: io.Discard,
	}
}

// WithProgress returns a copy of the converter that prints progress lines
// to w.
func (c *Converter) WithProgress(w io.Writer) *Converter {
	clone := *c
	clone.progress = w
	return &clone
}

// =============================================================================
// MAIN PROCESSING FUNCTIONS
// =============================================================================

// Convert parses sourceText and writes it as a workbook to destinationPath.
//
// PARAMETERS:
//   - sourceText: Delimited text, header line first. May be empty.
//   - destinationPath: The workbook path. Its parent directory must exist.
//
// RETURNS:
//   - The Result on success, with the absolute output path.
//   - A *ConversionError on any failure.
func (c *Converter) Convert(sourceText, destinationPath string) (*Result, error) {
	return c.ConvertRequest(types.ConversionRequest{
		SourceText:      sourceText,
		DestinationPath: destinationPath,
	})
}

// ConvertRequest is Convert taking a ConversionRequest.
func (c *Converter) ConvertRequest(req types.ConversionRequest) (*Result, error) {
	startTime := time.Now()
	dest := req.DestinationPath

	// =========================================================================
	// STEP 1: VALIDATE OPTIONS
	// =========================================================================

	if errs := validation.ValidateOptions(c.options.CSVSettings, c.options.SheetName, dest); len(errs) > 0 {
		return nil, c.fail(OpValidate, dest, validation.Errors(errs))
	}

	// =========================================================================
	// STEP 2: PARSE THE TEXT
	// =========================================================================

	fmt.Fprintln(c.progress, "Reading data from the string...")

	table, err := csvparser.ParseString(req.SourceText, c.options.CSVSettings)
	if err != nil {
		return nil, c.fail(OpParse, dest, err)
	}

	c.logger.Debug().
		Int("rows", table.RowCount()).
		Int("columns", table.ColumnCount()).
		Msg("parsed input")

	if errs := validation.ValidateTable(table); len(errs) > 0 {
		return nil, c.fail(OpValidate, dest, validation.Errors(errs))
	}

	// =========================================================================
	// STEP 3: WRITE THE WORKBOOK
	// =========================================================================

	if err := utils.CheckParentDir(dest); err != nil {
		return nil, c.fail(OpWrite, dest, err)
	}
	if utils.FileExists(dest) {
		c.logger.Debug().Str("path", dest).Msg("replacing existing file")
	}

	fmt.Fprintf(c.progress, "Writing data to '%s'...\n", dest)

	writeOptions := xlsxwriter.Options{SheetName: c.options.SheetName}
	if err := xlsxwriter.Write(table, dest, writeOptions); err != nil {
		return nil, c.fail(OpWrite, dest, err)
	}

	// =========================================================================
	// STEP 4: VERIFY (OPTIONAL)
	// =========================================================================

	if c.options.Verify {
		if err := verify(table, dest, c.options.SheetName); err != nil {
			return nil, c.fail(OpVerify, dest, err)
		}
		c.logger.Debug().Str("path", dest).Msg("verified workbook")
	}

	result := &Result{
		OutputFile: utils.AbsPath(dest),
		Stats: ProcessingStats{
			RowsWritten:    table.RowCount(),
			Columns:        table.ColumnCount(),
			ProcessingTime: time.Since(startTime),
		},
	}

	c.logger.Debug().
		Str("path", result.OutputFile).
		Str("sheet", c.options.SheetName).
		Dur("elapsed", result.Stats.ProcessingTime).
		Msg("wrote workbook")

	return result, nil
}

// ConvertFile reads delimited text from inputPath ("-" for stdin) and
// converts it to destinationPath.
func (c *Converter) ConvertFile(inputPath, destinationPath string) (*Result, error) {
	var data []byte
	var err error

	if inputPath == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(inputPath)
	}
	if err != nil {
		return nil, c.fail(OpRead, inputPath, err)
	}

	c.logger.Debug().Str("input", inputPath).Int("bytes", len(data)).Msg("read input")

	return c.Convert(string(data), destinationPath)
}

// fail wraps err as a ConversionError and logs it.
func (c *Converter) fail(op, path string, err error) error {
	convErr := &ConversionError{Op: op, Path: path, Err: err}
	c.logger.Debug().Err(err).Str("op", op).Str("path", path).Msg("conversion failed")
	return convErr
}

// =============================================================================
// VERIFICATION
// =============================================================================

// verify reads the workbook back and compares it with the table cell by cell.
func verify(table *types.Table, path, sheet string) error {
	wb, err := xlsxparser.Open(path)
	if err != nil {
		return err
	}
	defer wb.Close()

	written, err := wb.ReadTable(sheet)
	if err != nil {
		return err
	}

	if err := compareTables(table, written); err != nil {
		return err
	}

	nonText, err := wb.NonTextCells(sheet)
	if err != nil {
		return err
	}
	if len(nonText) > 0 {
		return fmt.Errorf("%d cell(s) are not text, first at %s", len(nonText), nonText[0])
	}

	return nil
}

// compareTables returns an error describing the first difference between
// want and got.
func compareTables(want, got *types.Table) error {
	if want.ColumnCount() != got.ColumnCount() {
		return fmt.Errorf("column count mismatch: wrote %d, read %d", want.ColumnCount(), got.ColumnCount())
	}
	if want.RowCount() != got.RowCount() {
		return fmt.Errorf("row count mismatch: wrote %d, read %d", want.RowCount(), got.RowCount())
	}

	for i, header := range want.Headers {
		if got.Headers[i] != header {
			return fmt.Errorf("header %d mismatch: wrote %q, read %q", i+1, header, got.Headers[i])
		}
	}

	for r, row := range want.Rows {
		for col, value := range row {
			if got.Rows[r][col] != value {
				return fmt.Errorf("row %d, column %q mismatch: wrote %q, read %q",
					r+1, want.Headers[col], value, got.Rows[r][col])
			}
		}
	}

	return nil
}
