// =============================================================================
// CSV to XLSX Converter - Validation Engine
// =============================================================================
//
// This module checks a conversion before anything is written:
//   1. Option-level: delimiter, encoding, sheet name, destination extension
//   2. Table-level: the parsed table fits in one worksheet
//
// Cell contents are never validated; every token is accepted as text.
//
// ERROR HANDLING:
//   - Errors are collected, not returned one at a time
//   - Each error names the offending option or cell
//
// =============================================================================

package validation

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ginjaninja78/CSV-to-XLSX-conversion/internal/config"
	"github.com/ginjaninja78/CSV-to-XLSX-conversion/internal/csvparser"
	"github.com/ginjaninja78/CSV-to-XLSX-conversion/internal/types"
	"github.com/xuri/excelize/v2"
)

// maxSheetNameLength is the longest worksheet name spreadsheet applications
// accept.
const maxSheetNameLength = 31

// maxReportedValueLength caps the cell text quoted in a ValidationError.
const maxReportedValueLength = 32

// invalidSheetNameChars may not appear in a worksheet name.
const invalidSheetNameChars = `:\/?*[]`

// workbookExtensions are the file extensions excelize can save.
var workbookExtensions = []string{".xlsx", ".xlsm", ".xltx", ".xltm"}

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// ValidationError represents a single validation error.
type ValidationError struct {
	// Field is the option or column that failed validation.
	Field string

	// Value is the actual value that failed validation.
	Value string

	// Message is a human-readable error message.
	Message string

	// RowNumber is the 1-based data row, or 0 for option-level errors.
	RowNumber int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.RowNumber > 0 {
		return fmt.Sprintf("row %d, field '%s': %s", e.RowNumber, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s (value: '%s')", e.Field, e.Message, e.Value)
}

// Errors is a non-empty list of validation errors used as one error value.
type Errors []*ValidationError

// Error implements the error interface.
func (e Errors) Error() string {
	return FormatErrors(e)
}

// =============================================================================
// OPTION VALIDATION
// =============================================================================

// ValidateOptions checks the settings of one conversion.
//
// PARAMETERS:
//   - settings: The CSV parsing settings.
//   - sheetName: The worksheet name to write.
//   - destinationPath: The workbook path.
//
// RETURNS:
//   - A slice of ValidationError pointers, empty when everything is valid.
func ValidateOptions(settings config.CSVSettings, sheetName, destinationPath string) []*ValidationError {
	var errs []*ValidationError

	if _, err := csvparser.ResolveDelimiter(settings.Delimiter); err != nil {
		errs = append(errs, &ValidationError{
			Field:   "delimiter",
			Value:   settings.Delimiter,
			Message: err.Error(),
		})
	}

	if !csvparser.IsSupportedEncoding(settings.Encoding) {
		errs = append(errs, &ValidationError{
			Field: "encoding",
			Value: settings.Encoding,
			Message: fmt.Sprintf("unsupported encoding, expected one of %s",
				strings.Join(csvparser.SupportedEncodings(), ", ")),
		})
	}

	if msg := validateSheetName(sheetName); msg != "" {
		errs = append(errs, &ValidationError{
			Field:   "sheet_name",
			Value:   sheetName,
			Message: msg,
		})
	}

	if msg := validateDestination(destinationPath); msg != "" {
		errs = append(errs, &ValidationError{
			Field:   "destination",
			Value:   destinationPath,
			Message: msg,
		})
	}

	return errs
}

// validateSheetName returns an error message, or "" if the name is valid.
func validateSheetName(name string) string {
	if name == "" {
		return "sheet name must not be empty"
	}
	if utf8.RuneCountInString(name) > maxSheetNameLength {
		return fmt.Sprintf("sheet name must be at most %d characters", maxSheetNameLength)
	}
	if strings.ContainsAny(name, invalidSheetNameChars) {
		return fmt.Sprintf("sheet name must not contain any of %s", invalidSheetNameChars)
	}
	if strings.HasPrefix(name, "'") || strings.HasSuffix(name, "'") {
		return "sheet name must not start or end with an apostrophe"
	}
	return ""
}

// validateDestination returns an error message, or "" if the path is valid.
func validateDestination(path string) string {
	if strings.TrimSpace(path) == "" {
		return "destination path must not be empty"
	}

	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range workbookExtensions {
		if ext == allowed {
			return ""
		}
	}

	return fmt.Sprintf("unsupported workbook extension %q, expected one of %s",
		ext, strings.Join(workbookExtensions, ", "))
}

// =============================================================================
// TABLE VALIDATION
// =============================================================================

// ValidateTable checks that the table fits in a single worksheet and that
// every header and cell can be stored without altering its text.
func ValidateTable(table *types.Table) []*ValidationError {
	var errs []*ValidationError

	if table.ColumnCount() > excelize.MaxColumns {
		errs = append(errs, &ValidationError{
			Field:   "columns",
			Value:   fmt.Sprint(table.ColumnCount()),
			Message: fmt.Sprintf("a worksheet holds at most %d columns", excelize.MaxColumns),
		})
	}

	// The header occupies the first worksheet row.
	if table.RowCount()+1 > excelize.TotalRows {
		errs = append(errs, &ValidationError{
			Field:   "rows",
			Value:   fmt.Sprint(table.RowCount()),
			Message: fmt.Sprintf("a worksheet holds at most %d rows including the header", excelize.TotalRows),
		})
	}

	for col, header := range table.Headers {
		if msg := validateCellText(header); msg != "" {
			errs = append(errs, &ValidationError{
				Field:   fmt.Sprintf("header %d", col+1),
				Value:   truncate(header, maxReportedValueLength),
				Message: msg,
			})
		}
	}

	for i, row := range table.Rows {
		for col, value := range row {
			if msg := validateCellText(value); msg != "" {
				errs = append(errs, &ValidationError{
					Field:     table.Headers[col],
					Value:     truncate(value, maxReportedValueLength),
					RowNumber: i + 1,
					Message:   msg,
				})
			}
		}
	}

	return errs
}

// validateCellText returns an error message, or "" if value can be stored
// unchanged in a cell. Workbook XML cannot hold invalid UTF-8 or control
// characters other than tab, line feed and carriage return.
func validateCellText(value string) string {
	if !utf8.ValidString(value) {
		return "cell text is not valid UTF-8, check the encoding setting"
	}

	for _, r := range value {
		if r < 0x20 && r != '\t' && r != '\n' && r != '\r' {
			return fmt.Sprintf("cell text contains control character %U", r)
		}
		if r == 0xFFFE || r == 0xFFFF {
			return fmt.Sprintf("cell text contains non-character %U", r)
		}
	}

	if utf8.RuneCountInString(value) > excelize.TotalCellChars {
		return fmt.Sprintf("cell text exceeds %d characters", excelize.TotalCellChars)
	}

	return ""
}

// truncate shortens s to at most n runes for error messages.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

// =============================================================================
// ERROR FORMATTING
// =============================================================================

// FormatErrors formats validation errors for display or logging.
func FormatErrors(errors []*ValidationError) string {
	if len(errors) == 0 {
		return "No validation errors."
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("validation failed with %d error(s): ", len(errors)))

	for i, err := range errors {
		if i > 0 {
			builder.WriteString("; ")
		}
		builder.WriteString(err.Error())
	}

	return builder.String()
}
