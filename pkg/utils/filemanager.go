// =============================================================================
// CSV to XLSX Converter - File Manager Utility
// =============================================================================
//
// This module provides file utilities for the converter:
//   - Output file naming from a format string
//   - Destination checks (parent directory present and a directory)
//   - Absolute path resolution for reporting
//
// Directories are never created here. A destination whose parent directory
// is missing is reported as a failure.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName generates an output file name from a format string.
//
// PARAMETERS:
//   - format: The format string for the file name.
//             Placeholders:
//               {uuid}      - A random UUID
//               {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//               {date}      - Current date (YYYYMMDD)
//               {time}      - Current time (HHMMSS)
//               {original}  - Original file name (without extension)
//   - params: A map of extra placeholder values, keyed without braces.
//
// RETURNS:
//   - The generated file name, always ending in ".xlsx" unless the format
//     already names another workbook extension.
//
// EXAMPLE:
//   format: "{original}_{timestamp}.xlsx"
//   params: {"original": "accounts"}
//   output: "accounts_20240115_143022.xlsx"
func GenerateOutputFileName(format string, params map[string]string) string {
	return generateOutputFileName(format, params, time.Now(), uuid.New())
}

// generateOutputFileName is GenerateOutputFileName with the clock and UUID
// supplied by the caller.
func generateOutputFileName(format string, params map[string]string, now time.Time, id uuid.UUID) string {
	replacements := map[string]string{
		"{uuid}":      id.String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}

	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	if !hasWorkbookExtension(result) {
		result += ".xlsx"
	}

	return result
}

// OutputPathFor returns the output path for an input file: format applied
// with {original} set to the input's base name, placed in outputDir.
func OutputPathFor(inputPath, outputDir, format string) string {
	base := filepath.Base(inputPath)
	original := strings.TrimSuffix(base, filepath.Ext(base))

	name := GenerateOutputFileName(format, map[string]string{"original": original})
	return filepath.Join(outputDir, name)
}

// hasWorkbookExtension reports whether name ends in a workbook extension.
func hasWorkbookExtension(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return true
	}
	return false
}

// =============================================================================
// DESTINATION CHECKS
// =============================================================================

// CheckParentDir returns an error unless the parent directory of path exists
// and is a directory.
func CheckParentDir(path string) error {
	dir := filepath.Dir(path)

	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return fmt.Errorf("directory %s does not exist", dir)
	}
	if err != nil {
		return fmt.Errorf("failed to stat directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	return nil
}

// AbsPath returns the absolute form of path, or path itself if it cannot be
// resolved.
func AbsPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// GetFileSize returns the size of a file in bytes.
func GetFileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
