// =============================================================================
// CSV to XLSX Converter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the CSV to XLSX Converter CLI application.
// It delegates command execution to the cmd package.
//
// USAGE:
//   csv2xlsx                - Convert the built-in sample data
//   csv2xlsx convert        - Convert a CSV file (or stdin) to a workbook
//   csv2xlsx inspect        - Print the cells of a workbook
//   csv2xlsx version        - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Parsing, writing, validation, configuration, logging
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/CSV-to-XLSX-conversion/cmd"
)

func main() {
	cmd.Execute()
}
