// =============================================================================
// CSV to XLSX Converter - Convert Command
// =============================================================================
//
// This file defines the 'convert' command, the main command of the tool.
//
// COMMAND USAGE:
//   csv2xlsx convert [flags]
//
// FLAGS:
//   --input, -i   : CSV file to convert, "-" for stdin (default: built-in sample)
//   --output, -o  : Workbook path (default: derived from the input name)
//   --delimiter   : Field delimiter
//   --sheet       : Worksheet name
//   --encoding    : Input encoding
//   --na-value    : Token written as an empty cell (repeatable)
//   --verify      : Read the workbook back and compare every cell
//
// A failed conversion is reported on stdout and the command still succeeds,
// unless --strict (or strict: true in the config) is set.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"

	"github.com/ginjaninja78/CSV-to-XLSX-conversion/internal/config"
	"github.com/ginjaninja78/CSV-to-XLSX-conversion/internal/converter"
	"github.com/ginjaninja78/CSV-to-XLSX-conversion/pkg/utils"
	"github.com/spf13/cobra"
)

// sampleCSV is converted when no input is given.
const sampleCSV = `account_id,zip_code,phone,amount,note
000123,02134,0044123456,0010.50,first
004567,00501,0033987654,12,
000089,10001,,007,"quoted, with comma"
`

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// convertFlags holds the flags of the convert command.
type convertFlags struct {
	input     string
	output    string
	delimiter string
	sheet     string
	encoding  string
	naValues  []string
	verify    bool
}

// =============================================================================
// CONVERT COMMAND DEFINITION
// =============================================================================

// newConvertCommand builds the 'convert' command.
func newConvertCommand(global *globalFlags, flags *convertFlags) *cobra.Command {
	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert CSV data to an XLSX workbook",
		Long: `The convert command reads delimited text and writes it to a single-sheet
workbook. The first line is the header row; every field is written as text.

Rows with fewer fields than the header get empty cells. A row with more
fields than the header is an error.

Without --input the built-in sample data is converted to the configured
output_file (default output_with_leading_zeros.xlsx).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, global, flags)
		},
	}

	convertCmd.Flags().StringVarP(&flags.input, "input", "i", "", `CSV file to convert, "-" for stdin`)
	convertCmd.Flags().StringVarP(&flags.output, "output", "o", "", "Path of the workbook to write")
	convertCmd.Flags().StringVar(&flags.delimiter, "delimiter", "", `Field delimiter ("," "tab" "pipe" "semicolon" or one character)`)
	convertCmd.Flags().StringVar(&flags.sheet, "sheet", "", "Worksheet name")
	convertCmd.Flags().StringVar(&flags.encoding, "encoding", "", "Input encoding (UTF-8, UTF-16, ISO-8859-1, Windows-1252)")
	convertCmd.Flags().StringArrayVar(&flags.naValues, "na-value", nil, "Token to write as an empty cell (repeatable)")
	convertCmd.Flags().BoolVar(&flags.verify, "verify", false, "Read the workbook back and compare every cell")

	return convertCmd
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runConvert loads the configuration, applies flag overrides and runs one
// conversion.
func runConvert(cmd *cobra.Command, global *globalFlags, flags *convertFlags) error {
	cfg, logger, err := loadRuntime(cmd, global)
	if err != nil {
		return err
	}

	applyConvertFlags(cfg, flags)

	out := cmd.OutOrStdout()
	conv := converter.New(converter.OptionsFromConfig(cfg), logger).WithProgress(out)

	var result *converter.Result
	if flags.input == "" {
		dest := flags.output
		if dest == "" {
			dest = cfg.OutputFile
		}
		result, err = conv.Convert(sampleCSV, dest)
	} else {
		dest := flags.output
		if dest == "" {
			dest = utils.OutputPathFor(flags.input, cfg.OutputDir, cfg.OutputNameFormat)
		}
		result, err = conv.ConvertFile(flags.input, dest)
	}

	reportResult(out, result, err)

	if err != nil {
		logger.Error().Err(err).Msg("conversion failed")
		if cfg.Strict {
			return err
		}
		return nil
	}

	if size, err := utils.GetFileSize(result.OutputFile); err == nil {
		logger.Debug().Int64("bytes", size).Int("rows", result.Stats.RowsWritten).Msg("conversion finished")
	}

	return nil
}

// applyConvertFlags overrides configuration values with flags that were set.
func applyConvertFlags(cfg *config.MainConfig, flags *convertFlags) {
	if flags.delimiter != "" {
		cfg.CSVSettings.Delimiter = flags.delimiter
	}
	if flags.encoding != "" {
		cfg.CSVSettings.Encoding = flags.encoding
	}
	if len(flags.naValues) > 0 {
		cfg.CSVSettings.NAValues = flags.naValues
	}
	if flags.sheet != "" {
		cfg.SheetName = flags.sheet
	}
	if flags.verify {
		cfg.Verify = true
	}
}

// reportResult prints the completion or failure message.
func reportResult(w io.Writer, result *converter.Result, err error) {
	if err != nil {
		fmt.Fprintf(w, "An unexpected error occurred: %v\n", err)
		return
	}

	fmt.Fprintln(w, "\nConversion successful!")
	fmt.Fprintf(w, "File saved at: %s\n", result.OutputFile)
}
