// =============================================================================
// CSV to XLSX Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (csv2xlsx)
//   ├── convertCmd (csv2xlsx convert)
//   ├── inspectCmd (csv2xlsx inspect)
//   └── versionCmd (csv2xlsx version)
//
// Running the root command without a subcommand converts the built-in
// sample data, exactly like "csv2xlsx convert" with no flags.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/ginjaninja78/CSV-to-XLSX-conversion/internal/config"
	"github.com/ginjaninja78/CSV-to-XLSX-conversion/internal/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL FLAGS
// =============================================================================

// globalFlags holds the persistent flags shared by every subcommand.
type globalFlags struct {
	// cfgFile is the path to the main configuration file.
	cfgFile string

	// verbose enables debug logging.
	verbose bool

	// strict makes a failed conversion exit with a non-zero status.
	strict bool
}

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// NewRootCommand builds the command tree with fresh flag state.
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}
	convert := &convertFlags{}

	rootCmd := &cobra.Command{
		Use:   "csv2xlsx",
		Short: "CSV to XLSX Converter - Write CSV data to Excel without losing leading zeros",
		Long: `CSV to XLSX Converter writes delimited text to an Excel workbook.
Every field is written as a text cell, so values such as "007" or "02134"
keep their leading zeros instead of being turned into numbers.

Example Usage:
  csv2xlsx                                   # Convert the built-in sample data
  csv2xlsx convert --input data.csv          # Write data.xlsx next to the config's output_dir
  csv2xlsx convert -i - -o out.xlsx < a.csv  # Read from stdin
  csv2xlsx inspect out.xlsx                  # Print the cells of a workbook`,

		// Failures are printed by Execute or reported by the command itself.
		SilenceUsage:  true,
		SilenceErrors: true,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, flags, convert)
		},
	}

	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================

	rootCmd.PersistentFlags().StringVar(
		&flags.cfgFile,
		"config",
		config.DefaultConfigFile,
		"Path to the configuration file; a missing file means defaults",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&flags.verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	rootCmd.PersistentFlags().BoolVar(
		&flags.strict,
		"strict",
		false,
		"Exit with a non-zero status when a conversion fails",
	)

	rootCmd.AddCommand(newConvertCommand(flags, convert))
	rootCmd.AddCommand(newInspectCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the CLI. This is called by main.main().
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// CONFIGURATION INITIALIZATION
// =============================================================================

// loadRuntime loads the configuration file and builds the logger.
func loadRuntime(cmd *cobra.Command, flags *globalFlags) (*config.MainConfig, zerolog.Logger, error) {
	cfg, err := config.LoadMainConfig(flags.cfgFile)
	if err != nil {
		return nil, zerolog.Logger{}, fmt.Errorf("failed to load config: %w", err)
	}

	if flags.strict {
		cfg.Strict = true
	}

	level := cfg.LogLevel
	if flags.verbose {
		level = "debug"
	}

	logger := logging.New(level, cmd.ErrOrStderr())
	logger.Debug().Str("config", flags.cfgFile).Msg("configuration loaded")

	return cfg, logger, nil
}
