// =============================================================================
// CSV to XLSX Converter - Configuration Module
// =============================================================================
//
// This module is responsible for loading the application configuration.
//
// CONFIGURATION FILE:
//   config.yaml (optional). When the file does not exist every setting takes
//   its default value; command-line flags override whatever was loaded.
//
// EXAMPLE:
//   csv_settings:
//     delimiter: ","
//     encoding: "UTF-8"
//     na_values: []
//   sheet_name: "Sheet1"
//   output_file: "output_with_leading_zeros.xlsx"
//   output_dir: "."
//   output_name_format: "{original}.xlsx"
//   verify: false
//   strict: false
//   log_level: "info"
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	// DefaultConfigFile is the configuration file looked up when --config is
	// not given.
	DefaultConfigFile = "config.yaml"

	// DefaultOutputFile is the workbook written when neither an input file
	// nor an output path is given.
	DefaultOutputFile = "output_with_leading_zeros.xlsx"

	// DefaultSheetName matches the sheet name spreadsheet tools create.
	DefaultSheetName = "Sheet1"

	// DefaultOutputNameFormat derives the output name from the input name.
	DefaultOutputNameFormat = "{original}.xlsx"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// CSVSettings contains settings for parsing the input text.
	CSVSettings CSVSettings `yaml:"csv_settings"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// SheetName is the name of the single worksheet in the output workbook.
	// Default: "Sheet1"
	SheetName string `yaml:"sheet_name"`

	// OutputFile is the workbook path used when no input file is given.
	// Default: "output_with_leading_zeros.xlsx"
	OutputFile string `yaml:"output_file"`

	// OutputDir is the directory for generated output names.
	// It is not created; it must exist.
	// Default: "."
	OutputDir string `yaml:"output_dir"`

	// OutputNameFormat defines the output file name when converting an input
	// file without an explicit --output.
	// Placeholders:
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {date}      - Current date (YYYYMMDD)
	//   {time}      - Current time (HHMMSS)
	//   {original}  - Input file name without extension
	// Default: "{original}.xlsx"
	OutputNameFormat string `yaml:"output_name_format"`

	// Verify reads the workbook back after writing and compares every cell
	// with the input.
	Verify bool `yaml:"verify"`

	// Strict makes the CLI exit non-zero when a conversion fails.
	// By default failures are reported and the process exits normally.
	Strict bool `yaml:"strict"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`
}

// =============================================================================
// CSV SETTINGS STRUCTURE
// =============================================================================

// CSVSettings contains settings for parsing delimited text.
type CSVSettings struct {
	// Delimiter is the character used to separate fields.
	// Common values: "," (comma), "|" (pipe), "\t" or "tab", ";"
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// Encoding is the character encoding of the input.
	// Common values: "UTF-8", "UTF-16", "ISO-8859-1", "Windows-1252"
	// Default: "UTF-8"
	Encoding string `yaml:"encoding"`

	// NAValues lists tokens that are written as empty cells.
	// Default: none, so every token is written exactly as it appears.
	NAValues []string `yaml:"na_values"`
}

// validLogLevels are the accepted values for MainConfig.LogLevel.
var validLogLevels = []string{"debug", "info", "warn", "error"}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// DefaultMainConfig returns a configuration with every default applied.
func DefaultMainConfig() *MainConfig {
	config := &MainConfig{}
	applyMainConfigDefaults(config)
	return config
}

// LoadMainConfig loads the main configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the main configuration file.
//
// RETURNS:
//   - A pointer to the MainConfig struct. A missing file yields the defaults.
//   - An error if the file cannot be read, parsed or validated.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultMainConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseMainConfig(data)
}

// ParseMainConfig parses YAML configuration data, applies defaults and
// validates the result.
func ParseMainConfig(data []byte) (*MainConfig, error) {
	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyMainConfigDefaults(&config)

	if err := validateMainConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.CSVSettings.Delimiter == "" {
		config.CSVSettings.Delimiter = ","
	}
	if config.CSVSettings.Encoding == "" {
		config.CSVSettings.Encoding = "UTF-8"
	}
	if config.SheetName == "" {
		config.SheetName = DefaultSheetName
	}
	if config.OutputFile == "" {
		config.OutputFile = DefaultOutputFile
	}
	if config.OutputDir == "" {
		config.OutputDir = "."
	}
	if config.OutputNameFormat == "" {
		config.OutputNameFormat = DefaultOutputNameFormat
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
}

// validateMainConfig validates the main configuration.
// Option values that depend on the parser or the workbook format are checked
// by the validation package when a conversion starts.
func validateMainConfig(config *MainConfig) error {
	config.LogLevel = strings.ToLower(config.LogLevel)

	for _, level := range validLogLevels {
		if config.LogLevel == level {
			return nil
		}
	}

	return fmt.Errorf("log_level %q must be one of %s",
		config.LogLevel, strings.Join(validLogLevels, ", "))
}
