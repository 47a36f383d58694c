// =============================================================================
// CSV to XLSX Converter - CSV Parser Module
// =============================================================================
//
// This module turns a delimited-text payload into a types.Table. It is the
// place where the "everything is text" contract is enforced: fields are
// handed through exactly as the CSV reader decoded them. No trimming, no
// number parsing, no date detection.
//
// FEATURES:
//   - Configurable delimiter (comma, tab, pipe, semicolon or any single rune)
//   - Configurable input encoding (UTF-8, UTF-16, ISO-8859-1, Windows-1252)
//   - UTF-8 byte order mark removal
//   - Blank and whitespace-only lines are skipped
//   - Empty header names become "Unnamed: <index>"
//   - Duplicate header names are suffixed ".1", ".2", ...
//   - Short rows are padded with empty strings
//   - Optional NA tokens replaced with the empty string
//
// =============================================================================

package csvparser

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ginjaninja78/CSV-to-XLSX-conversion/internal/config"
	"github.com/ginjaninja78/CSV-to-XLSX-conversion/internal/types"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// utf8BOM is stripped from the start of the decoded input.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrTooManyFields is returned when a data row has more fields than the
// header row.
var ErrTooManyFields = errors.New("too many fields")

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// ParseString parses an in-memory delimited-text payload.
func ParseString(text string, settings config.CSVSettings) (*types.Table, error) {
	return Parse(strings.NewReader(text), settings)
}

// Parse reads delimited text from r and returns the parsed table.
//
// PARAMETERS:
//   - r: The delimited-text source. The first non-blank line is the header.
//   - settings: The CSV parsing settings from the configuration.
//
// RETURNS:
//   - A pointer to the Table. Empty input yields an empty table, not an error.
//   - An error if the input cannot be decoded or a row is malformed.
func Parse(r io.Reader, settings config.CSVSettings) (*types.Table, error) {
	comma, err := ResolveDelimiter(settings.Delimiter)
	if err != nil {
		return nil, err
	}

	decoded, err := decodeReader(r, settings.Encoding)
	if err != nil {
		return nil, err
	}

	// Skip the byte order mark, if any.
	br := bufio.NewReader(decoded)
	if prefix, _ := br.Peek(len(utf8BOM)); bytes.Equal(prefix, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, fmt.Errorf("failed to skip byte order mark: %w", err)
		}
	}

	csvReader := csv.NewReader(br)
	configureReader(csvReader, comma)

	naValues := make(map[string]struct{}, len(settings.NAValues))
	for _, v := range settings.NAValues {
		naValues[v] = struct{}{}
	}

	var headers []string
	var rows [][]string

	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}

		if isBlankLine(record) {
			continue
		}

		if headers == nil {
			headers = normalizeHeaders(record)
			continue
		}

		if len(record) > len(headers) {
			line, _ := csvReader.FieldPos(0)
			return nil, fmt.Errorf("line %d: expected %d fields, saw %d: %w",
				line, len(headers), len(record), ErrTooManyFields)
		}

		rows = append(rows, substituteNA(record, naValues))
	}

	if headers == nil {
		return &types.Table{}, nil
	}

	return types.NewTable(headers, rows), nil
}

// configureReader applies the reader options shared by every parse.
func configureReader(reader *csv.Reader, comma rune) {
	reader.Comma = comma

	// Row width is checked against the header by Parse so the error can
	// carry the line number; short rows are padded.
	reader.FieldsPerRecord = -1

	// Allow lazy quotes (quotes that don't follow strict CSV rules).
	reader.LazyQuotes = true

	// Leading spaces are part of the token.
	reader.TrimLeadingSpace = false
}

// ResolveDelimiter maps a configured delimiter to the rune used by the CSV
// reader. Besides any single character it accepts the names "comma", "tab",
// "pipe" and "semicolon", and the escaped form "\t".
func ResolveDelimiter(delimiter string) (rune, error) {
	switch delimiter {
	case "", ",", "comma", "COMMA":
		return ',', nil
	case "\\t", "\t", "tab", "TAB":
		return '\t', nil
	case "|", "pipe", "PIPE":
		return '|', nil
	case ";", "semicolon", "SEMICOLON":
		return ';', nil
	}

	if utf8.RuneCountInString(delimiter) != 1 {
		return 0, fmt.Errorf("delimiter %q must be a single character", delimiter)
	}

	r, _ := utf8.DecodeRuneInString(delimiter)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, fmt.Errorf("delimiter %q is not allowed", delimiter)
	}

	return r, nil
}

// =============================================================================
// ENCODING
// =============================================================================

// SupportedEncodings lists the accepted values for CSVSettings.Encoding.
func SupportedEncodings() []string {
	return []string{"UTF-8", "UTF-16", "ISO-8859-1", "Windows-1252"}
}

// IsSupportedEncoding reports whether name is an encoding the parser can decode.
func IsSupportedEncoding(name string) bool {
	_, err := lookupEncoding(name)
	return err == nil
}

// lookupEncoding returns the decoder for name. A nil encoding means the input
// is already UTF-8.
func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), "_", "-")) {
	case "", "UTF-8", "UTF8":
		return nil, nil
	case "UTF-16", "UTF16":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), nil
	case "ISO-8859-1", "ISO8859-1", "LATIN1", "LATIN-1":
		return charmap.ISO8859_1, nil
	case "WINDOWS-1252", "CP1252":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
}

// decodeReader wraps r so that it yields UTF-8.
func decodeReader(r io.Reader, name string) (io.Reader, error) {
	enc, err := lookupEncoding(name)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return r, nil
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

// =============================================================================
// HEADER AND ROW HELPERS
// =============================================================================

// normalizeHeaders names empty headers after their column index and makes
// duplicate names unique by appending ".N".
//
// Example:
//   "id", "", "code", "code"  ->  "id", "Unnamed: 1", "code", "code.1"
func normalizeHeaders(record []string) []string {
	headers := make([]string, len(record))
	used := make(map[string]bool, len(record))
	counts := make(map[string]int, len(record))

	for i, name := range record {
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}

		if used[name] {
			base := name
			for used[name] {
				counts[base]++
				name = fmt.Sprintf("%s.%d", base, counts[base])
			}
		}

		used[name] = true
		headers[i] = name
	}

	return headers
}

// isBlankLine reports whether a record came from a whitespace-only line.
// The CSV reader drops empty lines itself, so a single empty field can only
// come from a quoted "" and is kept as a row.
func isBlankLine(record []string) bool {
	return len(record) == 1 && record[0] != "" && strings.TrimSpace(record[0]) == ""
}

// substituteNA replaces tokens listed in naValues with the empty string.
func substituteNA(record []string, naValues map[string]struct{}) []string {
	if len(naValues) == 0 {
		return record
	}
	for i, v := range record {
		if _, ok := naValues[v]; ok {
			record[i] = ""
		}
	}
	return record
}
