package converter

import "fmt"

// Conversion stages named in ConversionError.Op.
const (
	OpValidate = "validate"
	OpRead     = "read"
	OpParse    = "parse"
	OpWrite    = "write"
	OpVerify   = "verify"
)

// ConversionError is the single failure kind of a conversion. It wraps the
// underlying parse, validation or I/O error.
type ConversionError struct {
	// Op is the stage that failed, one of the Op constants.
	Op string

	// Path is the destination (or, for OpRead, the input) path.
	Path string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConversionError) Unwrap() error {
	return e.Err
}
