package frontmatter

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedPreamble indicates the document does not contain two
	// delimiter lines, or the text between them is not valid YAML.
	ErrMalformedPreamble = errors.New("document preamble is malformed")

	// ErrMissingField indicates a required preamble field is absent or empty.
	ErrMissingField = errors.New("required preamble field missing")

	// ErrBadDate indicates the preamble date could not be parsed.
	ErrBadDate = errors.New("preamble date is not a valid RFC3339 timestamp")
)

// MissingFieldError names the absent required field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("required preamble field missing: %s", e.Field)
}
func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// DateParseError carries the offending date value.
type DateParseError struct {
	Value string
	Err   error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("cannot parse %q as RFC3339 timestamp: %v", e.Value, e.Err)
}
func (e *DateParseError) Unwrap() error { return ErrBadDate }
