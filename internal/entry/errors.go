package entry

import (
	"errors"
	"fmt"
)

// ErrDuplicateURL reports two source files mapping to the same output URL.
var ErrDuplicateURL = errors.New("duplicate entry url")

// FileError ties a load failure to the source file that caused it.
type FileError struct {
	File string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
