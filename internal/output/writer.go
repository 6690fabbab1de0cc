// Package output writes generated site files into the destination directory.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrPathEscape indicates a relative path that would resolve outside the
// destination root.
var ErrPathEscape = errors.New("path escapes destination directory")

// WriteError names the file that could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string { return fmt.Sprintf("write %s: %v", e.Path, e.Err) }
func (e *WriteError) Unwrap() error { return e.Err }

// Writer is the destination-directory capability handed to the build
// pipeline. Implementations overwrite existing files unconditionally;
// builds are not incremental.
type Writer interface {
	// Prepare creates the destination root (recursively).
	Prepare() error
	// WriteFile writes data at a path relative to the destination root.
	WriteFile(rel string, data []byte) error
}

// DirWriter writes files under a filesystem root.
type DirWriter struct {
	root string
}

func NewDirWriter(root string) *DirWriter { return &DirWriter{root: root} }

func (w *DirWriter) Prepare() error {
	if err := os.MkdirAll(w.root, 0o750); err != nil {
		return &WriteError{Path: w.root, Err: err}
	}
	return nil
}

func (w *DirWriter) WriteFile(rel string, data []byte) error {
	if !filepath.IsLocal(rel) {
		return &WriteError{Path: rel, Err: ErrPathEscape}
	}
	full := filepath.Join(w.root, rel)
	// #nosec G306 -- generated pages are public content
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return &WriteError{Path: full, Err: err}
	}
	return nil
}
