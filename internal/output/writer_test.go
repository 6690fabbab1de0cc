package output

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDirWriter_Prepare_CreatesNestedRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "deep", "nested", "site")

	w := NewDirWriter(root)
	require.NoError(t, w.Prepare())

	info, err := os.Stat(root)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}

func TestDirWriter_WriteFile_WritesAndOverwrites(t *testing.T) {
	root := t.TempDir()
	w := NewDirWriter(root)

	require.NoError(t, w.WriteFile("index.html", []byte("first")))
	require.NoError(t, w.WriteFile("index.html", []byte("second")))

	data, err := os.ReadFile(filepath.Join(root, "index.html"))
	require.NoError(t, err)
	require.Equal(t, "second", string(data))
}

func TestDirWriter_EscapingPath_ReturnsWriteError(t *testing.T) {
	w := NewDirWriter(t.TempDir())

	err := w.WriteFile("../outside.html", []byte("nope"))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrPathEscape))

	var we *WriteError
	require.True(t, errors.As(err, &we))
	require.Equal(t, "../outside.html", we.Path)
}

func TestDirWriter_MissingParentDir_ReturnsWriteError(t *testing.T) {
	w := NewDirWriter(filepath.Join(t.TempDir(), "never-prepared"))

	err := w.WriteFile("index.html", []byte("x"))
	require.Error(t, err)

	var we *WriteError
	require.True(t, errors.As(err, &we))
}
