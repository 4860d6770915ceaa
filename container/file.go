package container

import (
	"os"

	"github.com/google/renameio"
)

// WriteFile builds a sequential container at path atomically: the container
// is assembled in a temporary file in the same directory and renamed into
// place only after Close succeeds. A crash mid-write leaves the previous
// file (or nothing) at path, never a half-written container.
//
// The build callback receives the writer; WriteFile closes it.
func WriteFile(path string, build func(*SequentialWriter) error, opts ...Option) error {
	t, err := renameio.TempFile("", path)
	if err != nil {
		return err
	}
	defer t.Cleanup() //nolint:errcheck

	w, err := NewSequentialWriter(t, opts...)
	if err != nil {
		return err
	}

	if err := build(w); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return t.CloseAtomicallyReplace()
}

// OpenFile opens the container at path for reading. The returned closer
// owns the file handle.
func OpenFile(path string) (*Reader, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	r, err := Open(f)
	if err != nil {
		f.Close() //nolint:errcheck,gosec

		return nil, nil, err
	}

	return r, f, nil
}
