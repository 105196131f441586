// Package vfs provides a virtual filesystem abstraction over afero so that scans can run against
// the real disk or an in-memory tree.
package vfs

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FS is the filesystem interface used throughout the codebase.
type FS = afero.Fs

// NewOSFS returns a filesystem backed by the real operating system filesystem.
// Scans never write, so the OS filesystem is wrapped read-only.
func NewOSFS() FS {
	return afero.NewReadOnlyFs(afero.NewOsFs())
}

// NewMemMapFS returns an in-memory filesystem for testing purposes.
func NewMemMapFS() FS {
	return afero.NewMemMapFs()
}

// FileExists checks if a path exists using the given filesystem.
// Returns (true, nil) if the file exists, (false, nil) if it does not exist,
// and (false, error) for other errors (e.g., permission denied).
func FileExists(fsys FS, path string) (bool, error) {
	_, err := fsys.Stat(path)
	if err == nil {
		return true, nil
	}

	if os.IsNotExist(err) {
		return false, nil
	}

	return false, err
}

// IsDir reports whether path exists and is a directory.
func IsDir(fsys FS, path string) (bool, error) {
	return afero.IsDir(fsys, path)
}

// ReadFile reads the contents of a file from the given filesystem.
func ReadFile(fsys FS, filename string) ([]byte, error) {
	return afero.ReadFile(fsys, filename)
}

// WriteFile writes data to a file on the given filesystem, creating parent directories.
func WriteFile(fsys FS, filename string, data []byte, perm os.FileMode) error {
	if err := fsys.MkdirAll(filepath.Dir(filename), os.ModePerm); err != nil {
		return err
	}

	return afero.WriteFile(fsys, filename, data, perm)
}

// Walk walks the file tree rooted at root in lexical order, calling fn for each entry.
func Walk(fsys FS, root string, fn filepath.WalkFunc) error {
	return afero.Walk(fsys, root, fn)
}
