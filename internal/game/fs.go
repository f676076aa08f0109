package game

import (
	"errors"
	"io/fs"
	"os"
)

// FS is the filesystem collaborator used for documents and asset checks.
type FS interface {
	// Exists reports whether path names an existing file or directory.
	Exists(path string) bool
	// ReadFile returns the content of path. Missing files yield an error
	// matching fs.ErrNotExist.
	ReadFile(path string) ([]byte, error)
}

// OSFS reads from the local disk.
type OSFS struct{}

// Exists reports whether path exists on disk.
func (OSFS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadFile reads path from disk.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// IsNotFound reports whether err means a file does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
