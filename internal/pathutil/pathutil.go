// Package pathutil holds existence checks for files and directories.
package pathutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	// ErrNotDirectory is returned when a path is expected to be a directory.
	ErrNotDirectory = errors.New("directory does not exist")
	// ErrNotFile is returned when a path is expected to be a regular file.
	ErrNotFile = errors.New("file does not exist")
)

// AssertIsDir checks that path is an existing directory.
func AssertIsDir(path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %q", ErrNotDirectory, path)
	}
	return nil
}

// AssertIsFile checks that path is an existing regular file inside an
// existing directory.
func AssertIsFile(path string) error {
	if err := AssertIsDir(filepath.Dir(path)); err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %q", ErrNotFile, path)
	}
	return nil
}
