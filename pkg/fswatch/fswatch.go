// Package fswatch records the files of a directory so a test can find out
// which files it created, and remove them again.
package fswatch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"snapcheck/internal/pathutil"
	"sort"
)

// Watcher compares a directory against the state seen at creation time.
type Watcher struct {
	dir     string
	cleanup bool
	before  map[string]struct{}
}

// New records the current entries of dir. With cleanup set, Close removes
// every file created since.
func New(dir string, cleanup bool) (*Watcher, error) {
	if err := pathutil.AssertIsDir(dir); err != nil {
		return nil, err
	}
	entries, err := list(dir)
	if err != nil {
		return nil, err
	}
	before := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		before[e] = struct{}{}
	}
	return &Watcher{dir: dir, cleanup: cleanup, before: before}, nil
}

// NewItems returns the paths of entries created since New, sorted.
func (w *Watcher) NewItems() ([]string, error) {
	entries, err := list(w.dir)
	if err != nil {
		return nil, err
	}
	var added []string
	for _, e := range entries {
		if _, ok := w.before[e]; !ok {
			added = append(added, filepath.Join(w.dir, e))
		}
	}
	sort.Strings(added)
	return added, nil
}

// Close removes the new entries if cleanup was requested.
func (w *Watcher) Close() error {
	if !w.cleanup {
		return nil
	}
	added, err := w.NewItems()
	if err != nil {
		return err
	}
	var errs []error
	for _, path := range added {
		if err := os.RemoveAll(path); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func list(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}
