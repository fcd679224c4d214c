package snapshot

import (
	"bytes"
	"snapcheck/pkg/diff"
)

// Binary asserts raw bytes (default extension ".bin"). Mismatches are
// described by length and checksum unless WithTextDiff is given.
func (s *Store) Binary(got []byte, opts ...Option) error {
	req := s.request(".bin", opts)

	return s.check(req, variant{
		kind:    "binary",
		encoded: got,
		equal: func(baseline []byte) (bool, error) {
			return bytes.Equal(baseline, got), nil
		},
		mismatch: func(baseline []byte, name, path string) error {
			rendered := diff.Binary(got, baseline, req.FromFile, req.ToFile)
			if req.TextDiff != nil {
				rendered = req.TextDiff(string(got), string(baseline), req.FromFile, req.ToFile)
			}
			return &ChangedError{Name: name, Path: path, Diff: rendered}
		},
	})
}
