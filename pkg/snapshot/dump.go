package snapshot

import (
	"snapcheck/pkg/pformat"
)

// Dump asserts any Go value through its pformat.Dump rendering (default
// extension ".txt"). Unlike JSON it keeps type distinctions: an array and a
// slice, or a uuid.UUID and its string, render differently.
func (s *Store) Dump(got any, opts ...Option) error {
	req := s.request(".txt", opts)
	rendered := pformat.Dump(got)

	return s.check(req, variant{
		kind:    "dump",
		encoded: []byte(rendered),
		equal: func(baseline []byte) (bool, error) {
			return string(baseline) == rendered, nil
		},
		mismatch: func(baseline []byte, name, path string) error {
			return &ChangedError{
				Name: name,
				Path: path,
				Diff: s.textDiffFor(req)(rendered, string(baseline), req.FromFile, req.ToFile),
			}
		},
	})
}
