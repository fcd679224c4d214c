package snapshot

import (
	"errors"
	"snapcheck/pkg/diff"
	"unicode/utf8"
)

var errInvalidUTF8 = errors.New("snapshot is not valid UTF-8")

// Text asserts got against a text snapshot (default extension ".txt").
func (s *Store) Text(got string, opts ...Option) error {
	return s.text(s.request(".txt", opts), got)
}

func (s *Store) text(req *Request, got string) error {
	return s.check(req, variant{
		kind:    "text",
		encoded: []byte(got),
		equal: func(baseline []byte) (bool, error) {
			if !utf8.Valid(baseline) {
				return false, errInvalidUTF8
			}
			return string(baseline) == got, nil
		},
		mismatch: func(baseline []byte, name, path string) error {
			expected := string(baseline)
			if diff.OnlyNewlines(got, expected) {
				return &NewlineError{Name: name, Path: path, Expected: expected, Got: got}
			}
			return &ChangedError{
				Name: name,
				Path: path,
				Diff: s.textDiffFor(req)(got, expected, req.FromFile, req.ToFile),
			}
		},
	})
}
