package snapshot

import (
	"fmt"
	"reflect"
	"snapcheck/pkg/pformat"

	"github.com/google/go-cmp/cmp"
)

// JSON asserts got against a JSON snapshot (default extension ".json").
//
// Only nil, maps and slices are accepted. The file holds canonical JSON, and
// equality is decided on the decoded JSON, so distinctions JSON cannot carry
// (arrays vs slices, a uuid.UUID vs its string) are not seen. Use Dump when
// they matter.
func (s *Store) JSON(got any, opts ...Option) error {
	if err := checkShape(got); err != nil {
		return err
	}
	req := s.request(".json", opts)

	encoded, err := pformat.JSON(got)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedShape, err)
	}
	normalized, err := pformat.Normalize(got)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedShape, err)
	}

	return s.check(req, variant{
		kind:    "json",
		encoded: []byte(encoded),
		equal: func(baseline []byte) (bool, error) {
			expected, err := pformat.Decode(baseline)
			if err != nil {
				return false, fmt.Errorf("malformed JSON snapshot: %w", err)
			}
			return cmp.Equal(normalized, expected), nil
		},
		mismatch: func(baseline []byte, name, path string) error {
			expected, _ := pformat.Decode(baseline)
			return &ChangedError{
				Name: name,
				Path: path,
				Diff: s.valueDiffFor(req)(got, expected, req.FromFile, req.ToFile),
			}
		},
	})
}

// checkShape allows nil, maps and slices other than []byte.
func checkShape(got any) error {
	if got == nil {
		return nil
	}
	t := reflect.TypeOf(got)
	switch {
	case t.Kind() == reflect.Map:
		return nil
	case t.Kind() == reflect.Slice && t.Elem().Kind() != reflect.Uint8:
		return nil
	}
	return fmt.Errorf("%w: %v is not a map or slice, but a %T", ErrUnsupportedShape, got, got)
}
