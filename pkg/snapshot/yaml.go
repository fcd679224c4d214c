package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

// YAML asserts got against a YAML snapshot (default extension ".yaml"). It
// accepts the same shapes as JSON and compares the decoded documents.
func (s *Store) YAML(got any, opts ...Option) error {
	if err := checkShape(got); err != nil {
		return err
	}
	req := s.request(".yaml", opts)

	encoded, err := encodeYAML(got)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedShape, err)
	}
	var normalized any
	if err := yaml.Unmarshal(encoded, &normalized); err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedShape, err)
	}

	return s.check(req, variant{
		kind:    "yaml",
		encoded: encoded,
		equal: func(baseline []byte) (bool, error) {
			expected, err := decodeYAML(baseline)
			if err != nil {
				return false, fmt.Errorf("malformed YAML snapshot: %w", err)
			}
			return cmp.Equal(normalized, expected), nil
		},
		mismatch: func(baseline []byte, name, path string) error {
			return &ChangedError{
				Name: name,
				Path: path,
				Diff: s.textDiffFor(req)(string(encoded), string(baseline), req.FromFile, req.ToFile),
			}
		},
	})
}

func encodeYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(4)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var errExtraDocument = errors.New("more than one YAML document")

// decodeYAML reads a single document. An empty input decodes to nil.
func decodeYAML(data []byte) (any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var out any
	if err := dec.Decode(&out); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}
	var extra any
	if err := dec.Decode(&extra); err != io.EOF {
		if err != nil {
			return nil, err
		}
		return nil, errExtraDocument
	}
	return out, nil
}
