// Package pformat renders values as stable, human-diffable text.
//
// JSON is preferred because it reads well in diffs. Values that cannot be
// marshalled fall back to a go-spew dump, which also keeps type information
// (array vs slice, uuid.UUID vs string) that JSON loses.
package pformat

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// Indent is used by both renderings.
const Indent = "    "

var dumper = spew.ConfigState{
	Indent:                  Indent,
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SpewKeys:                true,
}

// JSON renders v as canonical JSON: object keys sorted, four-space indent,
// HTML and non-ASCII characters left as they are, no trailing newline.
func JSON(v any) (string, error) {
	normalized, err := Normalize(v)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", Indent)
	if err := enc.Encode(normalized); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Normalize round-trips v through JSON so it compares equal to a value
// decoded from a JSON file. Numbers are kept as json.Number to avoid float
// rounding.
func Normalize(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return Decode(raw)
}

// Decode parses JSON data the same way Normalize does. Data must hold exactly
// one JSON value.
func Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	end := dec.InputOffset()
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after JSON value at offset %d", end)
	}
	return out, nil
}

// Dump renders v with go-spew: map keys sorted, no pointer addresses.
func Dump(v any) string {
	return strings.TrimRight(dumper.Sdump(v), "\n")
}

// Format tries JSON first and falls back to Dump.
func Format(v any) string {
	if s, err := JSON(v); err == nil {
		return s
	}
	return Dump(v)
}
