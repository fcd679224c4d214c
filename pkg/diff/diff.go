// Package diff renders human-readable differences between an actual ("got")
// and an expected value.
//
// Every strategy shares the signature (got, expected, fromFile, toFile), so
// callers can swap them freely.
package diff

import (
	"fmt"
)

// TextFunc renders the difference between two texts.
type TextFunc func(got, expected, fromFile, toFile string) string

// ValueFunc renders the difference between two structured values.
type ValueFunc func(got, expected any, fromFile, toFile string) string

// Names accepted by ByName.
const (
	StyleUnified = "unified"
	StyleNDiff   = "ndiff"
	StyleBinary  = "binary"
)

// Unified renders a unified diff from got to expected with the default
// engine. Equal texts render as "".
func Unified(got, expected, fromFile, toFile string) string {
	return DefaultEngine.ComputeDiff(fromFile, toFile, got, expected).String()
}

// ByName returns the text strategy registered under name.
func ByName(name string) (TextFunc, error) {
	switch name {
	case StyleUnified, "":
		return Unified, nil
	case StyleNDiff:
		return NDiff, nil
	case StyleBinary:
		return func(got, expected, fromFile, toFile string) string {
			return Binary([]byte(got), []byte(expected), fromFile, toFile)
		}, nil
	default:
		return nil, fmt.Errorf("unknown diff style %q (want %s, %s or %s)", name, StyleUnified, StyleNDiff, StyleBinary)
	}
}

// ForEngine binds Unified to a configured engine.
func ForEngine(e *Engine) TextFunc {
	return func(got, expected, fromFile, toFile string) string {
		return e.ComputeDiff(fromFile, toFile, got, expected).String()
	}
}
