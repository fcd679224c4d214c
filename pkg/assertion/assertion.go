// Package assertion compares values and explains mismatches with a diff.
package assertion

import (
	"reflect"
	"snapcheck/pkg/diff"

	"github.com/google/go-cmp/cmp"
)

// MismatchError carries the message and the rendered diff.
type MismatchError struct {
	Msg  string
	Diff string
}

func (e *MismatchError) Error() string {
	return e.Msg + "\n" + e.Diff
}

type options struct {
	msg       string
	fromFile  string
	toFile    string
	textDiff  diff.TextFunc
	valueDiff diff.ValueFunc
}

// Option configures an assertion.
type Option func(*options)

// Message replaces the first line of the error.
func Message(msg string) Option {
	return func(o *options) { o.msg = msg }
}

// Labels sets the diff labels, "got" and "expected" by default.
func Labels(fromFile, toFile string) Option {
	return func(o *options) {
		o.fromFile = fromFile
		o.toFile = toFile
	}
}

// WithTextDiff sets the diff used by TextEqual.
func WithTextDiff(fn diff.TextFunc) Option {
	return func(o *options) { o.textDiff = fn }
}

// WithValueDiff sets the diff used by Equal.
func WithValueDiff(fn diff.ValueFunc) Option {
	return func(o *options) { o.valueDiff = fn }
}

func newOptions(msg string, opts []Option) *options {
	o := &options{
		msg:       msg,
		fromFile:  "got",
		toFile:    "expected",
		textDiff:  diff.Unified,
		valueDiff: diff.PrettyUnified,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

var exportAll = cmp.Exporter(func(reflect.Type) bool { return true })

// Equal returns a *MismatchError when got and expected differ. Values are
// compared with go-cmp, unexported fields included.
func Equal(got, expected any, opts ...Option) error {
	if cmp.Equal(got, expected, exportAll) {
		return nil
	}
	o := newOptions("Objects are not equal:", opts)
	return &MismatchError{Msg: o.msg, Diff: o.valueDiff(got, expected, o.fromFile, o.toFile)}
}

// TextEqual returns a *MismatchError when the texts differ. Texts that only
// differ in line breaks are described instead of diffed.
func TextEqual(got, expected string, opts ...Option) error {
	if got == expected {
		return nil
	}
	o := newOptions("Text not equal:", opts)
	if diff.OnlyNewlines(got, expected) {
		return &MismatchError{Msg: o.msg, Diff: diff.Newlines(got, expected)}
	}
	return &MismatchError{Msg: o.msg, Diff: o.textDiff(got, expected, o.fromFile, o.toFile)}
}
