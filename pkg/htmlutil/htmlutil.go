// Package htmlutil validates, selects from and pretty-prints HTML documents.
//
// The parser backend is optional: building with the "nohtml" tag leaves it
// out, and every function then returns a *feature.UnavailableError.
package htmlutil

import (
	"fmt"
	"snapcheck/internal/feature"
	"snapcheck/internal/textutil"
	"strings"
)

// FeatureHTML is the capability name registered with internal/feature.
const FeatureHTML = "html"

// ErrFeatureUnavailable matches the error returned when the backend is not
// compiled in.
var ErrFeatureUnavailable = feature.ErrUnavailable

func init() {
	feature.Declare(FeatureHTML, "golang.org/x/net/html", "nohtml")
}

type backend interface {
	validate(data string) error
	selectElements(data, selector string) (string, error)
	pretty(data string) (string, error)
}

var impl backend

// Validate checks that every opened element is closed in the right order.
// Void elements (br, img, ...) need no end tag. It is meant to catch really
// broken markup, not to enforce the HTML content model.
func Validate(data string) error {
	if err := feature.Require(FeatureHTML); err != nil {
		return err
	}
	return impl.validate(data)
}

// Select returns the outer HTML of all elements matching the CSS selector,
// concatenated in document order.
func Select(data, selector string) (string, error) {
	if err := feature.Require(FeatureHTML); err != nil {
		return "", err
	}
	return impl.selectElements(data, selector)
}

// Pretty formats data with one node per line and one space of indentation
// per nesting level.
func Pretty(data string) (string, error) {
	if err := feature.Require(FeatureHTML); err != nil {
		return "", err
	}
	return impl.pretty(data)
}

const rule = "--------------------------------------------------------------------------------"

// InvalidHTMLError points at the offending position of malformed markup.
type InvalidHTMLError struct {
	Msg    string
	Line   int // 1-based
	Column int // 1-based
	Cutout string
}

func (e *InvalidHTMLError) Error() string {
	return fmt.Sprintf("%s, line %d, column %d\n%s\n%s\n%s", e.Msg, e.Line, e.Column, rule, e.Cutout, rule)
}

func newInvalidHTMLError(data, msg string, offset int) *InvalidHTMLError {
	line, column := position(data, offset)
	cutout, err := textutil.Cutout(data, line, column, 3)
	if err != nil {
		cutout = ""
	}
	return &InvalidHTMLError{Msg: msg, Line: line, Column: column, Cutout: cutout}
}

// position converts a byte offset into a 1-based line and rune column.
func position(data string, offset int) (line, column int) {
	offset = min(max(offset, 0), len(data))
	before := data[:offset]
	line = strings.Count(before, "\n") + 1
	lineStart := strings.LastIndexByte(before, '\n') + 1
	column = len([]rune(before[lineStart:])) + 1
	return line, column
}

// ElementsNotFoundError is returned by Select when nothing matches.
type ElementsNotFoundError struct {
	Selector string
}

func (e *ElementsNotFoundError) Error() string {
	return fmt.Sprintf("The query selector %s did not match any element in the HTML document", e.Selector)
}
