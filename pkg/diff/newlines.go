package diff

import (
	"fmt"
	"strings"
)

var newlineStripper = strings.NewReplacer("\r\n", "", "\n", "")

// OnlyNewlines reports whether a and b differ but are equal once every line
// break is removed. Line diffs render such pairs as empty.
func OnlyNewlines(a, b string) bool {
	return a != b && newlineStripper.Replace(a) == newlineStripper.Replace(b)
}

// Newlines describes a difference in line breaks only.
func Newlines(got, expected string) string {
	return fmt.Sprintf("Differing newlines: Expected %q, got %q", expected, got)
}
