// Package textutil holds small text helpers for diagnostics.
package textutil

import (
	"fmt"
	"strconv"
	"strings"
)

// Cutout marks a position in a long text: the lines around line (1-based)
// are numbered and a "---^" marker is placed under column (1-based).
func Cutout(text string, line, column, extraLines int) (string, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if line < 1 || line > len(lines) {
		return "", fmt.Errorf("line %d out of range 1..%d", line, len(lines))
	}
	if column < 1 {
		return "", fmt.Errorf("column %d must be >= 1", column)
	}
	if extraLines < 0 {
		return "", fmt.Errorf("extra lines %d must be >= 0", extraLines)
	}

	from := max(line-extraLines, 1)
	to := min(line+extraLines, len(lines))
	width := len(strconv.Itoa(to))

	var b strings.Builder
	for no := from; no <= to; no++ {
		if no > from {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%0*d %s", width, no, lines[no-1])
		if no == line {
			b.WriteByte('\n')
			b.WriteString(strings.Repeat("-", width+column))
			b.WriteByte('^')
		}
	}
	return b.String(), nil
}
