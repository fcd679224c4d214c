package diff

import (
	"strings"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// similarRatio is the match ratio above which two lines are shown with
// intra-line guides instead of as unrelated removal and addition.
const similarRatio = 0.75

// NDiff renders a line-by-line delta: "  " for unchanged lines, "- " for
// lines only in got, "+ " for lines only in expected and "? " guides marking
// the changed characters of similar lines. The labels are accepted for
// signature compatibility and ignored.
func NDiff(got, expected, _, _ string) string {
	return DefaultEngine.NDiff(got, expected)
}

// NDiff is the engine-bound form of the package-level NDiff.
func (e *Engine) NDiff(got, expected string) string {
	a, b := splitLines(got), splitLines(expected)

	var out []string
	matcher := difflib.NewMatcher(a, b)
	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'e':
			out = appendPrefixed(out, "  ", a[op.I1:op.I2])
		case 'd':
			out = appendPrefixed(out, "- ", a[op.I1:op.I2])
		case 'i':
			out = appendPrefixed(out, "+ ", b[op.J1:op.J2])
		case 'r':
			out = e.replaceLines(out, a[op.I1:op.I2], b[op.J1:op.J2])
		}
	}
	return strings.Join(out, "\n")
}

func (e *Engine) replaceLines(out, a, b []string) []string {
	for i := 0; i < max(len(a), len(b)); i++ {
		switch {
		case i >= len(b):
			out = append(out, "- "+a[i])
		case i >= len(a):
			out = append(out, "+ "+b[i])
		case similar(a[i], b[i]):
			atags, btags := e.guides(a[i], b[i])
			out = append(out, "- "+a[i])
			if atags != "" {
				out = append(out, "? "+atags)
			}
			out = append(out, "+ "+b[i])
			if btags != "" {
				out = append(out, "? "+btags)
			}
		default:
			out = append(out, "- "+a[i], "+ "+b[i])
		}
	}
	return out
}

// guides marks replaced characters with '^', removed ones with '-' and added
// ones with '+'.
func (e *Engine) guides(a, b string) (string, string) {
	var atags, btags strings.Builder
	diffs := e.dmp.DiffMain(a, b, false)

	for i := 0; i < len(diffs); i++ {
		d := diffs[i]
		n := utf8.RuneCountInString(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			atags.WriteString(strings.Repeat(" ", n))
			btags.WriteString(strings.Repeat(" ", n))
		case diffmatchpatch.DiffDelete, diffmatchpatch.DiffInsert:
			if i+1 < len(diffs) && diffs[i+1].Type != diffmatchpatch.DiffEqual && diffs[i+1].Type != d.Type {
				del, ins := d, diffs[i+1]
				if d.Type == diffmatchpatch.DiffInsert {
					del, ins = ins, del
				}
				atags.WriteString(strings.Repeat("^", utf8.RuneCountInString(del.Text)))
				btags.WriteString(strings.Repeat("^", utf8.RuneCountInString(ins.Text)))
				i++
				continue
			}
			if d.Type == diffmatchpatch.DiffDelete {
				atags.WriteString(strings.Repeat("-", n))
			} else {
				btags.WriteString(strings.Repeat("+", n))
			}
		}
	}
	return strings.TrimRight(atags.String(), " "), strings.TrimRight(btags.String(), " ")
}

func similar(a, b string) bool {
	return difflib.NewMatcher(runes(a), runes(b)).Ratio() >= similarRatio
}

func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

func appendPrefixed(out []string, prefix string, lines []string) []string {
	for _, line := range lines {
		out = append(out, prefix+line)
	}
	return out
}
