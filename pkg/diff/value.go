package diff

import (
	"reflect"
	"snapcheck/pkg/pformat"

	"github.com/google/go-cmp/cmp"
)

// PrettyUnified renders both values with pformat.Format and diffs the result.
// When the values differ but their JSON renderings do not (arrays and slices,
// or a uuid.UUID and its string), the go-spew dump is diffed instead.
func PrettyUnified(got, expected any, fromFile, toFile string) string {
	g, e := render(got, expected)
	return Unified(g, e, fromFile, toFile)
}

// PrettyNDiff is PrettyUnified with NDiff output.
func PrettyNDiff(got, expected any, fromFile, toFile string) string {
	g, e := render(got, expected)
	return NDiff(g, e, fromFile, toFile)
}

// Pretty lifts a text strategy to structured values.
func Pretty(fn TextFunc) ValueFunc {
	return func(got, expected any, fromFile, toFile string) string {
		g, e := render(got, expected)
		return fn(g, e, fromFile, toFile)
	}
}

var exportAll = cmp.Exporter(func(reflect.Type) bool { return true })

func render(got, expected any) (string, string) {
	g, e := pformat.Format(got), pformat.Format(expected)
	if g == e && !cmp.Equal(got, expected, exportAll) {
		g, e = pformat.Dump(got), pformat.Dump(expected)
	}
	return g, e
}
