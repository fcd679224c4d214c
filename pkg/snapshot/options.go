package snapshot

import (
	"snapcheck/pkg/diff"
)

// Request describes one assertion. It is built from Options on top of the
// store's configuration.
type Request struct {
	Dir       string
	Name      string
	Suffix    string
	Extension string

	FromFile string
	ToFile   string

	// SelfPath is the file or package directory whose frames are skipped
	// when looking for the caller. Defaults to this package.
	SelfPath string

	TextDiff  diff.TextFunc
	ValueDiff diff.ValueFunc

	// HTML stages
	Validate bool
	Pretty   bool
	Selector string
}

// Option modifies a Request.
type Option func(*Request)

// Dir sets the snapshot directory instead of the caller's directory.
func Dir(dir string) Option {
	return func(r *Request) { r.Dir = dir }
}

// Name sets the snapshot name instead of deriving it from the caller.
func Name(name string) Option {
	return func(r *Request) { r.Name = name }
}

// Suffix is appended to a derived name. It cannot be combined with Name.
func Suffix(suffix string) Option {
	return func(r *Request) { r.Suffix = suffix }
}

// Extension overrides the variant's default file extension.
func Extension(ext string) Option {
	return func(r *Request) { r.Extension = ext }
}

// Labels sets the "from" and "to" labels of rendered diffs.
func Labels(fromFile, toFile string) Option {
	return func(r *Request) {
		r.FromFile = fromFile
		r.ToFile = toFile
	}
}

// SelfPath sets the file or directory whose frames are not the caller.
// Helpers wrapping this package pass their own directory here.
func SelfPath(path string) Option {
	return func(r *Request) { r.SelfPath = path }
}

// WithTextDiff replaces the text diff used by Text, HTML, YAML, Dump and
// Binary.
func WithTextDiff(fn diff.TextFunc) Option {
	return func(r *Request) { r.TextDiff = fn }
}

// WithValueDiff replaces the value diff used by JSON.
func WithValueDiff(fn diff.ValueFunc) Option {
	return func(r *Request) { r.ValueDiff = fn }
}

// Selector limits an HTML snapshot to the elements matching a CSS selector.
func Selector(selector string) Option {
	return func(r *Request) { r.Selector = selector }
}

// SkipValidation turns off HTML validation.
func SkipValidation() Option {
	return func(r *Request) { r.Validate = false }
}

// SkipPretty stores HTML as given instead of pretty-printed.
func SkipPretty() Option {
	return func(r *Request) { r.Pretty = false }
}
