package snapshot

import (
	"fmt"
	"path/filepath"
	"regexp"
	"runtime"
	"snapcheck/internal/callsite"
	"snapcheck/internal/logging"
	"snapcheck/internal/pathutil"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"
)

var (
	namePattern      = regexp.MustCompile(`^[-_.a-zA-Z0-9]+$`)
	extensionPattern = regexp.MustCompile(`^[-_.a-zA-Z0-9]*$`)
	unsafeChars      = regexp.MustCompile(`[^-_.a-zA-Z0-9]`)
)

// selfDir is this package's source directory; frames from it are never
// treated as the caller.
var selfDir = func() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return ""
	}
	return filepath.Dir(file)
}()

// Names returns the snapshot directory and name for opts, deriving missing
// parts from the caller. A derived name carries the marker and consumes a
// sequence number.
func (s *Store) Names(opts ...Option) (dir, name string, err error) {
	return s.names(s.request("", opts))
}

// File returns the full snapshot path for opts.
func (s *Store) File(opts ...Option) (string, error) {
	path, _, err := s.file(s.request("", opts))
	return path, err
}

func (s *Store) file(req *Request) (path, name string, err error) {
	if !extensionPattern.MatchString(req.Extension) {
		return "", "", contractErrorf("Invalid extension %q", req.Extension)
	}

	dir, name, err := s.names(req)
	if err != nil {
		return "", "", err
	}

	marker := s.cfg.Snapshot.Marker
	if !strings.HasSuffix(name, marker) {
		name += marker
	}
	return filepath.Join(dir, name+req.Extension), name, nil
}

func (s *Store) names(req *Request) (string, string, error) {
	dir, name := req.Dir, req.Name

	if dir != "" {
		if err := pathutil.AssertIsDir(dir); err != nil {
			return "", "", err
		}
	}
	if name != "" && !namePattern.MatchString(name) {
		return "", "", contractErrorf("Invalid snapshot name: %q", name)
	}
	if req.Suffix != "" && !namePattern.MatchString(req.Suffix) {
		return "", "", contractErrorf("Invalid name suffix: %q", req.Suffix)
	}
	if name != "" && req.Suffix != "" {
		return "", "", contractErrorf("Specify only name or suffix, not both: name=%q suffix=%q", name, req.Suffix)
	}

	marker := s.cfg.Snapshot.Marker
	if !strings.HasPrefix(marker, ".") {
		return "", "", contractErrorf("Invalid marker: %q", marker)
	}

	if dir != "" && name != "" {
		return dir, name, nil
	}

	self := req.SelfPath
	if self == "" {
		self = selfDir
	}
	frame, err := callsite.Outside(self)
	if err != nil {
		return "", "", fmt.Errorf("failed to find caller: %w", err)
	}
	if err := pathutil.AssertIsFile(frame.File); err != nil {
		return "", "", fmt.Errorf("caller source is not on disk (built with -trimpath?), set Dir and Name: %w", err)
	}

	if dir == "" {
		dir = filepath.Dir(frame.File)
	}
	if name == "" {
		function := frame.Function
		if s.testName != nil {
			if tn := s.testName(); tn != "" {
				function = sanitizeTestName(tn)
			}
		}

		stem := strings.TrimSuffix(filepath.Base(frame.File), filepath.Ext(frame.File))
		base := stem + "_" + trimTestPrefix(function)
		if req.Suffix != "" {
			base += "_" + req.Suffix
		}
		n := s.registry.Next(dir, base)
		name = fmt.Sprintf("%s_%d%s", base, n, marker)

		logging.For(s.logger, logging.CategoryNaming).Debug("derived snapshot name",
			zap.String("dir", dir),
			zap.String("name", name),
			zap.String("caller", frame.File),
			zap.Int("line", frame.Line),
		)
	}
	return dir, name, nil
}

// trimTestPrefix shortens "TestFoo" and "test_foo" to "Foo" and "foo". As
// with go test, the prefix only counts when no lowercase letter follows it,
// so "Testify" stays whole.
func trimTestPrefix(function string) string {
	for _, prefix := range []string{"Test", "test"} {
		rest, ok := strings.CutPrefix(function, prefix)
		if !ok || rest == "" {
			continue
		}
		if r, _ := utf8.DecodeRuneInString(rest); unicode.IsLower(r) {
			continue
		}
		if rest = strings.TrimLeft(rest, "_"); rest != "" {
			return rest
		}
	}
	return function
}

// sanitizeTestName maps t.Name() onto the name alphabet. Sub-test
// separators become "-".
func sanitizeTestName(name string) string {
	name = strings.ReplaceAll(name, "/", "-")
	return unsafeChars.ReplaceAllString(name, "_")
}
