// Package callsite finds the first stack frame outside a given file or
// package directory. Snapshot auto-naming uses it to learn which test called
// an assertion.
package callsite

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"snapcheck/internal/pathutil"
	"strings"
)

// ErrStackUnavailable is returned when the runtime reports no frames at all.
var ErrStackUnavailable = errors.New("can not get stack frames: runtime has no support for them")

// FrameNotFoundError is returned when selfPath never shows up on the stack,
// or nothing calls it from outside.
type FrameNotFoundError struct {
	Path string
}

func (e *FrameNotFoundError) Error() string {
	return fmt.Sprintf("Frame outside %q not found!", e.Path)
}

// Frame describes the calling location.
type Frame struct {
	File     string
	Function string // short name, e.g. "TestFoo"
	Line     int
	Source   string // the source line, trimmed; empty if unreadable
}

// callers is swapped in tests.
var callers = runtime.Callers

const maxDepth = 128

// Outside returns the nearest frame that calls into selfPath from outside.
//
// selfPath is either a file or a package directory. In directory mode every
// non-test .go file directly inside it counts as "self", so _test.go files of
// the same package are treated as callers.
func Outside(selfPath string) (Frame, error) {
	selfPath = filepath.Clean(filepath.FromSlash(selfPath))

	dirMode := false
	if info, err := os.Stat(selfPath); err == nil && info.IsDir() {
		dirMode = true
	} else if err := pathutil.AssertIsFile(selfPath); err != nil {
		return Frame{}, err
	}

	pcs := make([]uintptr, maxDepth)
	n := callers(1, pcs)
	if n == 0 {
		return Frame{}, ErrStackUnavailable
	}

	isSelf := func(file string) bool {
		file = filepath.Clean(filepath.FromSlash(file))
		if !dirMode {
			return file == selfPath
		}
		return filepath.Dir(file) == selfPath && !strings.HasSuffix(file, "_test.go")
	}

	frames := runtime.CallersFrames(pcs[:n])
	seen := false
	for {
		f, more := frames.Next()
		if isSelf(f.File) {
			seen = true
		} else if seen {
			return Frame{
				File:     f.File,
				Function: ShortFunction(f.Function),
				Line:     f.Line,
				Source:   sourceLine(f.File, f.Line),
			}, nil
		}
		if !more {
			break
		}
	}
	return Frame{}, &FrameNotFoundError{Path: selfPath}
}

// ShortFunction reduces a fully qualified runtime function name to the name
// of the declared function: the package path, method receivers, closure
// suffixes and type parameters are dropped.
//
//	snapcheck/pkg/snapshot.TestText.func1  -> TestText
//	example.com/x.(*Suite).TestRender      -> TestRender
func ShortFunction(full string) string {
	name := full
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "."); i >= 0 {
		name = name[i+1:]
	}
	for _, part := range strings.Split(name, ".") {
		if part == "" || strings.HasPrefix(part, "(") {
			continue
		}
		if i := strings.IndexByte(part, '['); i >= 0 {
			part = part[:i]
		}
		if part != "" {
			return part
		}
	}
	return name
}

func sourceLine(file string, line int) string {
	f, err := os.Open(file)
	if err != nil {
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for no := 1; scanner.Scan(); no++ {
		if no == line {
			return strings.TrimSpace(scanner.Text())
		}
	}
	return ""
}
