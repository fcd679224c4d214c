package diff

import (
	"fmt"
	"hash/fnv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// LineType represents the type of diff line
type LineType int

const (
	LineContext LineType = iota // Unchanged context line
	LineAdded                   // Added line
	LineRemoved                 // Removed line
)

// Line represents a single line in the diff
type Line struct {
	LineNum int
	Content string
	Type    LineType
}

// Hunk represents a group of changes. Starts are 1-based.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []Line
}

// FileDiff represents the changes between two texts.
type FileDiff struct {
	OldPath  string
	NewPath  string
	Hunks    []Hunk
	IsNew    bool
	IsDelete bool
}

// DefaultContextLines matches `diff -u`.
const DefaultContextLines = 3

// DefaultCacheSize bounds the number of cached diffs per engine.
const DefaultCacheSize = 128

// Engine provides diff computation with caching
type Engine struct {
	dmp          *diffmatchpatch.DiffMatchPatch
	contextLines int
	cache        sync.Map // Cache for identical input pairs
	cacheSize    int
	cached       atomic.Int64
}

// cacheKey is used for caching diff results
type cacheKey struct {
	oldHash uint64
	newHash uint64
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithContextLines sets the number of unchanged lines around each change.
func WithContextLines(n int) EngineOption {
	return func(e *Engine) {
		if n >= 0 {
			e.contextLines = n
		}
	}
}

// WithCacheSize bounds the diff cache. The cache is emptied once it holds
// more than n entries; 0 disables caching.
func WithCacheSize(n int) EngineOption {
	return func(e *Engine) {
		if n >= 0 {
			e.cacheSize = n
		}
	}
}

// NewEngine creates a new diff engine
func NewEngine(opts ...EngineOption) *Engine {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0 // Disable timeout for accuracy
	e := &Engine{
		dmp:          dmp,
		contextLines: DefaultContextLines,
		cacheSize:    DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DefaultEngine is a singleton engine for general use
var DefaultEngine = NewEngine()

// ComputeDiff creates a FileDiff between two texts. Lines are split like
// `diff` does, so a missing trailing newline is not a change and "\r\n"
// counts as a plain line break.
func (e *Engine) ComputeDiff(oldPath, newPath, oldContent, newContent string) *FileDiff {
	fileDiff := &FileDiff{
		OldPath:  oldPath,
		NewPath:  newPath,
		IsNew:    oldContent == "",
		IsDelete: newContent == "",
	}

	key := cacheKey{hash(oldContent), hash(newContent)}
	if cached, ok := e.cache.Load(key); ok {
		if hunks, ok := cached.([]Hunk); ok {
			fileDiff.Hunks = hunks
			return fileDiff
		}
	}

	oldText := joinLines(splitLines(oldContent))
	newText := joinLines(splitLines(newContent))

	// Line-level reduction keeps every diff on line boundaries.
	a, b, lineArray := e.dmp.DiffLinesToChars(oldText, newText)
	diffs := e.dmp.DiffMain(a, b, false)
	diffs = e.dmp.DiffCharsToLines(diffs, lineArray)

	fileDiff.Hunks = e.groupIntoHunks(e.diffsToOperations(diffs))
	e.remember(key, fileDiff.Hunks)

	return fileDiff
}

// ComputeDiff is a convenience function using the default engine
func ComputeDiff(oldPath, newPath, oldContent, newContent string) *FileDiff {
	return DefaultEngine.ComputeDiff(oldPath, newPath, oldContent, newContent)
}

// operation represents a single line operation
type operation struct {
	typ     LineType
	oldLine int
	newLine int
	content string
}

// diffsToOperations converts diffmatchpatch diffs to line operations. Inside
// a run of changes all removals come before the additions.
func (e *Engine) diffsToOperations(diffs []diffmatchpatch.Diff) []operation {
	var ops, removed, added []operation
	oldLine, newLine := 0, 0

	flush := func() {
		ops = append(ops, removed...)
		ops = append(ops, added...)
		removed, added = removed[:0], added[:0]
	}

	for _, d := range diffs {
		for _, line := range splitLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				flush()
				ops = append(ops, operation{typ: LineContext, oldLine: oldLine, newLine: newLine, content: line})
				oldLine++
				newLine++
			case diffmatchpatch.DiffDelete:
				removed = append(removed, operation{typ: LineRemoved, oldLine: oldLine, newLine: -1, content: line})
				oldLine++
			case diffmatchpatch.DiffInsert:
				added = append(added, operation{typ: LineAdded, oldLine: -1, newLine: newLine, content: line})
				newLine++
			}
		}
	}
	flush()

	return ops
}

// groupIntoHunks groups operations into hunks. Changes separated by at most
// twice the context size share a hunk.
func (e *Engine) groupIntoHunks(ops []operation) []Hunk {
	n := e.contextLines
	var hunks []Hunk

	for i := 0; i < len(ops); {
		for i < len(ops) && ops[i].typ == LineContext {
			i++
		}
		if i == len(ops) {
			break
		}

		start := max(0, i-n)
		end := i + 1
		for j := i + 1; j < len(ops); j++ {
			if ops[j].typ != LineContext {
				end = j + 1
				continue
			}
			if j-end >= 2*n {
				break
			}
		}
		stop := min(len(ops), end+n)

		hunks = append(hunks, buildHunk(ops, start, stop))
		i = end
	}

	return hunks
}

func buildHunk(ops []operation, start, stop int) Hunk {
	oldBefore, newBefore := 0, 0
	for _, op := range ops[:start] {
		if op.typ != LineAdded {
			oldBefore++
		}
		if op.typ != LineRemoved {
			newBefore++
		}
	}

	hunk := Hunk{
		OldStart: oldBefore + 1,
		NewStart: newBefore + 1,
		Lines:    make([]Line, 0, stop-start),
	}
	for _, op := range ops[start:stop] {
		lineNum := op.oldLine + 1
		if op.typ == LineAdded {
			lineNum = op.newLine + 1
		}
		hunk.Lines = append(hunk.Lines, Line{LineNum: lineNum, Content: op.content, Type: op.typ})
	}
	computeHunkCounts(&hunk)
	return hunk
}

// computeHunkCounts calculates OldCount and NewCount for a hunk
func computeHunkCounts(hunk *Hunk) {
	for _, line := range hunk.Lines {
		if line.Type == LineRemoved || line.Type == LineContext {
			hunk.OldCount++
		}
		if line.Type == LineAdded || line.Type == LineContext {
			hunk.NewCount++
		}
	}
}

// String renders the diff in unified format without a trailing newline.
// Identical texts render as "".
func (d *FileDiff) String() string {
	if len(d.Hunks) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("--- " + d.OldPath + "\n")
	sb.WriteString("+++ " + d.NewPath)
	for _, h := range d.Hunks {
		fmt.Fprintf(&sb, "\n@@ -%s +%s @@", formatRange(h.OldStart, h.OldCount), formatRange(h.NewStart, h.NewCount))
		for _, line := range h.Lines {
			sb.WriteByte('\n')
			switch line.Type {
			case LineAdded:
				sb.WriteByte('+')
			case LineRemoved:
				sb.WriteByte('-')
			default:
				sb.WriteByte(' ')
			}
			sb.WriteString(line.Content)
		}
	}
	return sb.String()
}

// formatRange follows the range convention of `diff -u`: a single line is
// written without a count, an empty range points at the line before it.
func formatRange(start, count int) string {
	switch count {
	case 1:
		return fmt.Sprintf("%d", start)
	case 0:
		return fmt.Sprintf("%d,0", start-1)
	default:
		return fmt.Sprintf("%d,%d", start, count)
	}
}

func (e *Engine) remember(key cacheKey, hunks []Hunk) {
	if e.cacheSize == 0 {
		return
	}
	if _, loaded := e.cache.LoadOrStore(key, hunks); loaded {
		return
	}
	if e.cached.Add(1) > int64(e.cacheSize) {
		e.ClearCache()
	}
}

// ClearCache clears the diff cache
func (e *Engine) ClearCache() {
	e.cache.Range(func(key, _ any) bool {
		e.cache.Delete(key)
		return true
	})
	e.cached.Store(0)
}

func hash(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}

// splitLines splits text into lines without their terminators.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
