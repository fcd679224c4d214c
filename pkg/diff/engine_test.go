package diff

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDiff_SimpleAddition(t *testing.T) {
	engine := NewEngine()
	fd := engine.ComputeDiff("old.txt", "new.txt", "line1\nline2\nline3", "line1\nline2\nline2.5\nline3")

	require.Len(t, fd.Hunks, 1)
	assert.False(t, fd.IsNew)
	assert.False(t, fd.IsDelete)

	hunk := fd.Hunks[0]
	assert.Equal(t, 1, hunk.OldStart)
	assert.Equal(t, 3, hunk.OldCount)
	assert.Equal(t, 4, hunk.NewCount)
	assert.Contains(t, hunk.Lines, Line{LineNum: 3, Content: "line2.5", Type: LineAdded})
}

func TestComputeDiff_SimpleDeletion(t *testing.T) {
	fd := NewEngine().ComputeDiff("old.txt", "new.txt", "line1\nline2\nline3\nline4", "line1\nline2\nline4")

	require.Len(t, fd.Hunks, 1)
	assert.Contains(t, fd.Hunks[0].Lines, Line{LineNum: 3, Content: "line3", Type: LineRemoved})
}

func TestComputeDiff_NewAndDeleted(t *testing.T) {
	fd := NewEngine().ComputeDiff("", "new.txt", "", "new file content\nline 2")
	assert.True(t, fd.IsNew)
	assert.Equal(t, "--- \n+++ new.txt\n@@ -0,0 +1,2 @@\n+new file content\n+line 2", fd.String())

	fd = NewEngine().ComputeDiff("old.txt", "", "gone", "")
	assert.True(t, fd.IsDelete)
	assert.Equal(t, "--- old.txt\n+++ \n@@ -1 +0,0 @@\n-gone", fd.String())
}

func TestComputeDiff_NoChanges(t *testing.T) {
	fd := NewEngine().ComputeDiff("a", "b", "same\ntext", "same\ntext\n")
	assert.Empty(t, fd.Hunks)
	assert.Equal(t, "", fd.String())
}

func TestComputeDiff_RemovalsBeforeAdditions(t *testing.T) {
	got := NewEngine().ComputeDiff("got", "expected", "a\nb\nc", "a\nx\nc").String()
	assert.Equal(t, "--- got\n+++ expected\n@@ -1,3 +1,3 @@\n a\n-b\n+x\n c", got)
}

func TestComputeDiff_SeparateHunks(t *testing.T) {
	old := "1\n2\n3\n4\n5\n6\n7\n8\n9\n10\n11\n12\n13\n14\n15"
	changed := "1\nTWO\n3\n4\n5\n6\n7\n8\n9\n10\n11\n12\n13\nFOURTEEN\n15"

	fd := NewEngine().ComputeDiff("got", "expected", old, changed)
	require.Len(t, fd.Hunks, 2)
	assert.Equal(t, "@@ -1,5 +1,5 @@", header(fd.Hunks[0]))
	assert.Equal(t, "@@ -11,5 +11,5 @@", header(fd.Hunks[1]))
}

func TestComputeDiff_CloseChangesShareHunk(t *testing.T) {
	old := "1\n2\n3\n4\n5\n6\n7\n8\n9"
	changed := "1\nTWO\n3\n4\n5\n6\n7\nEIGHT\n9"

	fd := NewEngine().ComputeDiff("got", "expected", old, changed)
	require.Len(t, fd.Hunks, 1)
	assert.Equal(t, "@@ -1,9 +1,9 @@", header(fd.Hunks[0]))
}

func TestWithContextLines(t *testing.T) {
	got := NewEngine(WithContextLines(0)).ComputeDiff("got", "expected", "a\nb\nc", "a\nx\nc").String()
	assert.Equal(t, "--- got\n+++ expected\n@@ -2 +2 @@\n-b\n+x", got)

	// negative values keep the default
	assert.Equal(t, DefaultContextLines, NewEngine(WithContextLines(-1)).contextLines)
}

func TestComputeDiff_CRLFIsLineBreak(t *testing.T) {
	fd := NewEngine().ComputeDiff("got", "expected", "a\r\nb", "a\nb")
	assert.Empty(t, fd.Hunks)
}

func TestComputeDiff_Cache(t *testing.T) {
	engine := NewEngine()
	first := engine.ComputeDiff("a", "b", "x", "y")
	second := engine.ComputeDiff("c", "d", "x", "y")

	assert.Equal(t, first.Hunks, second.Hunks)
	assert.Equal(t, "c", second.OldPath)
	assert.Equal(t, "d", second.NewPath)

	engine.ClearCache()
	_, ok := engine.cache.Load(cacheKey{hash("x"), hash("y")})
	assert.False(t, ok)
}

func cacheLen(e *Engine) int {
	n := 0
	e.cache.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func TestComputeDiff_CacheIsBounded(t *testing.T) {
	engine := NewEngine(WithCacheSize(2))
	for i := range 5 {
		engine.ComputeDiff("a", "b", "x", fmt.Sprintf("y%d", i))
		assert.LessOrEqual(t, cacheLen(engine), 2)
	}

	// Repeated pairs do not count twice.
	engine.ClearCache()
	engine.ComputeDiff("a", "b", "x", "y")
	engine.ComputeDiff("a", "b", "x", "y")
	engine.ComputeDiff("a", "b", "x", "z")
	assert.Equal(t, 2, cacheLen(engine))
	assert.Equal(t, int64(2), engine.cached.Load())
}

func TestComputeDiff_CacheDisabled(t *testing.T) {
	engine := NewEngine(WithCacheSize(0))
	fd := engine.ComputeDiff("a", "b", "x", "y")

	assert.Len(t, fd.Hunks, 1)
	assert.Equal(t, 0, cacheLen(engine))
}

func TestFormatRange(t *testing.T) {
	assert.Equal(t, "3", formatRange(3, 1))
	assert.Equal(t, "2,0", formatRange(3, 0))
	assert.Equal(t, "3,4", formatRange(3, 4))
}

func header(h Hunk) string {
	return "@@ -" + formatRange(h.OldStart, h.OldCount) + " +" + formatRange(h.NewStart, h.NewCount) + " @@"
}
