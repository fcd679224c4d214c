package snapshot

import (
	"errors"
	"io/fs"
	"path/filepath"
	"snapcheck/internal/config"
	"snapcheck/pkg/diff"
	"snapcheck/pkg/fswatch"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestText_FirstRunThenAccepted(t *testing.T) {
	strict(t)
	s := newTestStore(t)
	tmp := t.TempDir()

	err := s.Text("hello", Dir(tmp), Name("greet"))
	require.ErrorIs(t, err, ErrSnapshotMissing)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	var missing *MissingError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "greet.snapshot", missing.Name)
	assert.Equal(t, filepath.Join(tmp, "greet.snapshot.txt"), missing.Path)
	assert.Equal(t, "hello", readFile(t, missing.Path))

	assert.NoError(t, s.Text("hello", Dir(tmp), Name("greet")))
	assert.NoError(t, s.Text("hello", Dir(tmp), Name("greet")))
}

func TestText_Changed(t *testing.T) {
	strict(t)
	s := newTestStore(t)
	tmp := t.TempDir()
	path := filepath.Join(tmp, "greet.snapshot.txt")
	writeFile(t, path, "old")

	err := s.Text("new", Dir(tmp), Name("greet"))
	require.ErrorIs(t, err, ErrSnapshotChanged)
	assert.EqualError(t, err, "greet.snapshot\n--- got\n+++ expected\n@@ -1 +1 @@\n-new\n+old")

	var changed *ChangedError
	require.ErrorAs(t, err, &changed)
	assert.Equal(t, path, changed.Path)
	assert.Equal(t, "new", readFile(t, path))

	assert.NoError(t, s.Text("new", Dir(tmp), Name("greet")))
}

func TestText_Lenient(t *testing.T) {
	lenient(t)
	s := newTestStore(t)
	tmp := t.TempDir()
	path := filepath.Join(tmp, "greet.snapshot.txt")

	require.NoError(t, s.Text("first", Dir(tmp), Name("greet")))
	assert.Equal(t, "first", readFile(t, path))

	require.NoError(t, s.Text("second", Dir(tmp), Name("greet")))
	assert.Equal(t, "second", readFile(t, path))
}

func TestText_PolicyIsReadPerCall(t *testing.T) {
	s := newTestStore(t)
	tmp := t.TempDir()

	lenient(t)
	require.NoError(t, s.Text("a", Dir(tmp), Name("toggle")))

	t.Setenv(config.DefaultStrictEnv, "false")
	require.NoError(t, s.Text("b", Dir(tmp), Name("toggle")))

	strict(t)
	assert.ErrorIs(t, s.Text("c", Dir(tmp), Name("toggle")), ErrSnapshotChanged)
}

func TestText_NewlineDrift(t *testing.T) {
	strict(t)
	s := newTestStore(t)
	tmp := t.TempDir()
	path := filepath.Join(tmp, "nl.snapshot.txt")
	writeFile(t, path, "a\nb")

	err := s.Text("a\r\nb", Dir(tmp), Name("nl"))
	require.ErrorIs(t, err, ErrSnapshotChanged)

	var newline *NewlineError
	require.ErrorAs(t, err, &newline)
	assert.EqualError(t, err, `Differing newlines: Expected "a\nb", got "a\r\nb"`)
	assert.Equal(t, "a\r\nb", readFile(t, path))

	lenient(t)
	writeFile(t, path, "a\nb")
	assert.NoError(t, s.Text("a\r\nb", Dir(tmp), Name("nl")))
}

func TestText_TrailingNewlineDrift(t *testing.T) {
	strict(t)
	s := newTestStore(t)
	tmp := t.TempDir()
	path := filepath.Join(tmp, "x.snapshot.txt")
	writeFile(t, path, "hello\n")

	err := s.Text("hello", Dir(tmp), Name("x"))
	require.ErrorIs(t, err, ErrSnapshotChanged)

	var newline *NewlineError
	require.ErrorAs(t, err, &newline)
	assert.EqualError(t, err, `Differing newlines: Expected "hello\n", got "hello"`)
	assert.Equal(t, "hello", readFile(t, path))
	assert.NoError(t, s.Text("hello", Dir(tmp), Name("x")))
}

func TestText_InvalidUTF8BaselineIsMissing(t *testing.T) {
	strict(t)
	s := newTestStore(t)
	tmp := t.TempDir()
	path := filepath.Join(tmp, "bin.snapshot.txt")
	writeFile(t, path, "\xff\xfe")

	err := s.Text("text", Dir(tmp), Name("bin"))
	require.ErrorIs(t, err, ErrSnapshotMissing)
	assert.Equal(t, "text", readFile(t, path))
}

func TestText_Options(t *testing.T) {
	strict(t)
	s := newTestStore(t)
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "opts.snapshot.md"), "x")

	err := s.Text("y", Dir(tmp), Name("opts"), Extension(".md"), Labels("new", "old"))
	assert.EqualError(t, err, "opts.snapshot\n--- new\n+++ old\n@@ -1 +1 @@\n-y\n+x")

	err = s.Text("x", Dir(tmp), Name("opts"), Extension(".md"), WithTextDiff(diff.NDiff))
	assert.EqualError(t, err, "opts.snapshot\n- x\n+ y")
}

func TestText_ConfiguredDiffStyle(t *testing.T) {
	strict(t)
	cfg := config.DefaultConfig()
	cfg.Snapshot.Diff = "ndiff"
	s := newTestStore(t, WithConfig(cfg))
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "style.snapshot.txt"), "one\ntwo")

	err := s.Text("one\nthree", Dir(tmp), Name("style"))
	assert.EqualError(t, err, "style.snapshot\n  one\n- three\n+ two")
}

func TestText_ConfiguredStrictEnv(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Snapshot.StrictEnv = "MY_SNAPSHOTS_STRICT"
	s := newTestStore(t, WithConfig(cfg))
	tmp := t.TempDir()

	strict(t)
	t.Setenv("MY_SNAPSHOTS_STRICT", "0")
	assert.NoError(t, s.Text("x", Dir(tmp), Name("env")))
}

func TestText_ContractErrorBeforeIO(t *testing.T) {
	lenient(t)
	s := newTestStore(t)
	tmp := t.TempDir()
	w, err := fswatch.New(tmp, false)
	require.NoError(t, err)

	err = s.Text("x", Dir(tmp), Name("a"), Suffix("b"))
	require.ErrorIs(t, err, ErrContract)

	items, err := w.NewItems()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestText_DerivedNames(t *testing.T) {
	lenient(t)
	s := newTestStore(t)

	w, err := fswatch.New(thisDir(t), true)
	require.NoError(t, err)
	defer func() { require.NoError(t, w.Close()) }()

	require.NoError(t, s.Text("one"))
	require.NoError(t, s.Text("two"))

	items, err := w.NewItems()
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(thisDir(t), "store_test_Text_DerivedNames_1.snapshot.txt"),
		filepath.Join(thisDir(t), "store_test_Text_DerivedNames_2.snapshot.txt"),
	}, items)
	assert.Equal(t, "two", readFile(t, items[1]))

	s.Registry().Reset()
	strict(t)
	assert.NoError(t, s.Text("one"))
}

func TestJSON_FileFormat(t *testing.T) {
	lenient(t)
	s := newTestStore(t)
	tmp := t.TempDir()

	require.NoError(t, s.JSON(map[string]any{
		"b":    []int{1, 2},
		"a":    "<ä>",
		"none": nil,
	}, Dir(tmp), Name("data")))

	assert.Equal(t,
		"{\n    \"a\": \"<ä>\",\n    \"b\": [\n        1,\n        2\n    ],\n    \"none\": null\n}",
		readFile(t, filepath.Join(tmp, "data.snapshot.json")),
	)
}

func TestJSON_Changed(t *testing.T) {
	strict(t)
	s := newTestStore(t)
	tmp := t.TempDir()
	path := filepath.Join(tmp, "data.snapshot.json")
	writeFile(t, path, `{"a":1}`)

	err := s.JSON(map[string]int{"a": 2}, Dir(tmp), Name("data"))
	require.ErrorIs(t, err, ErrSnapshotChanged)
	assert.EqualError(t, err, "data.snapshot\n--- got\n+++ expected\n@@ -1,3 +1,3 @@\n {\n-    \"a\": 2\n+    \"a\": 1\n }")
	assert.Equal(t, "{\n    \"a\": 2\n}", readFile(t, path))

	assert.NoError(t, s.JSON(map[string]int{"a": 2}, Dir(tmp), Name("data")))
}

func TestJSON_EqualAfterReload(t *testing.T) {
	strict(t)
	s := newTestStore(t)
	tmp := t.TempDir()

	type row struct {
		ID    int     `json:"id"`
		Score float64 `json:"score"`
	}
	got := []row{{ID: 1, Score: 0.5}, {ID: 2, Score: 3}}

	require.ErrorIs(t, s.JSON(got, Dir(tmp), Name("rows")), ErrSnapshotMissing)
	assert.NoError(t, s.JSON(got, Dir(tmp), Name("rows")))
}

func TestJSON_ArraysCollapseToSlices(t *testing.T) {
	strict(t)
	s := newTestStore(t)
	tmp := t.TempDir()

	require.Error(t, s.JSON([]any{[2]int{1, 2}}, Dir(tmp), Name("tuple")))
	assert.NoError(t, s.JSON([]any{[]int{1, 2}}, Dir(tmp), Name("tuple")))
}

func TestJSON_UnsupportedShape(t *testing.T) {
	lenient(t)
	s := newTestStore(t)
	tmp := t.TempDir()

	for _, got := range []any{1, "text", [2]int{1, 2}, []byte("raw"), struct{}{}} {
		err := s.JSON(got, Dir(tmp), Name("shape"))
		assert.ErrorIs(t, err, ErrUnsupportedShape, "%T", got)
	}
	assert.EqualError(t, s.JSON(1, Dir(tmp), Name("shape")), "not JSON-serializable: 1 is not a map or slice, but a int")
	assert.NoFileExists(t, filepath.Join(tmp, "shape.snapshot.json"))

	require.NoError(t, s.JSON(nil, Dir(tmp), Name("null")))
	assert.Equal(t, "null", readFile(t, filepath.Join(tmp, "null.snapshot.json")))
}

func TestJSON_MalformedBaselineIsMissing(t *testing.T) {
	strict(t)
	s := newTestStore(t)
	tmp := t.TempDir()
	path := filepath.Join(tmp, "broken.snapshot.json")
	writeFile(t, path, "{not json")

	err := s.JSON(map[string]int{"a": 1}, Dir(tmp), Name("broken"))
	require.ErrorIs(t, err, ErrSnapshotMissing)
	assert.Contains(t, err.Error(), "malformed JSON snapshot")
	assert.Equal(t, "{\n    \"a\": 1\n}", readFile(t, path))
}

func TestJSON_TrailingContentIsMalformed(t *testing.T) {
	strict(t)
	s := newTestStore(t)
	tmp := t.TempDir()
	path := filepath.Join(tmp, "conflict.snapshot.json")
	writeFile(t, path, "{\n    \"a\": 1\n}\n<<<<<<< HEAD garbage")

	err := s.JSON(map[string]any{"a": 1}, Dir(tmp), Name("conflict"))
	require.ErrorIs(t, err, ErrSnapshotMissing)
	assert.Contains(t, err.Error(), "malformed JSON snapshot")
	assert.Equal(t, "{\n    \"a\": 1\n}", readFile(t, path))

	writeFile(t, path, "{\n    \"a\": 1\n}\n\n")
	assert.NoError(t, s.JSON(map[string]any{"a": 1}, Dir(tmp), Name("conflict")))
}

func TestYAML_ExtraDocumentIsMalformed(t *testing.T) {
	strict(t)
	s := newTestStore(t)
	tmp := t.TempDir()
	path := filepath.Join(tmp, "docs.snapshot.yaml")
	writeFile(t, path, "name: x\n---\nname: y\n")

	err := s.YAML(map[string]any{"name": "x"}, Dir(tmp), Name("docs"))
	require.ErrorIs(t, err, ErrSnapshotMissing)
	assert.Contains(t, err.Error(), "malformed YAML snapshot: more than one YAML document")
	assert.Equal(t, "name: x\n", readFile(t, path))
}

func TestYAML(t *testing.T) {
	strict(t)
	s := newTestStore(t)
	tmp := t.TempDir()
	path := filepath.Join(tmp, "cfg.snapshot.yaml")

	got := map[string]any{"name": "x", "count": 1}
	require.ErrorIs(t, s.YAML(got, Dir(tmp), Name("cfg")), ErrSnapshotMissing)
	assert.Equal(t, "count: 1\nname: x\n", readFile(t, path))
	assert.NoError(t, s.YAML(got, Dir(tmp), Name("cfg")))

	err := s.YAML(map[string]any{"name": "y", "count": 1}, Dir(tmp), Name("cfg"))
	require.ErrorIs(t, err, ErrSnapshotChanged)
	assert.EqualError(t, err, "cfg.snapshot\n--- got\n+++ expected\n@@ -1,2 +1,2 @@\n count: 1\n-name: y\n+name: x")

	assert.ErrorIs(t, s.YAML(42, Dir(tmp), Name("cfg")), ErrUnsupportedShape)
}

func TestDump_KeepsTypes(t *testing.T) {
	strict(t)
	s := newTestStore(t)
	tmp := t.TempDir()
	id := uuid.MustParse("b0a1f6e2-4c5d-4e3f-9a8b-7c6d5e4f3a2b")

	require.ErrorIs(t, s.Dump(map[string]any{"id": id}, Dir(tmp), Name("obj")), ErrSnapshotMissing)
	assert.NoError(t, s.Dump(map[string]any{"id": id}, Dir(tmp), Name("obj")))

	err := s.Dump(map[string]any{"id": id.String()}, Dir(tmp), Name("obj"))
	require.ErrorIs(t, err, ErrSnapshotChanged)
	assert.Contains(t, err.Error(), "uuid.UUID")

	require.ErrorIs(t, s.Dump([2]int{1, 2}, Dir(tmp), Name("seq")), ErrSnapshotMissing)
	assert.ErrorIs(t, s.Dump([]int{1, 2}, Dir(tmp), Name("seq")), ErrSnapshotChanged)
}

func TestBinary(t *testing.T) {
	strict(t)
	s := newTestStore(t)
	tmp := t.TempDir()
	path := filepath.Join(tmp, "blob.snapshot.bin")
	writeFile(t, path, "\x01\x02")

	err := s.Binary([]byte{1, 2, 3, 4}, Dir(tmp), Name("blob"))
	require.ErrorIs(t, err, ErrSnapshotChanged)
	assert.EqualError(t, err, "blob.snapshot\n"+
		"expected: 2 Bytes, MD5 0cb988d042a7f28dd5fe2b55b3f5ac7a\n"+
		"got: 4 Bytes, MD5 08d6c05a21512a79a1dfeb9d2a8f262f")
	assert.Equal(t, "\x01\x02\x03\x04", readFile(t, path))

	assert.NoError(t, s.Binary([]byte{1, 2, 3, 4}, Dir(tmp), Name("blob")))
}

func TestStore_LogsWrites(t *testing.T) {
	lenient(t)
	core, logs := observer.New(zap.InfoLevel)
	s := newTestStore(t, WithLogger(zap.New(core)))
	tmp := t.TempDir()

	require.NoError(t, s.Text("a", Dir(tmp), Name("log")))
	require.NoError(t, s.Text("b", Dir(tmp), Name("log")))

	entries := logs.FilterMessage("snapshot written").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "store", entries[0].LoggerName)
	assert.Equal(t, "missing", entries[0].ContextMap()["reason"])
	assert.Equal(t, "changed", entries[1].ContextMap()["reason"])
}

func TestNewStore_InvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Snapshot.Marker = "snapshot"

	_, err := NewStore(WithConfig(cfg))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")

	_, err = NewStore(WithConfig(nil))
	assert.Error(t, err)
}

func TestNewStore_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapcheck.yaml")
	writeFile(t, path, "snapshot:\n  from_file: actual\n")

	s, err := NewStore(WithConfigFile(path))
	require.NoError(t, err)
	assert.Equal(t, "actual", s.request("", nil).FromFile)
}

func TestPackageFunctions(t *testing.T) {
	strict(t)
	tmp := t.TempDir()

	err := Text("pkg", Dir(tmp), Name("pkg"))
	require.True(t, errors.Is(err, ErrSnapshotMissing))
	assert.NoError(t, Text("pkg", Dir(tmp), Name("pkg")))

	require.ErrorIs(t, JSON([]int{1}, Dir(tmp), Name("pkg")), ErrSnapshotMissing)
	require.ErrorIs(t, YAML([]int{1}, Dir(tmp), Name("pkg")), ErrSnapshotMissing)
	require.ErrorIs(t, Binary([]byte("x"), Dir(tmp), Name("pkg")), ErrSnapshotMissing)
	require.ErrorIs(t, Dump(1, Dir(tmp), Name("dump")), ErrSnapshotMissing)

	path, err := File(Dir(tmp), Name("pkg"), Extension(".txt"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmp, "pkg.snapshot.txt"), path)

	dir, name, err := Names(Dir(tmp), Name("pkg"))
	require.NoError(t, err)
	assert.Equal(t, tmp, dir)
	assert.Equal(t, "pkg", name)
}
