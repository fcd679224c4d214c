// Package snapshot asserts output against snapshot files that are written
// on first use and compared on every later run.
//
// A snapshot lives at {dir}/{name}{marker}{ext}, with marker ".snapshot" by
// default. When dir or name are not given they are derived from the calling
// test: the directory of its source file, and
// "{file stem}_{test name}[_{suffix}]_{n}" where n counts the calls with the
// same base name.
//
// The file is always written before a problem is reported, so a failed run
// leaves the new output on disk. Whether a missing or changed snapshot is an
// error is decided on every call by the RAISE_SNAPSHOT_ERRORS variable:
// "0" or "false" accept everything, any other value (or none) is strict.
// To accept all changes at once:
//
//	RAISE_SNAPSHOT_ERRORS=0 go test ./...
//
// Inside tests the T helper reports through testing.TB:
//
//	func TestRender(t *testing.T) {
//		snap := snapshot.New(t)
//		snap.Text(render())
//		snap.JSON(map[string]any{"status": "ok"})
//	}
package snapshot
