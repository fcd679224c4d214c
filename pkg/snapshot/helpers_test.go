package snapshot

import (
	"os"
	"path/filepath"
	"runtime"
	"snapcheck/internal/config"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestStore(t *testing.T, opts ...StoreOption) *Store {
	t.Helper()
	opts = append([]StoreOption{
		WithRegistry(NewRegistry()),
		WithLogger(zaptest.NewLogger(t)),
	}, opts...)
	s, err := NewStore(opts...)
	require.NoError(t, err)
	return s
}

func strict(t *testing.T) {
	t.Setenv(config.DefaultStrictEnv, "1")
}

func lenient(t *testing.T) {
	t.Setenv(config.DefaultStrictEnv, "0")
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func thisDir(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Dir(file)
}

func helperFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(thisDir(t), "helpers_test.go")
}

// namesViaHelper resolves names as a wrapper library would: its own file is
// passed as SelfPath so the test calling it is used for naming.
func namesViaHelper(t *testing.T, s *Store) (string, string, error) {
	return s.Names(SelfPath(helperFile(t)))
}
