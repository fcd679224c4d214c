package snapshot

import (
	"testing"
)

// T binds snapshot assertions to a test. Each T has its own naming registry
// and names snapshots after t.Name(), so parallel tests and sub-tests do not
// share counters.
type T struct {
	tb    testing.TB
	store *Store
}

// New returns a T for tb. Store options are applied on top of a fresh
// registry; a store that cannot be built fails the test.
func New(tb testing.TB, opts ...StoreOption) *T {
	tb.Helper()

	opts = append([]StoreOption{WithRegistry(NewRegistry())}, opts...)
	s, err := NewStore(opts...)
	if err != nil {
		tb.Fatalf("snapshot store: %v", err)
		return nil
	}
	s.testName = tb.Name
	return &T{tb: tb, store: s}
}

// Store returns the underlying store.
func (t *T) Store() *Store { return t.store }

// Reset restarts the sequence numbers of derived names.
func (t *T) Reset() { t.store.registry.Reset() }

// Text runs Store.Text and reports a failure through Errorf. Like the other
// assertion methods it returns whether the snapshot matched, so a test can
// stop early.
func (t *T) Text(got string, opts ...Option) bool {
	t.tb.Helper()
	return t.report(t.store.Text(got, opts...))
}

// JSON runs Store.JSON and reports a failure through Errorf.
func (t *T) JSON(got any, opts ...Option) bool {
	t.tb.Helper()
	return t.report(t.store.JSON(got, opts...))
}

// YAML runs Store.YAML and reports a failure through Errorf.
func (t *T) YAML(got any, opts ...Option) bool {
	t.tb.Helper()
	return t.report(t.store.YAML(got, opts...))
}

// Dump runs Store.Dump and reports a failure through Errorf.
func (t *T) Dump(got any, opts ...Option) bool {
	t.tb.Helper()
	return t.report(t.store.Dump(got, opts...))
}

// HTML runs Store.HTML and reports a failure through Errorf.
func (t *T) HTML(got string, opts ...Option) bool {
	t.tb.Helper()
	return t.report(t.store.HTML(got, opts...))
}

// Binary runs Store.Binary and reports a failure through Errorf.
func (t *T) Binary(got []byte, opts ...Option) bool {
	t.tb.Helper()
	return t.report(t.store.Binary(got, opts...))
}

func (t *T) report(err error) bool {
	t.tb.Helper()
	if err != nil {
		t.tb.Errorf("%v", err)
		return false
	}
	return true
}
