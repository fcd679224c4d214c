package snapshot

import (
	"errors"
	"fmt"
)

var (
	// ErrContract matches invalid option combinations and names.
	ErrContract = errors.New("snapshot contract violation")
	// ErrSnapshotMissing matches a missing or unreadable baseline.
	ErrSnapshotMissing = errors.New("snapshot missing")
	// ErrSnapshotChanged matches a baseline that differs from the value.
	ErrSnapshotChanged = errors.New("snapshot changed")
	// ErrUnsupportedShape is returned for structured snapshots of values
	// that are not maps or slices.
	ErrUnsupportedShape = errors.New("not JSON-serializable")
)

// ContractError is a caller mistake found before any file is touched.
type ContractError struct {
	Msg string
}

func (e *ContractError) Error() string { return e.Msg }

func (e *ContractError) Is(target error) bool { return target == ErrContract }

func contractErrorf(format string, args ...any) error {
	return &ContractError{Msg: fmt.Sprintf(format, args...)}
}

// MissingError reports a snapshot that did not exist (or could not be read)
// and has now been written.
type MissingError struct {
	Name string
	Path string
	Err  error
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("snapshot %q not accepted yet: %v", e.Name, e.Err)
}

func (e *MissingError) Unwrap() error { return e.Err }

func (e *MissingError) Is(target error) bool { return target == ErrSnapshotMissing }

// ChangedError reports a mismatch. The new value is already on disk.
type ChangedError struct {
	Name string
	Path string
	Diff string
}

func (e *ChangedError) Error() string {
	return e.Name + "\n" + e.Diff
}

func (e *ChangedError) Is(target error) bool { return target == ErrSnapshotChanged }

// NewlineError reports a text snapshot that only differs in line endings.
type NewlineError struct {
	Name     string
	Path     string
	Expected string
	Got      string
}

func (e *NewlineError) Error() string {
	return fmt.Sprintf("Differing newlines: Expected %q, got %q", e.Expected, e.Got)
}

func (e *NewlineError) Is(target error) bool { return target == ErrSnapshotChanged }
