// Package feature tracks optional capabilities that are compiled in or left
// out with build tags. A package declares a capability, the build-tagged file
// that carries the implementation provides it, and callers Require it before
// use so that absence surfaces as a descriptive error instead of a nil backend.
package feature

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnavailable matches every *UnavailableError via errors.Is.
var ErrUnavailable = errors.New("feature unavailable")

// UnavailableError reports a capability that was not compiled in.
type UnavailableError struct {
	Feature string
	Module  string // module the implementation needs
	Tag     string // build tag that excludes it
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("This feature needs %q, please build without the %q tag", e.Module, e.Tag)
}

// Is lets errors.Is(err, ErrUnavailable) match.
func (e *UnavailableError) Is(target error) bool {
	return target == ErrUnavailable
}

type capability struct {
	module   string
	tag      string
	provided bool
}

var (
	mu   sync.RWMutex
	caps = make(map[string]*capability)
)

func lookup(name string) *capability {
	c, ok := caps[name]
	if !ok {
		c = &capability{}
		caps[name] = c
	}
	return c
}

// Declare registers a capability and what it depends on.
// Declaring keeps an earlier Provide, so init order between files does not matter.
func Declare(name, module, tag string) {
	mu.Lock()
	defer mu.Unlock()
	c := lookup(name)
	c.module = module
	c.tag = tag
}

// Provide marks a capability as compiled in.
func Provide(name string) {
	mu.Lock()
	defer mu.Unlock()
	lookup(name).provided = true
}

// Available reports whether the capability is compiled in.
func Available(name string) bool {
	mu.RLock()
	defer mu.RUnlock()
	c, ok := caps[name]
	return ok && c.provided
}

// Require returns an *UnavailableError unless the capability is provided.
func Require(name string) error {
	mu.RLock()
	defer mu.RUnlock()
	c, ok := caps[name]
	if ok && c.provided {
		return nil
	}
	e := &UnavailableError{Feature: name}
	if ok {
		e.Module, e.Tag = c.module, c.tag
	}
	return e
}

// Withdraw marks a capability as missing until the returned restore func runs.
// Tests use it to exercise the unavailable path.
func Withdraw(name string) (restore func()) {
	mu.Lock()
	defer mu.Unlock()
	c := lookup(name)
	prev := c.provided
	c.provided = false
	return func() {
		mu.Lock()
		defer mu.Unlock()
		c.provided = prev
	}
}
