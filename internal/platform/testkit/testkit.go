// Package testkit holds small assertions and seam helpers shared by package tests
package testkit

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// MustPanic fails t unless fn panics
func MustPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic, got none")
		}
	}()
	fn()
}

// MustNotPanic fails t if fn panics
func MustNotPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()
	fn()
}

// MustContain fails t unless out contains needle. The full output is dumped to a temp file
// so long log captures stay readable
func MustContain(t *testing.T, out, needle string) {
	t.Helper()
	if strings.Contains(out, needle) {
		return
	}
	dump := filepath.Join(t.TempDir(), "output.txt")
	_ = os.WriteFile(dump, []byte(out), 0o600)
	t.Fatalf("expected output to contain %q (full output in %s)", needle, dump)
}

// MustNotContain fails t if out contains needle
func MustNotContain(t *testing.T, out, needle string) {
	t.Helper()
	if strings.Contains(out, needle) {
		t.Fatalf("output unexpectedly contains %q:\n%s", needle, out)
	}
}

// Ptr returns a pointer to v, handy for optional request fields
func Ptr[T any](v T) *T { return &v }

var seamMu sync.Mutex

// Swap replaces *target for the duration of t and restores it on cleanup
func Swap[T any](t *testing.T, target *T, replacement T) {
	t.Helper()
	orig := *target
	*target = replacement
	t.Cleanup(func() { *target = orig })
}

// Serial holds a process-wide lock until t finishes, for tests that touch package seams
func Serial(t *testing.T) {
	t.Helper()
	seamMu.Lock()
	t.Cleanup(seamMu.Unlock)
}
