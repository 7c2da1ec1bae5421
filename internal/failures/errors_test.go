package failures_test

import (
	"errors"
	"strings"
	"testing"

	"srtchunk/internal/failures"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := failures.Wrap(failures.ErrIO, "workspace", "write chunk", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, failures.ErrIO) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"workspace", "write chunk", "failed", "boom"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := failures.Wrap(failures.ErrInvalidInput, "split", "", "no blocks", nil)
	if !errors.Is(err, failures.ErrInvalidInput) {
		t.Fatalf("expected invalid input marker, got %v", err)
	}
	if err.Error() != "invalid input: split: no blocks" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestKindAndExitCode(t *testing.T) {
	cases := []struct {
		err  error
		kind string
		code int
	}{
		{nil, "", 0},
		{failures.Wrap(failures.ErrNotFound, "join", "list", "missing", nil), "not_found", 1},
		{failures.Wrap(failures.ErrValidation, "validate", "", "2 errors", nil), "validation", 1},
		{failures.Wrap(failures.ErrBusy, "workspace", "lock", "held", nil), "busy", 1},
		{errors.New("plain"), "io", 1},
	}
	for _, tc := range cases {
		if got := failures.Kind(tc.err); got != tc.kind {
			t.Fatalf("Kind(%v) = %q, want %q", tc.err, got, tc.kind)
		}
		if got := failures.ExitCode(tc.err); got != tc.code {
			t.Fatalf("ExitCode(%v) = %d, want %d", tc.err, got, tc.code)
		}
	}
}
