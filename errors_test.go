package markerclean

import (
	"errors"
	"testing"
)

func TestSafeDetectRecoversPanic(t *testing.T) {
	got := safeDetect(func() []int {
		panic("boom")
	})
	if got != nil {
		t.Fatalf("safeDetect() = %v, want nil after a recovered panic", got)
	}
}

func TestSafeDetectReturnsValueOnSuccess(t *testing.T) {
	got := safeDetect(func() int { return 42 })
	if got != 42 {
		t.Fatalf("safeDetect() = %d, want 42", got)
	}
}

func TestCoreErrorUnwrap(t *testing.T) {
	inner := errors.New("disk full")
	ce := fatalf("decode: %w", inner)
	if !errors.Is(ce, inner) {
		t.Fatal("CoreError should unwrap to its inner error")
	}
	if ce.Kind != ErrFatal {
		t.Fatalf("fatalf() Kind = %v, want ErrFatal", ce.Kind)
	}
}
