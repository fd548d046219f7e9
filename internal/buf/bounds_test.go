package buf

import (
	"math"
	"testing"
)

func TestAddOverflowSafe(t *testing.T) {
	if sum, ok := AddOverflowSafe(10, 5); !ok || sum != 15 {
		t.Fatalf("AddOverflowSafe(10,5)=%d,%v want 15,true", sum, ok)
	}
	if _, ok := AddOverflowSafe(math.MaxInt, 1); ok {
		t.Fatalf("expected overflow when adding to MaxInt")
	}
	if _, ok := AddOverflowSafe(math.MinInt, -1); ok {
		t.Fatalf("expected underflow when subtracting from MinInt")
	}
}

func TestSliceAndHas(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4}
	if got, ok := Slice(data, 1, 3); !ok || len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("Slice returned unexpected result: %v, %v", got, ok)
	}
	if got, _ := Slice(data, 1, 3); cap(got) != 3 {
		t.Fatalf("Slice should cap the sub-slice, cap=%d", cap(got))
	}
	if _, ok := Slice(data, 4, 2); ok {
		t.Fatalf("Slice should fail when extending beyond len")
	}
	if Has(data, 2, 4) {
		t.Fatalf("Has should be false for out-of-bounds range")
	}
	if !Has(data, 2, 1) {
		t.Fatalf("Has should be true for valid range")
	}
	if !Has(data, 5, 0) {
		t.Fatalf("Has should accept an empty range at len")
	}

	if _, ok := Slice(data, -1, 1); ok {
		t.Fatalf("Slice should reject negative offset")
	}
	if _, ok := Slice(data, 1, -1); ok {
		t.Fatalf("Slice should reject negative length")
	}
}

func TestCString(t *testing.T) {
	data := []byte("cpus\x00memory@0\x00tail")

	if s, ok := CString(data, 0); !ok || s != "cpus" {
		t.Fatalf("CString(0) = %q, %v", s, ok)
	}
	if s, ok := CString(data, 5); !ok || s != "memory@0" {
		t.Fatalf("CString(5) = %q, %v", s, ok)
	}
	if s, ok := CString(data, 4); !ok || s != "" {
		t.Fatalf("CString at terminator = %q, %v", s, ok)
	}
	if _, ok := CString(data, 14); ok {
		t.Fatalf("CString without terminator should fail")
	}
	if _, ok := CString(data, len(data)); ok {
		t.Fatalf("CString at len should fail")
	}
	if _, ok := CString(data, -1); ok {
		t.Fatalf("CString should reject negative offset")
	}
}
