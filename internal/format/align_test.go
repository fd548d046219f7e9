package format

import "testing"

func TestAlign4(t *testing.T) {
	cases := map[int]int{0: 0, 1: 4, 2: 4, 3: 4, 4: 4, 5: 8, 7: 8, 8: 8, 0x41: 0x44}
	for in, want := range cases {
		if got := Align4(in); got != want {
			t.Errorf("Align4(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestAdvance(t *testing.T) {
	// BEGIN_NODE "cpus": name starts after the tag at 0x44.
	if got := Advance(0x44, len("cpus")+1); got != 0x4c {
		t.Fatalf("Advance name = %#x, want 0x4c", got)
	}
	// PROP with a 3-byte value.
	if got := Advance(0x4c, PropHeaderSize+3); got != 0x58 {
		t.Fatalf("Advance prop = %#x, want 0x58", got)
	}
	// Already aligned, zero length.
	if got := Advance(0x10, 0); got != 0x10 {
		t.Fatalf("Advance(0x10, 0) = %#x", got)
	}
}

func TestAdvanceIdempotent(t *testing.T) {
	for c := 0; c < 64; c++ {
		once := Advance(c, 0)
		twice := Advance(once, 0)
		if once != twice {
			t.Fatalf("Advance not idempotent at %d: %d vs %d", c, once, twice)
		}
		if !IsAligned(once, TokenAlignment) {
			t.Fatalf("Advance(%d, 0) = %d is not 4-byte aligned", c, once)
		}
		if once < c {
			t.Fatalf("Advance(%d, 0) = %d moved backwards", c, once)
		}
	}
}

func TestIsAligned(t *testing.T) {
	if !IsAligned(0x28, ReserveMapAlignment) {
		t.Fatalf("0x28 should be 8-byte aligned")
	}
	if IsAligned(0x2c, ReserveMapAlignment) {
		t.Fatalf("0x2c should not be 8-byte aligned")
	}
}
