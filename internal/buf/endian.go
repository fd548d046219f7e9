// Package buf contains helpers for endian-safe decoding routines.
package buf

import "encoding/binary"

// U32BE reads a big-endian uint32 from b. Returns 0 when b is too short.
func U32BE(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

// U64BE reads a big-endian uint64 from b. Returns 0 when b is too short.
func U64BE(b []byte) uint64 {
	if len(b) < 8 {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

// I32BE reads a big-endian int32 from b. Returns 0 when b is too short.
func I32BE(b []byte) int32 {
	if len(b) < 4 {
		return 0
	}
	return int32(binary.BigEndian.Uint32(b))
}

// U32 reads a uint32 from b in the given order. Returns 0 when b is too short.
func U32(b []byte, order binary.ByteOrder) uint32 {
	if len(b) < 4 {
		return 0
	}
	return order.Uint32(b)
}

// Swap32 reverses the first four bytes of b in place.
// Applying it twice restores the original bytes.
func Swap32(b []byte) {
	if len(b) < 4 {
		return
	}
	b[0], b[1], b[2], b[3] = b[3], b[2], b[1], b[0]
}

// Reorder32 rewrites the uint32 at the start of b from one byte order to
// another. It is a no-op when both orders lay bytes out the same way, and a
// Swap32 otherwise.
func Reorder32(b []byte, from, to binary.ByteOrder) {
	if len(b) < 4 || SameLayout(from, to) {
		return
	}
	Swap32(b)
}

// SameLayout reports whether two byte orders encode a uint32 identically.
func SameLayout(a, b binary.ByteOrder) bool {
	var p [4]byte
	a.PutUint32(p[:], 0x01020304)
	return b.Uint32(p[:]) == 0x01020304
}
