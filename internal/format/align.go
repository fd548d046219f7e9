package format

// Alignment utilities for the structure block.
// Every token starts on a 4-byte boundary, so variable-length payloads
// (node names, property values) are padded up to the next token.

// Align4 returns n aligned up to the next 4-byte boundary.
// Already aligned values are returned unchanged.
//
// Example:
//
//	Align4(0) = 0
//	Align4(1) = 4
//	Align4(4) = 4
//	Align4(5) = 8
func Align4(n int) int {
	return (n + TokenAlignmentMask) &^ TokenAlignmentMask
}

// Advance moves pos forward by n bytes and rounds the result up to the next
// token boundary. It is the only way the traversal cursor changes position.
//
// Example:
//
//	Advance(0x40, len("cpus")+1) = 0x48
//	Advance(0x48, PropHeaderSize+3) = 0x54
func Advance(pos, n int) int {
	return Align4(pos + n)
}

// IsAligned reports whether n sits on a boundary of the given power-of-two size.
func IsAligned(n, size int) bool {
	return n&(size-1) == 0
}
