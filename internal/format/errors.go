package format

import "errors"

var (
	// ErrBadMagic indicates the header did not start with Magic.
	ErrBadMagic = errors.New("format: bad magic")
	// ErrByteOrder indicates the header magic was found byte-swapped, so the
	// blob is being read in the wrong byte order.
	ErrByteOrder = errors.New("format: header in unexpected byte order")
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrUnterminated indicates a string ran to the end of its block without a NUL.
	ErrUnterminated = errors.New("format: unterminated string")
)
