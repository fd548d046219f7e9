package props

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/joshuapare/dtbkit/internal/buf"
)

// ErrShortValue is returned by DecodeU32 for values under four bytes.
var ErrShortValue = errors.New("props: value shorter than one cell")

// DecodeU32 reads the first big-endian cell of v as a signed integer.
func DecodeU32(v []byte) (int32, error) {
	if len(v) < 4 {
		return 0, fmt.Errorf("%d bytes: %w", len(v), ErrShortValue)
	}
	return buf.I32BE(v), nil
}

// DecodeString returns the bytes of v up to the first NUL. Bytes that are not
// valid UTF-8 are read as ISO-8859-1.
func DecodeString(v []byte) string {
	if i := bytes.IndexByte(v, 0); i >= 0 {
		v = v[:i]
	}
	return text(v)
}

// DecodeStringList splits v on NUL bytes. Each entry consumes its string and
// terminator, so "a\x00bb\x00c\x00" yields three entries; a trailing string
// with no terminator is kept.
func DecodeStringList(v []byte) []string {
	var out []string
	for len(v) > 0 {
		i := bytes.IndexByte(v, 0)
		if i < 0 {
			out = append(out, text(v))
			break
		}
		out = append(out, text(v[:i]))
		v = v[i+1:]
	}
	return out
}

func text(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(decoded)
}

// FormatHex renders v as space separated two-digit hex bytes. When limit is
// positive and v is longer, only the first limit bytes are shown followed by
// the total length.
//
//	FormatHex([]byte{0xde, 0xad, 0xbe, 0xef}, 2) = "de ad ... (4 bytes)"
func FormatHex(v []byte, limit int) string {
	shown := v
	if limit > 0 && len(v) > limit {
		shown = v[:limit]
	}
	var sb strings.Builder
	sb.Grow(len(shown) * 3)
	for i, b := range shown {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02x", b)
	}
	if len(shown) < len(v) {
		fmt.Fprintf(&sb, " ... (%d bytes)", len(v))
	}
	return sb.String()
}
