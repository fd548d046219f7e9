package props

import (
	"fmt"
	"strconv"
	"strings"
)

// Options controls Render.
type Options struct {
	// MaxBytes truncates hex output; zero shows every byte.
	MaxBytes int
}

// Render formats one property line without indentation or terminator:
//
//	dma-coherent
//	#size-cells = <2>
//	model = "acme,board"
//	compatible = "arm,pl011", "arm,primecell"
//	interrupts = 00 00 00 01
func Render(name string, v []byte, opts Options) string {
	if len(v) == 0 {
		return name
	}
	return name + " = " + RenderValue(Classify(name), v, opts)
}

// RenderValue formats v as kind k. A u32 value shorter than one cell falls
// back to hex.
func RenderValue(k Kind, v []byte, opts Options) string {
	switch k {
	case KindU32:
		n, err := DecodeU32(v)
		if err != nil {
			return FormatHex(v, opts.MaxBytes)
		}
		return fmt.Sprintf("<%d>", n)
	case KindString:
		return strconv.Quote(DecodeString(v))
	case KindStringList:
		list := DecodeStringList(v)
		quoted := make([]string, len(list))
		for i, s := range list {
			quoted[i] = strconv.Quote(s)
		}
		return strings.Join(quoted, ", ")
	default:
		return FormatHex(v, opts.MaxBytes)
	}
}
