package format

import "fmt"

// Token is a structure block tag.
type Token uint32

const (
	TokenBeginNode Token = 0x00000001 // followed by a NUL-terminated node name
	TokenEndNode   Token = 0x00000002 // no payload
	TokenProp      Token = 0x00000003 // followed by len, nameoff and the value
	TokenNop       Token = 0x00000004 // no payload
	TokenEnd       Token = 0x00000009 // end of the structure block
)

// String returns the dtc name of the token.
func (t Token) String() string {
	switch t {
	case TokenBeginNode:
		return "FDT_BEGIN_NODE"
	case TokenEndNode:
		return "FDT_END_NODE"
	case TokenProp:
		return "FDT_PROP"
	case TokenNop:
		return "FDT_NOP"
	case TokenEnd:
		return "FDT_END"
	default:
		return fmt.Sprintf("FDT_UNKNOWN(0x%08x)", uint32(t))
	}
}

// Known reports whether t is one of the five defined tokens.
func (t Token) Known() bool {
	switch t {
	case TokenBeginNode, TokenEndNode, TokenProp, TokenNop, TokenEnd:
		return true
	}
	return false
}
