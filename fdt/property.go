package fdt

import (
	"github.com/joshuapare/dtbkit/internal/buf"
	"github.com/joshuapare/dtbkit/internal/format"
)

// Property is a zero-copy view of one FDT_PROP record. It reads the tree's
// buffer on every call, so inside a fixup pass the values it reports follow
// whatever conversion has already happened to the record.
type Property struct {
	t     *Tree
	off   int // start of the len field
	limit int // end of the structure block
}

// Offset returns the position of the record's len field.
func (p Property) Offset() int {
	return p.off
}

// Len returns the value length in the tree's current byte order.
func (p Property) Len() uint32 {
	return buf.U32(p.t.data[p.off+format.PropLenOffset:], p.t.order.byteOrder())
}

// NameOffset returns the offset of the name within the strings block.
func (p Property) NameOffset() uint32 {
	return buf.U32(p.t.data[p.off+format.PropNameOffOffset:], p.t.order.byteOrder())
}

// Name resolves the property name. An offset that does not land on a
// terminated string in the strings block yields "".
func (p Property) Name() string {
	name, err := p.t.StringAt(p.NameOffset())
	if err != nil {
		return ""
	}
	return name
}

// Value returns the property bytes, aliasing the tree's buffer. It is nil for
// flag properties and for a length that runs past the structure block.
func (p Property) Value() []byte {
	n := int(p.Len())
	if n == 0 {
		return nil
	}
	v, ok := buf.Slice(p.t.data[:p.limit], p.off+format.PropHeaderSize, n)
	if !ok {
		return nil
	}
	return v
}
