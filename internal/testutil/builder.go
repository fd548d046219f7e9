// Package testutil builds device tree blobs in memory for tests.
package testutil

import (
	"encoding/binary"

	"github.com/joshuapare/dtbkit/internal/format"
)

// Builder assembles a wire-order (big-endian) blob token by token. It does
// not balance nodes or append FDT_END on its own, so tests can produce
// malformed streams on purpose.
//
// Example:
//
//	blob := testutil.NewBuilder().
//	    BeginNode("").
//	    PropString("model", "x").
//	    EndNode().
//	    End().
//	    Bytes()
type Builder struct {
	reserve []format.ReserveEntry
	st      []byte
	strs    []byte
	strOff  map[string]uint32

	// BootCPU is written to boot_cpuid_phys.
	BootCPU uint32
	// Version is written to version; zero means format.Version.
	Version uint32
}

// Layout records where Bytes placed each block.
type Layout struct {
	RsvmapOffset  int
	StructOffset  int
	StructSize    int
	StringsOffset int
	StringsSize   int
	TotalSize     int
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{strOff: make(map[string]uint32)}
}

func (b *Builder) u32(v uint32) {
	b.st = binary.BigEndian.AppendUint32(b.st, v)
}

func (b *Builder) pad() {
	for len(b.st)%format.TokenAlignment != 0 {
		b.st = append(b.st, 0)
	}
}

func (b *Builder) nameOffset(name string) uint32 {
	if off, ok := b.strOff[name]; ok {
		return off
	}
	off := uint32(len(b.strs))
	b.strs = append(b.strs, name...)
	b.strs = append(b.strs, 0)
	b.strOff[name] = off
	return off
}

// Reserve appends a memory reservation entry. An address of zero ends the
// map early, which is how tests exercise the sentinel.
func (b *Builder) Reserve(address, size uint64) *Builder {
	b.reserve = append(b.reserve, format.ReserveEntry{Address: address, Size: size})
	return b
}

// BeginNode appends FDT_BEGIN_NODE and the padded name.
func (b *Builder) BeginNode(name string) *Builder {
	b.u32(uint32(format.TokenBeginNode))
	b.st = append(b.st, name...)
	b.st = append(b.st, 0)
	b.pad()
	return b
}

// EndNode appends FDT_END_NODE.
func (b *Builder) EndNode() *Builder {
	b.u32(uint32(format.TokenEndNode))
	return b
}

// Nop appends FDT_NOP.
func (b *Builder) Nop() *Builder {
	b.u32(uint32(format.TokenNop))
	return b
}

// End appends FDT_END.
func (b *Builder) End() *Builder {
	b.u32(uint32(format.TokenEnd))
	return b
}

// Token appends an arbitrary tag.
func (b *Builder) Token(raw uint32) *Builder {
	b.u32(raw)
	return b
}

// Prop appends FDT_PROP with a raw value.
func (b *Builder) Prop(name string, value []byte) *Builder {
	b.u32(uint32(format.TokenProp))
	b.u32(uint32(len(value)))
	b.u32(b.nameOffset(name))
	b.st = append(b.st, value...)
	b.pad()
	return b
}

// PropEmpty appends a zero-length (flag) property.
func (b *Builder) PropEmpty(name string) *Builder {
	return b.Prop(name, nil)
}

// PropString appends a NUL-terminated string property.
func (b *Builder) PropString(name, value string) *Builder {
	v := append([]byte(value), 0)
	return b.Prop(name, v)
}

// PropStrings appends a string-list property.
func (b *Builder) PropStrings(name string, values ...string) *Builder {
	var v []byte
	for _, s := range values {
		v = append(v, s...)
		v = append(v, 0)
	}
	return b.Prop(name, v)
}

// PropU32 appends a property of big-endian 32-bit cells.
func (b *Builder) PropU32(name string, cells ...uint32) *Builder {
	var v []byte
	for _, c := range cells {
		v = binary.BigEndian.AppendUint32(v, c)
	}
	return b.Prop(name, v)
}

// PropU64 appends a property of big-endian 64-bit values.
func (b *Builder) PropU64(name string, values ...uint64) *Builder {
	var v []byte
	for _, c := range values {
		v = binary.BigEndian.AppendUint64(v, c)
	}
	return b.Prop(name, v)
}

// Build lays out header, reservation map, structure and strings blocks.
func (b *Builder) Build() ([]byte, Layout) {
	var l Layout
	l.RsvmapOffset = format.HeaderSize
	rsvSize := (len(b.reserve) + 1) * format.ReserveEntrySize
	l.StructOffset = l.RsvmapOffset + rsvSize
	l.StructSize = len(b.st)
	l.StringsOffset = l.StructOffset + l.StructSize
	l.StringsSize = len(b.strs)
	l.TotalSize = l.StringsOffset + l.StringsSize

	out := make([]byte, l.TotalSize)
	be := binary.BigEndian
	version := b.Version
	if version == 0 {
		version = format.Version
	}
	be.PutUint32(out[format.HeaderMagicOffset:], format.Magic)
	be.PutUint32(out[format.HeaderTotalSizeOffset:], uint32(l.TotalSize))
	be.PutUint32(out[format.HeaderOffDTStructOffset:], uint32(l.StructOffset))
	be.PutUint32(out[format.HeaderOffDTStringsOffset:], uint32(l.StringsOffset))
	be.PutUint32(out[format.HeaderOffMemRsvmapOffset:], uint32(l.RsvmapOffset))
	be.PutUint32(out[format.HeaderVersionOffset:], version)
	be.PutUint32(out[format.HeaderLastCompVersionOffset:], format.LastCompatibleVersion)
	be.PutUint32(out[format.HeaderBootCPUIDOffset:], b.BootCPU)
	be.PutUint32(out[format.HeaderSizeDTStringsOffset:], uint32(l.StringsSize))
	be.PutUint32(out[format.HeaderSizeDTStructOffset:], uint32(l.StructSize))

	off := l.RsvmapOffset
	for _, e := range b.reserve {
		be.PutUint64(out[off+format.ReserveAddressOffset:], e.Address)
		be.PutUint64(out[off+format.ReserveSizeOffset:], e.Size)
		off += format.ReserveEntrySize
	}
	// Terminator is already zero.

	copy(out[l.StructOffset:], b.st)
	copy(out[l.StringsOffset:], b.strs)
	return out, l
}

// Bytes returns the assembled blob.
func (b *Builder) Bytes() []byte {
	out, _ := b.Build()
	return out
}
