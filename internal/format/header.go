package format

import (
	"encoding/binary"
	"fmt"

	"github.com/joshuapare/dtbkit/internal/buf"
)

// Header mirrors the ten 32-bit fields at the start of every blob. Field
// values are host integers; the byte order they were decoded from is chosen
// by the caller of ParseHeader.
type Header struct {
	Magic           uint32 `json:"magic" yaml:"magic"`
	TotalSize       uint32 `json:"totalsize" yaml:"totalsize"`
	OffDTStruct     uint32 `json:"off_dt_struct" yaml:"off_dt_struct"`
	OffDTStrings    uint32 `json:"off_dt_strings" yaml:"off_dt_strings"`
	OffMemRsvmap    uint32 `json:"off_mem_rsvmap" yaml:"off_mem_rsvmap"`
	Version         uint32 `json:"version" yaml:"version"`
	LastCompVersion uint32 `json:"last_comp_version" yaml:"last_comp_version"`
	BootCPUIDPhys   uint32 `json:"boot_cpuid_phys" yaml:"boot_cpuid_phys"`
	SizeDTStrings   uint32 `json:"size_dt_strings" yaml:"size_dt_strings"`
	SizeDTStruct    uint32 `json:"size_dt_struct" yaml:"size_dt_struct"`
}

// ParseHeader decodes the header at the start of b using order and checks
// the magic. A byte-swapped magic is reported as ErrByteOrder so callers can
// tell a wire-order blob from a fixed-up one.
func ParseHeader(b []byte, order binary.ByteOrder) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("fdt header: %w", ErrTruncated)
	}
	h := Header{
		Magic:           buf.U32(b[HeaderMagicOffset:], order),
		TotalSize:       buf.U32(b[HeaderTotalSizeOffset:], order),
		OffDTStruct:     buf.U32(b[HeaderOffDTStructOffset:], order),
		OffDTStrings:    buf.U32(b[HeaderOffDTStringsOffset:], order),
		OffMemRsvmap:    buf.U32(b[HeaderOffMemRsvmapOffset:], order),
		Version:         buf.U32(b[HeaderVersionOffset:], order),
		LastCompVersion: buf.U32(b[HeaderLastCompVersionOffset:], order),
		BootCPUIDPhys:   buf.U32(b[HeaderBootCPUIDOffset:], order),
		SizeDTStrings:   buf.U32(b[HeaderSizeDTStringsOffset:], order),
		SizeDTStruct:    buf.U32(b[HeaderSizeDTStructOffset:], order),
	}
	switch h.Magic {
	case Magic:
		return h, nil
	case SwappedMagic:
		return Header{}, fmt.Errorf("fdt header: %w", ErrByteOrder)
	default:
		return Header{}, fmt.Errorf("fdt header: magic 0x%08x: %w", h.Magic, ErrBadMagic)
	}
}

// StructBlock returns the byte range [start, end) of the structure block.
func (h Header) StructBlock() (int, int) {
	start := int(h.OffDTStruct)
	return start, start + int(h.SizeDTStruct)
}

// StringsBlock returns the byte range [start, end) of the strings block.
// A zero SizeDTStrings (pre-version-3 blobs) leaves the end open, reported as -1.
func (h Header) StringsBlock() (int, int) {
	start := int(h.OffDTStrings)
	if h.SizeDTStrings == 0 {
		return start, -1
	}
	return start, start + int(h.SizeDTStrings)
}
