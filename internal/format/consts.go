// Package format houses low-level decoders for the Flattened Device Tree
// (FDT, "DTB") binary format. The goal is to keep the parsing focused,
// allocation-free where possible, and independent from the public API so
// higher-level packages can orchestrate the data in a more ergonomic form.
package format

import "encoding/binary"

// Magic is the value of the first header field in a well-formed blob.
// On the wire it appears as d0 0d fe ed.
const Magic uint32 = 0xd00dfeed

// SwappedMagic is Magic with its bytes reversed. Reading it means the header
// is being interpreted in the wrong byte order.
const SwappedMagic uint32 = 0xedfe0dd0

// WireOrder is the byte order of every multi-byte integer in a blob as
// produced by dtc and handed over by the bootloader.
var WireOrder binary.ByteOrder = binary.BigEndian

// HostOrder is the order a fixed-up tree is stored in.
var HostOrder binary.ByteOrder = binary.NativeEndian

const (
	// HeaderSize is the size of the version 17 header: ten 32-bit fields.
	HeaderSize = 40

	// HeaderFieldCount is the number of 32-bit fields in HeaderSize.
	HeaderFieldCount = HeaderSize / FieldSize

	// FieldSize is the width of every header field and of a token tag.
	FieldSize = 4

	// TokenSize is the width of a structure block token.
	TokenSize = 4

	// TokenAlignment is the alignment of every token in the structure block.
	TokenAlignment = 4

	// TokenAlignmentMask is the bitmask used for aligning to token boundaries (TokenAlignment - 1).
	TokenAlignmentMask = TokenAlignment - 1

	// PropHeaderSize is the size of the (len, nameoff) pair that follows a PROP token.
	PropHeaderSize = 8

	// ReserveEntrySize is the size of one (address, size) memory reservation record.
	ReserveEntrySize = 16

	// ReserveMapAlignment is the required alignment of the reservation block.
	ReserveMapAlignment = 8

	// Version is the format revision this package targets.
	Version = 17

	// LastCompatibleVersion is the oldest revision a version 17 blob remains
	// compatible with.
	LastCompatibleVersion = 16
)

// Header field offsets. Every field is a 32-bit unsigned integer.
//
//	Offset  Field
//	------  ------------------
//	 0x00   magic
//	 0x04   totalsize
//	 0x08   off_dt_struct
//	 0x0C   off_dt_strings
//	 0x10   off_mem_rsvmap
//	 0x14   version
//	 0x18   last_comp_version
//	 0x1C   boot_cpuid_phys     (version 2)
//	 0x20   size_dt_strings     (version 3)
//	 0x24   size_dt_struct      (version 17)
const (
	HeaderMagicOffset           = 0x00
	HeaderTotalSizeOffset       = 0x04
	HeaderOffDTStructOffset     = 0x08
	HeaderOffDTStringsOffset    = 0x0C
	HeaderOffMemRsvmapOffset    = 0x10
	HeaderVersionOffset         = 0x14
	HeaderLastCompVersionOffset = 0x18
	HeaderBootCPUIDOffset       = 0x1C
	HeaderSizeDTStringsOffset   = 0x20
	HeaderSizeDTStructOffset    = 0x24
)

// Property header field offsets, relative to the byte after the PROP token.
const (
	PropLenOffset     = 0x00
	PropNameOffOffset = 0x04
)

// Reservation entry field offsets.
const (
	ReserveAddressOffset = 0x00
	ReserveSizeOffset    = 0x08
)
