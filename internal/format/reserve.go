package format

import (
	"fmt"

	"github.com/joshuapare/dtbkit/internal/buf"
)

// ReserveEntry is one physical range the kernel must leave alone.
//
//	Offset  Size  Description
//	------  ----  ---------------
//	 0x00    8    address (big-endian)
//	 0x08    8    size    (big-endian)
//
// The map ends with an entry whose address is zero. Entries are never fixed
// up, so they are always decoded from wire order.
type ReserveEntry struct {
	Address uint64 `json:"address" yaml:"address"`
	Size    uint64 `json:"size" yaml:"size"`
}

// ParseReserveEntry decodes the reservation record at the start of b.
func ParseReserveEntry(b []byte) (ReserveEntry, error) {
	if len(b) < ReserveEntrySize {
		return ReserveEntry{}, fmt.Errorf("reserve entry: %w", ErrTruncated)
	}
	return ReserveEntry{
		Address: buf.U64BE(b[ReserveAddressOffset:]),
		Size:    buf.U64BE(b[ReserveSizeOffset:]),
	}, nil
}

// Terminator reports whether e is the sentinel that ends the map.
func (e ReserveEntry) Terminator() bool {
	return e.Address == 0
}

// End returns the first address past the reserved range.
func (e ReserveEntry) End() uint64 {
	return e.Address + e.Size
}
