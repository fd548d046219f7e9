package fdt

import (
	"fmt"

	"github.com/joshuapare/dtbkit/internal/buf"
	"github.com/joshuapare/dtbkit/internal/format"
)

// Reservations calls fn for each entry of the memory reservation map and
// returns how many entries came before the terminator. A map whose first
// address is zero is empty. fn may be nil to just count.
//
// Entries are read big-endian regardless of the tree's order; fixup never
// touches them.
func (t *Tree) Reservations(fn func(i int, e format.ReserveEntry)) (int, error) {
	hdr, err := t.Header()
	if err != nil {
		return 0, err
	}
	off := int(hdr.OffMemRsvmap)
	for i := 0; ; i++ {
		b, ok := buf.Slice(t.data, off, format.ReserveEntrySize)
		if !ok {
			return i, fmt.Errorf("fdt: reservation %d at %#x: %w", i, off, format.ErrTruncated)
		}
		e, err := format.ParseReserveEntry(b)
		if err != nil {
			return i, err
		}
		if e.Terminator() {
			return i, nil
		}
		if fn != nil {
			fn(i, e)
		}
		off += format.ReserveEntrySize
	}
}

// ReservationList collects the reservation map into a slice.
func (t *Tree) ReservationList() ([]format.ReserveEntry, error) {
	var out []format.ReserveEntry
	_, err := t.Reservations(func(_ int, e format.ReserveEntry) {
		out = append(out, e)
	})
	return out, err
}
