package fdt

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/apex/log"

	"github.com/joshuapare/dtbkit/internal/buf"
	"github.com/joshuapare/dtbkit/internal/format"
	"github.com/joshuapare/dtbkit/internal/mmfile"
)

// Order tags how the multi-byte integers of a Tree are currently laid out.
type Order uint8

const (
	// OrderWire means the blob is exactly as dtc or the bootloader produced it.
	OrderWire Order = iota
	// OrderHost means a fixup pass converted the header, tokens and property
	// headers to format.HostOrder.
	OrderHost
	// OrderTorn means a fixup or restore pass stopped part way; the blob
	// mixes both orders and no further pass will run on it.
	OrderTorn
)

// String returns a short name for the order.
func (o Order) String() string {
	switch o {
	case OrderWire:
		return "wire"
	case OrderHost:
		return "host"
	case OrderTorn:
		return "torn"
	default:
		return fmt.Sprintf("order(%d)", uint8(o))
	}
}

func (o Order) byteOrder() binary.ByteOrder {
	if o == OrderHost {
		return format.HostOrder
	}
	return format.WireOrder
}

// Tree is a handle on a device tree blob. It owns no copy of the bytes: the
// caller's buffer (or the private file mapping behind Open) is read and, by
// Fixup and Restore only, rewritten in place.
//
// A Tree is not safe for concurrent use while Fixup or Restore runs.
type Tree struct {
	data   []byte
	order  Order
	closer func() error
	log    log.Interface
}

// New wraps data. The byte order is detected from the header magic, so a
// blob fixed up by an earlier Tree is recognised as OrderHost.
//
// Example:
//
//	t, err := fdt.New(blob)
//	if err != nil {
//	    return err
//	}
//	if _, err := t.Fixup(); err != nil {
//	    return err
//	}
func New(data []byte) (*Tree, error) {
	if len(data) < format.HeaderSize {
		return nil, fmt.Errorf("fdt: %d-byte blob: %w", len(data), format.ErrTruncated)
	}
	t := &Tree{data: data, log: log.Log}

	hdr, err := format.ParseHeader(data, format.WireOrder)
	switch {
	case err == nil:
		t.order = OrderWire
	case errors.Is(err, format.ErrByteOrder):
		hdr, err = format.ParseHeader(data, format.HostOrder)
		if err != nil {
			return nil, err
		}
		t.order = OrderHost
	default:
		return nil, err
	}

	if int64(hdr.TotalSize) > int64(len(data)) {
		return nil, fmt.Errorf("fdt: totalsize %d exceeds %d-byte blob: %w",
			hdr.TotalSize, len(data), format.ErrTruncated)
	}
	return t, nil
}

// Open maps the blob at path copy-on-write and wraps it. Fixup rewrites the
// mapping, never the file. Call Close to release the mapping.
func Open(path string) (*Tree, error) {
	data, cleanup, err := mmfile.Map(path)
	if err != nil {
		return nil, err
	}
	t, err := New(data)
	if err != nil {
		_ = cleanup()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	t.closer = cleanup
	return t, nil
}

// Close releases the mapping created by Open. It is a no-op for trees built
// with New.
func (t *Tree) Close() error {
	if t == nil || t.closer == nil {
		return nil
	}
	err := t.closer()
	t.closer = nil
	t.data = nil
	return err
}

// SetLogger replaces the logger used for per-token debug output.
func (t *Tree) SetLogger(l log.Interface) {
	if l == nil {
		l = log.Log
	}
	t.log = l
}

// Bytes returns the underlying buffer. Writes through it bypass the order tag.
func (t *Tree) Bytes() []byte {
	return t.data
}

// Order reports the current byte-order tag.
func (t *Tree) Order() Order {
	return t.order
}

// Header decodes the header in the tree's current byte order.
func (t *Tree) Header() (format.Header, error) {
	if t.order == OrderTorn {
		return format.Header{}, ErrTornOrder
	}
	return format.ParseHeader(t.data, t.order.byteOrder())
}

// StringAt returns the property name at nameoff within the strings block.
func (t *Tree) StringAt(nameoff uint32) (string, error) {
	hdr, err := t.Header()
	if err != nil {
		return "", err
	}
	start, end := hdr.StringsBlock()
	if end < 0 || end > len(t.data) {
		end = len(t.data)
	}
	off, ok := buf.AddOverflowSafe(start, int(nameoff))
	if !ok || off >= end {
		return "", fmt.Errorf("fdt: name offset %#x outside strings block: %w", nameoff, format.ErrTruncated)
	}
	s, ok := buf.CString(t.data[:end], off)
	if !ok {
		return "", fmt.Errorf("fdt: name at %#x: %w", off, format.ErrUnterminated)
	}
	return s, nil
}
