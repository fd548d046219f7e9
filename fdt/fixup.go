package fdt

import (
	"encoding/binary"
	"fmt"

	"github.com/joshuapare/dtbkit/internal/buf"
	"github.com/joshuapare/dtbkit/internal/format"
)

// converter rewrites every integer the engine decodes: the header in Begin,
// each tag in VisitToken, each len/nameoff pair in VisitProperty. Node names,
// property values, the strings block and the reservation map stay as they are.
type converter struct {
	from, to binary.ByteOrder
	target   Order
}

func (c *converter) Begin(t *Tree) {
	reorderHeader(t.data, c.from, c.to)
	t.order = c.target
}

func (c *converter) VisitToken(t *Tree, pos int) {
	buf.Reorder32(t.data[pos:], c.from, c.to)
}

func (c *converter) VisitProperty(t *Tree, _ int, p Property) {
	buf.Reorder32(t.data[p.off+format.PropLenOffset:], c.from, c.to)
	buf.Reorder32(t.data[p.off+format.PropNameOffOffset:], c.from, c.to)
}

func reorderHeader(b []byte, from, to binary.ByteOrder) {
	for i := 0; i < format.HeaderFieldCount; i++ {
		buf.Reorder32(b[i*format.FieldSize:], from, to)
	}
}

// Fixup converts the header, every token tag and every property header from
// wire order to host order in a single walk, so later passes can read them as
// native integers. It refuses a tree that is already in host order.
//
// If the walk fails part way the tree is tagged OrderTorn and every later
// pass refuses it.
func (t *Tree) Fixup() (Stop, error) {
	switch t.order {
	case OrderHost:
		return Stop{}, ErrAlreadyFixed
	case OrderTorn:
		return Stop{}, ErrTornOrder
	}
	hdr, err := format.ParseHeader(t.data, format.WireOrder)
	if err != nil {
		return Stop{}, err
	}
	start, end := hdr.StructBlock()
	if start < format.HeaderSize || end < start || end > len(t.data) {
		return Stop{}, fmt.Errorf("fdt: fixup: structure block [%#x, %#x): %w", start, end, format.ErrTruncated)
	}

	stop, err := t.Walk(&converter{from: format.WireOrder, to: format.HostOrder, target: OrderHost})
	if err != nil {
		t.order = OrderTorn
		return stop, fmt.Errorf("fdt: fixup: %w", err)
	}
	t.log.WithField("stop", stop.Reason.String()).Debug("fdt: fixed up to host order")
	return stop, nil
}

// positions records what a converter would touch, without touching it.
type positions struct {
	tokens []int
	props  []int
}

func (c *positions) VisitToken(_ *Tree, pos int) {
	c.tokens = append(c.tokens, pos)
}

func (c *positions) VisitProperty(_ *Tree, _ int, p Property) {
	c.props = append(c.props, p.off)
}

// Restore converts a fixed-up tree back to wire order. It walks the host
// order stream first and only rewrites once the walk has succeeded, so a
// malformed stream leaves the tree untouched and still in host order.
func (t *Tree) Restore() (Stop, error) {
	switch t.order {
	case OrderWire:
		return Stop{}, ErrNotFixed
	case OrderTorn:
		return Stop{}, ErrTornOrder
	}

	var seen positions
	stop, err := t.Walk(&seen)
	if err != nil {
		return stop, fmt.Errorf("fdt: restore: %w", err)
	}

	from, to := format.HostOrder, format.WireOrder
	for _, pos := range seen.tokens {
		buf.Reorder32(t.data[pos:], from, to)
	}
	for _, off := range seen.props {
		buf.Reorder32(t.data[off+format.PropLenOffset:], from, to)
		buf.Reorder32(t.data[off+format.PropNameOffOffset:], from, to)
	}
	reorderHeader(t.data, from, to)
	t.order = OrderWire
	return stop, nil
}
