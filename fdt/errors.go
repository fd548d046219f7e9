package fdt

import "errors"

var (
	// ErrAlreadyFixed is returned by Fixup on a tree already in host order.
	ErrAlreadyFixed = errors.New("fdt: tree already in host order")
	// ErrNotFixed is returned by Restore on a tree still in wire order.
	ErrNotFixed = errors.New("fdt: tree still in wire order")
	// ErrTornOrder is returned by every pass once a fixup or restore stopped
	// part way through the blob.
	ErrTornOrder = errors.New("fdt: tree byte order torn by an interrupted pass")
)
