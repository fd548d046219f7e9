// Package printer writes device trees in human-readable form.
package printer

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/joshuapare/dtbkit/fdt"
	"github.com/joshuapare/dtbkit/fdt/props"
	"github.com/joshuapare/dtbkit/internal/format"
)

const (
	DefaultIndentSize    = 2
	DefaultMaxValueBytes = 0
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs the dtc-like nested text form.
	FormatText Format = "text"

	// FormatJSON outputs the tree as one JSON document.
	FormatJSON Format = "json"
)

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// IndentSize is the number of spaces per nesting level (text format only).
	// Default: 2
	IndentSize int

	// MaxValueBytes limits how many bytes of opaque values are shown in hex.
	// Set to 0 for no limit.
	// Default: 0
	MaxValueBytes int

	// Color highlights node and property names (text format only).
	// Default: false
	Color bool
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:        FormatText,
		IndentSize:    DefaultIndentSize,
		MaxValueBytes: DefaultMaxValueBytes,
	}
}

// Printer writes trees, headers and reservation maps to a writer.
type Printer struct {
	opts   Options
	writer io.Writer

	node *color.Color
	prop *color.Color
}

// New creates a new Printer.
//
// Example:
//
//	p := printer.New(os.Stdout, printer.DefaultOptions())
//	if err := p.PrintTree(tree); err != nil {
//	    return err
//	}
func New(w io.Writer, opts Options) *Printer {
	if opts.IndentSize < 0 {
		opts.IndentSize = 0
	}
	p := &Printer{
		opts:   opts,
		writer: w,
		node:   color.New(color.FgBlue, color.Bold),
		prop:   color.New(color.FgCyan),
	}
	if opts.Color {
		p.node.EnableColor()
		p.prop.EnableColor()
	} else {
		p.node.DisableColor()
		p.prop.DisableColor()
	}
	return p
}

func (p *Printer) renderOptions() props.Options {
	return props.Options{MaxBytes: p.opts.MaxValueBytes}
}

// PrintTree walks the structure block and writes every node and property.
// It returns the first write error, or the walk error.
func (p *Printer) PrintTree(t *fdt.Tree) error {
	switch p.opts.Format {
	case FormatJSON:
		return p.printTreeJSON(t)
	default:
		return p.printTreeText(t)
	}
}

// PrintHeader writes the header fields.
func (p *Printer) PrintHeader(t *fdt.Tree) error {
	hdr, err := t.Header()
	if err != nil {
		return err
	}
	if p.opts.Format == FormatJSON {
		return writeJSON(p.writer, hdr)
	}
	_, err = fmt.Fprintf(p.writer,
		"Magic: 0x%08x\n"+
			"Version: %d (compatible with: %d)\n"+
			"Total size: 0x%x\n"+
			"Boot CPU: %d\n"+
			"Structure block: 0x%x bytes at 0x%x\n"+
			"Strings block: 0x%x bytes at 0x%x\n"+
			"Reservation map at: 0x%x\n",
		hdr.Magic,
		hdr.Version, hdr.LastCompVersion,
		hdr.TotalSize,
		hdr.BootCPUIDPhys,
		hdr.SizeDTStruct, hdr.OffDTStruct,
		hdr.SizeDTStrings, hdr.OffDTStrings,
		hdr.OffMemRsvmap,
	)
	return err
}

// PrintReservations writes the memory reservation map, one range per line.
func (p *Printer) PrintReservations(t *fdt.Tree) error {
	list, err := t.ReservationList()
	if err != nil {
		return err
	}
	if p.opts.Format == FormatJSON {
		if list == nil {
			list = []format.ReserveEntry{}
		}
		return writeJSON(p.writer, list)
	}
	if len(list) == 0 {
		_, err = fmt.Fprintln(p.writer, "No memory reservations")
		return err
	}
	for i, e := range list {
		if _, err := fmt.Fprintf(p.writer, "/memreserve/ %d: 0x%016x-0x%016x (0x%x bytes)\n",
			i, e.Address, e.End(), e.Size); err != nil {
			return err
		}
	}
	return nil
}
