package dtb

import (
	"fmt"
	"io"

	"github.com/joshuapare/dtbkit/fdt"
	"github.com/joshuapare/dtbkit/fdt/printer"
)

// Open maps the blob at path copy-on-write. Close the tree when done.
func Open(path string) (*fdt.Tree, error) {
	if !fileExists(path) {
		return nil, fmt.Errorf("dtb file not found: %s", path)
	}
	t, err := fdt.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dtb %s: %w", path, err)
	}
	return t, nil
}

// FromBytes wraps b without copying it.
func FromBytes(b []byte) (*fdt.Tree, error) {
	return fdt.New(b)
}

// ParseOptions selects the stages ParseDeviceTree runs after fixup.
type ParseOptions struct {
	// Header prints the header fields before the tree.
	// Default: true
	Header bool

	// Dump prints the node tree.
	// Default: true
	Dump bool

	// Reservations prints the memory reservation map after the tree.
	// Default: true
	Reservations bool

	// Printer controls dump formatting.
	Printer printer.Options
}

// DefaultParseOptions returns the full dump (header, tree, reservations)
// with default formatting.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		Header:       true,
		Dump:         true,
		Reservations: true,
		Printer:      printer.DefaultOptions(),
	}
}

// ParseDeviceTree runs the fixed composition fixup, dump, reservations. The
// fixup always runs first (and is skipped for a tree already in host order)
// so the later stages read native integers.
//
// Example:
//
//	opts := dtb.DefaultParseOptions()
//	opts.Header = false
//	err := dtb.ParseDeviceTree(t, os.Stdout, opts)
func ParseDeviceTree(t *fdt.Tree, w io.Writer, opts ParseOptions) error {
	if t.Order() != fdt.OrderHost {
		if _, err := t.Fixup(); err != nil {
			return err
		}
	}

	p := printer.New(w, opts.Printer)
	if opts.Header {
		if err := p.PrintHeader(t); err != nil {
			return fmt.Errorf("print header: %w", err)
		}
	}
	if opts.Dump {
		if err := p.PrintTree(t); err != nil {
			return fmt.Errorf("print tree: %w", err)
		}
	}
	if opts.Reservations {
		if err := p.PrintReservations(t); err != nil {
			return fmt.Errorf("print reservations: %w", err)
		}
	}
	return nil
}
