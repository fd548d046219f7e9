package dtb

import (
	"fmt"
	"os"

	"github.com/joshuapare/dtbkit/fdt"
	"github.com/joshuapare/dtbkit/fdt/sysinfo"
	"github.com/joshuapare/dtbkit/fdt/walker"
	"github.com/joshuapare/dtbkit/internal/format"
)

// Reservation is one memory reservation map entry.
type Reservation = format.ReserveEntry

// Header mirrors the blob header.
type Header = format.Header

// Info summarises a blob's header and reservation map.
type Info struct {
	Header       Header        `json:"header" yaml:"header"`
	Order        string        `json:"order" yaml:"order"`
	Reservations []Reservation `json:"reservations" yaml:"reservations"`
}

// HeaderInfo reads the header and reservation map of t.
//
// Example:
//
//	info, err := dtb.HeaderInfo(t)
//	fmt.Printf("version %d, %d bytes\n", info.Header.Version, info.Header.TotalSize)
func HeaderInfo(t *fdt.Tree) (*Info, error) {
	hdr, err := t.Header()
	if err != nil {
		return nil, err
	}
	list, err := t.ReservationList()
	if err != nil {
		return nil, fmt.Errorf("failed to read reservation map: %w", err)
	}
	if list == nil {
		list = []Reservation{}
	}
	return &Info{Header: hdr, Order: t.Order().String(), Reservations: list}, nil
}

// SystemInfo extracts RAM layout, model and console path from the blob at
// path. The file is never modified.
//
// Example:
//
//	info, err := dtb.SystemInfo("board.dtb")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("RAM: 0x%x + 0x%x\n", info.RAMBase, info.RAMSize)
func SystemInfo(path string) (*sysinfo.Info, error) {
	t, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer t.Close()

	var info sysinfo.Info
	if _, err := sysinfo.Fetch(t, &info); err != nil {
		return nil, fmt.Errorf("failed to extract system info from %s: %w", path, err)
	}
	return &info, nil
}

// Stats counts the nodes, properties and tokens of the blob at path.
func Stats(path string) (*walker.Stats, error) {
	t, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer t.Close()

	stats, err := walker.Count(t)
	if err != nil {
		return nil, fmt.Errorf("failed to count %s: %w", path, err)
	}
	return stats, nil
}

// Validate checks the blob at path for structural problems. The returned
// error is non-nil when the file cannot be read or any issue was found; the
// report is returned whenever the walk ran.
//
// Example:
//
//	report, err := dtb.Validate("board.dtb")
//	if err != nil {
//	    for _, issue := range report.Issues {
//	        log.Println(issue)
//	    }
//	}
func Validate(path string) (*walker.Report, error) {
	t, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer t.Close()

	report, err := walker.Validate(t)
	if err != nil {
		return nil, fmt.Errorf("failed to validate %s: %w", path, err)
	}
	if err := report.Err(); err != nil {
		return report, fmt.Errorf("dtb validation failed: %w", err)
	}
	return report, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
