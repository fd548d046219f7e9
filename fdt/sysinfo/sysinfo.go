// Package sysinfo pulls the handful of board facts a kernel needs early out
// of a device tree: where RAM is, what the board calls itself, and where the
// console lives.
package sysinfo

import (
	"errors"
	"strings"

	"github.com/joshuapare/dtbkit/fdt"
	"github.com/joshuapare/dtbkit/fdt/props"
	"github.com/joshuapare/dtbkit/internal/buf"
)

// Default cell counts when the root node does not set them.
const (
	DefaultAddressCells = 2
	DefaultSizeCells    = 2
)

// Region is one physical address range.
type Region struct {
	Base uint64 `json:"base" yaml:"base"`
	Size uint64 `json:"size" yaml:"size"`
}

// Info is the extractor's result.
type Info struct {
	// RAMBase and RAMSize describe the first memory bank found.
	RAMBase uint64 `json:"ram_base" yaml:"ram_base"`
	RAMSize uint64 `json:"ram_size" yaml:"ram_size"`

	Banks      []Region `json:"banks,omitempty" yaml:"banks,omitempty"`
	Model      string   `json:"model,omitempty" yaml:"model,omitempty"`
	Compatible []string `json:"compatible,omitempty" yaml:"compatible,omitempty"`
	StdoutPath string   `json:"stdout_path,omitempty" yaml:"stdout_path,omitempty"`
	BootCPU    uint32   `json:"boot_cpu" yaml:"boot_cpu"`
}

// TotalRAM sums the size of every bank.
func (i *Info) TotalRAM() uint64 {
	var n uint64
	for _, b := range i.Banks {
		n += b.Size
	}
	return n
}

type extractor struct {
	info *Info

	depth     int
	inMemory  bool
	memDepth  int
	inChosen  bool
	addrCells int
	sizeCells int
}

func (e *extractor) Begin(t *fdt.Tree) {
	if hdr, err := t.Header(); err == nil {
		e.info.BootCPU = hdr.BootCPUIDPhys
	}
}

func (e *extractor) VisitBeginNode(_ *fdt.Tree, _ int, name string) {
	e.depth++
	if strings.Contains(name, "memory") {
		e.inMemory = true
		e.memDepth = e.depth
	}
	if e.depth == 2 && name == "chosen" {
		e.inChosen = true
	}
}

func (e *extractor) VisitEndNode(*fdt.Tree, int) {
	e.depth--
	e.inMemory = false
	e.inChosen = false
}

func (e *extractor) VisitProperty(_ *fdt.Tree, _ int, p fdt.Property) {
	name := p.Name()
	v := p.Value()

	switch {
	case e.depth == 1:
		e.rootProperty(name, v)
	case e.inChosen && e.depth == 2 && name == "stdout-path":
		e.info.StdoutPath = props.DecodeString(v)
	case e.inMemory && e.depth == e.memDepth && name == "reg" && len(v) > 0:
		e.reg(v)
	}
}

func (e *extractor) rootProperty(name string, v []byte) {
	switch name {
	case "#address-cells":
		if n, err := props.DecodeU32(v); err == nil && n >= 0 {
			e.addrCells = int(n)
		}
	case "#size-cells":
		if n, err := props.DecodeU32(v); err == nil && n >= 0 {
			e.sizeCells = int(n)
		}
	case "model":
		e.info.Model = props.DecodeString(v)
	case "compatible":
		e.info.Compatible = props.DecodeStringList(v)
	}
}

// reg decodes every complete (address, size) tuple. The first one becomes
// RAMBase and RAMSize.
func (e *extractor) reg(v []byte) {
	stride := (e.addrCells + e.sizeCells) * 4
	if stride == 0 {
		return
	}
	for off := 0; off+stride <= len(v); off += stride {
		r := Region{
			Base: cells(v[off:], e.addrCells),
			Size: cells(v[off+e.addrCells*4:], e.sizeCells),
		}
		if len(e.info.Banks) == 0 {
			e.info.RAMBase = r.Base
			e.info.RAMSize = r.Size
		}
		e.info.Banks = append(e.info.Banks, r)
	}
}

// cells reads n big-endian cells as one number, keeping the low 64 bits.
func cells(b []byte, n int) uint64 {
	var v uint64
	for i := 0; i < n; i++ {
		v = v<<32 | uint64(buf.U32BE(b[i*4:]))
	}
	return v
}

// Fetch walks t and fills info, which is reset first. Property values are
// decoded into info, never converted in place, so Fetch can run any number
// of times on the same tree in either byte order.
func Fetch(t *fdt.Tree, info *Info) (fdt.Stop, error) {
	if info == nil {
		return fdt.Stop{}, errors.New("sysinfo: nil Info")
	}
	*info = Info{}
	e := &extractor{
		info:      info,
		addrCells: DefaultAddressCells,
		sizeCells: DefaultSizeCells,
	}
	return t.Walk(e)
}
