package walker

import (
	"errors"
	"fmt"

	"github.com/joshuapare/dtbkit/fdt"
	"github.com/joshuapare/dtbkit/internal/format"
)

// Issue is one structural problem.
type Issue struct {
	// Offset is the buffer position the issue was found at, or -1 for
	// header-level issues.
	Offset  int    `json:"offset" yaml:"offset"`
	Message string `json:"message" yaml:"message"`
}

func (i Issue) Error() string {
	if i.Offset < 0 {
		return i.Message
	}
	return fmt.Sprintf("0x%x: %s", i.Offset, i.Message)
}

// Report collects the result of Validate.
type Report struct {
	Issues []Issue `json:"issues" yaml:"issues"`
	Stop   string  `json:"stop" yaml:"stop"`
}

// OK reports whether no issues were found.
func (r *Report) OK() bool {
	return len(r.Issues) == 0
}

// Err joins every issue into one error, or returns nil.
func (r *Report) Err() error {
	if r.OK() {
		return nil
	}
	errs := make([]error, len(r.Issues))
	for i, issue := range r.Issues {
		errs[i] = issue
	}
	return errors.Join(errs...)
}

func (r *Report) add(off int, msg string, args ...any) {
	r.Issues = append(r.Issues, Issue{Offset: off, Message: fmt.Sprintf(msg, args...)})
}

// checker validates nesting and property names during the walk.
type checker struct {
	r     *Report
	depth int
}

func (c *checker) VisitBeginNode(_ *fdt.Tree, pos int, name string) {
	if c.depth == 0 && name != "" {
		c.r.add(pos, "top-level node %q is not the root", name)
	}
	c.depth++
}

func (c *checker) VisitEndNode(_ *fdt.Tree, pos int) {
	if c.depth == 0 {
		c.r.add(pos, "FDT_END_NODE without matching FDT_BEGIN_NODE")
		return
	}
	c.depth--
}

func (c *checker) VisitProperty(t *fdt.Tree, pos int, p fdt.Property) {
	if c.depth == 0 {
		c.r.add(pos, "property outside any node")
	}
	if _, err := t.StringAt(p.NameOffset()); err != nil {
		c.r.add(pos, "property name: %v", err)
	}
}

// Validate checks the header and walks the structure block, collecting every
// problem into the returned report. The error is non-nil only when the tree
// cannot be read at all.
//
// Checks:
//   - magic, version and last compatible version
//   - every block lies inside totalsize
//   - reservation map 8-byte aligned, structure block 4-byte aligned
//   - nodes balance and the stream ends with FDT_END
//   - property names resolve inside the strings block
//   - property values stay inside the structure block
func Validate(t *fdt.Tree) (*Report, error) {
	hdr, err := t.Header()
	if err != nil {
		return nil, err
	}
	r := &Report{Issues: []Issue{}}

	if hdr.Version < format.LastCompatibleVersion {
		r.add(-1, "version %d older than %d", hdr.Version, format.LastCompatibleVersion)
	}
	if hdr.LastCompVersion > format.Version {
		r.add(-1, "last compatible version %d newer than supported %d", hdr.LastCompVersion, format.Version)
	}

	total := uint64(hdr.TotalSize)
	if uint64(hdr.OffDTStruct)+uint64(hdr.SizeDTStruct) > total {
		r.add(-1, "structure block [0x%x, +0x%x) exceeds totalsize 0x%x", hdr.OffDTStruct, hdr.SizeDTStruct, total)
	}
	if uint64(hdr.OffDTStrings)+uint64(hdr.SizeDTStrings) > total {
		r.add(-1, "strings block [0x%x, +0x%x) exceeds totalsize 0x%x", hdr.OffDTStrings, hdr.SizeDTStrings, total)
	}
	if uint64(hdr.OffMemRsvmap)+format.ReserveEntrySize > total {
		r.add(-1, "reservation map at 0x%x exceeds totalsize 0x%x", hdr.OffMemRsvmap, total)
	}
	if !format.IsAligned(int(hdr.OffMemRsvmap), format.ReserveMapAlignment) {
		r.add(-1, "reservation map offset 0x%x not %d-byte aligned", hdr.OffMemRsvmap, format.ReserveMapAlignment)
	}
	if !format.IsAligned(int(hdr.OffDTStruct), format.TokenAlignment) {
		r.add(-1, "structure block offset 0x%x not %d-byte aligned", hdr.OffDTStruct, format.TokenAlignment)
	}

	if _, err := t.Reservations(nil); err != nil {
		r.add(int(hdr.OffMemRsvmap), "reservation map: %v", err)
	}

	c := &checker{r: r}
	stop, err := t.Walk(c)
	r.Stop = stop.Reason.String()
	switch {
	case err != nil:
		r.add(stop.Offset, "%v", err)
	case stop.Reason == fdt.StopUnknownToken:
		r.add(stop.Offset, "unknown token 0x%08x", uint32(stop.Token))
	case stop.Reason == fdt.StopExhausted:
		r.add(stop.Offset, "structure block ends without FDT_END")
	case c.depth != 0:
		r.add(stop.Offset, "FDT_END with %d node(s) still open", c.depth)
	}
	return r, nil
}
