package walker

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/joshuapare/dtbkit/fdt"
	"github.com/joshuapare/dtbkit/fdt/props"
)

// Stats contains statistics about a structure block.
type Stats struct {
	Tokens     uint64 `json:"tokens" yaml:"tokens"`
	Nodes      uint64 `json:"nodes" yaml:"nodes"`
	Properties uint64 `json:"properties" yaml:"properties"`
	Nops       uint64 `json:"nops" yaml:"nops"`
	MaxDepth   int    `json:"max_depth" yaml:"max_depth"`

	// ValueBytes is the sum of every property length.
	ValueBytes uint64 `json:"value_bytes" yaml:"value_bytes"`

	// ByKind counts properties by their classified kind.
	ByKind map[string]uint64 `json:"by_kind" yaml:"by_kind"`

	// Stop is how the walk ended.
	Stop string `json:"stop" yaml:"stop"`
}

// String renders the stats as aligned lines.
func (s *Stats) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Tokens:      %s\n", humanize.Comma(int64(s.Tokens)))
	fmt.Fprintf(&sb, "Nodes:       %s\n", humanize.Comma(int64(s.Nodes)))
	fmt.Fprintf(&sb, "Properties:  %s\n", humanize.Comma(int64(s.Properties)))
	fmt.Fprintf(&sb, "NOPs:        %s\n", humanize.Comma(int64(s.Nops)))
	fmt.Fprintf(&sb, "Max depth:   %d\n", s.MaxDepth)
	fmt.Fprintf(&sb, "Value bytes: %s\n", humanize.IBytes(s.ValueBytes))
	for _, k := range []props.Kind{props.KindU32, props.KindString, props.KindStringList, props.KindOpaque} {
		fmt.Fprintf(&sb, "  %-10s %s\n", k.String()+":", humanize.Comma(int64(s.ByKind[k.String()])))
	}
	fmt.Fprintf(&sb, "Stop:        %s\n", s.Stop)
	return sb.String()
}

// counter tallies tokens as they are visited.
type counter struct {
	stats Stats
	depth int
}

func (c *counter) VisitToken(*fdt.Tree, int) {
	c.stats.Tokens++
}

func (c *counter) VisitBeginNode(*fdt.Tree, int, string) {
	c.stats.Nodes++
	c.depth++
	if c.depth > c.stats.MaxDepth {
		c.stats.MaxDepth = c.depth
	}
}

func (c *counter) VisitEndNode(*fdt.Tree, int) {
	c.depth--
}

func (c *counter) VisitNop(*fdt.Tree, int) {
	c.stats.Nops++
}

func (c *counter) VisitProperty(_ *fdt.Tree, _ int, p fdt.Property) {
	c.stats.Properties++
	c.stats.ValueBytes += uint64(p.Len())
	c.stats.ByKind[props.Classify(p.Name()).String()]++
}

// Count traverses the structure block and returns statistics about it.
//
// Example:
//
//	stats, err := walker.Count(tree)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("Nodes: %d\n", stats.Nodes)
func Count(t *fdt.Tree) (*Stats, error) {
	c := &counter{stats: Stats{ByKind: make(map[string]uint64)}}
	stop, err := t.Walk(c)
	if err != nil {
		return nil, err
	}
	c.stats.Stop = stop.Reason.String()
	return &c.stats, nil
}
