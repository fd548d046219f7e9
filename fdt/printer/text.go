package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/joshuapare/dtbkit/fdt"
	"github.com/joshuapare/dtbkit/fdt/props"
)

// dumper is the text visitor. depth counts open nodes; the first write
// error is kept and every later write is skipped.
type dumper struct {
	p     *Printer
	w     io.Writer
	depth int
	err   error
}

func (d *dumper) indent(level int) string {
	if level <= 0 {
		return ""
	}
	return strings.Repeat(" ", level*d.p.opts.IndentSize)
}

func (d *dumper) line(level int, s string) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, "%s%s\n", d.indent(level), s)
}

func (d *dumper) VisitBeginNode(_ *fdt.Tree, _ int, name string) {
	if name == "" {
		name = "/"
	}
	d.line(d.depth, d.p.node.Sprint(name)+" {")
	d.depth++
}

func (d *dumper) VisitEndNode(*fdt.Tree, int) {
	d.depth--
	d.line(d.depth, "}")
}

func (d *dumper) VisitProperty(_ *fdt.Tree, _ int, p fdt.Property) {
	name := p.Name()
	v := p.Value()
	s := d.p.prop.Sprint(name)
	if len(v) > 0 {
		s += " = " + props.RenderValue(props.Classify(name), v, d.p.renderOptions())
	}
	d.line(d.depth, s)
}

func (p *Printer) printTreeText(t *fdt.Tree) error {
	d := &dumper{p: p, w: p.writer}
	if _, err := t.Walk(d); err != nil {
		return err
	}
	return d.err
}
