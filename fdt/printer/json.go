package printer

import (
	"encoding/json"
	"io"

	"github.com/joshuapare/dtbkit/fdt"
	"github.com/joshuapare/dtbkit/fdt/props"
)

// jsonNode represents a device tree node in JSON format.
type jsonNode struct {
	Name       string      `json:"name"`
	Properties []jsonProp  `json:"properties,omitempty"`
	Children   []*jsonNode `json:"children,omitempty"`
}

// jsonProp represents a property in JSON format. Flag properties have no value.
type jsonProp struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Value any    `json:"value,omitempty"`
}

// treeBuilder collects nodes into a tree. Properties outside any node are
// attached to a synthetic root so they are not lost.
type treeBuilder struct {
	opts  props.Options
	roots []*jsonNode
	stack []*jsonNode
}

func (b *treeBuilder) VisitBeginNode(_ *fdt.Tree, _ int, name string) {
	if name == "" {
		name = "/"
	}
	n := &jsonNode{Name: name}
	if len(b.stack) == 0 {
		b.roots = append(b.roots, n)
	} else {
		top := b.stack[len(b.stack)-1]
		top.Children = append(top.Children, n)
	}
	b.stack = append(b.stack, n)
}

func (b *treeBuilder) VisitEndNode(*fdt.Tree, int) {
	if len(b.stack) > 0 {
		b.stack = b.stack[:len(b.stack)-1]
	}
}

func (b *treeBuilder) VisitProperty(_ *fdt.Tree, _ int, p fdt.Property) {
	if len(b.stack) == 0 {
		n := &jsonNode{}
		b.roots = append(b.roots, n)
		b.stack = append(b.stack, n)
	}
	name := p.Name()
	kind := props.Classify(name)
	jp := jsonProp{Name: name, Kind: kind.String()}
	if v := p.Value(); len(v) > 0 {
		jp.Value = jsonValue(kind, v, b.opts)
	}
	top := b.stack[len(b.stack)-1]
	top.Properties = append(top.Properties, jp)
}

func jsonValue(k props.Kind, v []byte, opts props.Options) any {
	switch k {
	case props.KindU32:
		if n, err := props.DecodeU32(v); err == nil {
			return n
		}
	case props.KindString:
		return props.DecodeString(v)
	case props.KindStringList:
		return props.DecodeStringList(v)
	}
	return props.FormatHex(v, opts.MaxBytes)
}

func (p *Printer) printTreeJSON(t *fdt.Tree) error {
	b := &treeBuilder{opts: p.renderOptions()}
	if _, err := t.Walk(b); err != nil {
		return err
	}
	if len(b.roots) == 1 {
		return writeJSON(p.writer, b.roots[0])
	}
	return writeJSON(p.writer, b.roots)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
