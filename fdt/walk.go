package fdt

import (
	"fmt"

	"github.com/apex/log"

	"github.com/joshuapare/dtbkit/internal/buf"
	"github.com/joshuapare/dtbkit/internal/format"
)

// Visitor is any value passed to Walk. Its capabilities are discovered by
// type assertion against the hook interfaces below; a hook it does not
// implement is simply skipped.
type Visitor = any

// Beginner runs once before the header is read.
type Beginner interface {
	Begin(t *Tree)
}

// Ender runs once when the walk returns, whatever the outcome.
type Ender interface {
	End(t *Tree)
}

// TokenVisitor runs at every token position before its tag is decoded.
type TokenVisitor interface {
	VisitToken(t *Tree, pos int)
}

// BeginNodeVisitor runs for FDT_BEGIN_NODE. The root node has an empty name.
type BeginNodeVisitor interface {
	VisitBeginNode(t *Tree, pos int, name string)
}

// EndNodeVisitor runs for FDT_END_NODE.
type EndNodeVisitor interface {
	VisitEndNode(t *Tree, pos int)
}

// NopVisitor runs for FDT_NOP.
type NopVisitor interface {
	VisitNop(t *Tree, pos int)
}

// PropertyVisitor runs for FDT_PROP. The engine re-reads the value length
// after the hook returns, so a hook may convert the record in place.
type PropertyVisitor interface {
	VisitProperty(t *Tree, pos int, p Property)
}

type hooks struct {
	begin     Beginner
	end       Ender
	token     TokenVisitor
	beginNode BeginNodeVisitor
	endNode   EndNodeVisitor
	nop       NopVisitor
	prop      PropertyVisitor
}

func resolveHooks(v Visitor) hooks {
	var h hooks
	if v == nil {
		return h
	}
	h.begin, _ = v.(Beginner)
	h.end, _ = v.(Ender)
	h.token, _ = v.(TokenVisitor)
	h.beginNode, _ = v.(BeginNodeVisitor)
	h.endNode, _ = v.(EndNodeVisitor)
	h.nop, _ = v.(NopVisitor)
	h.prop, _ = v.(PropertyVisitor)
	return h
}

// StopReason says why a walk ended.
type StopReason uint8

const (
	// StopNone means the walk ended before reading any token: the tree was
	// torn or its header or structure block could not be used. Walk returns
	// a non-nil error alongside it.
	StopNone StopReason = iota
	// StopEnd means FDT_END was reached.
	StopEnd
	// StopUnknownToken means an undefined tag was read.
	StopUnknownToken
	// StopExhausted means the cursor reached the end of the structure block
	// without seeing FDT_END.
	StopExhausted
	// StopOverrun means a record ran past the structure block. Walk returns
	// a non-nil error alongside it.
	StopOverrun
)

// String returns a short name for the reason.
func (r StopReason) String() string {
	switch r {
	case StopNone:
		return "none"
	case StopEnd:
		return "end"
	case StopUnknownToken:
		return "unknown-token"
	case StopExhausted:
		return "exhausted"
	case StopOverrun:
		return "overrun"
	default:
		return fmt.Sprintf("stop(%d)", uint8(r))
	}
}

// Stop describes where and why a walk ended.
type Stop struct {
	Reason StopReason
	// Offset is the buffer position of the last token read, or of the
	// cursor when the block was exhausted.
	Offset int
	// Token is the last tag read; zero when none was.
	Token format.Token
}

// Walk visits the structure block token by token, invoking whichever hooks
// v implements. Unknown tokens end the walk without error; records that run
// past the block end it with format.ErrTruncated or format.ErrUnterminated.
// A walk that fails before its first token reports StopNone. VisitToken only
// runs for a token that lies wholly inside the structure block.
//
// Hooks may rewrite the buffer. The byte order used for decoding is taken
// after Begin returns, which is how Fixup converts a blob while walking it.
func (t *Tree) Walk(v Visitor) (Stop, error) {
	if t.order == OrderTorn {
		return Stop{}, ErrTornOrder
	}
	h := resolveHooks(v)
	if h.begin != nil {
		h.begin.Begin(t)
	}
	if h.end != nil {
		defer h.end.End(t)
	}

	hdr, err := t.Header()
	if err != nil {
		return Stop{}, err
	}
	start, end := hdr.StructBlock()
	if start < format.HeaderSize || end < start || end > len(t.data) {
		return Stop{}, fmt.Errorf("fdt: structure block [%#x, %#x) outside %d-byte blob: %w",
			start, end, len(t.data), format.ErrTruncated)
	}

	order := t.order.byteOrder()
	logger := t.log
	pos := start
	var stop Stop

	for pos < end {
		if !buf.Has(t.data[:end], pos, format.TokenSize) {
			return Stop{Reason: StopOverrun, Offset: pos, Token: stop.Token},
				fmt.Errorf("fdt: token at %#x: %w", pos, format.ErrTruncated)
		}
		if h.token != nil {
			h.token.VisitToken(t, pos)
		}
		tok := format.Token(buf.U32(t.data[pos:], order))
		stop = Stop{Offset: pos, Token: tok}
		logger.WithFields(log.Fields{"offset": pos, "token": tok.String()}).Debug("fdt: token")

		if !tok.Known() {
			stop.Reason = StopUnknownToken
			return stop, nil
		}

		switch tok {
		case format.TokenBeginNode:
			nameAt := pos + format.TokenSize
			name, ok := buf.CString(t.data[:end], nameAt)
			if !ok {
				stop.Reason = StopOverrun
				return stop, fmt.Errorf("fdt: node name at %#x: %w", nameAt, format.ErrUnterminated)
			}
			if h.beginNode != nil {
				h.beginNode.VisitBeginNode(t, pos, name)
			}
			pos = format.Advance(nameAt, len(name)+1)

		case format.TokenEndNode:
			if h.endNode != nil {
				h.endNode.VisitEndNode(t, pos)
			}
			pos += format.TokenSize

		case format.TokenProp:
			recAt := pos + format.TokenSize
			if !buf.Has(t.data[:end], recAt, format.PropHeaderSize) {
				stop.Reason = StopOverrun
				return stop, fmt.Errorf("fdt: property header at %#x: %w", recAt, format.ErrTruncated)
			}
			p := Property{t: t, off: recAt, limit: end}
			if h.prop != nil {
				h.prop.VisitProperty(t, pos, p)
			}
			n := int(p.Len())
			next, ok := buf.AddOverflowSafe(recAt+format.PropHeaderSize, n)
			if !ok || n < 0 || next > end {
				stop.Reason = StopOverrun
				return stop, fmt.Errorf("fdt: property value at %#x (%d bytes): %w",
					recAt+format.PropHeaderSize, n, format.ErrTruncated)
			}
			pos = format.Align4(next)

		case format.TokenNop:
			if h.nop != nil {
				h.nop.VisitNop(t, pos)
			}
			pos += format.TokenSize

		case format.TokenEnd:
			stop.Reason = StopEnd
			return stop, nil
		}
	}

	return Stop{Reason: StopExhausted, Offset: pos, Token: stop.Token}, nil
}

// Funcs adapts plain functions to the hook interfaces. Ctx is handed to every
// function, so a walk can accumulate into a caller-owned value without a
// dedicated visitor type. Nil fields are skipped.
//
// Example:
//
//	var names []string
//	w := &fdt.Funcs[*[]string]{
//	    Ctx: &names,
//	    OnBeginNode: func(names *[]string, _ *fdt.Tree, _ int, name string) {
//	        *names = append(*names, name)
//	    },
//	}
//	_, err := tree.Walk(w)
type Funcs[C any] struct {
	Ctx         C
	OnBegin     func(ctx C, t *Tree)
	OnEnd       func(ctx C, t *Tree)
	OnToken     func(ctx C, t *Tree, pos int)
	OnBeginNode func(ctx C, t *Tree, pos int, name string)
	OnEndNode   func(ctx C, t *Tree, pos int)
	OnNop       func(ctx C, t *Tree, pos int)
	OnProperty  func(ctx C, t *Tree, pos int, p Property)
}

func (f *Funcs[C]) Begin(t *Tree) {
	if f.OnBegin != nil {
		f.OnBegin(f.Ctx, t)
	}
}

func (f *Funcs[C]) End(t *Tree) {
	if f.OnEnd != nil {
		f.OnEnd(f.Ctx, t)
	}
}

func (f *Funcs[C]) VisitToken(t *Tree, pos int) {
	if f.OnToken != nil {
		f.OnToken(f.Ctx, t, pos)
	}
}

func (f *Funcs[C]) VisitBeginNode(t *Tree, pos int, name string) {
	if f.OnBeginNode != nil {
		f.OnBeginNode(f.Ctx, t, pos, name)
	}
}

func (f *Funcs[C]) VisitEndNode(t *Tree, pos int) {
	if f.OnEndNode != nil {
		f.OnEndNode(f.Ctx, t, pos)
	}
}

func (f *Funcs[C]) VisitNop(t *Tree, pos int) {
	if f.OnNop != nil {
		f.OnNop(f.Ctx, t, pos)
	}
}

func (f *Funcs[C]) VisitProperty(t *Tree, pos int, p Property) {
	if f.OnProperty != nil {
		f.OnProperty(f.Ctx, t, pos, p)
	}
}
