// Package fdt reads Flattened Device Tree blobs in place.
//
// A Tree wraps the caller's buffer without copying it. Everything else is a
// walk over the structure block: Walk decodes one token at a time and hands
// each one to whichever hooks the visitor implements.
//
// # Byte order
//
// Blobs are big-endian on the wire. Fixup rewrites the header, every token
// and every property header to host order in one pass so later walks decode
// native integers; Restore undoes it. The Tree tracks which order it is in,
// so a second Fixup is refused instead of scrambling the blob.
//
// # Visitors
//
// Hooks are small interfaces (Beginner, TokenVisitor, PropertyVisitor and so
// on). A visitor implements only the ones it needs:
//
//	type nodeCounter struct{ n int }
//
//	func (c *nodeCounter) VisitBeginNode(*fdt.Tree, int, string) { c.n++ }
//
//	var c nodeCounter
//	stop, err := tree.Walk(&c)
//
// Funcs adapts closures plus a context value when a named type is overkill.
//
// # Termination
//
// A walk stops on FDT_END, on an unknown token, or when the cursor reaches
// the end of the structure block. All three are normal outcomes reported in
// Stop. A record that runs off the block is an error.
package fdt
