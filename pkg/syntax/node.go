package syntax

import "fmt"

// NodeID is the arena index of a node within its tree.
type NodeID int32

// NoNode is the zero value for absent node references.
const NoNode NodeID = -1

// Valid reports whether the id refers to a node.
func (id NodeID) Valid() bool {
	return id >= 0
}

// Range is a byte range [Start, End) in the source text.
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes covered.
func (r Range) Len() int {
	return r.End - r.Start
}

// ContainsOffset reports whether the offset lies within the range. The end
// is inclusive so that a cursor placed right after an identifier is
// considered to be on it.
func (r Range) ContainsOffset(offset int) bool {
	return r.Start <= offset && offset <= r.End
}

// Covers reports whether other lies entirely within r.
func (r Range) Covers(other Range) bool {
	return r.Start <= other.Start && other.End <= r.End
}

// String implements fmt.Stringer
func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Flags carries modifier and marker bits parsed from declarations.
type Flags uint8

const (
	FlagVararg Flags = 1 << iota
	FlagDefault
	FlagStatic
	FlagGlobal
	FlagVal
	FlagVar
)

// Has reports whether all bits of f2 are set.
func (f Flags) Has(f2 Flags) bool {
	return f&f2 == f2
}

// Node is a syntax tree node stored in a Tree arena.
type Node struct {
	// Kind is the node type tag.
	Kind Kind
	// Parent is the enclosing node, NoNode for the root.
	Parent NodeID
	// Children lists the child nodes in source order.
	Children []NodeID
	// Span is the source range of the node.
	Span Range
	// Text is the source text for names, literals, primitive types and
	// operator symbols; empty otherwise.
	Text string
	// Flags holds modifier bits for declarations.
	Flags Flags
}
