package syntax

import (
	"fmt"
	"sort"
	"strings"
)

// Tree is an arena of syntax nodes for one source file. Node identity is the
// NodeID index, which is stable for the lifetime of the tree.
type Tree struct {
	// Source is the text the tree was parsed from.
	Source string
	// Nodes is the node arena, indexed by NodeID.
	Nodes []Node
	// Root is the script file node.
	Root NodeID
	// Tokens is the token stream, including comments and preprocessor lines.
	Tokens []Token
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.Nodes)
}

// Valid reports whether id is a node of this tree.
func (t *Tree) Valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.Nodes)
}

// Node returns the node for the given id.
func (t *Tree) Node(id NodeID) *Node {
	return &t.Nodes[id]
}

// Kind returns the kind of the node, or KindError for an invalid id.
func (t *Tree) Kind(id NodeID) Kind {
	if !t.Valid(id) {
		return KindError
	}
	return t.Nodes[id].Kind
}

// Parent returns the parent of the node, or NoNode.
func (t *Tree) Parent(id NodeID) NodeID {
	if !t.Valid(id) {
		return NoNode
	}
	return t.Nodes[id].Parent
}

// Children returns the child nodes in source order.
func (t *Tree) Children(id NodeID) []NodeID {
	if !t.Valid(id) {
		return nil
	}
	return t.Nodes[id].Children
}

// Span returns the source range of the node.
func (t *Tree) Span(id NodeID) Range {
	if !t.Valid(id) {
		return Range{}
	}
	return t.Nodes[id].Span
}

// Text returns the recorded text of the node, falling back to the source
// text it covers.
func (t *Tree) Text(id NodeID) string {
	if !t.Valid(id) {
		return ""
	}
	n := &t.Nodes[id]
	if n.Text != "" {
		return n.Text
	}
	if n.Span.Start < 0 || n.Span.End > len(t.Source) || n.Span.Start > n.Span.End {
		return ""
	}
	return t.Source[n.Span.Start:n.Span.End]
}

// Child returns the first direct child of the given kind, or NoNode.
func (t *Tree) Child(id NodeID, kind Kind) NodeID {
	for _, c := range t.Children(id) {
		if t.Nodes[c].Kind == kind {
			return c
		}
	}
	return NoNode
}

// ChildrenOf returns the direct children of the given kind.
func (t *Tree) ChildrenOf(id NodeID, kind Kind) []NodeID {
	var out []NodeID
	for _, c := range t.Children(id) {
		if t.Nodes[c].Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// TypeChild returns the first direct child that is a type annotation.
func (t *Tree) TypeChild(id NodeID) NodeID {
	for _, c := range t.Children(id) {
		if t.Nodes[c].Kind.IsType() {
			return c
		}
	}
	return NoNode
}

// NameNode returns the simple name node that names a declaration. For
// imports this is the alias when present.
func (t *Tree) NameNode(id NodeID) NodeID {
	switch t.Kind(id) {
	case KindSimpleName:
		return id
	case KindImportDeclaration:
		if alias := t.Child(id, KindSimpleName); alias.Valid() {
			return alias
		}
		segments := t.ChildrenOf(t.Child(id, KindQualifiedName), KindSimpleName)
		if len(segments) == 0 {
			return NoNode
		}
		return segments[len(segments)-1]
	case KindSimpleNameExpr, KindMemberAccessExpr:
		names := t.ChildrenOf(id, KindSimpleName)
		if len(names) == 0 {
			return NoNode
		}
		return names[len(names)-1]
	}
	return t.Child(id, KindSimpleName)
}

// Name returns the declared name of a declaration node, the empty string
// when the parser recovered without one.
func (t *Tree) Name(id NodeID) string {
	switch t.Kind(id) {
	case KindOperatorFunctionDeclaration:
		return t.Nodes[id].Text
	}
	return t.Text(t.NameNode(id))
}

// QualifiedText joins the segments of a qualified name with dots.
func (t *Tree) QualifiedText(id NodeID) string {
	if t.Kind(id) == KindSimpleName {
		return t.Text(id)
	}
	segments := t.ChildrenOf(id, KindSimpleName)
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		parts = append(parts, t.Text(s))
	}
	return strings.Join(parts, ".")
}

// Supertypes returns the text of a class declaration's supertype list.
func (t *Tree) Supertypes(id NodeID) []string {
	var out []string
	for _, qn := range t.ChildrenOf(id, KindQualifiedName) {
		if text := t.QualifiedText(qn); text != "" {
			out = append(out, text)
		}
	}
	return out
}

// IsAncestor reports whether anc is id or one of its ancestors.
func (t *Tree) IsAncestor(anc, id NodeID) bool {
	for cur := id; cur.Valid(); cur = t.Parent(cur) {
		if cur == anc {
			return true
		}
	}
	return false
}

// Enclosing returns the nearest ancestor of id (id included) of one of the
// given kinds.
func (t *Tree) Enclosing(id NodeID, kinds ...Kind) NodeID {
	for cur := id; cur.Valid(); cur = t.Parent(cur) {
		k := t.Nodes[cur].Kind
		for _, want := range kinds {
			if k == want {
				return cur
			}
		}
	}
	return NoNode
}

// NodeAt returns the deepest node covering the offset. A node that starts
// at the offset is preferred over one that merely ends there.
func (t *Tree) NodeAt(offset int) NodeID {
	if !t.Valid(t.Root) || !t.Nodes[t.Root].Span.ContainsOffset(offset) {
		return NoNode
	}
	cur := t.Root
	for {
		next := NoNode
		for _, c := range t.Nodes[cur].Children {
			span := t.Nodes[c].Span
			if span.Start <= offset && offset < span.End {
				next = c
				break
			}
			if span.End == offset && span.Start <= offset {
				next = c
			}
		}
		if next == NoNode {
			return cur
		}
		cur = next
	}
}

// NextToken returns the first token starting at or after offset, skipping
// comments and preprocessor lines. It reports false at the end of input.
func (t *Tree) NextToken(offset int) (Token, bool) {
	i := sort.Search(len(t.Tokens), func(i int) bool {
		return t.Tokens[i].Span.Start >= offset
	})
	for ; i < len(t.Tokens); i++ {
		switch tok := t.Tokens[i]; tok.Kind {
		case TokenComment, TokenPreprocessor:
			continue
		case TokenEOF:
			return Token{}, false
		default:
			return tok, true
		}
	}
	return Token{}, false
}

// Validate checks the structural invariants of the arena: every child
// points back at its parent and lies within the parent's range.
func (t *Tree) Validate() error {
	for i := range t.Nodes {
		id := NodeID(i)
		n := &t.Nodes[i]
		if n.Span.Start > n.Span.End {
			return fmt.Errorf("node %d (%s): inverted range %s", id, n.Kind, n.Span)
		}
		for _, c := range n.Children {
			if !t.Valid(c) {
				return fmt.Errorf("node %d (%s): invalid child %d", id, n.Kind, c)
			}
			child := &t.Nodes[c]
			if child.Parent != id {
				return fmt.Errorf("node %d (%s): child %d has parent %d", id, n.Kind, c, child.Parent)
			}
			if !n.Span.Covers(child.Span) {
				return fmt.Errorf("node %d (%s) %s does not cover child %d (%s) %s", id, n.Kind, n.Span, c, child.Kind, child.Span)
			}
		}
	}
	return nil
}

// Dump renders the tree as an indented outline, useful in tests.
func (t *Tree) Dump() string {
	var buf strings.Builder
	var dump func(id NodeID, depth int)
	dump = func(id NodeID, depth int) {
		n := &t.Nodes[id]
		buf.WriteString(strings.Repeat("  ", depth))
		buf.WriteString(n.Kind.String())
		if n.Text != "" {
			fmt.Fprintf(&buf, " %q", n.Text)
		}
		fmt.Fprintf(&buf, " %s\n", n.Span)
		for _, c := range n.Children {
			dump(c, depth+1)
		}
	}
	if t.Valid(t.Root) {
		dump(t.Root, 0)
	}
	return buf.String()
}
