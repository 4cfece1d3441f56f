package syntax

// Builder assembles a Tree bottom-up while a parser runs. Nodes are opened
// and closed in a strictly nested order; Wrap lets a left-recursive
// construct adopt an already closed sibling.
type Builder struct {
	tree  *Tree
	stack []NodeID
}

// NewBuilder creates a builder for the given source text.
func NewBuilder(source string) *Builder {
	return &Builder{
		tree: &Tree{Source: source, Root: NoNode},
	}
}

func (b *Builder) top() NodeID {
	if len(b.stack) == 0 {
		return NoNode
	}
	return b.stack[len(b.stack)-1]
}

func (b *Builder) add(kind Kind, span Range, text string) NodeID {
	id := NodeID(len(b.tree.Nodes))
	parent := b.top()
	b.tree.Nodes = append(b.tree.Nodes, Node{
		Kind:   kind,
		Parent: parent,
		Span:   span,
		Text:   text,
	})
	if parent.Valid() {
		p := &b.tree.Nodes[parent]
		p.Children = append(p.Children, id)
	} else if !b.tree.Root.Valid() {
		b.tree.Root = id
	}
	return id
}

// Open starts a new node as a child of the currently open node.
func (b *Builder) Open(kind Kind, start int) NodeID {
	id := b.add(kind, Range{Start: start, End: start}, "")
	b.stack = append(b.stack, id)
	return id
}

// Close ends the innermost open node, which must be id.
func (b *Builder) Close(id NodeID, end int) {
	if b.top() != id {
		panic("syntax: unbalanced Close")
	}
	b.stack = b.stack[:len(b.stack)-1]
	n := &b.tree.Nodes[id]
	if end < n.Span.Start {
		end = n.Span.Start
	}
	// an empty child opened past trailing whitespace still has to be covered
	if k := len(n.Children); k > 0 {
		if last := b.tree.Nodes[n.Children[k-1]].Span.End; end < last {
			end = last
		}
	}
	n.Span.End = end
}

// Leaf adds a closed node without children.
func (b *Builder) Leaf(kind Kind, span Range, text string) NodeID {
	return b.add(kind, span, text)
}

// Wrap opens a new node of the given kind that takes the place of child in
// its parent and adopts it as first child. The new node is left open.
func (b *Builder) Wrap(kind Kind, child NodeID) NodeID {
	c := &b.tree.Nodes[child]
	parent := c.Parent
	id := NodeID(len(b.tree.Nodes))
	b.tree.Nodes = append(b.tree.Nodes, Node{
		Kind:     kind,
		Parent:   parent,
		Span:     Range{Start: b.tree.Nodes[child].Span.Start, End: b.tree.Nodes[child].Span.End},
		Children: []NodeID{child},
	})
	b.tree.Nodes[child].Parent = id
	if parent.Valid() {
		p := &b.tree.Nodes[parent]
		for i, sib := range p.Children {
			if sib == child {
				p.Children[i] = id
			}
		}
	} else if b.tree.Root == child {
		b.tree.Root = id
	}
	b.stack = append(b.stack, id)
	return id
}

// SetText records text on a node.
func (b *Builder) SetText(id NodeID, text string) {
	b.tree.Nodes[id].Text = text
}

// AddFlags sets flag bits on a node.
func (b *Builder) AddFlags(id NodeID, flags Flags) {
	b.tree.Nodes[id].Flags |= flags
}

// Kind returns the kind of an already created node.
func (b *Builder) Kind(id NodeID) Kind {
	return b.tree.Nodes[id].Kind
}

// End returns the end offset of an already closed node.
func (b *Builder) End(id NodeID) int {
	return b.tree.Nodes[id].Span.End
}

// Finish closes any nodes left open at the given offset and returns the
// tree.
func (b *Builder) Finish(end int, tokens []Token) *Tree {
	for len(b.stack) > 0 {
		b.Close(b.top(), end)
	}
	b.tree.Tokens = tokens
	return b.tree
}
