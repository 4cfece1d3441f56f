package symbol

import (
	"fmt"
	"strings"

	"github.com/warmthdawn/zenscript-intelli-sense/pkg/syntax"
)

// ScopeID is the index of a scope in its ScopeTree.
type ScopeID int32

// NoScope is the parent handle of a root scope.
const NoScope ScopeID = -1

// Scope is a lexical region and the symbols declared directly in it, in
// declaration order. Same-named symbols may coexist in one scope.
type Scope struct {
	tree    *ScopeTree
	id      ScopeID
	parent  ScopeID
	node    syntax.NodeID
	symbols []Symbol
}

// ID returns the scope handle.
func (s *Scope) ID() ScopeID {
	return s.id
}

// Node returns the syntax node that owns the scope.
func (s *Scope) Node() syntax.NodeID {
	return s.node
}

// Parent returns the enclosing scope, nil for a root scope.
func (s *Scope) Parent() *Scope {
	return s.tree.Scope(s.parent)
}

// Symbols returns the symbols declared in the scope. The slice must not be
// modified.
func (s *Scope) Symbols() []Symbol {
	return s.symbols
}

// Add appends a symbol to the scope.
func (s *Scope) Add(sym Symbol) {
	s.symbols = append(s.symbols, sym)
}

func matches(sym Symbol, name string, kinds []Kind) bool {
	if sym.Name() != name {
		return false
	}
	if len(kinds) == 0 {
		return true
	}
	for _, k := range kinds {
		if sym.Kind() == k {
			return true
		}
	}
	return false
}

// Lookup returns the first symbol named name, optionally restricted to the
// given kinds, in the nearest scope that declares one. It returns nil when
// no enclosing scope does.
func (s *Scope) Lookup(name string, kinds ...Kind) Symbol {
	for cur := s; cur != nil; cur = cur.Parent() {
		for _, sym := range cur.symbols {
			if matches(sym, name, kinds) {
				return sym
			}
		}
	}
	return nil
}

// LookupAt is Lookup for a reference at offset: within the nearest scope
// with a match, the last declaration starting at or before offset wins. When
// every match starts after offset the first one is returned.
func (s *Scope) LookupAt(name string, offset int, kinds ...Kind) Symbol {
	for cur := s; cur != nil; cur = cur.Parent() {
		var first, best Symbol
		for _, sym := range cur.symbols {
			if !matches(sym, name, kinds) {
				continue
			}
			if first == nil {
				first = sym
			}
			if sym.Range().Start <= offset {
				best = sym
			}
		}
		if best != nil {
			return best
		}
		if first != nil {
			return first
		}
	}
	return nil
}

// LookupAll returns every match in the nearest scope that has one. Callers
// use it to keep overload families together.
func (s *Scope) LookupAll(name string, kinds ...Kind) []Symbol {
	for cur := s; cur != nil; cur = cur.Parent() {
		var out []Symbol
		for _, sym := range cur.symbols {
			if matches(sym, name, kinds) {
				out = append(out, sym)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

// String implements fmt.Stringer
func (s *Scope) String() string {
	names := make([]string, len(s.symbols))
	for i, sym := range s.symbols {
		names[i] = sym.Name()
	}
	return fmt.Sprintf("scope#%d(node %d)[%s]", s.id, s.node, strings.Join(names, ", "))
}

// ScopeTree is the arena of scopes of one compilation unit. Parent links
// are handles into the arena.
type ScopeTree struct {
	scopes []*Scope
}

// NewScopeTree creates an empty tree.
func NewScopeTree() *ScopeTree {
	return &ScopeTree{}
}

// New creates a scope owned by node. A nil parent creates a root scope.
func (t *ScopeTree) New(parent *Scope, node syntax.NodeID) *Scope {
	pid := NoScope
	if parent != nil {
		pid = parent.id
	}
	s := &Scope{
		tree:   t,
		id:     ScopeID(len(t.scopes)),
		parent: pid,
		node:   node,
	}
	t.scopes = append(t.scopes, s)
	return s
}

// Scope returns the scope for the given handle, nil for NoScope.
func (t *ScopeTree) Scope(id ScopeID) *Scope {
	if t == nil || id < 0 || int(id) >= len(t.scopes) {
		return nil
	}
	return t.scopes[id]
}

// Len returns the number of scopes.
func (t *ScopeTree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.scopes)
}

// Root returns the first root scope, nil if the tree is empty.
func (t *ScopeTree) Root() *Scope {
	return t.Scope(0)
}

// Scopes returns all scopes in creation order.
func (t *ScopeTree) Scopes() []*Scope {
	if t == nil {
		return nil
	}
	return t.scopes
}

// Validate checks that scope nesting mirrors the syntax tree: each node owns
// at most one scope and every scope's node descends from its parent's node.
func (t *ScopeTree) Validate(tree *syntax.Tree) error {
	owners := make(map[syntax.NodeID]ScopeID, len(t.scopes))
	for _, s := range t.scopes {
		if prev, ok := owners[s.node]; ok {
			return fmt.Errorf("node %d owns scopes %d and %d", s.node, prev, s.id)
		}
		owners[s.node] = s.id
		parent := s.Parent()
		if parent == nil {
			continue
		}
		if parent.id >= s.id {
			return fmt.Errorf("scope %d: parent %d created after child", s.id, parent.id)
		}
		if !tree.IsAncestor(parent.node, s.node) || parent.node == s.node {
			return fmt.Errorf("scope %d (node %d) is not nested in parent scope %d (node %d)", s.id, s.node, parent.id, parent.node)
		}
	}
	return nil
}

// Named filters symbols by exact name.
func Named(symbols []Symbol, name string) []Symbol {
	var out []Symbol
	for _, sym := range symbols {
		if sym.Name() == name {
			out = append(out, sym)
		}
	}
	return out
}

// WithPrefix filters symbols whose name starts with prefix.
func WithPrefix(symbols []Symbol, prefix string) []Symbol {
	var out []Symbol
	for _, sym := range symbols {
		if strings.HasPrefix(sym.Name(), prefix) {
			out = append(out, sym)
		}
	}
	return out
}

// Filter returns the symbols for which keep returns true.
func Filter(symbols []Symbol, keep func(Symbol) bool) []Symbol {
	var out []Symbol
	for _, sym := range symbols {
		if keep(sym) {
			out = append(out, sym)
		}
	}
	return out
}

// AllFunctions reports whether symbols is a non-empty overload family.
func AllFunctions(symbols []Symbol) bool {
	for _, sym := range symbols {
		if !sym.Kind().IsFunction() {
			return false
		}
	}
	return len(symbols) > 0
}
