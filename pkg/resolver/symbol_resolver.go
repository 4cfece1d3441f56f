package resolver

import (
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/warmthdawn/zenscript-intelli-sense/pkg/symbol"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/syntax"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/unit"
)

// ErrSymbolNotFound is returned by callers that require a reference to
// resolve when it does not.
var ErrSymbolNotFound = errors.New("symbol not found")

// referenceRoots are the contexts whose direct child is a self-contained
// reference expression.
var referenceRoots = map[syntax.Kind]bool{
	syntax.KindImportDeclaration:   true,
	syntax.KindForeachStatement:    true,
	syntax.KindForeachVariable:     true,
	syntax.KindWhileStatement:      true,
	syntax.KindIfStatement:         true,
	syntax.KindExpressionStatement: true,
	syntax.KindReturnStatement:     true,
	// initializers, default values and type annotations
	syntax.KindVariableDeclaration:         true,
	syntax.KindFormalParameter:             true,
	syntax.KindFunctionDeclaration:         true,
	syntax.KindExpandFunctionDeclaration:   true,
	syntax.KindConstructorDeclaration:      true,
	syntax.KindOperatorFunctionDeclaration: true,
	syntax.KindClassDeclaration:            true,
}

// SymbolResolverOption configures a SymbolResolver.
type SymbolResolverOption func(r *SymbolResolver) *SymbolResolver

// WithLogger sets the logger of a SymbolResolver.
func WithLogger(logger zerolog.Logger) SymbolResolverOption {
	return func(r *SymbolResolver) *SymbolResolver {
		r.logger = logger
		return r
	}
}

// SymbolResolver resolves name references against the tables of a unit,
// an environment snapshot and a type model. It holds no per-request state
// and may be shared by concurrent readers of different units.
type SymbolResolver struct {
	env    symbol.Environment
	types  symbol.TypeModel
	logger zerolog.Logger
}

// NewSymbolResolver creates a resolver. Either dependency may be nil: a nil
// environment contributes no globals or packages and a nil type model
// resolves no instance members.
func NewSymbolResolver(env symbol.Environment, types symbol.TypeModel, options ...SymbolResolverOption) *SymbolResolver {
	r := &SymbolResolver{
		env:    env,
		types:  types,
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		r = opt(r)
	}
	return r
}

// Environment returns the environment the resolver reads.
func (r *SymbolResolver) Environment() symbol.Environment {
	return r.env
}

// ResolveAt returns the symbols the reference under cursor could denote.
// Only the answer for the segment containing the cursor is returned; every
// other sub-expression serves as an intermediate. Misses and ambiguous
// intermediates yield an empty result.
func (r *SymbolResolver) ResolveAt(cursor syntax.NodeID, u *unit.Unit) []symbol.Symbol {
	tree := u.Tree()
	if tree == nil || !tree.Valid(cursor) {
		return nil
	}
	return r.resolve(cursor, tree.Span(cursor).End, u)
}

// ResolveOffset resolves the reference at a byte offset of the source. An
// unfinished trailing segment is matched by its text before the offset.
func (r *SymbolResolver) ResolveOffset(offset int, u *unit.Unit) []symbol.Symbol {
	tree := u.Tree()
	if tree == nil {
		return nil
	}
	cursor := tree.NodeAt(offset)
	if !tree.Valid(cursor) {
		return nil
	}
	return r.resolve(cursor, offset, u)
}

func (r *SymbolResolver) resolve(cursor syntax.NodeID, offset int, u *unit.Unit) []symbol.Symbol {
	tree := u.Tree()
	root := findReferenceRoot(tree, cursor)
	if !root.Valid() {
		return nil
	}
	v := r.newVisitor(u, cursor, offset)
	v.visit(root)
	r.logger.Trace().
		Str("unit", u.QualifiedName()).
		Str("root", tree.Kind(root).String()).
		Int("cursor", int(cursor)).
		Int("results", len(v.result)).
		Msg("resolved reference")
	return v.result
}

// ResolveClass resolves a type name such as a supertype or a type
// annotation to classes. Imports are unwrapped to their class targets.
func (r *SymbolResolver) ResolveClass(node syntax.NodeID, u *unit.Unit) []*symbol.ClassSymbol {
	tree := u.Tree()
	if tree == nil || !tree.Valid(node) {
		return nil
	}
	if tree.Kind(node) == syntax.KindClassType {
		node = tree.Child(node, syntax.KindQualifiedName)
	}
	v := r.newVisitor(u, node, tree.Span(node).End)
	var classes []*symbol.ClassSymbol
	for _, sym := range v.visit(node) {
		switch s := sym.(type) {
		case *symbol.ClassSymbol:
			classes = append(classes, s)
		case *symbol.ImportSymbol:
			for _, target := range s.Targets(r.env) {
				if cls, ok := target.(*symbol.ClassSymbol); ok {
					classes = append(classes, cls)
				}
			}
		}
	}
	return classes
}

// findReferenceRoot walks up from node to the child of the nearest
// reference-root context.
func findReferenceRoot(tree *syntax.Tree, node syntax.NodeID) syntax.NodeID {
	for cur := node; cur.Valid(); cur = tree.Parent(cur) {
		parent := tree.Parent(cur)
		if parent.Valid() && referenceRoots[tree.Kind(parent)] {
			return cur
		}
	}
	return syntax.NoNode
}

func (r *SymbolResolver) newVisitor(u *unit.Unit, cursor syntax.NodeID, offset int) *visitor {
	tree := u.Tree()
	return &visitor{
		r:      r,
		u:      u,
		tree:   tree,
		cursor: cursor,
		span:   tree.Span(cursor),
		offset: offset,
	}
}

// visitor computes a symbol set for every sub-expression it visits and
// records the set of the segment containing the cursor.
type visitor struct {
	r      *SymbolResolver
	u      *unit.Unit
	tree   *syntax.Tree
	cursor syntax.NodeID
	span   syntax.Range
	offset int
	result []symbol.Symbol
}

func (v *visitor) contains(node syntax.NodeID) bool {
	return node.Valid() && v.tree.Span(node).Covers(v.span)
}

func (v *visitor) record(symbols []symbol.Symbol) {
	v.result = symbols
}

func (v *visitor) visit(node syntax.NodeID) []symbol.Symbol {
	switch v.tree.Kind(node) {
	case syntax.KindQualifiedName:
		return v.qualifiedName(node)
	case syntax.KindSimpleNameExpr, syntax.KindSimpleName:
		return v.simpleName(node)
	case syntax.KindMemberAccessExpr:
		return v.memberAccess(node)
	case syntax.KindParensExpr:
		if children := v.tree.Children(node); len(children) > 0 {
			return v.visit(children[0])
		}
		return nil
	default:
		for _, c := range v.tree.Children(node) {
			if v.contains(c) {
				v.visit(c)
			}
		}
		return nil
	}
}

func (v *visitor) simpleName(node syntax.NodeID) []symbol.Symbol {
	nameNode := v.tree.NameNode(node)
	if !nameNode.Valid() {
		return nil
	}
	symbols := v.lookup(nameNode, v.tree.Text(nameNode))
	if v.contains(nameNode) {
		v.record(symbols)
	}
	return symbols
}

func (v *visitor) qualifiedName(node syntax.NodeID) []symbol.Symbol {
	segments := v.tree.ChildrenOf(node, syntax.KindSimpleName)
	if len(segments) == 0 {
		return nil
	}
	symbols := v.lookup(segments[0], v.tree.Text(segments[0]))
	if v.contains(segments[0]) {
		v.record(symbols)
	}
	for _, seg := range segments[1:] {
		members := v.r.accessible(symbols)
		name := v.tree.Text(seg)
		symbols = symbol.Named(members, name)
		if v.contains(seg) {
			v.recordMember(seg, members, symbols)
		}
	}
	return symbols
}

func (v *visitor) memberAccess(node syntax.NodeID) []symbol.Symbol {
	children := v.tree.Children(node)
	if len(children) == 0 {
		return nil
	}
	owner := v.visit(children[0])
	members := v.r.memberSpace(owner)

	nameNode := v.tree.Child(node, syntax.KindSimpleName)
	if !nameNode.Valid() {
		// "foo." while typing: every member is a candidate
		if v.cursor == node {
			v.record(members)
		}
		return nil
	}
	name := v.tree.Text(nameNode)
	symbols := symbol.Named(members, name)
	if v.contains(nameNode) {
		v.recordMember(nameNode, members, symbols)
	}
	return symbols
}

// recordMember records the exact matches of a segment. A segment that is
// still being typed records the members starting with its text before the
// cursor instead.
func (v *visitor) recordMember(seg syntax.NodeID, members, exact []symbol.Symbol) {
	if len(exact) > 0 || !v.unfinished(seg) {
		v.record(exact)
		return
	}
	span := v.tree.Span(seg)
	end := min(max(v.offset, span.Start), span.End)
	v.record(symbol.WithPrefix(members, v.tree.Source[span.Start:end]))
}

// unfinished reports whether nothing follows seg on its line: the segment
// ends its reference and no terminator has been typed yet.
func (v *visitor) unfinished(seg syntax.NodeID) bool {
	end := v.tree.Span(seg).End
	next, ok := v.tree.NextToken(end)
	if !ok {
		return true
	}
	return strings.Contains(v.tree.Source[end:next.Span.Start], "\n")
}

// lookup resolves a bare identifier through the cascade of sources.
func (v *visitor) lookup(at syntax.NodeID, name string) []symbol.Symbol {
	if name == "" {
		return nil
	}
	env := v.r.env
	chain := []NameSource{
		&lexicalSource{scope: v.u.LookupScope(at), offset: v.tree.Span(at).Start},
		&listSource{label: "toplevel", symbols: v.u.TopLevelSymbols},
		&listSource{label: "imports", symbols: func() []symbol.Symbol {
			imports := v.u.Imports()
			out := make([]symbol.Symbol, len(imports))
			for i, imp := range imports {
				out[i] = imp
			}
			return out
		}},
	}
	if env != nil {
		chain = append(chain,
			&listSource{label: "globals", symbols: env.Globals},
			&listSource{label: "packages", symbols: func() []symbol.Symbol {
				root := env.RootPackage()
				if root == nil {
					return nil
				}
				subs := root.Subpackages()
				out := make([]symbol.Symbol, len(subs))
				for i, sub := range subs {
					out[i] = sub
				}
				return out
			}},
		)
	}
	return NewChainScope(chain...).GetSymbols(name)
}

// accessible returns the members reachable through a dotted name segment.
// It is defined only for a single symbol.
func (r *SymbolResolver) accessible(symbols []symbol.Symbol) []symbol.Symbol {
	if len(symbols) != 1 {
		return nil
	}
	switch s := symbols[0].(type) {
	case *symbol.PackageSymbol:
		return packageMembers(s)
	case *symbol.ClassSymbol:
		return s.Members(r.env)
	case *symbol.ImportSymbol:
		return r.accessible(s.Targets(r.env))
	}
	return r.instanceMembers(symbols[0])
}

// memberSpace returns the candidates of a member access on the given
// owner set: static members of a class, members of a package, otherwise the
// members and expand functions of the owner's type.
func (r *SymbolResolver) memberSpace(owner []symbol.Symbol) []symbol.Symbol {
	if len(owner) != 1 {
		return nil
	}
	switch s := owner[0].(type) {
	case *symbol.ClassSymbol:
		return staticMembers(s.Members(r.env))
	case *symbol.PackageSymbol:
		return packageMembers(s)
	case *symbol.ImportSymbol:
		targets := s.Targets(r.env)
		if len(targets) == 1 {
			switch t := targets[0].(type) {
			case *symbol.ClassSymbol:
				return staticMembers(t.Members(r.env))
			case *symbol.PackageSymbol:
				return packageMembers(t)
			}
		}
	}
	return r.instanceMembers(owner[0])
}

func (r *SymbolResolver) instanceMembers(sym symbol.Symbol) []symbol.Symbol {
	if r.types == nil {
		return nil
	}
	t := r.types.TypeOf(sym, r.env)
	if t == nil {
		return nil
	}
	members := r.types.MembersOf(t, r.env)
	expands := r.types.ExpandMembersOf(t, r.env)
	out := make([]symbol.Symbol, 0, len(members)+len(expands))
	out = append(out, members...)
	return append(out, expands...)
}

func staticMembers(members []symbol.Symbol) []symbol.Symbol {
	return symbol.Filter(members, func(sym symbol.Symbol) bool {
		return sym.Modifiers().Has(symbol.ModStatic)
	})
}

func packageMembers(pkg *symbol.PackageSymbol) []symbol.Symbol {
	subs := pkg.Subpackages()
	out := make([]symbol.Symbol, 0, len(pkg.Members())+len(subs))
	out = append(out, pkg.Members()...)
	for _, sub := range subs {
		out = append(out, sub)
	}
	return out
}
