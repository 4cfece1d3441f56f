package resolver

import (
	"github.com/rs/zerolog"

	"github.com/warmthdawn/zenscript-intelli-sense/pkg/collections"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/symbol"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/syntax"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/unit"
)

// ConstructorName is the symbol name of class constructors.
const ConstructorName = "zenConstructor"

// DeclarationResolverOption configures a DeclarationResolver.
type DeclarationResolverOption func(r *DeclarationResolver) *DeclarationResolver

// WithDeclarationLogger sets the logger of a DeclarationResolver.
func WithDeclarationLogger(logger zerolog.Logger) DeclarationResolverOption {
	return func(r *DeclarationResolver) *DeclarationResolver {
		r.logger = logger
		return r
	}
}

// DeclarationResolver builds the scope tree of a unit and the symbol of
// every declaration in it.
type DeclarationResolver struct {
	logger zerolog.Logger
}

// NewDeclarationResolver creates a new DeclarationResolver.
func NewDeclarationResolver(options ...DeclarationResolverOption) *DeclarationResolver {
	r := &DeclarationResolver{logger: zerolog.Nop()}
	for _, opt := range options {
		r = opt(r)
	}
	return r
}

type frame struct {
	node syntax.NodeID
	exit bool
}

type declarationPass struct {
	u      *unit.Unit
	tree   *syntax.Tree
	scopes collections.Stack[*symbol.Scope]
	frames collections.Stack[frame]
	count  int
}

// Resolve clears the tables of u and rebuilds them from its current tree in
// one depth-first traversal. It never fails; malformed declarations without
// a name are skipped while their bodies still get scopes.
func (r *DeclarationResolver) Resolve(u *unit.Unit) {
	tree := u.Tree()
	u.Reset(tree)
	if tree == nil || !tree.Valid(tree.Root) {
		return
	}

	p := &declarationPass{u: u, tree: tree}
	p.frames.Push(frame{node: tree.Root})
	for !p.frames.IsEmpty() {
		f, _ := p.frames.Pop()
		if f.exit {
			p.exit(f.node)
			continue
		}
		p.enter(f.node)
		p.frames.Push(frame{node: f.node, exit: true})
		children := tree.Children(f.node)
		for i := len(children) - 1; i >= 0; i-- {
			p.frames.Push(frame{node: children[i]})
		}
	}

	r.logger.Debug().
		Str("unit", u.QualifiedName()).
		Int("scopes", u.Scopes().Len()).
		Int("symbols", p.count).
		Int("imports", len(u.Imports())).
		Msg("declarations resolved")
}

func (p *declarationPass) current() *symbol.Scope {
	s, _ := p.scopes.Peek()
	return s
}

func (p *declarationPass) openScope(node syntax.NodeID) *symbol.Scope {
	s := p.u.NewScope(p.current(), node)
	p.scopes.Push(s)
	return s
}

func (p *declarationPass) declare(node syntax.NodeID, sym symbol.Symbol) {
	p.u.PutSymbol(node, sym)
	if s := p.current(); s != nil {
		s.Add(sym)
	}
	p.count++
}

func modifiers(flags syntax.Flags) symbol.Modifiers {
	var mods symbol.Modifiers
	if flags.Has(syntax.FlagStatic) {
		mods |= symbol.ModStatic
	}
	if flags.Has(syntax.FlagGlobal) {
		mods |= symbol.ModGlobal
	}
	if flags.Has(syntax.FlagVal) {
		mods |= symbol.ModVal
	}
	if flags.Has(syntax.FlagVar) {
		mods |= symbol.ModVar
	}
	return mods
}

func (p *declarationPass) enter(node syntax.NodeID) {
	t := p.tree
	switch t.Kind(node) {
	case syntax.KindScriptFile:
		p.openScope(node)

	case syntax.KindImportDeclaration:
		name := t.Name(node)
		if name == "" {
			return
		}
		imp := symbol.NewImport(name, t.QualifiedText(t.Child(node, syntax.KindQualifiedName)), node, p.u)
		p.declare(node, imp)
		p.u.AddImport(imp)

	case syntax.KindFunctionDeclaration, syntax.KindExpandFunctionDeclaration,
		syntax.KindConstructorDeclaration, syntax.KindOperatorFunctionDeclaration:
		p.enterFunction(node)

	case syntax.KindClassDeclaration:
		name := t.Name(node)
		if name == "" {
			p.openScope(node)
			return
		}
		enclosing := p.current()
		body := p.u.NewScope(enclosing, node)
		qualifiedName := name
		if pkg := p.u.Package(); pkg != "" {
			qualifiedName = pkg + "." + name
		}
		cls := symbol.NewDeclaredClass(name, qualifiedName, node, p.u, body, enclosing, t.Supertypes(node))
		p.declare(node, cls)
		p.scopes.Push(body)

	case syntax.KindFormalParameter:
		sym := p.u.SymbolOf(node)
		if sym == nil {
			sym = p.newParameter(node)
		}
		if sym != nil {
			p.declare(node, sym)
		}

	case syntax.KindVariableDeclaration:
		if name := t.Name(node); name != "" {
			p.declare(node, symbol.NewDeclaredVariable(name, modifiers(t.Node(node).Flags), node, p.u))
		}

	case syntax.KindForeachVariable:
		if name := t.Name(node); name != "" {
			p.declare(node, symbol.NewDeclaredVariable(name, symbol.ModNone, node, p.u))
		}

	case syntax.KindForeachStatement, syntax.KindWhileStatement,
		syntax.KindThenBody, syntax.KindElseBody, syntax.KindFunctionExpr:
		p.openScope(node)
	}
}

// enterFunction records the function in the enclosing scope before opening
// the scope shared by its parameters and body.
func (p *declarationPass) enterFunction(node syntax.NodeID) {
	t := p.tree
	kind := t.Kind(node)

	var params []*symbol.ParameterSymbol
	for _, param := range t.ChildrenOf(t.Child(node, syntax.KindParameterList), syntax.KindFormalParameter) {
		if sym := p.newParameter(param); sym != nil {
			// the scope entry is added when the traversal reaches the parameter
			p.u.PutSymbol(param, sym)
			params = append(params, sym)
		}
	}

	name := t.Name(node)
	symKind := symbol.KindFunction
	switch kind {
	case syntax.KindConstructorDeclaration:
		name = ConstructorName
	case syntax.KindOperatorFunctionDeclaration:
		symKind = symbol.KindOperatorFunction
	}
	if name != "" {
		p.declare(node, symbol.NewDeclaredFunction(name, symKind, modifiers(t.Node(node).Flags), node, p.u, params))
	}
	p.openScope(node)
}

func (p *declarationPass) newParameter(node syntax.NodeID) *symbol.ParameterSymbol {
	name := p.tree.Name(node)
	if name == "" {
		return nil
	}
	flags := p.tree.Node(node).Flags
	return symbol.NewDeclaredParameter(name, node, p.u, flags.Has(syntax.FlagDefault), flags.Has(syntax.FlagVararg))
}

func (p *declarationPass) exit(node syntax.NodeID) {
	if top := p.current(); top != nil && top.Node() == node {
		p.scopes.Pop()
	}
}
