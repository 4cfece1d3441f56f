package symbol

import (
	"fmt"
	"strings"

	"github.com/warmthdawn/zenscript-intelli-sense/pkg/syntax"
)

// Owner is the compilation unit that declared a symbol.
type Owner interface {
	// Path is the filesystem path of the unit.
	Path() string
	// QualifiedName is the dotted name derived from the path.
	QualifiedName() string
	// Package is the package that classes declared in the unit belong to.
	Package() string
	// Tree is the syntax tree the unit was resolved from.
	Tree() *syntax.Tree
}

// Symbol is a declarable entity. Symbols are immutable once the declaration
// pass that created them has finished.
type Symbol interface {
	fmt.Stringer

	// Name is the simple name the symbol is referenced by.
	Name() string
	// Kind classifies the symbol.
	Kind() Kind
	// Modifiers returns the declaration modifiers.
	Modifiers() Modifiers
	// Decl is the declaring node, or syntax.NoNode for synthesized symbols.
	Decl() syntax.NodeID
	// Owner is the declaring unit, or nil for synthesized symbols.
	Owner() Owner
	// Range is the source range of the declaring node.
	Range() syntax.Range
}

type base struct {
	name  string
	kind  Kind
	mods  Modifiers
	decl  syntax.NodeID
	owner Owner
	span  syntax.Range
}

func newBase(name string, kind Kind, mods Modifiers, decl syntax.NodeID, owner Owner) base {
	b := base{name: name, kind: kind, mods: mods, decl: decl, owner: owner}
	if owner != nil && decl.Valid() {
		if tree := owner.Tree(); tree != nil {
			b.span = tree.Span(decl)
		}
	}
	return b
}

func (b *base) Name() string         { return b.name }
func (b *base) Kind() Kind           { return b.kind }
func (b *base) Modifiers() Modifiers { return b.mods }
func (b *base) Decl() syntax.NodeID  { return b.decl }
func (b *base) Owner() Owner         { return b.owner }
func (b *base) Range() syntax.Range  { return b.span }
func (b *base) IsSynthesized() bool  { return !b.decl.Valid() }
func (b *base) IsStatic() bool       { return b.mods.Has(ModStatic) }

// String implements fmt.Stringer
func (b *base) String() string {
	if b.owner != nil {
		return fmt.Sprintf("%s %s (%s %s)", b.kind, b.name, b.owner.Path(), b.span)
	}
	return fmt.Sprintf("%s %s", b.kind, b.name)
}

// ImportSymbol is introduced by an import declaration, under its alias or
// the last segment of the imported name.
type ImportSymbol struct {
	base
	qualifiedName string
}

// NewImport creates an import symbol.
func NewImport(name, qualifiedName string, decl syntax.NodeID, owner Owner) *ImportSymbol {
	return &ImportSymbol{
		base:          newBase(name, KindImport, ModNone, decl, owner),
		qualifiedName: qualifiedName,
	}
}

// QualifiedName is the imported dotted name.
func (s *ImportSymbol) QualifiedName() string {
	return s.qualifiedName
}

// Targets resolves the import against the environment: a class, a package,
// or the overload family of an imported static member.
func (s *ImportSymbol) Targets(env Environment) []Symbol {
	if env == nil || s.qualifiedName == "" {
		return nil
	}
	if cls := env.FindClass(s.qualifiedName); cls != nil {
		return []Symbol{cls}
	}
	if pkg := FindPackage(env, s.qualifiedName); pkg != nil {
		return []Symbol{pkg}
	}
	dot := strings.LastIndexByte(s.qualifiedName, '.')
	if dot < 0 {
		return nil
	}
	parent, member := s.qualifiedName[:dot], s.qualifiedName[dot+1:]
	if cls := env.FindClass(parent); cls != nil {
		return Named(cls.Members(env), member)
	}
	return Named(env.SymbolsOfPackage(parent), member)
}

// ClassSymbol is a class declared in a script, a declaration file or an
// environment index.
type ClassSymbol struct {
	base
	qualifiedName string
	body          *Scope
	members       []Symbol
	supertypes    []string
	enclosing     *Scope
}

// NewDeclaredClass creates the symbol of a class declaration whose members
// are the symbols of body. Supertype names are resolved against enclosing.
func NewDeclaredClass(name, qualifiedName string, decl syntax.NodeID, owner Owner, body, enclosing *Scope, supertypes []string) *ClassSymbol {
	return &ClassSymbol{
		base:          newBase(name, KindClass, ModNone, decl, owner),
		qualifiedName: qualifiedName,
		body:          body,
		enclosing:     enclosing,
		supertypes:    supertypes,
	}
}

// NewClass creates a synthesized class. Supertype names are fully qualified.
func NewClass(qualifiedName string, members []Symbol, supertypes ...string) *ClassSymbol {
	name := qualifiedName
	if dot := strings.LastIndexByte(name, '.'); dot >= 0 {
		name = name[dot+1:]
	}
	return &ClassSymbol{
		base:          newBase(name, KindClass, ModNone, syntax.NoNode, nil),
		qualifiedName: qualifiedName,
		members:       members,
		supertypes:    supertypes,
	}
}

func (s *ClassSymbol) QualifiedName() string {
	return s.qualifiedName
}

// Supertypes returns the supertype names as written.
func (s *ClassSymbol) Supertypes() []string {
	return s.supertypes
}

// Body returns the member scope of a declared class, nil when synthesized.
func (s *ClassSymbol) Body() *Scope {
	return s.body
}

// DeclaredMembers returns the members declared by the class itself.
func (s *ClassSymbol) DeclaredMembers() []Symbol {
	if s.body != nil {
		return s.body.Symbols()
	}
	return s.members
}

// Interfaces resolves the supertype list in declaration order. Names that
// do not resolve to a class are dropped.
func (s *ClassSymbol) Interfaces(env Environment) []*ClassSymbol {
	var out []*ClassSymbol
	for _, name := range s.supertypes {
		if cls := s.resolveSupertype(env, name); cls != nil && cls != s {
			out = append(out, cls)
		}
	}
	return out
}

func (s *ClassSymbol) resolveSupertype(env Environment, name string) *ClassSymbol {
	if s.enclosing != nil {
		switch sym := s.enclosing.Lookup(name, KindImport, KindClass).(type) {
		case *ClassSymbol:
			return sym
		case *ImportSymbol:
			if env != nil {
				return env.FindClass(sym.QualifiedName())
			}
		}
	}
	if env != nil {
		return env.FindClass(name)
	}
	return nil
}

// Members returns the declared members followed by the members of every
// interface, transitively flattened. Duplicate names are kept; a class is
// visited at most once.
func (s *ClassSymbol) Members(env Environment) []Symbol {
	var out []Symbol
	visited := make(map[*ClassSymbol]bool)
	var collect func(c *ClassSymbol)
	collect = func(c *ClassSymbol) {
		if visited[c] {
			return
		}
		visited[c] = true
		out = append(out, c.DeclaredMembers()...)
		for _, iface := range c.Interfaces(env) {
			collect(iface)
		}
	}
	collect(s)
	return out
}

// AllInterfaces returns every transitive interface of the class.
func (s *ClassSymbol) AllInterfaces(env Environment) []*ClassSymbol {
	var out []*ClassSymbol
	visited := map[*ClassSymbol]bool{s: true}
	queue := s.Interfaces(env)
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if visited[next] {
			continue
		}
		visited[next] = true
		out = append(out, next)
		queue = append(queue, next.Interfaces(env)...)
	}
	return out
}

// FunctionSymbol is a function, expand function, constructor or operator.
type FunctionSymbol struct {
	base
	params     []*ParameterSymbol
	returnType string
	receiver   string
	expand     bool
}

// NewDeclaredFunction creates the symbol of a function-like declaration.
func NewDeclaredFunction(name string, kind Kind, mods Modifiers, decl syntax.NodeID, owner Owner, params []*ParameterSymbol) *FunctionSymbol {
	fn := &FunctionSymbol{
		base:   newBase(name, kind, mods, decl, owner),
		params: params,
	}
	if owner != nil && decl.Valid() {
		if tree := owner.Tree(); tree != nil {
			fn.expand = tree.Kind(decl) == syntax.KindExpandFunctionDeclaration
		}
	}
	return fn
}

// NewFunction creates a synthesized function. The return type is a type
// name as written in declaration files.
func NewFunction(name string, kind Kind, mods Modifiers, returnType string, params ...*ParameterSymbol) *FunctionSymbol {
	return &FunctionSymbol{
		base:       newBase(name, kind, mods, syntax.NoNode, nil),
		params:     params,
		returnType: returnType,
	}
}

// NewExpandFunction creates a synthesized expand function for the named
// receiver type.
func NewExpandFunction(receiver, name, returnType string, params ...*ParameterSymbol) *FunctionSymbol {
	fn := NewFunction(name, KindFunction, ModNone, returnType, params...)
	fn.receiver = receiver
	return fn
}

// Parameters returns the ordered parameter list.
func (s *FunctionSymbol) Parameters() []*ParameterSymbol {
	return s.params
}

// ReturnTypeName is the return type of a synthesized function.
func (s *FunctionSymbol) ReturnTypeName() string {
	return s.returnType
}

// ReceiverName is the receiver type of a synthesized expand function.
func (s *FunctionSymbol) ReceiverName() string {
	return s.receiver
}

// IsExpand reports whether the function extends a type from outside.
func (s *FunctionSymbol) IsExpand() bool {
	return s.expand || s.receiver != ""
}

// VariableSymbol is a variable, field or loop variable.
type VariableSymbol struct {
	base
	typeName string
}

// NewDeclaredVariable creates the symbol of a variable declaration.
func NewDeclaredVariable(name string, mods Modifiers, decl syntax.NodeID, owner Owner) *VariableSymbol {
	return &VariableSymbol{base: newBase(name, KindVariable, mods, decl, owner)}
}

// NewVariable creates a synthesized variable of the named type.
func NewVariable(name string, mods Modifiers, typeName string) *VariableSymbol {
	return &VariableSymbol{
		base:     newBase(name, KindVariable, mods, syntax.NoNode, nil),
		typeName: typeName,
	}
}

// TypeName is the declared type of a synthesized variable.
func (s *VariableSymbol) TypeName() string {
	return s.typeName
}

// ParameterSymbol is a formal parameter.
type ParameterSymbol struct {
	base
	typeName string
	optional bool
	vararg   bool
}

// NewDeclaredParameter creates the symbol of a formal parameter.
func NewDeclaredParameter(name string, decl syntax.NodeID, owner Owner, optional, vararg bool) *ParameterSymbol {
	return &ParameterSymbol{
		base:     newBase(name, KindParameter, ModNone, decl, owner),
		optional: optional,
		vararg:   vararg,
	}
}

// NewParameter creates a synthesized parameter of the named type.
func NewParameter(name, typeName string, optional, vararg bool) *ParameterSymbol {
	return &ParameterSymbol{
		base:     newBase(name, KindParameter, ModNone, syntax.NoNode, nil),
		typeName: typeName,
		optional: optional,
		vararg:   vararg,
	}
}

func (s *ParameterSymbol) TypeName() string { return s.typeName }
func (s *ParameterSymbol) IsOptional() bool { return s.optional }
func (s *ParameterSymbol) IsVararg() bool   { return s.vararg }

// PackageSymbol is a node of the environment's package tree.
type PackageSymbol struct {
	base
	qualifiedName string
	subpackages   []*PackageSymbol
	members       []Symbol
}

// NewPackage creates an empty package. The root package has an empty
// qualified name.
func NewPackage(qualifiedName string) *PackageSymbol {
	name := qualifiedName
	if dot := strings.LastIndexByte(name, '.'); dot >= 0 {
		name = name[dot+1:]
	}
	return &PackageSymbol{
		base:          newBase(name, KindPackage, ModNone, syntax.NoNode, nil),
		qualifiedName: qualifiedName,
	}
}

func (s *PackageSymbol) QualifiedName() string { return s.qualifiedName }

// Subpackages returns the direct subpackages.
func (s *PackageSymbol) Subpackages() []*PackageSymbol {
	return s.subpackages
}

// Subpackage returns the direct subpackage with the given name.
func (s *PackageSymbol) Subpackage(name string) *PackageSymbol {
	for _, sub := range s.subpackages {
		if sub.name == name {
			return sub
		}
	}
	return nil
}

// Members returns the symbols declared in the package.
func (s *PackageSymbol) Members() []Symbol {
	return s.members
}

// AddSubpackage links a subpackage. It is only called while an environment
// is being built.
func (s *PackageSymbol) AddSubpackage(sub *PackageSymbol) {
	s.subpackages = append(s.subpackages, sub)
}

// AddMember adds a member. It is only called while an environment is being
// built.
func (s *PackageSymbol) AddMember(sym Symbol) {
	s.members = append(s.members, sym)
}

// FindPackage walks the package tree of env along a dotted name.
func FindPackage(env Environment, qualifiedName string) *PackageSymbol {
	if env == nil || qualifiedName == "" {
		return nil
	}
	pkg := env.RootPackage()
	for _, segment := range strings.Split(qualifiedName, ".") {
		if pkg == nil {
			return nil
		}
		pkg = pkg.Subpackage(segment)
	}
	return pkg
}
