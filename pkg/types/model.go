package types

import (
	"strings"

	"github.com/warmthdawn/zenscript-intelli-sense/pkg/resolver"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/symbol"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/syntax"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/unit"
)

// Model implements symbol.TypeModel. Types are derived on every call from
// the declaring node or, for synthesized symbols, from their type name.
type Model struct{}

// New creates a Model.
func New() *Model {
	return &Model{}
}

var _ symbol.TypeModel = (*Model)(nil)

// TypeOf implements symbol.TypeModel.
func (m *Model) TypeOf(sym symbol.Symbol, env symbol.Environment) symbol.Type {
	switch s := sym.(type) {
	case *symbol.ClassSymbol:
		return &Class{Symbol: s}
	case *symbol.ImportSymbol:
		targets := s.Targets(env)
		if len(targets) == 1 {
			if cls, ok := targets[0].(*symbol.ClassSymbol); ok {
				return &Class{Symbol: cls}
			}
		}
		return nil
	case *symbol.FunctionSymbol:
		return m.functionType(s, env)
	case *symbol.VariableSymbol:
		if s.Decl().Valid() {
			return m.annotation(s, env)
		}
		return m.FromName(s.TypeName(), env)
	case *symbol.ParameterSymbol:
		if s.Decl().Valid() {
			return m.annotation(s, env)
		}
		return m.FromName(s.TypeName(), env)
	}
	return nil
}

func ownerUnit(sym symbol.Symbol) *unit.Unit {
	u, _ := sym.Owner().(*unit.Unit)
	return u
}

// annotation returns the type written after "as" on the declaring node.
func (m *Model) annotation(sym symbol.Symbol, env symbol.Environment) symbol.Type {
	u := ownerUnit(sym)
	if u == nil || u.Tree() == nil {
		return nil
	}
	return m.TypeOfNode(u.Tree().TypeChild(sym.Decl()), u, env)
}

func (m *Model) functionType(fn *symbol.FunctionSymbol, env symbol.Environment) symbol.Type {
	ft := &Function{}
	for _, p := range fn.Parameters() {
		ft.Params = append(ft.Params, m.TypeOf(p, env))
	}
	if !fn.Decl().Valid() {
		ft.Return = m.FromName(fn.ReturnTypeName(), env)
		return ft
	}
	u := ownerUnit(fn)
	if u == nil || u.Tree() == nil {
		return ft
	}
	var typeNodes []syntax.NodeID
	tree := u.Tree()
	for _, c := range tree.Children(fn.Decl()) {
		if tree.Kind(c).IsType() {
			typeNodes = append(typeNodes, c)
		}
	}
	if tree.Kind(fn.Decl()) == syntax.KindExpandFunctionDeclaration && len(typeNodes) > 0 {
		// the first type is the receiver
		typeNodes = typeNodes[1:]
	}
	if len(typeNodes) > 0 {
		ft.Return = m.TypeOfNode(typeNodes[0], u, env)
	}
	return ft
}

// TypeOfNode converts a type annotation node of u.
func (m *Model) TypeOfNode(node syntax.NodeID, u *unit.Unit, env symbol.Environment) symbol.Type {
	tree := u.Tree()
	if tree == nil || !tree.Valid(node) {
		return nil
	}
	switch tree.Kind(node) {
	case syntax.KindPrimitiveType:
		return &Primitive{Name: tree.Text(node)}
	case syntax.KindClassType:
		classes := resolver.NewSymbolResolver(env, m).ResolveClass(node, u)
		if len(classes) == 1 {
			return &Class{Symbol: classes[0]}
		}
		if env != nil && len(classes) == 0 {
			if cls := env.FindClass(tree.QualifiedText(tree.Child(node, syntax.KindQualifiedName))); cls != nil {
				return &Class{Symbol: cls}
			}
		}
		return nil
	case syntax.KindListType:
		return &List{Elem: m.TypeOfNode(tree.TypeChild(node), u, env)}
	case syntax.KindArrayType:
		return &Array{Elem: m.TypeOfNode(tree.TypeChild(node), u, env)}
	case syntax.KindMapType:
		var parts []symbol.Type
		for _, c := range tree.Children(node) {
			if tree.Kind(c).IsType() {
				parts = append(parts, m.TypeOfNode(c, u, env))
			}
		}
		mt := &Map{}
		if len(parts) > 0 {
			mt.Value = parts[0]
		}
		if len(parts) > 1 {
			mt.Key = parts[1]
		}
		return mt
	case syntax.KindFunctionType:
		ft := &Function{}
		var parts []symbol.Type
		for _, c := range tree.Children(node) {
			if tree.Kind(c).IsType() {
				parts = append(parts, m.TypeOfNode(c, u, env))
			}
		}
		if len(parts) > 0 {
			ft.Params = parts[:len(parts)-1]
			ft.Return = parts[len(parts)-1]
		}
		return ft
	case syntax.KindIntersectionType:
		it := &Intersection{}
		for _, c := range tree.Children(node) {
			if tree.Kind(c).IsType() {
				it.Types = append(it.Types, m.TypeOfNode(c, u, env))
			}
		}
		return it
	}
	return nil
}

// FromName parses a type name as written in declaration files and
// environment indexes: "int", "string[]", "[int]", "int[string]" or a
// qualified class name.
func (m *Model) FromName(name string, env symbol.Environment) symbol.Type {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return nil
	case strings.Contains(name, "&"):
		it := &Intersection{}
		for _, part := range strings.Split(name, "&") {
			it.Types = append(it.Types, m.FromName(part, env))
		}
		return it
	case strings.HasSuffix(name, "[]"):
		return &Array{Elem: m.FromName(strings.TrimSuffix(name, "[]"), env)}
	case strings.HasPrefix(name, "[") && strings.HasSuffix(name, "]"):
		return &List{Elem: m.FromName(name[1:len(name)-1], env)}
	case strings.HasSuffix(name, "]"):
		open := strings.LastIndexByte(name, '[')
		if open <= 0 {
			return nil
		}
		return &Map{
			Value: m.FromName(name[:open], env),
			Key:   m.FromName(name[open+1:len(name)-1], env),
		}
	case IsPrimitive(name):
		return &Primitive{Name: name}
	}
	if env != nil {
		if cls := env.FindClass(name); cls != nil {
			return &Class{Symbol: cls}
		}
	}
	return nil
}

// MembersOf implements symbol.TypeModel. Members of a primitive type are
// those of the environment class of the same name.
func (m *Model) MembersOf(t symbol.Type, env symbol.Environment) []symbol.Symbol {
	switch tt := t.(type) {
	case *Class:
		return tt.Symbol.Members(env)
	case *Primitive:
		if env == nil {
			return nil
		}
		if cls := env.FindClass(tt.Name); cls != nil {
			return cls.Members(env)
		}
	case *Intersection:
		var out []symbol.Symbol
		for _, part := range tt.Types {
			if part != nil {
				out = append(out, m.MembersOf(part, env)...)
			}
		}
		return out
	}
	return nil
}

// ExpandMembersOf implements symbol.TypeModel. Expand functions registered
// for the interfaces of a class apply to the class as well.
func (m *Model) ExpandMembersOf(t symbol.Type, env symbol.Environment) []symbol.Symbol {
	if env == nil || t == nil {
		return nil
	}
	switch tt := t.(type) {
	case *Class:
		out := append([]symbol.Symbol(nil), env.ExpandFunctions(tt.String())...)
		for _, iface := range tt.Symbol.AllInterfaces(env) {
			out = append(out, env.ExpandFunctions(iface.QualifiedName())...)
		}
		return out
	case *Intersection:
		var out []symbol.Symbol
		for _, part := range tt.Types {
			out = append(out, m.ExpandMembersOf(part, env)...)
		}
		return out
	}
	return env.ExpandFunctions(t.String())
}

// ReceiverName returns the type name an expand function is registered
// under. Unresolvable receivers keep their text.
func (m *Model) ReceiverName(fn *symbol.FunctionSymbol, env symbol.Environment) string {
	if !fn.Decl().Valid() {
		if t := m.FromName(fn.ReceiverName(), env); t != nil {
			return t.String()
		}
		return fn.ReceiverName()
	}
	u := ownerUnit(fn)
	if u == nil || u.Tree() == nil {
		return ""
	}
	node := u.Tree().TypeChild(fn.Decl())
	if t := m.TypeOfNode(node, u, env); t != nil {
		return t.String()
	}
	return u.Tree().Text(node)
}
