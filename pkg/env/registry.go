// Package env builds and publishes the environment shared by every unit of
// a workspace: the package tree, classes, globals and expand functions.
package env

import (
	"sort"
	"strings"

	"github.com/dghubble/trie"

	"github.com/warmthdawn/zenscript-intelli-sense/pkg/index"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/symbol"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/types"
)

var namePathTrieConfig = &trie.PathTrieConfig{
	Segmenter: nameSegmenter,
}

// entry is the trie value for a dotted name. A name can denote a package
// and a class at the same time.
type entry struct {
	pkg   *symbol.PackageSymbol
	class *symbol.ClassSymbol
}

// Registry implements symbol.Environment. It is immutable once built and
// safe for concurrent readers.
type Registry struct {
	root    *symbol.PackageSymbol
	names   *trie.PathTrie
	globals []symbol.Symbol
	expands map[string][]symbol.Symbol
}

var _ symbol.Environment = (*Registry)(nil)

func newRegistry() *Registry {
	return &Registry{
		root:    symbol.NewPackage(""),
		names:   trie.NewPathTrieWithConfig(namePathTrieConfig),
		expands: make(map[string][]symbol.Symbol),
	}
}

// Empty returns a registry that knows nothing.
func Empty() *Registry {
	return newRegistry()
}

func (r *Registry) lookup(qualifiedName string) *entry {
	if qualifiedName == "" {
		return nil
	}
	if value := r.names.Get(qualifiedName); value != nil {
		return value.(*entry)
	}
	return nil
}

func (r *Registry) entry(qualifiedName string) *entry {
	if e := r.lookup(qualifiedName); e != nil {
		return e
	}
	e := &entry{}
	r.names.Put(qualifiedName, e)
	return e
}

// Globals implements symbol.Environment.
func (r *Registry) Globals() []symbol.Symbol {
	return r.globals
}

// RootPackage implements symbol.Environment.
func (r *Registry) RootPackage() *symbol.PackageSymbol {
	return r.root
}

// FindClass implements symbol.Environment.
func (r *Registry) FindClass(qualifiedName string) *symbol.ClassSymbol {
	if e := r.lookup(qualifiedName); e != nil {
		return e.class
	}
	return nil
}

// FindPackage returns the package with the given dotted name.
func (r *Registry) FindPackage(qualifiedName string) *symbol.PackageSymbol {
	if qualifiedName == "" {
		return r.root
	}
	if e := r.lookup(qualifiedName); e != nil {
		return e.pkg
	}
	return nil
}

// SymbolsOfPackage implements symbol.Environment.
func (r *Registry) SymbolsOfPackage(qualifiedName string) []symbol.Symbol {
	if pkg := r.FindPackage(qualifiedName); pkg != nil {
		return pkg.Members()
	}
	return nil
}

// ExpandFunctions implements symbol.Environment.
func (r *Registry) ExpandFunctions(typeName string) []symbol.Symbol {
	return r.expands[typeName]
}

// Classes returns every class sorted by qualified name.
func (r *Registry) Classes() []*symbol.ClassSymbol {
	var classes []*symbol.ClassSymbol
	r.names.Walk(func(key string, value interface{}) error {
		if e := value.(*entry); e.class != nil {
			classes = append(classes, e.class)
		}
		return nil
	})
	sort.Slice(classes, func(i, j int) bool {
		return classes[i].QualifiedName() < classes[j].QualifiedName()
	})
	return classes
}

// Spec dumps the registry as an environment index. Declared members are
// described by the types the model derives for them.
func (r *Registry) Spec(m *types.Model) *index.EnvironmentSpec {
	spec := &index.EnvironmentSpec{}
	for _, cls := range r.Classes() {
		cs := &index.ClassSpec{Name: cls.QualifiedName()}
		for _, iface := range cls.Interfaces(r) {
			cs.Interfaces = append(cs.Interfaces, iface.QualifiedName())
		}
		for _, member := range cls.DeclaredMembers() {
			if ms := memberSpec(member, m, r); ms != nil {
				cs.Members = append(cs.Members, ms)
			}
		}
		spec.Classes = append(spec.Classes, cs)
	}
	for _, global := range r.globals {
		if ms := memberSpec(global, m, r); ms != nil {
			spec.Globals = append(spec.Globals, ms)
		}
	}
	receivers := make([]string, 0, len(r.expands))
	for receiver := range r.expands {
		receivers = append(receivers, receiver)
	}
	sort.Strings(receivers)
	for _, receiver := range receivers {
		for _, fn := range r.expands[receiver] {
			if ms := memberSpec(fn, m, r); ms != nil {
				spec.Expands = append(spec.Expands, &index.ExpandSpec{Receiver: receiver, Function: ms})
			}
		}
	}
	return spec
}

func memberSpec(sym symbol.Symbol, m *types.Model, r *Registry) *index.MemberSpec {
	spec := &index.MemberSpec{
		Name:   sym.Name(),
		Static: sym.Modifiers().Has(symbol.ModStatic),
	}
	switch s := sym.(type) {
	case *symbol.FunctionSymbol:
		spec.Kind = index.MemberFunction
		if s.Kind() == symbol.KindOperatorFunction {
			spec.Kind = index.MemberOperator
		}
		if ft, ok := m.TypeOf(s, r).(*types.Function); ok && ft.Return != nil {
			spec.Type = ft.Return.String()
		}
		for _, p := range s.Parameters() {
			ps := &index.ParamSpec{Name: p.Name(), Optional: p.IsOptional(), Vararg: p.IsVararg()}
			if t := m.TypeOf(p, r); t != nil {
				ps.Type = t.String()
			}
			spec.Params = append(spec.Params, ps)
		}
	case *symbol.VariableSymbol:
		if t := m.TypeOf(s, r); t != nil {
			spec.Type = t.String()
		}
	default:
		return nil
	}
	return spec
}

// nameSegmenter segments dotted names. For example, "a.b.c" -> ("a", 1),
// (".b", 3), (".c", -1) in successive calls. It does not allocate any heap
// memory.
func nameSegmenter(path string, start int) (segment string, next int) {
	if len(path) == 0 || start < 0 || start > len(path)-1 {
		return "", -1
	}
	end := strings.IndexRune(path[start+1:], '.') // next '.' after 0th rune
	if end == -1 {
		return path[start:], -1
	}
	return path[start : start+end+1], start + end + 1
}
