package env

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/warmthdawn/zenscript-intelli-sense/pkg/index"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/symbol"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/types"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/unit"
)

// BuilderOption configures a Builder.
type BuilderOption func(b *Builder) *Builder

// WithBuilderLogger sets the logger of a Builder.
func WithBuilderLogger(logger zerolog.Logger) BuilderOption {
	return func(b *Builder) *Builder {
		b.logger = logger
		return b
	}
}

// WithTypeModel sets the model used to key expand functions by receiver.
func WithTypeModel(m *types.Model) BuilderOption {
	return func(b *Builder) *Builder {
		b.types = m
		return b
	}
}

// Builder collects classes, globals, package members and expand functions
// and produces a Registry. Expand functions are keyed by their receiver only
// in Build, once every class is known.
type Builder struct {
	logger  zerolog.Logger
	types   *types.Model
	reg     *Registry
	pending []*symbol.FunctionSymbol
}

// NewBuilder creates a new Builder.
func NewBuilder(options ...BuilderOption) *Builder {
	b := &Builder{
		logger: zerolog.Nop(),
		types:  types.New(),
		reg:    newRegistry(),
	}
	for _, opt := range options {
		b = opt(b)
	}
	return b
}

// Package returns the package with the given dotted name, creating it and
// every missing prefix.
func (b *Builder) Package(qualifiedName string) *symbol.PackageSymbol {
	pkg := b.reg.root
	if qualifiedName == "" {
		return pkg
	}
	var prefix string
	for _, segment := range strings.Split(qualifiedName, ".") {
		if prefix == "" {
			prefix = segment
		} else {
			prefix += "." + segment
		}
		sub := pkg.Subpackage(segment)
		if sub == nil {
			sub = symbol.NewPackage(prefix)
			pkg.AddSubpackage(sub)
			b.reg.entry(prefix).pkg = sub
		}
		pkg = sub
	}
	return pkg
}

// AddClass registers a class under its qualified name and as a member of
// its package. The first class registered under a name wins.
func (b *Builder) AddClass(cls *symbol.ClassSymbol) {
	qualifiedName := cls.QualifiedName()
	if qualifiedName == "" {
		return
	}
	e := b.reg.entry(qualifiedName)
	if e.class != nil {
		b.logger.Warn().Str("class", qualifiedName).Msg("duplicate class ignored")
		return
	}
	e.class = cls
	var pkg string
	if dot := strings.LastIndexByte(qualifiedName, '.'); dot >= 0 {
		pkg = qualifiedName[:dot]
	}
	b.Package(pkg).AddMember(cls)
}

// AddGlobal registers a symbol visible from every script.
func (b *Builder) AddGlobal(sym symbol.Symbol) {
	b.reg.globals = append(b.reg.globals, sym)
}

// AddPackageMember adds a non-class symbol to a package.
func (b *Builder) AddPackageMember(pkg string, sym symbol.Symbol) {
	b.Package(pkg).AddMember(sym)
}

// AddExpand registers an expand function. Its receiver is resolved in
// Build.
func (b *Builder) AddExpand(fn *symbol.FunctionSymbol) {
	b.pending = append(b.pending, fn)
}

// AddUnit harvests the top level of a resolved unit: classes, globals,
// expand functions and the functions and static variables that make up
// the unit's package.
func (b *Builder) AddUnit(u *unit.Unit) {
	pkg := u.Package()
	b.Package(pkg)
	for _, sym := range u.TopLevelSymbols() {
		switch s := sym.(type) {
		case *symbol.ImportSymbol:
			continue
		case *symbol.ClassSymbol:
			b.AddClass(s)
			continue
		case *symbol.FunctionSymbol:
			if s.IsExpand() {
				b.AddExpand(s)
				continue
			}
		}
		mods := sym.Modifiers()
		switch {
		case mods.Has(symbol.ModGlobal):
			b.AddGlobal(sym)
		case mods.Has(symbol.ModStatic), sym.Kind().IsFunction():
			b.AddPackageMember(pkg, sym)
		}
	}
}

// AddIndex registers the contents of an environment index.
func (b *Builder) AddIndex(spec *index.EnvironmentSpec) {
	for _, cs := range spec.Classes {
		members := make([]symbol.Symbol, 0, len(cs.Members))
		for _, ms := range cs.Members {
			members = append(members, memberSymbol(ms, symbol.ModNone))
		}
		b.AddClass(symbol.NewClass(cs.Name, members, cs.Interfaces...))
	}
	for _, ms := range spec.Globals {
		b.AddGlobal(memberSymbol(ms, symbol.ModGlobal))
	}
	for _, es := range spec.Expands {
		if es.Function == nil {
			continue
		}
		b.AddExpand(symbol.NewExpandFunction(es.Receiver, es.Function.Name, es.Function.Type, paramSymbols(es.Function.Params)...))
	}
}

// Build keys the pending expand functions and returns the registry. The
// builder starts over empty afterwards.
func (b *Builder) Build() *Registry {
	r := b.reg
	for _, fn := range b.pending {
		receiver := b.types.ReceiverName(fn, r)
		if receiver == "" {
			b.logger.Warn().Str("function", fn.Name()).Msg("expand function without receiver ignored")
			continue
		}
		r.expands[receiver] = append(r.expands[receiver], fn)
	}
	b.logger.Debug().
		Int("globals", len(r.globals)).
		Int("receivers", len(r.expands)).
		Msg("environment built")

	b.reg = newRegistry()
	b.pending = nil
	return r
}

func memberSymbol(spec *index.MemberSpec, mods symbol.Modifiers) symbol.Symbol {
	if spec.Static {
		mods |= symbol.ModStatic
	}
	switch spec.Kind {
	case index.MemberFunction:
		return symbol.NewFunction(spec.Name, symbol.KindFunction, mods, spec.Type, paramSymbols(spec.Params)...)
	case index.MemberOperator:
		return symbol.NewFunction(spec.Name, symbol.KindOperatorFunction, mods, spec.Type, paramSymbols(spec.Params)...)
	}
	return symbol.NewVariable(spec.Name, mods, spec.Type)
}

func paramSymbols(specs []*index.ParamSpec) []*symbol.ParameterSymbol {
	params := make([]*symbol.ParameterSymbol, 0, len(specs))
	for _, ps := range specs {
		params = append(params, symbol.NewParameter(ps.Name, ps.Type, ps.Optional, ps.Vararg))
	}
	return params
}
