package resolver

import (
	"fmt"
	"strings"

	"github.com/warmthdawn/zenscript-intelli-sense/pkg/symbol"
)

// NameSource is one place a bare identifier can be looked up in.
type NameSource interface {
	fmt.Stringer

	// GetSymbols returns the symbols the source knows under name.
	GetSymbols(name string) []symbol.Symbol
}

// ChainScope implements NameSource over a chain of sources: the first
// source with a non-empty answer wins and later sources are not consulted.
type ChainScope struct {
	chain []NameSource
}

func NewChainScope(chain ...NameSource) *ChainScope {
	return &ChainScope{
		chain: chain,
	}
}

// GetSymbols implements part of the NameSource interface
func (r *ChainScope) GetSymbols(name string) []symbol.Symbol {
	for _, next := range r.chain {
		if known := next.GetSymbols(name); len(known) > 0 {
			return known
		}
	}
	return nil
}

// String implements the fmt.Stringer interface
func (r *ChainScope) String() string {
	var buf strings.Builder
	for _, next := range r.chain {
		buf.WriteString(next.String())
		buf.WriteRune('\n')
	}
	return buf.String()
}

// lexicalSource looks a name up along the scope chain at a position. An
// overload family in the nearest scope is returned whole; otherwise the
// declaration visible at the offset wins.
type lexicalSource struct {
	scope  *symbol.Scope
	offset int
}

func (s *lexicalSource) GetSymbols(name string) []symbol.Symbol {
	if s.scope == nil {
		return nil
	}
	all := s.scope.LookupAll(name)
	if len(all) <= 1 || symbol.AllFunctions(all) {
		return all
	}
	return []symbol.Symbol{s.scope.LookupAt(name, s.offset)}
}

func (s *lexicalSource) String() string {
	if s.scope == nil {
		return "lexical(none)"
	}
	return "lexical(" + s.scope.String() + ")"
}

// listSource matches a name against a fixed symbol list.
type listSource struct {
	label   string
	symbols func() []symbol.Symbol
}

func (s *listSource) GetSymbols(name string) []symbol.Symbol {
	return symbol.Named(s.symbols(), name)
}

func (s *listSource) String() string {
	return s.label
}
