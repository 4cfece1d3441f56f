// Package types derives declared types of symbols and the members those
// types expose.
package types

import (
	"strings"

	"github.com/warmthdawn/zenscript-intelli-sense/pkg/symbol"
)

// Primitive is a builtin type such as int or string.
type Primitive struct {
	Name string
}

func (t *Primitive) String() string { return t.Name }

// Class is the type of instances of a class.
type Class struct {
	Symbol *symbol.ClassSymbol
}

func (t *Class) String() string { return t.Symbol.QualifiedName() }

// List is "[T]".
type List struct {
	Elem symbol.Type
}

func (t *List) String() string { return "[" + typeString(t.Elem) + "]" }

// Array is "T[]".
type Array struct {
	Elem symbol.Type
}

func (t *Array) String() string { return typeString(t.Elem) + "[]" }

// Map is "V[K]".
type Map struct {
	Key   symbol.Type
	Value symbol.Type
}

func (t *Map) String() string { return typeString(t.Value) + "[" + typeString(t.Key) + "]" }

// Function is "function(P...)R".
type Function struct {
	Params []symbol.Type
	Return symbol.Type
}

func (t *Function) String() string {
	params := make([]string, len(t.Params))
	for i, p := range t.Params {
		params[i] = typeString(p)
	}
	return "function(" + strings.Join(params, ",") + ")" + typeString(t.Return)
}

// Intersection is "A & B" as used by declaration files.
type Intersection struct {
	Types []symbol.Type
}

func (t *Intersection) String() string {
	parts := make([]string, len(t.Types))
	for i, p := range t.Types {
		parts[i] = typeString(p)
	}
	return strings.Join(parts, " & ")
}

func typeString(t symbol.Type) string {
	if t == nil {
		return "any"
	}
	return t.String()
}

var primitives = map[string]bool{
	"any": true, "bool": true, "byte": true, "short": true, "int": true,
	"long": true, "float": true, "double": true, "string": true, "void": true,
}

// IsPrimitive reports whether name is a builtin type name.
func IsPrimitive(name string) bool {
	return primitives[name]
}
