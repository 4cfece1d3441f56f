package symbol

import "strings"

// Kind classifies a symbol.
type Kind uint8

const (
	KindImport Kind = iota
	KindClass
	KindFunction
	KindVariable
	KindParameter
	KindOperatorFunction
	KindPackage
)

var kindNames = [...]string{
	KindImport:           "import",
	KindClass:            "class",
	KindFunction:         "function",
	KindVariable:         "variable",
	KindParameter:        "parameter",
	KindOperatorFunction: "operator",
	KindPackage:          "package",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsFunction reports whether the kind is callable.
func (k Kind) IsFunction() bool {
	return k == KindFunction || k == KindOperatorFunction
}

// Modifiers is a bit set of declaration modifiers.
type Modifiers uint8

const (
	ModNone   Modifiers = 0
	ModStatic Modifiers = 1 << iota
	ModGlobal
	ModVal
	ModVar
)

// Has reports whether all bits of m2 are set.
func (m Modifiers) Has(m2 Modifiers) bool {
	return m2 != ModNone && m&m2 == m2
}

func (m Modifiers) String() string {
	if m == ModNone {
		return "none"
	}
	var parts []string
	for _, mod := range []struct {
		bit  Modifiers
		name string
	}{
		{ModStatic, "static"},
		{ModGlobal, "global"},
		{ModVal, "val"},
		{ModVar, "var"},
	} {
		if m.Has(mod.bit) {
			parts = append(parts, mod.name)
		}
	}
	return strings.Join(parts, "|")
}
