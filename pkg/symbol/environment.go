package symbol

import "fmt"

// Environment is the host-contributed namespace shared by every unit of a
// workspace. Implementations must be safe for concurrent reads.
type Environment interface {
	// Globals returns the symbols visible from every script.
	Globals() []Symbol
	// RootPackage returns the root of the package tree.
	RootPackage() *PackageSymbol
	// FindClass looks up a class by qualified name, nil when unknown.
	FindClass(qualifiedName string) *ClassSymbol
	// SymbolsOfPackage returns the members of the named package.
	SymbolsOfPackage(qualifiedName string) []Symbol
	// ExpandFunctions returns the expand functions registered for the named
	// receiver type.
	ExpandFunctions(typeName string) []Symbol
}

// Type is a resolved type. Its string form is the name expand functions are
// registered under.
type Type interface {
	fmt.Stringer
}

// TypeModel derives types from symbols and members from types.
type TypeModel interface {
	// TypeOf returns the declared type of the symbol, nil when unknown.
	TypeOf(sym Symbol, env Environment) Type
	// MembersOf returns the members declared for the type, inherited
	// members included.
	MembersOf(t Type, env Environment) []Symbol
	// ExpandMembersOf returns the expand functions attached to the type.
	ExpandMembersOf(t Type, env Environment) []Symbol
}
