// Package unit holds the per-file derived data of a ZenScript workspace.
package unit

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/warmthdawn/zenscript-intelli-sense/pkg/symbol"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/syntax"
)

const (
	// ScriptExt is the extension of script files.
	ScriptExt = ".zs"
	// DeclarationExt is the extension of generated declaration files.
	DeclarationExt = ".dzs"
)

// IsUnitFile reports whether path names a script or declaration file.
func IsUnitFile(path string) bool {
	ext := filepath.Ext(path)
	return ext == ScriptExt || ext == DeclarationExt
}

// Unit is one source file with the tables the declaration pass derives from
// its syntax tree. The tables are index-addressed by syntax.NodeID and are
// rebuilt wholesale by Reset.
type Unit struct {
	path          string
	qualifiedName string
	simpleName    string

	tree     *syntax.Tree
	scopes   *symbol.ScopeTree
	scopeOf  []symbol.ScopeID
	symbolOf []symbol.Symbol
	imports  []*symbol.ImportSymbol
}

// New creates a unit for the file at path. The qualified name is derived
// from the path relative to root.
func New(root, path string) *Unit {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(path)
	}
	base := filepath.Base(path)
	return &Unit{
		path:          path,
		qualifiedName: ExtractQualifiedName(rel),
		simpleName:    strings.TrimSuffix(base, filepath.Ext(base)),
		scopes:        symbol.NewScopeTree(),
	}
}

// ExtractQualifiedName turns a relative path into a dotted name: the
// extension is trimmed, dots and spaces become underscores and separators
// become dots.
func ExtractQualifiedName(rel string) string {
	name := filepath.ToSlash(rel)
	if dot := strings.LastIndexByte(name, '.'); dot > 0 && dot > strings.LastIndexByte(name, '/') {
		name = name[:dot]
	}
	name = strings.NewReplacer(".", "_", " ", "_").Replace(name)
	return strings.ReplaceAll(name, "/", ".")
}

// Path implements symbol.Owner.
func (u *Unit) Path() string {
	return u.path
}

// QualifiedName implements symbol.Owner.
func (u *Unit) QualifiedName() string {
	return u.qualifiedName
}

// SimpleName is the file name without extension.
func (u *Unit) SimpleName() string {
	return u.simpleName
}

// Package implements symbol.Owner. Declaration files contribute to the
// package of their directory, scripts form a package of their own.
func (u *Unit) Package() string {
	if !u.IsGenerated() {
		return u.qualifiedName
	}
	if dot := strings.LastIndexByte(u.qualifiedName, '.'); dot >= 0 {
		return u.qualifiedName[:dot]
	}
	return ""
}

// IsGenerated reports whether the unit is a declaration file.
func (u *Unit) IsGenerated() bool {
	return filepath.Ext(u.path) == DeclarationExt
}

// Tree implements symbol.Owner.
func (u *Unit) Tree() *syntax.Tree {
	return u.tree
}

// Tokens returns the token stream of the current tree.
func (u *Unit) Tokens() []syntax.Token {
	if u.tree == nil {
		return nil
	}
	return u.tree.Tokens
}

// Reset installs a freshly parsed tree and clears every derived table.
func (u *Unit) Reset(tree *syntax.Tree) {
	u.tree = tree
	u.scopes = symbol.NewScopeTree()
	u.imports = nil
	n := 0
	if tree != nil {
		n = tree.Len()
	}
	u.scopeOf = make([]symbol.ScopeID, n)
	for i := range u.scopeOf {
		u.scopeOf[i] = symbol.NoScope
	}
	u.symbolOf = make([]symbol.Symbol, n)
}

// Scopes returns the scope arena.
func (u *Unit) Scopes() *symbol.ScopeTree {
	return u.scopes
}

func (u *Unit) inRange(node syntax.NodeID) bool {
	return node >= 0 && int(node) < len(u.scopeOf)
}

// NewScope creates a scope owned by node and records it in the node table.
func (u *Unit) NewScope(parent *symbol.Scope, node syntax.NodeID) *symbol.Scope {
	s := u.scopes.New(parent, node)
	if u.inRange(node) {
		u.scopeOf[node] = s.ID()
	}
	return s
}

// ScopeOf returns the scope owned by node, nil if it owns none.
func (u *Unit) ScopeOf(node syntax.NodeID) *symbol.Scope {
	if !u.inRange(node) {
		return nil
	}
	return u.scopes.Scope(u.scopeOf[node])
}

// LookupScope returns the scope of the nearest ancestor of node (node
// included) that owns one.
func (u *Unit) LookupScope(node syntax.NodeID) *symbol.Scope {
	if u.tree == nil {
		return nil
	}
	for cur := node; cur.Valid(); cur = u.tree.Parent(cur) {
		if s := u.ScopeOf(cur); s != nil {
			return s
		}
	}
	return nil
}

// RootScope returns the scope of the script file node.
func (u *Unit) RootScope() *symbol.Scope {
	if u.tree == nil {
		return nil
	}
	return u.ScopeOf(u.tree.Root)
}

// PutSymbol records the symbol declared by node.
func (u *Unit) PutSymbol(node syntax.NodeID, sym symbol.Symbol) {
	if u.inRange(node) {
		u.symbolOf[node] = sym
	}
}

// SymbolOf returns the symbol declared by node, nil if none.
func (u *Unit) SymbolOf(node syntax.NodeID) symbol.Symbol {
	if !u.inRange(node) {
		return nil
	}
	return u.symbolOf[node]
}

// Symbols calls fn for every declaring node in node order.
func (u *Unit) Symbols(fn func(node syntax.NodeID, sym symbol.Symbol)) {
	for i, sym := range u.symbolOf {
		if sym != nil {
			fn(syntax.NodeID(i), sym)
		}
	}
}

// AddImport appends to the import list.
func (u *Unit) AddImport(imp *symbol.ImportSymbol) {
	u.imports = append(u.imports, imp)
}

// Imports returns the imports in declaration order.
func (u *Unit) Imports() []*symbol.ImportSymbol {
	return u.imports
}

// TopLevelSymbols returns the symbols of the root scope.
func (u *Unit) TopLevelSymbols() []symbol.Symbol {
	if root := u.RootScope(); root != nil {
		return root.Symbols()
	}
	return nil
}

// String implements fmt.Stringer
func (u *Unit) String() string {
	return fmt.Sprintf("%s (%s)", u.qualifiedName, u.path)
}
