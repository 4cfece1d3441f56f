package symbol_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/warmthdawn/zenscript-intelli-sense/pkg/symbol"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/syntax"
)

type testOwner struct {
	tree *syntax.Tree
}

func (o *testOwner) Path() string          { return "test.zs" }
func (o *testOwner) QualifiedName() string { return "scripts.test" }
func (o *testOwner) Package() string       { return "scripts.test" }
func (o *testOwner) Tree() *syntax.Tree    { return o.tree }

// declTree builds a flat tree whose leaves are declarations at the given
// start offsets, each 5 bytes long.
func declTree(starts ...int) (*testOwner, []syntax.NodeID) {
	b := syntax.NewBuilder("")
	root := b.Open(syntax.KindScriptFile, 0)
	var ids []syntax.NodeID
	for _, start := range starts {
		ids = append(ids, b.Leaf(syntax.KindVariableDeclaration, syntax.Range{Start: start, End: start + 5}, ""))
	}
	b.Close(root, 1000)
	return &testOwner{tree: b.Finish(1000, nil)}, ids
}

func names(symbols []symbol.Symbol) []string {
	var out []string
	for _, sym := range symbols {
		out = append(out, sym.Kind().String()+":"+sym.Name())
	}
	return out
}

func TestScopeLookup(t *testing.T) {
	tree := symbol.NewScopeTree()
	root := tree.New(nil, 0)
	inner := tree.New(root, 1)
	innermost := tree.New(inner, 2)

	globalX := symbol.NewVariable("x", symbol.ModGlobal, "int")
	localX := symbol.NewVariable("x", symbol.ModNone, "string")
	fn := symbol.NewFunction("f", symbol.KindFunction, symbol.ModNone, "void")
	root.Add(globalX)
	root.Add(fn)
	inner.Add(localX)

	for name, tc := range map[string]struct {
		scope *symbol.Scope
		name  string
		kinds []symbol.Kind
		want  symbol.Symbol
	}{
		"miss": {
			scope: innermost,
			name:  "y",
		},
		"nearest scope shadows outer": {
			scope: innermost,
			name:  "x",
			want:  localX,
		},
		"delegates to parent": {
			scope: innermost,
			name:  "f",
			want:  fn,
		},
		"root sees only its own": {
			scope: root,
			name:  "x",
			want:  globalX,
		},
		"kind filter skips scope": {
			scope: inner,
			name:  "x",
			kinds: []symbol.Kind{symbol.KindFunction},
		},
		"kind filter match": {
			scope: innermost,
			name:  "f",
			kinds: []symbol.Kind{symbol.KindFunction, symbol.KindClass},
			want:  fn,
		},
	} {
		t.Run(name, func(t *testing.T) {
			got := tc.scope.Lookup(tc.name, tc.kinds...)
			if got != tc.want {
				t.Errorf("Lookup(%q): want %v, got %v", tc.name, tc.want, got)
			}
		})
	}
}

// Any name resolvable from a scope but not declared in it resolves exactly
// as it does from the parent.
func TestScopeLookupDelegation(t *testing.T) {
	tree := symbol.NewScopeTree()
	root := tree.New(nil, 0)
	child := tree.New(root, 1)
	root.Add(symbol.NewVariable("a", symbol.ModNone, "int"))
	root.Add(symbol.NewVariable("b", symbol.ModNone, "int"))
	child.Add(symbol.NewVariable("b", symbol.ModNone, "string"))
	child.Add(symbol.NewVariable("c", symbol.ModNone, "string"))

	declared := make(map[string]bool)
	for _, sym := range child.Symbols() {
		declared[sym.Name()] = true
	}
	for _, name := range []string{"a", "b", "c", "d"} {
		if declared[name] {
			continue
		}
		if got, want := child.Lookup(name), root.Lookup(name); got != want {
			t.Errorf("%s: child lookup %v differs from parent lookup %v", name, got, want)
		}
	}
}

func TestScopeLookupAt(t *testing.T) {
	owner, decls := declTree(10, 30, 50)
	tree := symbol.NewScopeTree()
	root := tree.New(nil, 0)
	first := symbol.NewDeclaredVariable("v", symbol.ModVar, decls[0], owner)
	second := symbol.NewDeclaredVariable("v", symbol.ModVar, decls[1], owner)
	other := symbol.NewDeclaredVariable("w", symbol.ModVar, decls[2], owner)
	root.Add(first)
	root.Add(second)
	root.Add(other)

	for name, tc := range map[string]struct {
		offset int
		want   symbol.Symbol
	}{
		"before both falls back to first": {offset: 0, want: first},
		"after first":                     {offset: 20, want: first},
		"after second":                    {offset: 40, want: second},
		"far after":                       {offset: 900, want: second},
	} {
		t.Run(name, func(t *testing.T) {
			if got := root.LookupAt("v", tc.offset); got != tc.want {
				t.Errorf("LookupAt(v, %d): want %v, got %v", tc.offset, tc.want, got)
			}
		})
	}

	if got := root.Lookup("v"); got != first {
		t.Errorf("Lookup(v) must return the first declaration, got %v", got)
	}
}

func TestScopeLookupAll(t *testing.T) {
	tree := symbol.NewScopeTree()
	root := tree.New(nil, 0)
	child := tree.New(root, 1)
	root.Add(symbol.NewFunction("f", symbol.KindFunction, symbol.ModNone, "void"))
	root.Add(symbol.NewFunction("f", symbol.KindFunction, symbol.ModNone, "int", symbol.NewParameter("a", "int", false, false)))
	root.Add(symbol.NewVariable("g", symbol.ModNone, "int"))

	got := names(child.LookupAll("f"))
	want := []string{"function:f", "function:f"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if got := child.LookupAll("h"); got != nil {
		t.Errorf("expected no matches, got %v", got)
	}
}

func TestScopeTreeValidate(t *testing.T) {
	b := syntax.NewBuilder("")
	root := b.Open(syntax.KindScriptFile, 0)
	fn := b.Open(syntax.KindFunctionDeclaration, 0)
	body := b.Leaf(syntax.KindFunctionBody, syntax.Range{Start: 2, End: 8}, "")
	b.Close(fn, 10)
	other := b.Leaf(syntax.KindWhileStatement, syntax.Range{Start: 12, End: 20}, "")
	b.Close(root, 20)
	st := b.Finish(20, nil)

	for name, tc := range map[string]struct {
		build   func(tree *symbol.ScopeTree)
		wantErr bool
	}{
		"nested": {
			build: func(tree *symbol.ScopeTree) {
				r := tree.New(nil, root)
				f := tree.New(r, fn)
				tree.New(f, body)
				tree.New(r, other)
			},
		},
		"duplicate owner": {
			build: func(tree *symbol.ScopeTree) {
				r := tree.New(nil, root)
				tree.New(r, fn)
				tree.New(r, fn)
			},
			wantErr: true,
		},
		"not nested": {
			build: func(tree *symbol.ScopeTree) {
				r := tree.New(nil, root)
				f := tree.New(r, fn)
				tree.New(f, other)
			},
			wantErr: true,
		},
	} {
		t.Run(name, func(t *testing.T) {
			tree := symbol.NewScopeTree()
			tc.build(tree)
			err := tree.Validate(st)
			if tc.wantErr != (err != nil) {
				t.Errorf("wantErr %v, got %v", tc.wantErr, err)
			}
		})
	}
}
